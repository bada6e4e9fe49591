package stations

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// Skip conditions. A record hitting one of these is dropped by the caller and
// the run continues; none of them is fatal.
var (
	ErrEmptyName   = errors.New("empty station name")
	ErrNoStreamURL = errors.New("missing stream url")
)

// Record is a loosely-typed station record as received from a directory
// source. Fields may be empty or malformed; nothing here is validated.
type Record struct {
	Name        string
	StreamURL   string
	Homepage    string
	Country     string
	CountryCode string
	Language    string
	Tags        string
}

// Station is a validated directory entry ready for persistence.
type Station struct {
	ID          string
	Name        string `validate:"required,min=1,max=255"`
	Genre       string `validate:"omitempty,min=1,max=100"`
	URL         string `validate:"required,url"`
	Slug        string
	CountryCode string `validate:"required,len=2"`
	IsFavorite  bool
}

// Corpus joins the record's text fields into the haystack the genre
// classifier scans. Empty fields are skipped.
func Corpus(rec Record) string {
	fields := []string{rec.Name, rec.StreamURL, rec.Homepage, rec.Country, rec.Language, rec.Tags}

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			parts = append(parts, f)
		}
	}

	return strings.Join(parts, " | ")
}

// Normalizer turns raw directory records into validated stations. It holds
// the immutable genre index and is safe for concurrent use.
type Normalizer struct {
	genres   *GenreIndex
	validate *validator.Validate
}

func NewNormalizer(genres *GenreIndex) *Normalizer {
	return &Normalizer{
		genres:   genres,
		validate: validator.New(),
	}
}

// Normalize derives the display name, slug, country code and genre label for
// one record and validates the result. It returns a skip error when the
// record should be dropped: ErrEmptyName, ErrNoStreamURL, or a wrapped
// validation error for field constraint failures.
func (n *Normalizer) Normalize(rec Record) (*Station, error) {
	name := CleanName(rec.Name)
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}

	if rec.StreamURL == "" {
		return nil, ErrNoStreamURL
	}

	code, _ := NormalizeCountryCode(rec.CountryCode)

	s := &Station{
		ID:          uuid.NewString(),
		Name:        name,
		Genre:       n.genres.Classify(Corpus(rec)),
		URL:         rec.StreamURL,
		Slug:        slug.Make(name),
		CountryCode: code,
	}

	if err := n.validate.Struct(s); err != nil {
		return nil, fmt.Errorf("invalid station %q: %w", name, err)
	}

	return s, nil
}
