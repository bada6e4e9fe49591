package stations

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNormalizer() *Normalizer {
	return NewNormalizer(NewGenreIndex())
}

func TestNormalize(t *testing.T) {
	n := testNormalizer()

	s, err := n.Normalize(Record{
		Name:        "Jazz FM [128kbps]",
		StreamURL:   "http://stream.example.org/jazz",
		Homepage:    "http://jazz.example.org",
		Country:     "United Kingdom",
		CountryCode: "gb",
		Language:    "english",
		Tags:        "jazz,smooth jazz",
	})
	require.NoError(t, err)

	assert.Equal(t, "Jazz", s.Name)
	assert.Equal(t, "jazz", s.Slug)
	assert.Equal(t, "jazz", s.Genre)
	assert.Equal(t, "gb", s.CountryCode)
	assert.Equal(t, "http://stream.example.org/jazz", s.URL)
	assert.NotEmpty(t, s.ID)
	assert.False(t, s.IsFavorite)
}

func TestNormalizeSlugFromDisplayName(t *testing.T) {
	n := testNormalizer()

	s, err := n.Normalize(Record{
		Name:        "Classic Rock - The Best Hits",
		StreamURL:   "http://stream.example.org/rock",
		CountryCode: "us",
	})
	require.NoError(t, err)

	assert.Equal(t, "Classic Rock", s.Name)
	assert.Equal(t, "classic-rock", s.Slug)
}

func TestNormalizeSkips(t *testing.T) {
	n := testNormalizer()

	cases := []struct {
		name     string
		rec      Record
		expected error
	}{
		{
			name:     "whitespace name",
			rec:      Record{Name: "   ", StreamURL: "http://x.example", CountryCode: "us"},
			expected: ErrEmptyName,
		},
		{
			name:     "missing stream url",
			rec:      Record{Name: "Morning Show", CountryCode: "us"},
			expected: ErrNoStreamURL,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := n.Normalize(tc.rec)
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestNormalizeValidation(t *testing.T) {
	n := testNormalizer()

	// Absent country code fails field validation and skips the record.
	_, err := n.Normalize(Record{Name: "Morning Show", StreamURL: "http://x.example"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrEmptyName))
	assert.False(t, errors.Is(err, ErrNoStreamURL))

	// Malformed code was repaired to the sentinel, which validates.
	s, err := n.Normalize(Record{Name: "Morning Show", StreamURL: "http://x.example", CountryCode: "USA"})
	require.NoError(t, err)
	assert.Equal(t, UnknownCountry, s.CountryCode)

	// A bad URL fails validation.
	_, err = n.Normalize(Record{Name: "Morning Show", StreamURL: "not a url", CountryCode: "us"})
	assert.Error(t, err)
}

func TestNormalizeUnknownGenre(t *testing.T) {
	n := testNormalizer()

	s, err := n.Normalize(Record{
		Name:        "Zzyzx Broadcasting",
		StreamURL:   "http://streams.example.net/zzyzx",
		CountryCode: "us",
	})
	require.NoError(t, err)
	assert.Equal(t, UnknownGenre, s.Genre)
}

func TestCorpus(t *testing.T) {
	full := Corpus(Record{
		Name:      "A",
		StreamURL: "B",
		Tags:      "C",
	})
	assert.Equal(t, "A | B | C", full)

	assert.Equal(t, "", Corpus(Record{}))
}
