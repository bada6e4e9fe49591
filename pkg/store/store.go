// Package store persists stations, countries and recognized songs in sqlite.
//
// Slug uniqueness is enforced by the database, not by callers: concurrent
// check-then-insert races surface as ErrDuplicateSlug and must be treated as
// "duplicate skipped", never as data corruption.
package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/zachfi/stationd/pkg/stations"
)

// ErrDuplicateSlug is returned by Insert when a station with the same slug
// already exists.
var ErrDuplicateSlug = errors.New("station with this slug already exists")

var module = "store"

type stationRow struct {
	ID          string `gorm:"primaryKey;type:varchar(36)"`
	Name        string `gorm:"size:255;not null"`
	Genre       string `gorm:"size:100"`
	URL         string `gorm:"not null"`
	Slug        string `gorm:"uniqueIndex;not null"`
	CountryCode string `gorm:"size:2;index"`
	IsFavorite  bool   `gorm:"not null;default:false"`
	CreatedAt   time.Time
}

func (stationRow) TableName() string { return "stations" }

// Country is one row of the country lookup table.
type Country struct {
	Code string `gorm:"primaryKey;size:2"`
	Name string `gorm:"not null"`
}

func (Country) TableName() string { return "countries" }

// Song is a now-playing title captured from a live stream. Names are unique;
// hearing the same song twice is not an error.
type Song struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"uniqueIndex;size:255;not null"`
	CreatedAt time.Time
}

func (Song) TableName() string { return "songs" }

// Store wraps the sqlite database.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

// New opens (creating if necessary) the sqlite database and migrates the
// schema.
func New(cfg Config, log slog.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&stationRow{}, &Country{}, &Song{}); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		logger: log.With("module", module),
	}, nil
}

// FindBySlug returns the station with the given slug, or nil when none
// exists.
func (s *Store) FindBySlug(ctx context.Context, slug string) (*stations.Station, error) {
	var row stationRow
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	st := row.toStation()
	return &st, nil
}

// Insert persists a new station. A slug collision, whether found by this
// process or raced in by another writer, returns ErrDuplicateSlug.
func (s *Store) Insert(ctx context.Context, st *stations.Station) error {
	row := newStationRow(st)

	err := s.db.WithContext(ctx).Create(&row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateSlug
	}
	return err
}

// SeedCountries upserts the country lookup table, ignoring codes already
// present.
func (s *Store) SeedCountries(ctx context.Context, countries []Country) error {
	if len(countries) == 0 {
		return nil
	}

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&countries).Error
}

// AddSong records a recognized title. Duplicates are kept once.
func (s *Store) AddSong(ctx context.Context, name string) error {
	song := Song{Name: name}
	return s.db.WithContext(ctx).
		Where("name = ?", name).
		FirstOrCreate(&song).Error
}

// Songs lists all recognized titles, ordered by name.
func (s *Store) Songs(ctx context.Context) ([]Song, error) {
	var songs []Song
	err := s.db.WithContext(ctx).Order("name").Find(&songs).Error
	return songs, err
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func newStationRow(st *stations.Station) stationRow {
	return stationRow{
		ID:          st.ID,
		Name:        st.Name,
		Genre:       st.Genre,
		URL:         st.URL,
		Slug:        st.Slug,
		CountryCode: st.CountryCode,
		IsFavorite:  st.IsFavorite,
	}
}

func (r stationRow) toStation() stations.Station {
	return stations.Station{
		ID:          r.ID,
		Name:        r.Name,
		Genre:       r.Genre,
		URL:         r.URL,
		Slug:        r.Slug,
		CountryCode: r.CountryCode,
		IsFavorite:  r.IsFavorite,
	}
}
