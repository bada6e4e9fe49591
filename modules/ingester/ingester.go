// Package ingester runs the station ingestion pipeline: fetch the directory's
// raw records, normalize and classify each one, and persist the survivors.
// The pass is best-effort; one bad record never aborts the run.
package ingester

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/grafana/dskit/services"
	pkgerrors "github.com/pkg/errors"

	"github.com/zachfi/stationd/pkg/radiobrowser"
	"github.com/zachfi/stationd/pkg/stations"
	"github.com/zachfi/stationd/pkg/store"
)

var module = "ingester"

// Directory lists raw records from a station directory.
type Directory interface {
	Stations(ctx context.Context) ([]radiobrowser.Station, error)
	Countries(ctx context.Context) ([]radiobrowser.Country, error)
}

// StationStore is the persistence collaborator. FindBySlug returns nil when
// no station exists; Insert returns store.ErrDuplicateSlug on slug collision.
type StationStore interface {
	FindBySlug(ctx context.Context, slug string) (*stations.Station, error)
	Insert(ctx context.Context, st *stations.Station) error
	SeedCountries(ctx context.Context, countries []store.Country) error
}

type Ingester struct {
	services.Service

	cfg        *Config
	logger     *slog.Logger
	source     Directory
	store      StationStore
	normalizer *stations.Normalizer
}

// New creates and returns a new Ingester.
func New(cfg Config, logger slog.Logger, source Directory, st StationStore) (*Ingester, error) {
	if source == nil {
		return nil, pkgerrors.New("ingester requires a directory source")
	}
	if st == nil {
		return nil, pkgerrors.New("ingester requires a station store")
	}

	i := &Ingester{
		cfg:        &cfg,
		logger:     logger.With("module", module),
		source:     source,
		store:      st,
		normalizer: stations.NewNormalizer(stations.NewGenreIndex()),
	}

	i.Service = services.NewBasicService(nil, i.running, i.stopping)

	return i, nil
}

func (i *Ingester) running(ctx context.Context) error {
	if err := i.runPass(ctx); err != nil {
		i.logger.Error("ingest pass failed", "err", err)
	}

	if i.cfg.Interval <= 0 {
		<-ctx.Done()
		return nil
	}

	t := time.NewTicker(i.cfg.Interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if err := i.runPass(ctx); err != nil {
				i.logger.Error("ingest pass failed", "err", err)
			}
		}
	}
}

func (i *Ingester) stopping(_ error) error {
	i.logger.Info("stopping")
	return nil
}

// runPass seeds the country table and ingests the current station list.
// Fetching the station list is the only failure that aborts the pass.
func (i *Ingester) runPass(ctx context.Context) error {
	i.seedCountries(ctx)

	recs, err := i.source.Stations(ctx)
	if err != nil {
		return pkgerrors.Wrap(err, "fetching station list")
	}

	i.logger.Info("starting ingest pass", "records", len(recs))

	for _, rec := range recs {
		i.ingest(ctx, rec)
	}

	passesTotal.Inc()
	i.logger.Info("ingest pass complete")

	return nil
}

func (i *Ingester) seedCountries(ctx context.Context) {
	countries, err := i.source.Countries(ctx)
	if err != nil {
		i.logger.Warn("fetching country list failed", "err", err)
		return
	}

	rows := make([]store.Country, 0, len(countries))
	for _, c := range countries {
		if c.Code == "" || c.Name == "" {
			continue
		}
		rows = append(rows, store.Country{Code: c.Code, Name: c.Name})
	}

	if err := i.store.SeedCountries(ctx, rows); err != nil {
		i.logger.Warn("seeding countries failed", "err", err)
	}
}

func (i *Ingester) ingest(ctx context.Context, rec radiobrowser.Station) {
	recordsTotal.Inc()

	st, err := i.normalizer.Normalize(stations.Record{
		Name:        rec.Name,
		StreamURL:   rec.URL,
		Homepage:    rec.Homepage,
		Country:     rec.Country,
		CountryCode: rec.CountryCode,
		Language:    rec.Language,
		Tags:        rec.Tags,
	})
	if err != nil {
		skippedTotal.WithLabelValues(skipReason(err)).Inc()
		i.logger.Info("skipping station", "name", rec.Name, "reason", err)
		return
	}

	existing, err := i.store.FindBySlug(ctx, st.Slug)
	if err != nil {
		storeErrorsTotal.Inc()
		i.logger.Error("store lookup failed", "slug", st.Slug, "err", err)
		return
	}
	if existing != nil {
		skippedTotal.WithLabelValues(reasonDuplicate).Inc()
		i.logger.Info("skipping station with duplicate slug", "slug", st.Slug, "name", st.Name)
		return
	}

	if err := i.store.Insert(ctx, st); err != nil {
		// A concurrent writer beat us to the slug; the unique index is the
		// authoritative arbiter and this is an expected outcome.
		if errors.Is(err, store.ErrDuplicateSlug) {
			skippedTotal.WithLabelValues(reasonDuplicate).Inc()
			i.logger.Warn("duplicate slug on insert", "slug", st.Slug, "name", st.Name)
			return
		}

		storeErrorsTotal.Inc()
		i.logger.Error("store insert failed", "slug", st.Slug, "name", st.Name, "err", err)
		return
	}

	insertedTotal.Inc()
	i.logger.Info("added station", "name", st.Name, "slug", st.Slug, "genre", st.Genre)
}

func skipReason(err error) string {
	switch {
	case errors.Is(err, stations.ErrEmptyName):
		return reasonEmptyName
	case errors.Is(err, stations.ErrNoStreamURL):
		return reasonNoStreamURL
	default:
		return reasonInvalid
	}
}
