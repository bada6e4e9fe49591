// Package nowplaying serves the currently playing title for a stored station
// by reading one ICY metadata block from its live stream.
package nowplaying

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/grafana/dskit/services"
	pkgerrors "github.com/pkg/errors"

	"github.com/zachfi/stationd/pkg/shoutcast"
	"github.com/zachfi/stationd/pkg/stations"
)

var module = "nowplaying"

// StationStore resolves slugs to stored stations and records heard titles.
type StationStore interface {
	FindBySlug(ctx context.Context, slug string) (*stations.Station, error)
	AddSong(ctx context.Context, name string) error
}

// Reason strings surfaced to the caller in place of a title. The endpoint
// reports failures as human-readable text, not structured faults.
const (
	msgNoMetadata = "No ICY metadata in this stream"
	msgNoTitle    = "No title found"
)

type NowPlaying struct {
	services.Service

	cfg    *Config
	logger *slog.Logger
	store  StationStore
}

// New creates and returns a new NowPlaying.
func New(cfg Config, logger slog.Logger, store StationStore) (*NowPlaying, error) {
	if store == nil {
		return nil, pkgerrors.New("nowplaying requires a station store")
	}

	n := &NowPlaying{
		cfg:    &cfg,
		logger: logger.With("module", module),
		store:  store,
	}

	n.Service = services.NewIdleService(nil, nil)

	return n, nil
}

type songResponse struct {
	Song string `json:"song"`
}

// Handler answers GET /stations/{slug}/nowplaying.
func (n *NowPlaying) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slug := mux.Vars(r)["slug"]

		st, err := n.store.FindBySlug(r.Context(), slug)
		if err != nil {
			n.logger.Error("store lookup failed", "slug", slug, "err", err)
			http.Error(w, "store lookup failed", http.StatusInternalServerError)
			return
		}
		if st == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Station not found"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), n.cfg.Timeout)
		defer cancel()

		writeJSON(w, http.StatusOK, songResponse{Song: n.extract(ctx, st.URL)})
	})
}

// extract reads one metadata block from the stream and maps every failure to
// a textual reason. An unreliable live stream must never produce a fault
// here, only a message.
func (n *NowPlaying) extract(ctx context.Context, url string) string {
	s, err := shoutcast.Open(ctx, url)
	if err != nil {
		n.logger.Warn("error opening stream", "url", url, "err", err)
		return "Error: " + err.Error()
	}
	defer s.Close()

	title, err := s.ReadTitle()
	switch {
	case errors.Is(err, shoutcast.ErrNoMetadata):
		return msgNoMetadata
	case errors.Is(err, shoutcast.ErrNoTitle):
		return msgNoTitle
	case err != nil:
		n.logger.Warn("error reading title", "url", url, "err", err)
		return "Error: " + err.Error()
	}

	if title != shoutcast.UnknownTitle {
		if err := n.store.AddSong(ctx, title); err != nil {
			n.logger.Warn("recording song failed", "title", title, "err", err)
		}
	}

	return title
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
