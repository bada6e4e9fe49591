package radiobrowser

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/json/stations", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"name": "Jazz FM", "url_resolved": "http://stream.example.org/jazz", "countrycode": "gb", "tags": "jazz"},
			{"name": "无线电", "url_resolved": "", "country": "China"}
		]`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, testLogger())

	stations, err := c.Stations(context.Background())
	require.NoError(t, err)
	require.Len(t, stations, 2)

	assert.Equal(t, "Jazz FM", stations[0].Name)
	assert.Equal(t, "http://stream.example.org/jazz", stations[0].URL)
	assert.Equal(t, "gb", stations[0].CountryCode)
	assert.Equal(t, "jazz", stations[0].Tags)
	assert.Empty(t, stations[1].URL)
}

func TestCountries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/json/countries", r.URL.Path)
		_, _ = w.Write([]byte(`[{"name": "Germany", "iso_3166_1": "DE", "stationcount": 3987}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, testLogger())

	countries, err := c.Countries(context.Background())
	require.NoError(t, err)
	require.Len(t, countries, 1)
	assert.Equal(t, "DE", countries[0].Code)
	assert.Equal(t, "Germany", countries[0].Name)
}

func TestStationsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, testLogger())

	_, err := c.Stations(context.Background())
	assert.Error(t, err)
}

func TestStationsBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "a list"`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, testLogger())

	_, err := c.Stations(context.Background())
	assert.Error(t, err)
}
