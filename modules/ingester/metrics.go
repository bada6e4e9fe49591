package ingester

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Skip reason label values.
const (
	reasonEmptyName   = "empty_name"
	reasonNoStreamURL = "no_stream_url"
	reasonInvalid     = "invalid"
	reasonDuplicate   = "duplicate_slug"
)

var (
	recordsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "stationd",
		Subsystem: "ingester",
		Name:      "records_total",
		Help:      "Raw directory records seen.",
	})

	insertedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "stationd",
		Subsystem: "ingester",
		Name:      "inserted_total",
		Help:      "Stations accepted and persisted.",
	})

	skippedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stationd",
		Subsystem: "ingester",
		Name:      "skipped_total",
		Help:      "Records dropped, by reason.",
	}, []string{"reason"})

	storeErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "stationd",
		Subsystem: "ingester",
		Name:      "store_errors_total",
		Help:      "Store failures that dropped a record without aborting the pass.",
	})

	passesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "stationd",
		Subsystem: "ingester",
		Name:      "passes_total",
		Help:      "Completed ingest passes.",
	})
)
