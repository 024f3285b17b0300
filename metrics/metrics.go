// Package metrics exposes prometheus counters for the extraction pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DocumentsProcessed counts documents run through the full pipeline.
	DocumentsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lexgraph",
		Name:      "documents_processed_total",
		Help:      "Number of documents processed by the extraction pipeline.",
	})

	// EntitiesExtracted counts extracted entities by type.
	EntitiesExtracted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lexgraph",
		Name:      "entities_extracted_total",
		Help:      "Number of entities extracted, partitioned by entity type.",
	}, []string{"type"})

	// TimelineEvents counts extracted timeline events by event type.
	TimelineEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lexgraph",
		Name:      "timeline_events_total",
		Help:      "Number of timeline events extracted, partitioned by event type.",
	}, []string{"type"})

	// Deadlines counts extracted legal deadlines.
	Deadlines = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lexgraph",
		Name:      "deadlines_total",
		Help:      "Number of legal deadlines extracted.",
	})

	// CalendarSyncFailures counts failed calendar event creations.
	CalendarSyncFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lexgraph",
		Name:      "calendar_sync_failures_total",
		Help:      "Number of calendar sync attempts that failed.",
	})

	// PersistenceFailures counts single-item persistence errors that were
	// logged and skipped.
	PersistenceFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lexgraph",
		Name:      "persistence_failures_total",
		Help:      "Number of per-item persistence failures, partitioned by item kind.",
	}, []string{"kind"})
)
