package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "grocery"

// Merge results reported on SourcesMerged.
const (
	ResultCreated   = "created"
	ResultAppended  = "appended"
	ResultUnchanged = "unchanged"
	ResultSkipped   = "skipped"
)

// Reasons reported on ItemsDeleted.
const (
	ReasonLastSource = "last_source"
	ReasonUser       = "user"
	ReasonClearAll   = "clear_all"
)

var (
	SourcesMerged = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sources_merged_total",
		Help:      "Recipe ingredients merged into grocery lists, by result.",
	}, []string{"result"})

	SourcesRemoved = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sources_removed_total",
		Help:      "Sources retracted from grocery items.",
	})

	ItemsDeleted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "items_deleted_total",
		Help:      "Grocery items deleted, by reason.",
	}, []string{"reason"})

	MergeConflicts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "merge_conflicts_total",
		Help:      "Optimistic concurrency conflicts that forced a re-read.",
	})
)

func init() {
	prometheus.MustRegister(SourcesMerged, SourcesRemoved, ItemsDeleted, MergeConflicts)
}

// Handler serves the default registry in the Prometheus text format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
