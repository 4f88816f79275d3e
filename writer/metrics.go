package writer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mGraphsWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rdfwriter_graphs_written_total",
		Help: "Number of graph blocks written to a sink.",
	}, []string{"syntax"})
	mGraphFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rdfwriter_graph_failures_total",
		Help: "Number of graphs that failed to render or write.",
	}, []string{"syntax"})
	mRenderSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "rdfwriter_render_seconds",
		Help: "Time to render a single graph into its private buffer.",
	}, []string{"syntax"})
	mFlushBytes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rdfwriter_flush_bytes",
		Help:    "Size of graph blocks flushed to the sink.",
		Buckets: prometheus.ExponentialBuckets(64, 4, 10),
	}, []string{"syntax"})
	mSinkWaitSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "rdfwriter_sink_wait_seconds",
		Help: "Time a worker waited for exclusive access to the sink.",
	}, []string{"syntax"})

	mEmissionMode = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rdfwriter_emission_mode_total",
		Help: "Number of graphs emitted in each mode.",
	}, []string{"mode"})
	mCollections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rdfwriter_collections_total",
		Help: "Number of collections that survived analysis.",
	})
)
