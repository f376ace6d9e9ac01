package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/go-drift/weft/pkg/core"
)

const metricsNamespace = "weft"

// metrics holds the Prometheus collectors for one App. A nil *metrics
// records nothing.
type metrics struct {
	frames       prometheus.Counter
	passes       prometheus.Counter
	actions      prometheus.Counter
	events       *prometheus.CounterVec
	churn        *prometheus.CounterVec
	frameSeconds prometheus.Histogram
	nonConverged prometheus.Counter
	nodes        prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	if reg == nil {
		return nil
	}
	factory := promauto.With(reg)
	return &metrics{
		frames: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "frames_total",
			Help:      "Total number of dispatches handled",
		}),
		passes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "build_passes_total",
			Help:      "Total number of build passes run",
		}),
		actions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "actions_total",
			Help:      "Total number of actions returned to the description",
		}),
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "events_total",
			Help:      "Total number of platform events by type",
		}, []string{"type"}),
		churn: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "tree_churn_total",
			Help:      "Retained entries created, updated and pruned by reconciliation",
		}, []string{"entry", "op"}),
		frameSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "frame_duration_seconds",
			Help:      "Time spent handling one dispatch",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .0167, .025, .05, .1},
		}),
		nonConverged: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "convergence_failures_total",
			Help:      "Dispatches whose build loop hit the pass limit",
		}),
		nodes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "tree_nodes",
			Help:      "Structural nodes in the tree after the last dispatch",
		}),
	}
}

func (m *metrics) observe(s FrameStats, nodes int) {
	if m == nil {
		return
	}
	m.frames.Inc()
	m.passes.Add(float64(s.Build.Passes))
	m.actions.Add(float64(s.Build.ActionsConsumed))
	m.frameSeconds.Observe(s.FrameMs / 1000)
	m.nodes.Set(float64(nodes))
	if !s.Converged {
		m.nonConverged.Inc()
	}
	addChurn(m.churn, s.Build)
}

func addChurn(vec *prometheus.CounterVec, b core.BuildStats) {
	for _, c := range []struct {
		entry, op string
		n         int
	}{
		{"node", "created", b.NodesCreated},
		{"node", "updated", b.NodesUpdated},
		{"node", "pruned", b.NodesPruned},
		{"state", "created", b.StatesCreated},
		{"state", "pruned", b.StatesPruned},
	} {
		if c.n > 0 {
			vec.WithLabelValues(c.entry, c.op).Add(float64(c.n))
		}
	}
}

func (m *metrics) event(kind string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(kind).Inc()
}
