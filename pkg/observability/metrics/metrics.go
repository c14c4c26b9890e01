// Package metrics records seatplan observability events as Prometheus
// metrics.
//
// A seatplan run is a short-lived batch job, so metrics are not served over
// HTTP. Instead [Hooks.WriteTextfile] writes them in the text exposition
// format for the node_exporter textfile collector:
//
//	m := metrics.New()
//	observability.SetSolverHooks(m)
//	// ... solve ...
//	err := m.WriteTextfile("/var/lib/node_exporter/seatplan.prom")
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/seatplan/pkg/observability"
)

const namespace = "seatplan"

// Hooks implements every observability hook interface on top of a private
// Prometheus registry. It is safe for concurrent use.
type Hooks struct {
	registry *prometheus.Registry

	// RulesTotal counts rules by kind (together, apart) and outcome
	// (accepted or the rejection reason).
	RulesTotal *prometheus.CounterVec

	// SolvesTotal counts finished searches by result (solved, unsolved).
	SolvesTotal *prometheus.CounterVec

	// PlacementsTotal counts tentative placements across all searches.
	PlacementsTotal prometheus.Counter

	// BacktracksTotal counts undone placements across all searches.
	BacktracksTotal prometheus.Counter

	// SolveDurationSeconds measures search duration.
	SolveDurationSeconds prometheus.Histogram

	// GuestsLast records the guest count of the most recent search.
	GuestsLast prometheus.Gauge

	// CacheEventsTotal counts cache events by key type and event (hit, miss, set).
	CacheEventsTotal *prometheus.CounterVec

	// CacheBytesTotal counts bytes written to the cache.
	CacheBytesTotal prometheus.Counter
}

// New creates hooks with all metrics registered on a fresh registry.
func New() *Hooks {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Hooks{
		registry: reg,
		RulesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rules_total",
			Help:      "Rules applied to a rule set, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		SolvesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Finished seating searches, by result.",
		}, []string{"result"}),
		PlacementsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "placements_total",
			Help:      "Tentative guest placements made by the solver.",
		}),
		BacktracksTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backtracks_total",
			Help:      "Placements undone by the solver.",
		}),
		SolveDurationSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Duration of seating searches.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms to ~4.4min
		}),
		GuestsLast: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "guests",
			Help:      "Guests in the most recent search.",
		}),
		CacheEventsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_events_total",
			Help:      "Result cache events, by key type and event.",
		}, []string{"type", "event"}),
		CacheBytesTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the result cache.",
		}),
	}
}

// Registry returns the registry holding the metrics.
func (h *Hooks) Registry() *prometheus.Registry { return h.registry }

// WriteTextfile writes all metrics to path in the text exposition format.
// The file is replaced atomically.
func (h *Hooks) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, h.registry)
}

func (h *Hooks) OnRuleAccepted(kind, _, _ string) {
	h.RulesTotal.WithLabelValues(kind, "accepted").Inc()
}

func (h *Hooks) OnRuleRejected(kind, _, _, reason, _ string) {
	h.RulesTotal.WithLabelValues(kind, reason).Inc()
}

func (h *Hooks) OnSolveStart(guests, _, _ int) {
	h.GuestsLast.Set(float64(guests))
}

func (h *Hooks) OnSolveComplete(solved bool, placements, backtracks int, d time.Duration) {
	result := "unsolved"
	if solved {
		result = "solved"
	}
	h.SolvesTotal.WithLabelValues(result).Inc()
	h.PlacementsTotal.Add(float64(placements))
	h.BacktracksTotal.Add(float64(backtracks))
	h.SolveDurationSeconds.Observe(d.Seconds())
}

func (h *Hooks) OnCacheHit(_ context.Context, keyType string) {
	h.CacheEventsTotal.WithLabelValues(keyType, "hit").Inc()
}

func (h *Hooks) OnCacheMiss(_ context.Context, keyType string) {
	h.CacheEventsTotal.WithLabelValues(keyType, "miss").Inc()
}

func (h *Hooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.CacheEventsTotal.WithLabelValues(keyType, "set").Inc()
	h.CacheBytesTotal.Add(float64(size))
}

var (
	_ observability.RuleHooks   = (*Hooks)(nil)
	_ observability.SolverHooks = (*Hooks)(nil)
	_ observability.CacheHooks  = (*Hooks)(nil)
)
