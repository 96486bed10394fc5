// Package metrics records write-plan outcomes with prometheus collectors
package metrics

import (
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder tracks write-plan statistics for one session
type Recorder struct {
	registry   *prometheus.Registry
	committed  *prometheus.CounterVec
	rolledBack *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	loaded     prometheus.Gauge
	StartTime  time.Time
}

// NewRecorder creates a Recorder with its own registry
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		committed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "poise",
			Name:      "write_plans_committed_total",
			Help:      "Write plans committed, by plan label.",
		}, []string{"plan"}),
		rolledBack: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "poise",
			Name:      "write_plans_rolled_back_total",
			Help:      "Write plans rolled back, by plan label and failure reason.",
		}, []string{"plan", "reason"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "poise",
			Name:      "write_plan_duration_seconds",
			Help:      "Time spent executing a write plan against the store.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"plan"}),
		loaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "poise",
			Name:      "catalog_projects",
			Help:      "Projects held in the in-memory catalog.",
		}),
		StartTime: time.Now(),
	}
	r.registry.MustRegister(r.committed, r.rolledBack, r.duration, r.loaded)
	return r
}

// Registry exposes the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveCommit records a committed plan
func (r *Recorder) ObserveCommit(plan string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.committed.WithLabelValues(plan).Inc()
	r.duration.WithLabelValues(plan).Observe(elapsed.Seconds())
}

// ObserveRollback records a rolled back plan
func (r *Recorder) ObserveRollback(plan, reason string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.rolledBack.WithLabelValues(plan, reason).Inc()
	r.duration.WithLabelValues(plan).Observe(elapsed.Seconds())
}

// SetCatalogSize records the number of projects in the catalog
func (r *Recorder) SetCatalogSize(n int) {
	if r == nil {
		return
	}
	r.loaded.Set(float64(n))
}

// CommittedCounter returns the committed counter for a plan label
func (r *Recorder) CommittedCounter(plan string) prometheus.Counter {
	return r.committed.WithLabelValues(plan)
}

// RolledBackCounter returns the rollback counter for a plan label and reason
func (r *Recorder) RolledBackCounter(plan, reason string) prometheus.Counter {
	return r.rolledBack.WithLabelValues(plan, reason)
}

// Snapshot is a point-in-time summary of the recorder
type Snapshot struct {
	Committed  map[string]float64 `json:"committed"`
	RolledBack map[string]float64 `json:"rolled_back"`
	Uptime     time.Duration      `json:"uptime"`
}

// Snapshot gathers the registry into a flat summary keyed by plan label
// (and "plan/reason" for rollbacks).
func (r *Recorder) Snapshot() (Snapshot, error) {
	snap := Snapshot{
		Committed:  map[string]float64{},
		RolledBack: map[string]float64{},
		Uptime:     time.Since(r.StartTime),
	}
	families, err := r.registry.Gather()
	if err != nil {
		return snap, err
	}
	for _, mf := range families {
		switch mf.GetName() {
		case "poise_write_plans_committed_total":
			for _, m := range mf.GetMetric() {
				snap.Committed[labelValue(m.GetLabel(), "plan")] = m.GetCounter().GetValue()
			}
		case "poise_write_plans_rolled_back_total":
			for _, m := range mf.GetMetric() {
				key := labelValue(m.GetLabel(), "plan") + "/" + labelValue(m.GetLabel(), "reason")
				snap.RolledBack[key] = m.GetCounter().GetValue()
			}
		}
	}
	return snap, nil
}

// Plans returns the sorted plan labels seen in a snapshot
func (s Snapshot) Plans() []string {
	seen := map[string]bool{}
	for k := range s.Committed {
		seen[k] = true
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func labelValue[L interface {
	GetName() string
	GetValue() string
}](labels []L, name string) string {
	for _, l := range labels {
		if l.GetName() == name {
			return l.GetValue()
		}
	}
	return ""
}
