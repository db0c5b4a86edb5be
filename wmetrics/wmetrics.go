// Package wmetrics exposes Prometheus instrumentation for the hydraulic and
// water-quality engines, grounded on the gateway-svc metrics package of a
// network-logistics service. A nil *Registry is a valid, fully inert value
// (every method is a no-op), so embedding the core never forces a metrics
// dependency on a host that doesn't want one.
package wmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds the counters/gauges/histograms the solver and WQ engine
// update as they run.
type Registry struct {
	NewtonIterations   prometheus.Histogram
	StatusChangeCycles prometheus.Histogram
	UnbalancedSteps    prometheus.Counter
	SingularPivots     prometheus.Counter
	TankFillEvents     prometheus.Counter
	TankDrainEvents    prometheus.Counter
	WQMassBalanceRatio prometheus.Gauge
	RuleConflicts      prometheus.Counter
}

// NewRegistry creates and registers a fresh Registry against reg. Pass
// prometheus.NewRegistry() for an isolated registry per Project, since
// multiple projects may run concurrently.
func NewRegistry(reg prometheus.Registerer) *Registry {
	r := &Registry{
		NewtonIterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "waternet_newton_iterations",
			Help:    "Newton iterations spent per hydraulic solve.",
			Buckets: prometheus.LinearBuckets(0, 2, 20),
		}),
		StatusChangeCycles: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "waternet_status_change_cycles",
			Help:    "Outer status-change cycles spent per hydraulic solve.",
			Buckets: prometheus.LinearBuckets(0, 1, 10),
		}),
		UnbalancedSteps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "waternet_unbalanced_steps_total",
			Help: "Hydraulic steps that failed to converge within MaxIter.",
		}),
		SingularPivots: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "waternet_singular_pivots_total",
			Help: "Non-positive Cholesky pivots encountered.",
		}),
		TankFillEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "waternet_tank_fill_events_total",
			Help: "Times a tank reached its maximum level.",
		}),
		TankDrainEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "waternet_tank_drain_events_total",
			Help: "Times a tank reached its minimum level.",
		}),
		WQMassBalanceRatio: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "waternet_wq_mass_balance_ratio",
			Help: "Water-quality mass balance ratio (should approach 1.0).",
		}),
		RuleConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "waternet_rule_conflicts_total",
			Help: "Rule actions discarded in favor of a higher-priority rule targeting the same link.",
		}),
	}
	if reg != nil {
		reg.MustRegister(r.NewtonIterations, r.StatusChangeCycles, r.UnbalancedSteps,
			r.SingularPivots, r.TankFillEvents, r.TankDrainEvents, r.WQMassBalanceRatio, r.RuleConflicts)
	}
	return r
}

func (r *Registry) observeNewton(n int) {
	if r == nil {
		return
	}
	r.NewtonIterations.Observe(float64(n))
}

// ObserveSolve records one hydraulic solve's iteration/cycle counts.
func (r *Registry) ObserveSolve(iterations, statusCycles int, unbalanced bool) {
	if r == nil {
		return
	}
	r.observeNewton(iterations)
	r.StatusChangeCycles.Observe(float64(statusCycles))
	if unbalanced {
		r.UnbalancedSteps.Inc()
	}
}

func (r *Registry) IncSingularPivot() {
	if r != nil {
		r.SingularPivots.Inc()
	}
}

func (r *Registry) IncTankFill() {
	if r != nil {
		r.TankFillEvents.Inc()
	}
}

func (r *Registry) IncTankDrain() {
	if r != nil {
		r.TankDrainEvents.Inc()
	}
}

func (r *Registry) SetWQBalanceRatio(v float64) {
	if r != nil {
		r.WQMassBalanceRatio.Set(v)
	}
}

func (r *Registry) IncRuleConflict() {
	if r != nil {
		r.RuleConflicts.Inc()
	}
}
