// Package metrics exposes Prometheus collectors fed by engine lifecycle hooks.
package metrics

import (
	"context"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Collectors groups the simulator metrics.
type Collectors struct {
	Runs        *prometheus.CounterVec
	Steps       prometheus.Counter
	StepsPerRun *prometheus.HistogramVec
	Active      prometheus.Gauge
}

// New creates the collectors and registers them on reg.
// A nil reg leaves them unregistered (useful in tests).
func New(reg prometheus.Registerer) (*Collectors, error) {
	c := &Collectors{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turing_runs_total",
				Help: "Total number of finished runs by outcome",
			},
			[]string{"machine", "outcome"},
		),
		Steps: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "turing_steps_total",
				Help: "Total number of transitions applied",
			},
		),
		StepsPerRun: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "turing_steps_per_run",
				Help:    "Transitions applied per run",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"machine"},
		),
		Active: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "turing_runs_active",
				Help: "Runs currently being simulated",
			},
		),
	}

	if reg != nil {
		for _, col := range []prometheus.Collector{c.Runs, c.Steps, c.StepsPerRun, c.Active} {
			if err := reg.Register(col); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

// Hooks returns lifecycle hooks that record every run and step.
func (c *Collectors) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			c.Active.Inc()
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			c.Steps.Inc()
		},
		OnHalt: func(ctx context.Context, e *domain.RunEvent) {
			c.Active.Dec()
			c.Runs.WithLabelValues(e.Machine, string(e.Outcome)).Inc()
			c.StepsPerRun.WithLabelValues(e.Machine).Observe(float64(e.Steps))
		},
	}
}
