package observability

import (
	"context"
	"errors"

	"github.com/aretw0/reel/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors updated by lifecycle hooks.
type Metrics struct {
	Started   *prometheus.CounterVec
	Ended     *prometheus.CounterVec
	Cancelled *prometheus.CounterVec
	Duration  *prometheus.HistogramVec
	Animated  prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// Collectors already registered (e.g. by a previous server in the same process) are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Started: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reel_animations_started_total",
				Help: "Total number of animation sessions started",
			},
			[]string{"mode", "trigger"},
		),
		Ended: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reel_animations_ended_total",
				Help: "Total number of animation sessions that ran to their end",
			},
			[]string{"mode", "outcome"},
		),
		Cancelled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reel_animations_cancelled_total",
				Help: "Total number of animation sessions superseded by a newer one",
			},
			[]string{"mode"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "reel_animation_duration_seconds",
				Help:    "Planned total duration of animation sessions",
				Buckets: []float64{0, 0.1, 0.25, 0.5, 0.7, 1, 2, 5, 10},
			},
			[]string{"mode"},
		),
		Animated: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "reel_animated_slots",
				Help:    "Number of animating slots per session",
				Buckets: prometheus.LinearBuckets(0, 2, 10),
			},
		),
	}

	var err error
	m.Started, err = register(reg, m.Started)
	if err != nil {
		return nil, err
	}
	m.Ended, err = register(reg, m.Ended)
	if err != nil {
		return nil, err
	}
	m.Cancelled, err = register(reg, m.Cancelled)
	if err != nil {
		return nil, err
	}
	m.Duration, err = register(reg, m.Duration)
	if err != nil {
		return nil, err
	}
	m.Animated, err = register(reg, m.Animated)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// Hooks returns lifecycle hooks that record every animation event.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnAnimationStart: func(_ context.Context, e *domain.AnimationEvent) {
			trigger := "value"
			if e.Manual {
				trigger = "manual"
			}
			m.Started.WithLabelValues(string(e.Mode), trigger).Inc()
			m.Duration.WithLabelValues(string(e.Mode)).Observe(e.TotalDuration.Seconds())
			m.Animated.Observe(float64(e.Animated))
		},
		OnAnimationEnd: func(_ context.Context, e *domain.AnimationEvent) {
			outcome := "completed"
			if e.Stopped {
				outcome = "stopped"
			}
			m.Ended.WithLabelValues(string(e.Mode), outcome).Inc()
		},
		OnAnimationCancel: func(_ context.Context, e *domain.AnimationEvent) {
			m.Cancelled.WithLabelValues(string(e.Mode)).Inc()
		},
	}
}
