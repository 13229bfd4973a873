package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/rsudist/core/metrics"
)

// PromSink records schedule computations in Prometheus metrics.
type PromSink struct {
	schedules *prometheus.CounterVec
	grants    *prometheus.CounterVec
	shares    *prometheus.CounterVec
	failures  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewPromSink registers schedule metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (*PromSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	schedules, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rsudist_schedules_total",
		Help: "Total number of computed distribution schedules",
	}, []string{"source", "allocation"}))
	if err != nil {
		return nil, err
	}
	grants, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rsudist_grants_total",
		Help: "Total number of grants scheduled",
	}, []string{"source"}))
	if err != nil {
		return nil, err
	}
	shares, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rsudist_shares_scheduled_total",
		Help: "Total number of shares distributed across schedules",
	}, []string{"source"}))
	if err != nil {
		return nil, err
	}
	failures, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rsudist_failures_total",
		Help: "Total number of aborted schedule computations",
	}, []string{"source", "reason"}))
	if err != nil {
		return nil, err
	}
	duration, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rsudist_compute_duration_seconds",
		Help:    "Time spent computing a schedule",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
	}, []string{"source"}))
	if err != nil {
		return nil, err
	}
	return &PromSink{schedules: schedules, grants: grants, shares: shares, failures: failures, duration: duration}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, err
	}
	return c, nil
}

// RecordSchedule updates the counters for a computed schedule.
func (s *PromSink) RecordSchedule(ev coremetrics.ScheduleEvent) error {
	s.schedules.WithLabelValues(ev.Source, ev.Allocation).Inc()
	s.grants.WithLabelValues(ev.Source).Add(float64(ev.Grants))
	s.shares.WithLabelValues(ev.Source).Add(float64(ev.Shares))
	s.duration.WithLabelValues(ev.Source).Observe(ev.Duration.Seconds())
	return nil
}

// RecordFailure increments the failure counter.
func (s *PromSink) RecordFailure(ev coremetrics.FailureEvent) error {
	s.failures.WithLabelValues(ev.Source, ev.Reason).Inc()
	return nil
}
