package metrics

import coremetrics "github.com/kilianp07/rsudist/core/metrics"

// MultiSink fanouts schedule events to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSchedule forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordSchedule(ev coremetrics.ScheduleEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordSchedule(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordFailure forwards failures to sinks implementing FailureRecorder.
func (m *MultiSink) RecordFailure(ev coremetrics.FailureEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.FailureRecorder); ok {
			if err := rec.RecordFailure(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
