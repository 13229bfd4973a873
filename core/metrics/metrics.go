package metrics

import "time"

// ScheduleEvent describes one computed RSUDIST result.
type ScheduleEvent struct {
	RunID         string
	Source        string // "cli" or "api"
	Allocation    string
	Timezone      string
	Grants        int
	Distributions int
	Shares        int
	Duration      time.Duration
	Time          time.Time
}

// MetricsSink records computed schedules for observability purposes.
type MetricsSink interface {
	RecordSchedule(ev ScheduleEvent) error
}

// FailureEvent captures a computation aborted by an error.
type FailureEvent struct {
	RunID  string
	Source string
	Reason string // "invalid_argument", "timezone", "empty" or "other"
	Time   time.Time
}

// FailureRecorder records failed computations.
type FailureRecorder interface {
	RecordFailure(ev FailureEvent) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

var _ FailureRecorder = NopSink{}

func (NopSink) RecordSchedule(ScheduleEvent) error { return nil }

func (NopSink) RecordFailure(FailureEvent) error { return nil }
