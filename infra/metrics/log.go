package metrics

import (
	coremetrics "github.com/kilianp07/rsudist/core/metrics"
	"github.com/kilianp07/rsudist/infra/logger"
)

// LogSink writes metrics events as structured log lines.
type LogSink struct {
	log logger.Logger
}

// NewLogSink creates a LogSink. A nil logger discards events.
func NewLogSink(log logger.Logger) *LogSink {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &LogSink{log: log}
}

func (s *LogSink) RecordSchedule(ev coremetrics.ScheduleEvent) error {
	s.log.Infow("schedule", map[string]any{
		"run_id":        ev.RunID,
		"source":        ev.Source,
		"allocation":    ev.Allocation,
		"timezone":      ev.Timezone,
		"grants":        ev.Grants,
		"distributions": ev.Distributions,
		"shares":        ev.Shares,
		"duration_ms":   ev.Duration.Milliseconds(),
	})
	return nil
}

func (s *LogSink) RecordFailure(ev coremetrics.FailureEvent) error {
	s.log.Warnw("schedule failure", map[string]any{
		"run_id": ev.RunID,
		"source": ev.Source,
		"reason": ev.Reason,
	})
	return nil
}
