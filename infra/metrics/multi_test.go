package metrics

import (
	"testing"

	coremetrics "github.com/kilianp07/rsudist/core/metrics"
)

type recordSink struct {
	count int
}

func (r *recordSink) RecordSchedule(coremetrics.ScheduleEvent) error {
	r.count++
	return nil
}

func (r *recordSink) RecordFailure(coremetrics.FailureEvent) error {
	r.count++
	return nil
}

type scheduleOnly struct{ count int }

func (s *scheduleOnly) RecordSchedule(coremetrics.ScheduleEvent) error {
	s.count++
	return nil
}

func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &recordSink{}
	s3 := &scheduleOnly{}
	m := NewMultiSink(s1, s2, s3)
	if err := m.RecordSchedule(coremetrics.ScheduleEvent{}); err != nil {
		t.Fatalf("record schedule: %v", err)
	}
	if err := m.RecordFailure(coremetrics.FailureEvent{}); err != nil {
		t.Fatalf("record failure: %v", err)
	}
	if s1.count != 2 || s2.count != 2 {
		t.Fatalf("events not forwarded")
	}
	if s3.count != 1 {
		t.Fatalf("expected schedule-only sink to see 1 event got %d", s3.count)
	}
}
