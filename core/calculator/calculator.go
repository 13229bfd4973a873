package calculator

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/rsudist/core/input"
	"github.com/kilianp07/rsudist/core/logger"
	coremetrics "github.com/kilianp07/rsudist/core/metrics"
	"github.com/kilianp07/rsudist/core/model"
	"github.com/kilianp07/rsudist/core/vesting"
)

// ErrTimezone wraps timezone resolution failures.
var ErrTimezone = errors.New("timezone")

// Config defines the calculator defaults.
type Config struct {
	Timezone   string
	Allocation string
}

// Request is one RSUDIST invocation.
type Request struct {
	// RunID identifies the computation in logs and metrics. Generated when empty.
	RunID string
	// Source tags metrics, e.g. "cli" or "api".
	Source string
	// Timezone overrides the configured timezone when non-empty.
	Timezone string
	// Args are the raw positional arguments resolved by input.FromArgs.
	// Ignored when Input is set.
	Args []any
	// Input is an already resolved invocation shape.
	Input input.GrantInput
}

// Result is the outcome of a computation.
type Result struct {
	RunID    string
	Timezone string
	Grants   []model.Grant
	Schedule model.Schedule
}

// Calculator turns RSUDIST arguments into a distribution schedule: it
// parses the grants, builds one schedule per grant and merges them when
// there is more than one. It holds no mutable state.
type Calculator struct {
	timezone   string
	loc        *time.Location
	allocation string
	alloc      vesting.Allocator
	log        logger.Logger
	sink       coremetrics.MetricsSink
}

// New validates cfg and returns a Calculator. A nil log or sink discards
// output.
func New(cfg Config, log logger.Logger, sink coremetrics.MetricsSink) (*Calculator, error) {
	if cfg.Timezone == "" {
		cfg.Timezone = "UTC"
	}
	if cfg.Allocation == "" {
		cfg.Allocation = vesting.AllocationFrontLoaded
	}
	loc, err := vesting.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTimezone, err)
	}
	alloc, err := vesting.AllocatorByName(cfg.Allocation)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop{}
	}
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	return &Calculator{
		timezone:   cfg.Timezone,
		loc:        loc,
		allocation: cfg.Allocation,
		alloc:      alloc,
		log:        log,
		sink:       sink,
	}, nil
}

// Calculate runs one invocation. Argument shapes that match no known
// invocation yield an empty schedule and no error.
func (c *Calculator) Calculate(req Request) (Result, error) {
	start := time.Now()
	if req.RunID == "" {
		req.RunID = uuid.NewString()
	}
	log := c.log.With(map[string]any{"run_id": req.RunID, "source": req.Source})
	res := Result{RunID: req.RunID, Timezone: c.timezone}

	loc := c.loc
	if req.Timezone != "" && req.Timezone != c.timezone {
		l, err := vesting.LoadLocation(req.Timezone)
		if err != nil {
			return res, c.fail(log, req, fmt.Errorf("%w: %w", ErrTimezone, err))
		}
		loc, res.Timezone = l, req.Timezone
	}

	in := req.Input
	if in == nil {
		var err error
		if in, err = input.FromArgs(req.Args...); err != nil {
			return res, c.fail(log, req, err)
		}
	}
	grants, err := input.NewParser(loc).Parse(in)
	if err != nil {
		return res, c.fail(log, req, err)
	}
	res.Grants = grants
	if len(grants) == 0 {
		log.Warnf("no grants recognized in %d argument(s)", len(req.Args))
		res.Schedule = model.Schedule{}
		return res, nil
	}

	schedules, err := vesting.NewBuilder(loc, c.alloc).BuildAll(grants)
	if err != nil {
		return res, c.fail(log, req, err)
	}
	if len(schedules) == 1 {
		res.Schedule = schedules[0]
	} else if res.Schedule, err = vesting.Merge(schedules...); err != nil {
		return res, c.fail(log, req, err)
	}

	ev := coremetrics.ScheduleEvent{
		RunID:         req.RunID,
		Source:        req.Source,
		Allocation:    c.allocation,
		Timezone:      res.Timezone,
		Grants:        len(grants),
		Distributions: len(res.Schedule),
		Shares:        res.Schedule.Total(),
		Duration:      time.Since(start),
		Time:          time.Now(),
	}
	if err := c.sink.RecordSchedule(ev); err != nil {
		log.Errorf("record schedule metrics: %v", err)
	}
	log.Debugw("schedule computed", map[string]any{
		"grants":        ev.Grants,
		"distributions": ev.Distributions,
		"shares":        ev.Shares,
		"timezone":      ev.Timezone,
	})
	return res, nil
}

func (c *Calculator) fail(log logger.Logger, req Request, err error) error {
	if rec, ok := c.sink.(coremetrics.FailureRecorder); ok {
		ev := coremetrics.FailureEvent{RunID: req.RunID, Source: req.Source, Reason: Reason(err), Time: time.Now()}
		if rerr := rec.RecordFailure(ev); rerr != nil {
			log.Errorf("record failure metrics: %v", rerr)
		}
	}
	log.Warnf("computation failed: %v", err)
	return err
}

// Reason classifies an error returned by Calculate for metrics and HTTP
// status mapping.
func Reason(err error) string {
	switch {
	case errors.Is(err, input.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrTimezone):
		return "timezone"
	case errors.Is(err, vesting.ErrEmptySchedule):
		return "empty"
	default:
		return "other"
	}
}
