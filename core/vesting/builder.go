package vesting

import (
	"fmt"
	"time"

	"github.com/kilianp07/rsudist/core/model"
)

// Builder creates the vesting schedule of a single grant.
type Builder struct {
	// Location defines local midnight for every vesting date. Nil means UTC.
	Location *time.Location
	// Allocator splits the granted shares. Nil means FrontLoaded.
	Allocator Allocator
}

// NewBuilder returns a Builder for the given timezone and allocator.
func NewBuilder(loc *time.Location, alloc Allocator) *Builder {
	return &Builder{Location: loc, Allocator: alloc}
}

// Build returns the model.Periods distributions of g in period order.
func (b *Builder) Build(g model.Grant) (model.Schedule, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("grant %s: %w", g, err)
	}
	loc := b.Location
	if loc == nil {
		loc = time.UTC
	}
	alloc := b.Allocator
	if alloc == nil {
		alloc = FrontLoaded{}
	}
	quantities, err := alloc.Allocate(g.SharesGranted, model.Periods)
	if err != nil {
		return nil, err
	}
	if len(quantities) != model.Periods {
		return nil, fmt.Errorf("%w: got %d quantities for %d periods", ErrInvalidAllocation, len(quantities), model.Periods)
	}
	start := g.VestFrom.In(loc)
	sched := make(model.Schedule, model.Periods)
	for i := range sched {
		sched[i] = model.Distribution{
			Quantity: quantities[i],
			Date:     DateOfPeriod(start.Month(), start.Year(), i+1, loc),
		}
	}
	return sched, nil
}

// BuildAll builds one schedule per grant, in grant order.
func (b *Builder) BuildAll(grants []model.Grant) ([]model.Schedule, error) {
	out := make([]model.Schedule, 0, len(grants))
	for _, g := range grants {
		s, err := b.Build(g)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
