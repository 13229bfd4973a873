package vesting

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidAllocation is returned when shares cannot be split as requested.
var ErrInvalidAllocation = errors.New("invalid allocation")

// Allocator splits a whole number of shares into per-period quantities.
// Implementations must return exactly periods non-negative integers
// summing to total.
type Allocator interface {
	Allocate(total, periods int) ([]int, error)
}

// Allocation policy names accepted by AllocatorByName.
const (
	AllocationFrontLoaded = "front_loaded"
	AllocationAccrual     = "accrual"
)

// AllocatorByName returns the allocator registered under name. An empty
// name selects FrontLoaded.
func AllocatorByName(name string) (Allocator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", AllocationFrontLoaded:
		return FrontLoaded{}, nil
	case AllocationAccrual:
		return Accrual{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown allocation policy %q", ErrInvalidAllocation, name)
	}
}

func checkAllocation(total, periods int) error {
	if periods <= 0 {
		return fmt.Errorf("%w: periods must be positive, got %d", ErrInvalidAllocation, periods)
	}
	if total < 0 {
		return fmt.Errorf("%w: total must not be negative, got %d", ErrInvalidAllocation, total)
	}
	return nil
}

// FrontLoaded gives every period total/periods shares and hands the
// total%periods leftover shares, one each, to the earliest periods.
type FrontLoaded struct{}

func (FrontLoaded) Allocate(total, periods int) ([]int, error) {
	if err := checkAllocation(total, periods); err != nil {
		return nil, err
	}
	base, leftover := total/periods, total%periods
	out := make([]int, periods)
	for i := range out {
		out[i] = base
		if i < leftover {
			out[i]++
		}
	}
	return out, nil
}

// Accrual carries the fractional share owed each period forward and pays a
// whole extra share once the carried amount reaches one. The carry is kept
// in units of 1/periods so no rounding error can build up.
type Accrual struct{}

func (Accrual) Allocate(total, periods int) ([]int, error) {
	if err := checkAllocation(total, periods); err != nil {
		return nil, err
	}
	base, leftover := total/periods, total%periods
	out := make([]int, periods)
	carry := 0
	for i := range out {
		out[i] = base
		carry += leftover
		if carry >= periods {
			out[i]++
			carry -= periods
		}
	}
	return out, nil
}
