package model

import (
	"fmt"
	"time"
)

// Periods is the number of quarterly vesting events of a grant (4 years).
const Periods = 16

// MonthsPerPeriod is the spacing between two vesting events.
const MonthsPerPeriod = 3

// Grant is an amount of equity that vests over Periods quarters starting
// on VestFrom.
type Grant struct {
	SharesGranted int       // total number of RSUs over 4 years
	VestFrom      time.Time // date the RSUs start vesting
}

// Validate checks that the grant can be scheduled.
func (g Grant) Validate() error {
	if g.SharesGranted < 0 {
		return fmt.Errorf("shares granted must not be negative, got %d", g.SharesGranted)
	}
	if g.VestFrom.IsZero() {
		return fmt.Errorf("vest from date is required")
	}
	return nil
}

// String returns a human-readable representation of the grant.
func (g Grant) String() string {
	return fmt.Sprintf("%d shares from %s", g.SharesGranted, g.VestFrom.Format("2006-01-02"))
}
