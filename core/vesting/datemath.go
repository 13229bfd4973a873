package vesting

import (
	"fmt"
	"strings"
	"time"

	"github.com/kilianp07/rsudist/core/model"
)

// LoadLocation resolves an IANA timezone identifier such as
// "America/New_York". An empty name resolves to UTC. "Local" is rejected:
// the result must not depend on the host.
func LoadLocation(name string) (*time.Location, error) {
	if strings.EqualFold(strings.TrimSpace(name), "local") {
		return nil, fmt.Errorf("load timezone %q: host timezone is not allowed, name an IANA zone", name)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}

// DateOfPeriod returns the instant at which vesting period number period
// (1..16) occurs for a grant that started vesting in startMonth of
// startYear. The result is midnight on the 1st of the vesting month in loc.
//
// Period i lands 3*i months after the start month. Month 12 stays in its
// own year instead of rolling over to month 0 of the next one.
func DateOfPeriod(startMonth time.Month, startYear, period int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	months := int(startMonth) + period*model.MonthsPerPeriod
	yearsAhead := months / 12
	if months%12 == 0 {
		yearsAhead--
	}
	month := (int(startMonth)+(period%4)*model.MonthsPerPeriod-1)%12 + 1
	return time.Date(startYear+yearsAhead, time.Month(month), 1, 0, 0, 0, 0, loc)
}
