package vesting

import (
	"errors"
	"sort"

	"github.com/kilianp07/rsudist/core/model"
)

// ErrEmptySchedule is returned when there is nothing to merge.
var ErrEmptySchedule = errors.New("no distributions to merge")

// Merge combines the schedules of several grants into one schedule sorted
// by date, summing the quantities of distributions vesting on the same
// instant. The inputs are left untouched.
func Merge(schedules ...model.Schedule) (model.Schedule, error) {
	n := 0
	for _, s := range schedules {
		n += len(s)
	}
	if n == 0 {
		return nil, ErrEmptySchedule
	}
	all := make(model.Schedule, 0, n)
	for _, s := range schedules {
		all = append(all, s...)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Date.Before(all[j].Date) })

	merged := make(model.Schedule, 0, len(all))
	for _, d := range all {
		if last := len(merged) - 1; last >= 0 && merged[last].Date.Equal(d.Date) {
			merged[last].Quantity += d.Quantity
			continue
		}
		merged = append(merged, d)
	}
	return merged, nil
}
