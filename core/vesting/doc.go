// Package vesting computes RSU distribution schedules. A grant vests in 16
// quarterly events; DateOfPeriod places each event on local midnight of the
// 1st of its month, an Allocator splits the granted shares into whole
// per-period quantities, Builder combines both for one grant and Merge sums
// several grants' schedules by date.
package vesting
