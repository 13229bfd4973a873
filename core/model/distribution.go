package model

import "time"

// Distribution is a vesting event: Quantity RSUs vest on Date.
// Date is local midnight in the timezone the schedule was computed for.
type Distribution struct {
	Quantity int       `json:"quantity"`
	Date     time.Time `json:"date"`
}

// Schedule is an ordered list of distributions.
type Schedule []Distribution

// Total returns the sum of all quantities.
func (s Schedule) Total() int {
	total := 0
	for _, d := range s {
		total += d.Quantity
	}
	return total
}

// Rows translates the schedule into a grid of [quantity, date] pairs, the
// shape a spreadsheet custom function returns.
func (s Schedule) Rows() [][2]any {
	rows := make([][2]any, len(s))
	for i, d := range s {
		rows[i] = [2]any{d.Quantity, d.Date}
	}
	return rows
}
