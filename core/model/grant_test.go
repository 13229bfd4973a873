package model

import (
	"testing"
	"time"
)

func TestGrantValidate(t *testing.T) {
	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := (Grant{SharesGranted: 16, VestFrom: from}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (Grant{SharesGranted: -1, VestFrom: from}).Validate(); err == nil {
		t.Fatalf("expected error for negative shares")
	}
	if err := (Grant{SharesGranted: 1}).Validate(); err == nil {
		t.Fatalf("expected error for missing date")
	}
}

func TestScheduleTotalAndRows(t *testing.T) {
	d1 := time.Date(2020, 4, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2020, 7, 1, 0, 0, 0, 0, time.UTC)
	s := Schedule{{Quantity: 3, Date: d1}, {Quantity: 4, Date: d2}}
	if s.Total() != 7 {
		t.Fatalf("expected 7 got %d", s.Total())
	}
	rows := s.Rows()
	if len(rows) != 2 || rows[1][0] != 4 || rows[1][1] != d2 {
		t.Fatalf("unexpected rows %#v", rows)
	}
}
