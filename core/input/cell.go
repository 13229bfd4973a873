package input

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// CellKind identifies the value held by a Cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellNumber
	CellText
	CellTime
)

// String returns a human-readable representation of the kind.
func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellNumber:
		return "number"
	case CellText:
		return "text"
	case CellTime:
		return "time"
	default:
		return "unknown"
	}
}

// Cell is a single spreadsheet-like argument value.
type Cell struct {
	Kind   CellKind
	Number float64
	Text   string
	Time   time.Time
}

// Int returns a number cell holding n.
func Int(n int) Cell { return Cell{Kind: CellNumber, Number: float64(n)} }

// Number returns a number cell holding f.
func Number(f float64) Cell { return Cell{Kind: CellNumber, Number: f} }

// Text returns a text cell holding s.
func Text(s string) Cell { return Cell{Kind: CellText, Text: s} }

// Date returns a time cell holding t.
func Date(t time.Time) Cell { return Cell{Kind: CellTime, Time: t} }

// CellOf converts a Go value into a Cell. Supported values are Cell, the
// integer and float types, json.Number, string, time.Time and nil.
func CellOf(v any) (Cell, error) {
	switch x := v.(type) {
	case nil:
		return Cell{}, nil
	case Cell:
		return x, nil
	case int:
		return Int(x), nil
	case int32:
		return Int(int(x)), nil
	case int64:
		return Number(float64(x)), nil
	case float32:
		return Number(float64(x)), nil
	case float64:
		return Number(x), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return Cell{}, fmt.Errorf("number %q: %w", x.String(), err)
		}
		return Number(f), nil
	case string:
		return Text(x), nil
	case time.Time:
		return Date(x), nil
	default:
		return Cell{}, fmt.Errorf("unsupported cell value of type %T", v)
	}
}

// WholeNumber reports whether the cell holds an integral number and returns
// it. Spreadsheets store every number as a float, so 16.0 counts.
func (c Cell) WholeNumber() (int, bool) {
	if c.Kind != CellNumber {
		return 0, false
	}
	f := c.Number
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

// String renders the cell value.
func (c Cell) String() string {
	switch c.Kind {
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellText:
		return strconv.Quote(c.Text)
	case CellTime:
		return c.Time.Format(time.RFC3339)
	default:
		return "<empty>"
	}
}
