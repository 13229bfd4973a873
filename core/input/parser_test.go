package input

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jan1 = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func TestParseArgs_TwoScalarsEitherOrder(t *testing.T) {
	p := NewParser(time.UTC)
	cases := []struct {
		name string
		args []any
	}{
		{"shares first string date", []any{16, "1/1/2020"}},
		{"date first string date", []any{"2020-01-01", 16}},
		{"shares first time", []any{16, jan1}},
		{"date first time", []any{jan1, float64(16)}},
	}
	for _, c := range cases {
		grants, err := p.ParseArgs(c.args...)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if len(grants) != 1 {
			t.Fatalf("%s: expected 1 grant got %d", c.name, len(grants))
		}
		if grants[0].SharesGranted != 16 || !grants[0].VestFrom.Equal(jan1) {
			t.Fatalf("%s: unexpected grant %+v", c.name, grants[0])
		}
	}
}

func TestParseArgs_Range(t *testing.T) {
	p := NewParser(time.UTC)
	rows := [][]any{
		{16, "2020-01-01"},
		{"2021-06-15", 100},
		{jan1, 3.0},
	}
	grants, err := p.ParseArgs(rows)
	require.NoError(t, err)
	require.Len(t, grants, 3)
	assert.Equal(t, 16, grants[0].SharesGranted)
	assert.Equal(t, 100, grants[1].SharesGranted)
	assert.True(t, grants[1].VestFrom.Equal(time.Date(2021, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 3, grants[2].SharesGranted)
}

func TestParseArgs_InvalidArgument(t *testing.T) {
	p := NewParser(time.UTC)
	grants, err := p.ParseArgs("2020-01-01", "sixteen")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Nil(t, grants)

	grants, err = p.ParseArgs(16.5, "2020-01-01")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Nil(t, grants)

	// one bad row fails the whole range
	grants, err = p.ParseArgs([][]Cell{
		{Int(16), Text("2020-01-01")},
		{Text("x"), Text("2020-01-01")},
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Nil(t, grants)

	_, err = p.ParseArgs([][]Cell{{Int(16)}})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = p.ParseArgs(-5, "2020-01-01")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestParseArgs_UnrecognizedShapeIsEmpty(t *testing.T) {
	p := NewParser(time.UTC)
	for _, args := range [][]any{
		nil,
		{16},
		{16, "2020-01-01", "extra"},
		{[][]any{{16, "2020-01-01"}}, 3},
	} {
		grants, err := p.ParseArgs(args...)
		require.NoError(t, err)
		assert.Empty(t, grants)
	}
}

func TestParseArgs_BadDateString(t *testing.T) {
	_, err := NewParser(time.UTC).ParseArgs(16, "not a date")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidArgument))
}

func TestParseDateLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	d, err := ParseDate("3/15/2021", loc)
	require.NoError(t, err)
	assert.Equal(t, loc, d.Location())
	assert.Equal(t, 15, d.Day())

	d, err = ParseDate("2021-03-15T10:00:00Z", loc)
	require.NoError(t, err)
	assert.True(t, d.Equal(time.Date(2021, 3, 15, 10, 0, 0, 0, time.UTC)))
}

func TestCellOfJSON(t *testing.T) {
	var raw [][]any
	require.NoError(t, json.Unmarshal([]byte(`[[16, "2020-01-01"], ["2020-01-01", 32]]`), &raw))
	in, err := FromArgs(raw)
	require.NoError(t, err)
	r, ok := in.(Range)
	require.True(t, ok)
	n, whole := r.Rows[1][1].WholeNumber()
	assert.True(t, whole)
	assert.Equal(t, 32, n)

	_, err = CellOf(struct{}{})
	assert.Error(t, err)
}

func TestPairResolvesVariant(t *testing.T) {
	in, err := Pair(Int(4), Text("2020-01-01"))
	require.NoError(t, err)
	assert.IsType(t, SharesFirst{}, in)
	in, err = Pair(Text("2020-01-01"), Int(4))
	require.NoError(t, err)
	assert.IsType(t, DateFirst{}, in)
}
