package input

import (
	"errors"
	"fmt"
	"time"

	"github.com/kilianp07/rsudist/core/model"
)

// ErrInvalidArgument is returned when a shares/date pair has no whole
// number of shares.
var ErrInvalidArgument = errors.New("invalid argument(s): must supply a whole number of sharesGranted")

// GrantInput is the resolved shape of an RSUDIST invocation. It is one of
// SharesFirst, DateFirst or Range.
type GrantInput interface {
	grantInput()
}

// SharesFirst is a (shares, date) pair.
type SharesFirst struct {
	Shares Cell
	Date   Cell
}

// DateFirst is a (date, shares) pair.
type DateFirst struct {
	Date   Cell
	Shares Cell
}

// Range is a grid of pairs, one grant per row, in either column order.
type Range struct {
	Rows [][]Cell
}

func (SharesFirst) grantInput() {}
func (DateFirst) grantInput()   {}
func (Range) grantInput()       {}

// Pair resolves the column order of a shares/date pair: whichever cell is a
// whole number holds the shares.
func Pair(a, b Cell) (GrantInput, error) {
	if _, ok := a.WholeNumber(); ok {
		return SharesFirst{Shares: a, Date: b}, nil
	}
	if _, ok := b.WholeNumber(); ok {
		return DateFirst{Date: a, Shares: b}, nil
	}
	return nil, fmt.Errorf("%w: got %s and %s", ErrInvalidArgument, a, b)
}

// FromArgs resolves positional invocation arguments. A single [][]Cell or
// [][]any argument is a Range; exactly two scalar arguments form a pair.
// Any other shape resolves to nil, which Parse turns into no grants.
func FromArgs(args ...any) (GrantInput, error) {
	switch len(args) {
	case 1:
		rows, ok, err := rangeOf(args[0])
		if err != nil || !ok {
			return nil, err
		}
		return Range{Rows: rows}, nil
	case 2:
		if isRange(args[0]) || isRange(args[1]) {
			return nil, nil
		}
		a, err := CellOf(args[0])
		if err != nil {
			return nil, err
		}
		b, err := CellOf(args[1])
		if err != nil {
			return nil, err
		}
		return Pair(a, b)
	default:
		return nil, nil
	}
}

func isRange(v any) bool {
	switch v.(type) {
	case [][]Cell, [][]any:
		return true
	}
	return false
}

func rangeOf(v any) ([][]Cell, bool, error) {
	switch x := v.(type) {
	case [][]Cell:
		return x, true, nil
	case [][]any:
		rows := make([][]Cell, len(x))
		for i, r := range x {
			rows[i] = make([]Cell, len(r))
			for j, raw := range r {
				c, err := CellOf(raw)
				if err != nil {
					return nil, false, fmt.Errorf("row %d column %d: %w", i+1, j+1, err)
				}
				rows[i][j] = c
			}
		}
		return rows, true, nil
	default:
		return nil, false, nil
	}
}

// Parser turns resolved invocation arguments into validated grants.
type Parser struct {
	// Location interprets date strings without a zone. Nil means UTC.
	Location *time.Location
}

// NewParser returns a Parser reading zone-less dates in loc.
func NewParser(loc *time.Location) *Parser {
	return &Parser{Location: loc}
}

// Parse returns the grants described by in. A nil input yields no grants.
// Any invalid pair fails the whole parse.
func (p *Parser) Parse(in GrantInput) ([]model.Grant, error) {
	switch v := in.(type) {
	case nil:
		return []model.Grant{}, nil
	case SharesFirst:
		g, err := p.grant(v.Shares, v.Date)
		if err != nil {
			return nil, err
		}
		return []model.Grant{g}, nil
	case DateFirst:
		g, err := p.grant(v.Shares, v.Date)
		if err != nil {
			return nil, err
		}
		return []model.Grant{g}, nil
	case Range:
		grants := make([]model.Grant, 0, len(v.Rows))
		for i, row := range v.Rows {
			if len(row) < 2 {
				return nil, fmt.Errorf("row %d: %w: expected 2 cells, got %d", i+1, ErrInvalidArgument, len(row))
			}
			pair, err := Pair(row[0], row[1])
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			gs, err := p.Parse(pair)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			grants = append(grants, gs...)
		}
		return grants, nil
	default:
		return nil, fmt.Errorf("unsupported grant input %T", in)
	}
}

// ParseArgs resolves positional arguments with FromArgs and parses them.
func (p *Parser) ParseArgs(args ...any) ([]model.Grant, error) {
	in, err := FromArgs(args...)
	if err != nil {
		return nil, err
	}
	return p.Parse(in)
}

func (p *Parser) grant(sharesCell, dateCell Cell) (model.Grant, error) {
	shares, ok := sharesCell.WholeNumber()
	if !ok {
		return model.Grant{}, fmt.Errorf("%w: got %s", ErrInvalidArgument, sharesCell)
	}
	if shares < 0 {
		return model.Grant{}, fmt.Errorf("%w: shares must not be negative, got %d", ErrInvalidArgument, shares)
	}
	from, err := p.date(dateCell)
	if err != nil {
		return model.Grant{}, err
	}
	return model.Grant{SharesGranted: shares, VestFrom: from}, nil
}

func (p *Parser) date(c Cell) (time.Time, error) {
	switch c.Kind {
	case CellTime:
		return c.Time, nil
	case CellText:
		return ParseDate(c.Text, p.Location)
	default:
		return time.Time{}, fmt.Errorf("cannot read a date from %s cell %s", c.Kind, c)
	}
}
