package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kilianp07/rsudist/core/input"
	"github.com/kilianp07/rsudist/core/model"
)

// WriteXLSX writes the schedule grid as a workbook. Dates are written as
// date cells so a spreadsheet shows them without a time of day.
func WriteXLSX(w io.Writer, s model.Schedule, opts Options) error {
	opts.SetDefaults()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := opts.SheetName
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	dateFmt := opts.XLSXDateFormat
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	if err != nil {
		return fmt.Errorf("failed to create date style: %w", err)
	}

	row := 1
	if !opts.OmitHeader {
		headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return fmt.Errorf("failed to create header style: %w", err)
		}
		if err := f.SetSheetRow(sheet, "A1", &[]any{header[0], header[1]}); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", "B1", headerStyle); err != nil {
			return err
		}
		row++
	}
	for _, d := range s {
		qCell, _ := excelize.CoordinatesToCellName(1, row)
		dCell, _ := excelize.CoordinatesToCellName(2, row)
		if err := f.SetCellValue(sheet, qCell, d.Quantity); err != nil {
			return fmt.Errorf("failed to set cell value: %w", err)
		}
		if err := f.SetCellValue(sheet, dCell, d.Date); err != nil {
			return fmt.Errorf("failed to set cell value: %w", err)
		}
		if err := f.SetCellStyle(sheet, dCell, dCell, dateStyle); err != nil {
			return err
		}
		row++
	}
	if err := f.SetColWidth(sheet, "A", "B", 12); err != nil {
		return err
	}
	return f.Write(w)
}

// ReadRangeFile opens a workbook and reads a grant range from it.
func ReadRangeFile(path, sheet, ref string, loc *time.Location) ([][]input.Cell, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadRange(f, sheet, ref, loc)
}

// ReadRangeFrom reads a grant range from a workbook stream.
func ReadRangeFrom(r io.Reader, sheet, ref string, loc *time.Location) ([][]input.Cell, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadRange(f, sheet, ref, loc)
}

// ReadRange returns the cells of ref (e.g. "A1:B3") on sheet, one slice per
// row. An empty sheet selects the first worksheet and an empty ref the used
// area of the sheet. Numbers become number cells, date-formatted numbers
// become time cells at the same wall clock in loc, anything else is text.
// Rows with no value at all are skipped.
func ReadRange(f *excelize.File, sheet, ref string, loc *time.Location) ([][]input.Cell, error) {
	if loc == nil {
		loc = time.UTC
	}
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	if ref == "" {
		dim, err := f.GetSheetDimension(sheet)
		if err != nil {
			return nil, fmt.Errorf("sheet %s dimension: %w", sheet, err)
		}
		ref = dim
	}
	coords, err := rangeCoordinates(ref)
	if err != nil {
		return nil, fmt.Errorf("range %s: %w", ref, err)
	}
	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	var rows [][]input.Cell
	for y := coords[1]; y <= coords[3]; y++ {
		row := make([]input.Cell, 0, coords[2]-coords[0]+1)
		blank := true
		for x := coords[0]; x <= coords[2]; x++ {
			name, _ := excelize.CoordinatesToCellName(x, y)
			c, err := readCell(f, sheet, name, loc, date1904)
			if err != nil {
				return nil, fmt.Errorf("cell %s!%s: %w", sheet, name, err)
			}
			if c.Kind != input.CellEmpty {
				blank = false
			}
			row = append(row, c)
		}
		if !blank {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// rangeCoordinates resolves "A1:B3" (or a single cell) to
// [col1, row1, col2, row2] with each axis in ascending order.
func rangeCoordinates(ref string) ([4]int, error) {
	from, to, ok := strings.Cut(strings.TrimSpace(ref), ":")
	if !ok {
		to = from
	}
	c1, r1, err := excelize.CellNameToCoordinates(from)
	if err != nil {
		return [4]int{}, err
	}
	c2, r2, err := excelize.CellNameToCoordinates(to)
	if err != nil {
		return [4]int{}, err
	}
	return [4]int{min(c1, c2), min(r1, r2), max(c1, c2), max(r1, r2)}, nil
}

func readCell(f *excelize.File, sheet, name string, loc *time.Location, date1904 bool) (input.Cell, error) {
	typ, err := f.GetCellType(sheet, name)
	if err != nil {
		return input.Cell{}, err
	}
	raw, err := f.GetCellValue(sheet, name, excelize.Options{RawCellValue: true})
	if err != nil {
		return input.Cell{}, err
	}
	if strings.TrimSpace(raw) == "" {
		return input.Cell{}, nil
	}
	switch typ {
	case excelize.CellTypeDate:
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return input.Text(raw), nil
		}
		return input.Date(wallClockIn(t, loc)), nil
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return input.Text(raw), nil
		}
		isDate, err := hasDateFormat(f, sheet, name)
		if err != nil {
			return input.Cell{}, err
		}
		if !isDate {
			return input.Number(n), nil
		}
		t, err := excelize.ExcelDateToTime(n, date1904)
		if err != nil {
			return input.Cell{}, err
		}
		return input.Date(wallClockIn(t, loc)), nil
	default:
		return input.Text(raw), nil
	}
}

// wallClockIn reinterprets the wall clock of t in loc. Spreadsheet dates
// carry no zone.
func wallClockIn(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc)
}

// builtinDateFormats lists the built-in number format IDs that render dates.
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true, 50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

func hasDateFormat(f *excelize.File, sheet, name string) (bool, error) {
	idx, err := f.GetCellStyle(sheet, name)
	if err != nil || idx == 0 {
		return false, err
	}
	style, err := f.GetStyle(idx)
	if err != nil {
		return false, err
	}
	if style.CustomNumFmt != nil {
		return looksLikeDateFormat(*style.CustomNumFmt), nil
	}
	return builtinDateFormats[style.NumFmt], nil
}

func looksLikeDateFormat(code string) bool {
	inQuote := false
	for _, r := range strings.ToLower(code) {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == 'y' || r == 'd':
			return true
		}
	}
	return false
}
