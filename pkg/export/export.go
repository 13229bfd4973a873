package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kilianp07/rsudist/core/model"
)

// Format selects how a schedule is rendered.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatXLSX  Format = "xlsx"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatJSON, FormatCSV, FormatXLSX:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
}

// Options configures rendering.
type Options struct {
	// SheetName is the worksheet written by WriteXLSX.
	SheetName string `json:"sheet_name"`
	// DateLayout is the Go layout used by the text formats.
	DateLayout string `json:"date_layout"`
	// XLSXDateFormat is the number format applied to date cells.
	XLSXDateFormat string `json:"xlsx_date_format"`
	// OmitHeader drops the header row of CSV, table and XLSX output.
	OmitHeader bool `json:"omit_header"`
}

// SetDefaults applies sane defaults.
func (o *Options) SetDefaults() {
	if o.SheetName == "" {
		o.SheetName = "RSUDIST"
	}
	if o.DateLayout == "" {
		o.DateLayout = "2006-01-02"
	}
	if o.XLSXDateFormat == "" {
		o.XLSXDateFormat = "yyyy-mm-dd"
	}
}

var header = []string{"quantity", "date"}

// Write renders the schedule in the given format.
func Write(w io.Writer, f Format, s model.Schedule, opts Options) error {
	opts.SetDefaults()
	switch f {
	case FormatJSON:
		return WriteJSON(w, s, opts)
	case FormatCSV:
		return WriteCSV(w, s, opts)
	case FormatXLSX:
		return WriteXLSX(w, s, opts)
	case FormatTable, "":
		return WriteTable(w, s, opts)
	default:
		return fmt.Errorf("unsupported output format: %s", f)
	}
}

// Rows returns the schedule as [quantity, date] pairs with formatted dates.
func Rows(s model.Schedule, layout string) [][2]any {
	if layout == "" {
		layout = "2006-01-02"
	}
	rows := make([][2]any, len(s))
	for i, d := range s {
		rows[i] = [2]any{d.Quantity, d.Date.Format(layout)}
	}
	return rows
}

// WriteJSON writes the schedule grid to w in JSON format.
func WriteJSON(w io.Writer, s model.Schedule, opts Options) error {
	enc := json.NewEncoder(w)
	return enc.Encode(Rows(s, opts.DateLayout))
}

// WriteCSV writes the schedule grid to w in CSV format.
func WriteCSV(w io.Writer, s model.Schedule, opts Options) error {
	cw := csv.NewWriter(w)
	if !opts.OmitHeader {
		if err := cw.Write(header); err != nil {
			return err
		}
	}
	for _, d := range s {
		rec := []string{strconv.Itoa(d.Quantity), d.Date.Format(opts.DateLayout)}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTable writes an aligned, human-readable table. Quantities are right
// aligned; styling is dropped when w is not a terminal.
func WriteTable(w io.Writer, s model.Schedule, opts Options) error {
	r := lipgloss.NewRenderer(w)
	cells := make([][2]string, 0, len(s))
	for _, d := range s {
		cells = append(cells, [2]string{strconv.Itoa(d.Quantity), d.Date.Format(opts.DateLayout)})
	}
	var widths [2]int
	if !opts.OmitHeader {
		widths = [2]int{lipgloss.Width(header[0]), lipgloss.Width(header[1])}
	}
	for _, c := range cells {
		widths[0] = max(widths[0], lipgloss.Width(c[0]))
		widths[1] = max(widths[1], lipgloss.Width(c[1]))
	}

	// Width includes the padding.
	qty := r.NewStyle().Padding(0, 1).Width(widths[0] + 2).Align(lipgloss.Right)
	date := r.NewStyle().Padding(0, 1).Width(widths[1] + 2)

	var sb strings.Builder
	if !opts.OmitHeader {
		sb.WriteString(qty.Bold(true).Render(strings.ToUpper(header[0])))
		sb.WriteString(date.Bold(true).Render(strings.ToUpper(header[1])))
		sb.WriteString("\n")
	}
	for _, c := range cells {
		sb.WriteString(qty.Render(c[0]))
		sb.WriteString(date.Render(c[1]))
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
