// Package ui renders tables and colored messages for a terminal.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Colors for terminal output
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
)

// Writer is the UI output destination
type Writer struct {
	out       io.Writer
	noColor   bool
	verbosity int
	err       error
}

// NewWriter creates a UI writer
func NewWriter(out io.Writer, noColor bool) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{
		out:       out,
		noColor:   noColor,
		verbosity: 1,
	}
}

// SetVerbosity sets output verbosity (0=quiet, 1=normal, 2=verbose)
func (w *Writer) SetVerbosity(level int) {
	w.verbosity = level
}

// Err returns the first write error, if any
func (w *Writer) Err() error {
	return w.err
}

// color applies color if enabled
func (w *Writer) color(c, text string) string {
	if w.noColor {
		return text
	}
	return c + text + Reset
}

func (w *Writer) write(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.out, s)
}

// Print writes formatted text
func (w *Writer) Print(format string, args ...interface{}) {
	w.write(fmt.Sprintf(format, args...))
}

// Println writes formatted text with newline
func (w *Writer) Println(format string, args ...interface{}) {
	w.write(fmt.Sprintf(format, args...) + "\n")
}

// Line writes text verbatim with newline
func (w *Writer) Line(text string) {
	w.write(text + "\n")
}

// Header prints a section header
func (w *Writer) Header(title string) {
	w.Line("")
	w.Line(w.color(Bold+Cyan, "━━━ "+title+" ━━━"))
	w.Line("")
}

// SubHeader prints a subsection header
func (w *Writer) SubHeader(title string) {
	w.Line(w.color(Bold, "▸ "+title))
}

// Success prints a success message
func (w *Writer) Success(format string, args ...interface{}) {
	w.Line(w.color(Green, "✓ ") + fmt.Sprintf(format, args...))
}

// Warning prints a warning
func (w *Writer) Warning(format string, args ...interface{}) {
	w.Line(w.color(Yellow, "⚠ ") + fmt.Sprintf(format, args...))
}

// Error prints an error
func (w *Writer) Error(format string, args ...interface{}) {
	w.Line(w.color(Red, "✗ ") + fmt.Sprintf(format, args...))
}

// Info prints an info message
func (w *Writer) Info(format string, args ...interface{}) {
	if w.verbosity < 1 {
		return
	}
	w.Line(w.color(Blue, "ℹ ") + fmt.Sprintf(format, args...))
}

// Debug prints a debug message
func (w *Writer) Debug(format string, args ...interface{}) {
	if w.verbosity < 2 {
		return
	}
	w.Line(w.color(Dim, "  "+fmt.Sprintf(format, args...)))
}

// Table renders a table
type Table struct {
	w       *Writer
	headers []string
	rows    [][]string
	widths  []int
	right   map[int]bool
}

// NewTable creates a table
func (w *Writer) NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	return &Table{
		w:       w,
		headers: headers,
		rows:    [][]string{},
		widths:  widths,
		right:   map[int]bool{},
	}
}

// AlignRight right-aligns the given columns (numbers)
func (t *Table) AlignRight(columns ...int) *Table {
	for _, c := range columns {
		t.right[c] = true
	}
	return t
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells ...string) {
	// Pad or truncate cells to match header count
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
		if n := utf8.RuneCountInString(row[i]); n > t.widths[i] {
			t.widths[i] = n
		}
	}
	t.rows = append(t.rows, row)
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) pad(col int, cell string) string {
	gap := strings.Repeat(" ", t.widths[col]-utf8.RuneCountInString(cell))
	if t.right[col] {
		return gap + cell
	}
	return cell + gap
}

func (t *Table) line(cells []string) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = t.pad(i, cell)
	}
	return strings.TrimRight(strings.Join(parts, " │ "), " ")
}

// Render prints the table
func (t *Table) Render() {
	t.w.Line(t.w.color(Bold, t.line(t.headers)))

	seps := make([]string, len(t.widths))
	for i, w := range t.widths {
		seps[i] = strings.Repeat("─", w)
	}
	t.w.Line(strings.Join(seps, "─┼─"))

	for _, row := range t.rows {
		t.w.Line(t.line(row))
	}
}

// PlanSummary renders the closing summary of a plan
type PlanSummary struct {
	w         *Writer
	Materials int
	Crafted   int
	Crafts    int64
	Surplus   int64
	Pruned    []string
}

// NewPlanSummary creates a plan summary
func (w *Writer) NewPlanSummary() *PlanSummary {
	return &PlanSummary{w: w}
}

// Render prints the plan summary
func (s *PlanSummary) Render() {
	s.w.Line("")
	s.w.Success("%d raw materials, %d crafted items, %d crafts", s.Materials, s.Crafted, s.Crafts)
	if s.Surplus > 0 {
		s.w.Info("%d surplus units from rounding up to whole crafts", s.Surplus)
	}
	if len(s.Pruned) > 0 {
		s.w.Warning("ignored %d recipes not needed for the goal: %s", len(s.Pruned), strings.Join(s.Pruned, ", "))
	}
}
