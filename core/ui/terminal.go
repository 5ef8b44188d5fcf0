// Package ui - Terminal user interface
// Styled CLI output: headers, status lines, tables and the quote card.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the styles used by a Writer
type Theme struct {
	Header  lipgloss.Style
	Sub     lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Dim     lipgloss.Style
	Bold    lipgloss.Style
	Price   lipgloss.Style
	Card    lipgloss.Style
}

// NewTheme builds the styles for a renderer. Without color only the
// layout (borders, padding) is kept.
func NewTheme(r *lipgloss.Renderer, color bool) Theme {
	if !color {
		plain := r.NewStyle()
		return Theme{
			Header: plain, Sub: plain, Success: plain, Warning: plain,
			Error: plain, Info: plain, Dim: plain, Bold: plain, Price: plain,
			Card: r.NewStyle().Padding(0, 2).BorderStyle(lipgloss.RoundedBorder()),
		}
	}
	return Theme{
		Header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		Sub:     r.NewStyle().Bold(true),
		Success: r.NewStyle().Foreground(lipgloss.Color("2")),
		Warning: r.NewStyle().Foreground(lipgloss.Color("3")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("1")),
		Info:    r.NewStyle().Foreground(lipgloss.Color("4")),
		Dim:     r.NewStyle().Faint(true),
		Bold:    r.NewStyle().Bold(true),
		Price:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		Card: r.NewStyle().
			Padding(0, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
	}
}

// Writer is the UI output destination
type Writer struct {
	out       io.Writer
	theme     Theme
	verbosity int
}

// NewWriter creates a UI writer
func NewWriter(out io.Writer, noColor bool) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{
		out:       out,
		theme:     NewTheme(lipgloss.NewRenderer(out), !noColor),
		verbosity: 1,
	}
}

// SetVerbosity sets output verbosity (0=quiet, 1=normal, 2=verbose)
func (w *Writer) SetVerbosity(level int) {
	w.verbosity = level
}

// Theme returns the writer's styles
func (w *Writer) Theme() Theme {
	return w.theme
}

// Print writes formatted text
func (w *Writer) Print(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes a line with newline
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Header prints a section header
func (w *Writer) Header(title string) {
	fmt.Fprintln(w.out)
	fmt.Fprintln(w.out, w.theme.Header.Render("━━━ "+title+" ━━━"))
	fmt.Fprintln(w.out)
}

// SubHeader prints a subsection header
func (w *Writer) SubHeader(title string) {
	fmt.Fprintln(w.out, w.theme.Sub.Render("▸ "+title))
}

// Success prints a success message
func (w *Writer) Success(format string, args ...interface{}) {
	fmt.Fprintln(w.out, w.theme.Success.Render("✓ ")+fmt.Sprintf(format, args...))
}

// Warning prints a warning
func (w *Writer) Warning(format string, args ...interface{}) {
	fmt.Fprintln(w.out, w.theme.Warning.Render("⚠ ")+fmt.Sprintf(format, args...))
}

// Error prints an error
func (w *Writer) Error(format string, args ...interface{}) {
	fmt.Fprintln(w.out, w.theme.Error.Render("✗ ")+fmt.Sprintf(format, args...))
}

// Info prints an info message
func (w *Writer) Info(format string, args ...interface{}) {
	if w.verbosity < 1 {
		return
	}
	fmt.Fprintln(w.out, w.theme.Info.Render("ℹ ")+fmt.Sprintf(format, args...))
}

// Debug prints a debug message
func (w *Writer) Debug(format string, args ...interface{}) {
	if w.verbosity < 2 {
		return
	}
	fmt.Fprintln(w.out, w.theme.Dim.Render("  "+fmt.Sprintf(format, args...)))
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
		widths[i] = lipgloss.Width(h)
	}
	return &Table{
		w:       w,
		headers: headers,
		rows:    [][]string{},
		widths:  widths,
		right:   make(map[int]bool),
	}
}

// AlignRight right-aligns the given columns (amounts)
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
		if width := lipgloss.Width(row[i]); width > t.widths[i] {
			t.widths[i] = width
		}
	}
	t.rows = append(t.rows, row)
}

// Render prints the table
func (t *Table) Render() {
	fmt.Fprintln(t.w.out, t.w.theme.Bold.Render(t.line(t.headers)))

	sep := make([]string, len(t.widths))
	for i, w := range t.widths {
		sep[i] = strings.Repeat("─", w)
	}
	fmt.Fprintln(t.w.out, strings.Join(sep, "─┼─"))

	for _, row := range t.rows {
		fmt.Fprintln(t.w.out, t.line(row))
	}
}

func (t *Table) line(cells []string) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		pad := strings.Repeat(" ", t.widths[i]-lipgloss.Width(cell))
		if t.right[i] {
			parts[i] = pad + cell
		} else {
			parts[i] = cell + pad
		}
	}
	return strings.TrimRight(strings.Join(parts, " │ "), " ")
}

// QuoteCard renders the headline of a quote
type QuoteCard struct {
	w            *Writer
	Title        string
	FinalPrice   string
	Mode         string
	Region       string
	Chargeable   string
	RatesVersion string
}

// NewQuoteCard creates a quote card
func (w *Writer) NewQuoteCard() *QuoteCard {
	return &QuoteCard{w: w, Title: "Shipping Quote"}
}

// Render prints the card
func (c *QuoteCard) Render() {
	t := c.w.theme
	lines := []string{
		t.Sub.Render(c.Title),
		"",
		"Total:      " + t.Price.Render(c.FinalPrice),
		"Mode:       " + c.Mode,
		"Region:     " + c.Region,
		"Chargeable: " + c.Chargeable,
	}
	if c.RatesVersion != "" {
		lines = append(lines, t.Dim.Render("Rates:      "+c.RatesVersion))
	}
	fmt.Fprintln(c.w.out, t.Card.Render(strings.Join(lines, "\n")))
}
