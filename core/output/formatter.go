// Package output provides output formatting interfaces.
// This package produces human and machine-readable outputs.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"logiquant/core/rates"
	"logiquant/core/types"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a styled terminal card and tables
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatText is the bare final price, or the failure reason
	FormatText Format = "text"
)

// ParseFormat parses a format name
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatCLI, FormatJSON, FormatText:
		return f, nil
	case "":
		return FormatCLI, nil
	}
	return "", fmt.Errorf("unknown output format: %s (expected cli, json or text)", raw)
}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// RenderQuote produces output for one quote
	RenderQuote(w io.Writer, report *QuoteReport) error

	// RenderRates produces output for a rate table
	RenderRates(w io.Writer, table *rates.Table) error
}

// QuoteReport is a quote together with the input it was computed for
type QuoteReport struct {
	Input  types.QuoteInput  `json:"input"`
	Result types.QuoteResult `json:"result"`
}

// Registry manages formatter registration
type Registry struct {
	formatters map[Format]Formatter
	order      []Format
}

// NewRegistry creates a registry holding the built-in formatters
func NewRegistry(noColor bool) *Registry {
	r := &Registry{formatters: make(map[Format]Formatter)}
	_ = r.Register(NewCLIFormatter(noColor))
	_ = r.Register(NewJSONFormatter())
	_ = r.Register(NewTextFormatter())
	return r
}

// Register adds a formatter to the registry
func (r *Registry) Register(formatter Formatter) error {
	if _, exists := r.formatters[formatter.Format()]; exists {
		return fmt.Errorf("formatter already registered: %s", formatter.Format())
	}
	r.formatters[formatter.Format()] = formatter
	r.order = append(r.order, formatter.Format())
	return nil
}

// Get returns a formatter for a format type
func (r *Registry) Get(format Format) (Formatter, bool) {
	f, ok := r.formatters[format]
	return f, ok
}

// Formats returns the registered format names, sorted
func (r *Registry) Formats() []Format {
	out := append([]Format(nil), r.order...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
