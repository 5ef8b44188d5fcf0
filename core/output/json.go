package output

import (
	"encoding/json"
	"io"

	"logiquant/core/rates"
)

// JSONFormatter renders indented JSON
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format returns the format type
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

// RenderQuote writes the quote result
func (f *JSONFormatter) RenderQuote(w io.Writer, report *QuoteReport) error {
	return encode(w, report.Result)
}

// RenderRates writes the rate table
func (f *JSONFormatter) RenderRates(w io.Writer, table *rates.Table) error {
	return encode(w, table)
}

func encode(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
