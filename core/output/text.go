package output

import (
	"fmt"
	"io"

	"logiquant/core/rates"
)

// TextFormatter writes bare values for scripts, mirroring the plain-text
// HTTP endpoint: the final price, or the failure code and reason.
type TextFormatter struct{}

// NewTextFormatter creates a text formatter
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format returns the format type
func (f *TextFormatter) Format() Format {
	return FormatText
}

// RenderQuote writes the final price
func (f *TextFormatter) RenderQuote(w io.Writer, report *QuoteReport) error {
	res := report.Result
	if !res.Success {
		_, err := fmt.Fprintf(w, "%s: %s\n", res.Code, res.Reason)
		return err
	}
	_, err := fmt.Fprintf(w, "%d\n", res.FinalPrice)
	return err
}

// RenderRates writes the rate table in its HCL file format
func (f *TextFormatter) RenderRates(w io.Writer, table *rates.Table) error {
	return rates.Write(w, table)
}
