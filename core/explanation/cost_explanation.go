// Package explanation - Fee explanation
// Turns the numeric trace of a quote into human-readable formulas.
// Nothing here affects prices; the numeric core is tested without it.
package explanation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FeeExplanation describes how one fee was derived
type FeeExplanation struct {
	// Component is the fee being explained (base_shipping, domestic_shipping)
	Component string `json:"component"`

	// Method names the formula domain that was evaluated
	Method string `json:"method"`

	// Terms are the addends of the formula, in order
	Terms []Term `json:"terms"`

	// Factor multiplies the sum of terms (zero means none)
	Factor      decimal.Decimal `json:"factor"`
	FactorLabel string          `json:"factor_label,omitempty"`

	// Raw is the result before rounding; Final after
	Raw   decimal.Decimal `json:"raw"`
	Final decimal.Decimal `json:"final"`
}

// Term is one addend of a fee formula
type Term struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`

	// Count and Rate are set when the term is a repeated step charge
	Count int64           `json:"count,omitempty"`
	Rate  decimal.Decimal `json:"rate"`
}

// NewFeeExplanation creates a new fee explanation
func NewFeeExplanation(component, method string) *FeeExplanation {
	return &FeeExplanation{
		Component: component,
		Method:    method,
		Terms:     make([]Term, 0),
	}
}

// AddTerm adds a fixed amount
func (e *FeeExplanation) AddTerm(label string, amount decimal.Decimal) *FeeExplanation {
	e.Terms = append(e.Terms, Term{Label: label, Amount: amount})
	return e
}

// AddSteps adds count × rate
func (e *FeeExplanation) AddSteps(label string, count int64, rate decimal.Decimal) *FeeExplanation {
	e.Terms = append(e.Terms, Term{
		Label:  label,
		Amount: rate.Mul(decimal.NewFromInt(count)),
		Count:  count,
		Rate:   rate,
	})
	return e
}

// WithFactor sets a multiplier applied to the sum of terms
func (e *FeeExplanation) WithFactor(factor decimal.Decimal, label string) *FeeExplanation {
	e.Factor = factor
	e.FactorLabel = label
	return e
}

// WithResult records the raw and rounded results
func (e *FeeExplanation) WithResult(raw, final decimal.Decimal) *FeeExplanation {
	e.Raw = raw
	e.Final = final
	return e
}

// ToJSON returns JSON representation
func (e *FeeExplanation) ToJSON() ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}

// Calculation renders the formula, e.g.
// "5,200 (base) + 850 (0.5kg→1kg) = 6,050 → 6,100 (rounded up to 100)"
func (e *FeeExplanation) Calculation() string {
	parts := make([]string, 0, len(e.Terms))
	for _, term := range e.Terms {
		var s string
		if term.Count > 0 {
			s = fmt.Sprintf("%d × %s", term.Count, Amount(term.Rate))
		} else {
			s = Amount(term.Amount)
		}
		if term.Label != "" {
			s += " (" + term.Label + ")"
		}
		parts = append(parts, s)
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(parts, " + "))

	if !e.Factor.IsZero() {
		sum := decimal.Zero
		for _, term := range e.Terms {
			sum = sum.Add(term.Amount)
		}
		if len(e.Terms) > 1 {
			sb.WriteString(" = " + Amount(sum))
		}
		sb.WriteString(" × " + e.Factor.String())
		if e.FactorLabel != "" {
			sb.WriteString(" (" + e.FactorLabel + ")")
		}
	}

	if len(e.Terms) > 1 || !e.Factor.IsZero() {
		sb.WriteString(" = " + Amount(e.Raw))
	}
	if !e.Final.Equal(e.Raw) {
		sb.WriteString(" → " + Amount(e.Final) + " (rounded up to 100)")
	}
	return sb.String()
}

// ToNarrative returns a human-readable narrative
func (e *FeeExplanation) ToNarrative() string {
	return fmt.Sprintf("%s by %s: %s", strings.ReplaceAll(e.Component, "_", " "), e.Method, e.Calculation())
}
