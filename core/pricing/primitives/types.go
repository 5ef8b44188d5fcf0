// Package primitives - Centralized pricing math
// Carrier and domestic formulas declare constants, not do math.
// All rounding, weight and step arithmetic flows through these primitives.
package primitives

import "github.com/shopspring/decimal"

// StepBand is one rule of a stepped rate structure
type StepBand struct {
	UpToStep int64           // Last step covered by this band (0 = unlimited)
	Rate     decimal.Decimal // Amount added per step in this band
}

// Unlimited reports whether the band covers every remaining step
func (b StepBand) Unlimited() bool {
	return b.UpToStep == 0
}

var (
	hundred = decimal.NewFromInt(100)

	// VolumetricDivisor converts cm³ to kilograms of dimensional weight
	VolumetricDivisor = decimal.NewFromInt(6000)
)
