// Package primitives - Stepped pricing primitives
// Handles carrier rate tables expressed as ordered per-step bands
package primitives

import (
	"github.com/shopspring/decimal"

	"logiquant/core/types"
)

// AccumulateSteps adds up the per-step rates of the first `steps` steps.
// Bands are evaluated in order; each covers the steps after the previous
// band's UpToStep through its own UpToStep. Steps beyond the last bounded
// band are charged at zero unless an unlimited band follows.
func AccumulateSteps(steps int64, bands []StepBand) (decimal.Decimal, []types.BandCharge) {
	total := decimal.Zero
	if steps <= 0 || len(bands) == 0 {
		return total, nil
	}

	var charges []types.BandCharge
	previousLimit := int64(0)

	for _, band := range bands {
		if previousLimit >= steps {
			break
		}

		upper := steps
		if !band.Unlimited() && band.UpToStep < steps {
			upper = band.UpToStep
		}
		if upper <= previousLimit {
			continue
		}

		count := upper - previousLimit
		amount := band.Rate.Mul(decimal.NewFromInt(count))
		total = total.Add(amount)
		charges = append(charges, types.BandCharge{
			FromStep: previousLimit + 1,
			ToStep:   upper,
			Rate:     band.Rate,
			Amount:   amount,
		})

		if band.Unlimited() {
			break
		}
		previousLimit = band.UpToStep
	}

	return total, charges
}
