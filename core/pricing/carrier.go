// Package pricing implements the carrier and domestic-leg fee formulas.
// Formulas are pure functions of a rate table entry and a weight or volume;
// they never read configuration or global state.
package pricing

import (
	"github.com/shopspring/decimal"

	"logiquant/core/pricing/primitives"
	"logiquant/core/rates"
	"logiquant/core/types"
)

// FeeResult is a carrier fee together with the branch that produced it
type FeeResult struct {
	Mode     types.Mode
	WeightKg decimal.Decimal
	Branch   types.FeeBranch

	// Steps counts StepKg increments past ReferenceKg (primary band) or
	// past BreakpointKg (over breakpoint)
	Steps int64

	// Bands lists the per-band contributions of a primary-band fee
	Bands []types.BandCharge

	// Raw is the fee before rounding
	Raw decimal.Decimal

	// Fee is the formula output
	Fee decimal.Decimal
}

// Rounded returns the fee rounded up to the next 100
func (r FeeResult) Rounded() int64 {
	return primitives.Won(r.Fee)
}

// CarrierFee evaluates a carrier's piecewise formula for a positive weight.
//
//	w <= reference          base fee
//	reference < w <= bp     base fee + sum of band rates over ceil((w-ref)/step) steps
//	w > bp                  bp fee + ceil((w-bp)/step) × over rate + calibration
func CarrierFee(c rates.Carrier, weightKg decimal.Decimal) FeeResult {
	res := FeeResult{
		Mode:     c.Mode,
		WeightKg: weightKg,
	}

	switch {
	case weightKg.LessThanOrEqual(c.ReferenceKg):
		res.Branch = types.BranchReference
		res.Raw = c.BaseFee
		res.Fee = c.BaseFee
		if c.RoundPrimaryBand {
			res.Fee = primitives.RoundUpToHundred(c.BaseFee)
		}

	case weightKg.GreaterThan(c.BreakpointKg):
		res.Branch = types.BranchOverBreakpoint
		res.Steps = primitives.StepsOver(weightKg, c.BreakpointKg, c.StepKg)
		res.Raw = c.BreakpointFee.
			Add(c.OverBreakpointRate.Mul(decimal.NewFromInt(res.Steps))).
			Add(c.Calibration)
		res.Fee = primitives.RoundUpToHundred(res.Raw)

	default:
		res.Branch = types.BranchPrimaryBand
		res.Steps = primitives.StepsOver(weightKg, c.ReferenceKg, c.StepKg)
		increment, bands := primitives.AccumulateSteps(res.Steps, c.Bands)
		res.Bands = bands
		res.Raw = c.BaseFee.Add(increment)
		res.Fee = res.Raw
		if c.RoundPrimaryBand {
			res.Fee = primitives.RoundUpToHundred(res.Raw)
		}
	}

	return res
}
