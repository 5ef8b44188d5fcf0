package explanation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"logiquant/core/pricing"
	"logiquant/core/pricing/primitives"
	"logiquant/core/rates"
	"logiquant/core/types"
)

// Carrier explains a carrier fee. final is the value exposed to the caller.
func Carrier(c rates.Carrier, res pricing.FeeResult, final decimal.Decimal) *FeeExplanation {
	switch res.Branch {
	case types.BranchReference:
		return NewFeeExplanation("base_shipping", fmt.Sprintf("formula (%s or less)", Kg(c.ReferenceKg))).
			AddTerm("base fee", c.BaseFee).
			WithResult(res.Raw, final)

	case types.BranchOverBreakpoint:
		e := NewFeeExplanation("base_shipping", fmt.Sprintf("formula (over %s)", Kg(c.BreakpointKg))).
			AddTerm(Kg(c.BreakpointKg)+" base", c.BreakpointFee).
			AddSteps("per "+Kg(c.StepKg), res.Steps, c.OverBreakpointRate)
		if !c.Calibration.IsZero() {
			e.AddTerm("calibration", c.Calibration)
		}
		return e.WithResult(res.Raw, final)

	default:
		e := NewFeeExplanation("base_shipping",
			fmt.Sprintf("formula (%s to %s)", Kg(c.ReferenceKg), Kg(c.BreakpointKg))).
			AddTerm(Kg(c.ReferenceKg)+" base", c.BaseFee)
		for _, band := range res.Bands {
			label := stepRange(c, band.FromStep, band.ToStep)
			if band.Steps() == 1 {
				e.AddTerm(label, band.Amount)
			} else {
				e.AddSteps(label, band.Steps(), band.Rate)
			}
		}
		return e.WithResult(res.Raw, final)
	}
}

// Domestic explains a domestic-leg fee
func Domestic(fee pricing.DomesticFee, region types.Region) *FeeExplanation {
	e := NewFeeExplanation("domestic_shipping", "max(volume fee, weight fee) × region multiplier")
	e.AddTerm(fmt.Sprintf("max of volume %s, weight %s", Amount(fee.VolumeFee), Amount(fee.WeightFee)), fee.BaseFee)
	e.WithFactor(fee.Multiplier, region.Label()+" surcharge")
	return e.WithResult(fee.Raw, fee.Fee)
}

// TriggerReason describes why the domestic leg was added
func TriggerReason(label string, actual, threshold decimal.Decimal, unit string) string {
	return fmt.Sprintf("%s %s%s > %s%s", label, Quantity(actual.InexactFloat64()), unit, Quantity(threshold.InexactFloat64()), unit)
}

// stepRange labels the weight span covered by steps from..to, e.g. 1.5kg→4kg
func stepRange(c rates.Carrier, from, to int64) string {
	start := c.ReferenceKg.Add(c.StepKg.Mul(decimal.NewFromInt(from - 1)))
	end := c.ReferenceKg.Add(c.StepKg.Mul(decimal.NewFromInt(to)))
	return Kg(start) + "→" + Kg(end)
}

// RoundedAmount is a shortcut used by renderers that only hold a raw value
func RoundedAmount(raw decimal.Decimal) string {
	return Amount(primitives.RoundUpToHundred(raw))
}
