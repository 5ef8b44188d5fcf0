// Package pricing - Carrier and domestic formula tests
// Literal values are taken from the published carrier rate tables.
package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"logiquant/core/rates"
	"logiquant/core/types"
)

func kg(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func carrier(t *testing.T, mode types.Mode) rates.Carrier {
	t.Helper()
	c, ok := rates.Default().Carrier(mode)
	if !ok {
		t.Fatalf("default table has no %s carrier", mode)
	}
	return c
}

func TestCarrierFeeLiteralValues(t *testing.T) {
	tests := []struct {
		mode     types.Mode
		weight   string
		expected int64
		branch   types.FeeBranch
	}{
		{types.ModeSea, "0.5", 4700, types.BranchReference},
		{types.ModeSea, "1.0", 5100, types.BranchPrimaryBand},
		{types.ModeSea, "10.0", 17700, types.BranchPrimaryBand},
		{types.ModeSea, "15.0", 24700, types.BranchPrimaryBand},
		{types.ModeSea, "83.0", 119900, types.BranchPrimaryBand},
		{types.ModeSea, "100", 143700, types.BranchPrimaryBand},
		{types.ModeSea, "100.5", 120300, types.BranchOverBreakpoint},
		{types.ModeSea, "150", 174700, types.BranchOverBreakpoint},

		{types.ModeAirCJ, "0.5", 5200, types.BranchReference},
		{types.ModeAirCJ, "0.2", 5200, types.BranchReference},
		{types.ModeAirCJ, "1.0", 6050, types.BranchPrimaryBand},
		{types.ModeAirCJ, "2.5", 9150, types.BranchPrimaryBand},
		{types.ModeAirCJ, "10.0", 26650, types.BranchPrimaryBand},
		{types.ModeAirCJ, "15.0", 45900, types.BranchOverBreakpoint},

		{types.ModeAirLotte, "0.5", 4800, types.BranchReference},
		{types.ModeAirLotte, "1.0", 5400, types.BranchPrimaryBand},
		{types.ModeAirLotte, "1.5", 7100, types.BranchPrimaryBand},
		{types.ModeAirLotte, "2.5", 8700, types.BranchPrimaryBand},
		{types.ModeAirLotte, "5.0", 14200, types.BranchPrimaryBand},
		{types.ModeAirLotte, "10.0", 26200, types.BranchPrimaryBand},
		{types.ModeAirLotte, "15.0", 40200, types.BranchOverBreakpoint},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode)+"/"+tt.weight, func(t *testing.T) {
			res := CarrierFee(carrier(t, tt.mode), kg(tt.weight))
			if !res.Fee.Equal(decimal.NewFromInt(tt.expected)) {
				t.Errorf("fee = %s, expected %d", res.Fee, tt.expected)
			}
			if res.Branch != tt.branch {
				t.Errorf("branch = %s, expected %s", res.Branch, tt.branch)
			}
		})
	}
}

func TestCarrierFeeStepBoundaries(t *testing.T) {
	c := carrier(t, types.ModeSea)

	// exactly on a half-kilogram boundary takes the lower step count
	if got := CarrierFee(c, kg("1.0")).Steps; got != 1 {
		t.Errorf("1.0kg: expected 1 step, got %d", got)
	}
	if got := CarrierFee(c, kg("1.01")).Steps; got != 2 {
		t.Errorf("1.01kg: expected 2 steps, got %d", got)
	}
	if got := CarrierFee(c, kg("0.51")).Steps; got != 1 {
		t.Errorf("0.51kg: expected 1 step, got %d", got)
	}
}

func TestCarrierFeeBreakpointIsStrict(t *testing.T) {
	for _, mode := range types.Modes() {
		c := carrier(t, mode)
		at := CarrierFee(c, c.BreakpointKg)
		if at.Branch != types.BranchPrimaryBand {
			t.Errorf("%s: weight exactly at breakpoint should use the primary band, got %s", mode, at.Branch)
		}
		above := CarrierFee(c, c.BreakpointKg.Add(kg("0.001")))
		if above.Branch != types.BranchOverBreakpoint {
			t.Errorf("%s: weight above breakpoint should use the flat formula, got %s", mode, above.Branch)
		}
		if above.Steps != 1 {
			t.Errorf("%s: expected 1 over-breakpoint step, got %d", mode, above.Steps)
		}
	}
}

func TestCarrierFeeBandTrace(t *testing.T) {
	res := CarrierFee(carrier(t, types.ModeAirCJ), kg("6"))

	// 6kg: ceil(5.5/0.5) = 11 steps across all six bands
	if res.Steps != 11 {
		t.Fatalf("expected 11 steps, got %d", res.Steps)
	}
	if len(res.Bands) != 6 {
		t.Fatalf("expected 6 band charges, got %d", len(res.Bands))
	}
	last := res.Bands[5]
	if last.FromStep != 10 || last.ToStep != 11 || !last.Amount.Equal(decimal.NewFromInt(2400)) {
		t.Errorf("unexpected final band: %+v", last)
	}

	sum := decimal.NewFromInt(5200)
	for _, b := range res.Bands {
		sum = sum.Add(b.Amount)
	}
	if !sum.Equal(res.Raw) {
		t.Errorf("band amounts %s do not add up to raw fee %s", sum, res.Raw)
	}
}

func TestCarrierFeeRounding(t *testing.T) {
	cj := CarrierFee(carrier(t, types.ModeAirCJ), kg("1.0"))
	if cj.Rounded() != 6100 {
		t.Errorf("expected rounded CJ fee 6100, got %d", cj.Rounded())
	}

	for _, mode := range []types.Mode{types.ModeAirLotte, types.ModeSea} {
		c := carrier(t, mode)
		for w := kg("0.01"); w.LessThanOrEqual(kg("120")); w = w.Add(kg("0.37")) {
			fee := CarrierFee(c, w).Fee
			if !fee.Mod(decimal.NewFromInt(100)).IsZero() {
				t.Fatalf("%s %skg: fee %s is not a multiple of 100", mode, w, fee)
			}
		}
	}

	c := carrier(t, types.ModeAirCJ)
	for w := kg("10.01"); w.LessThanOrEqual(kg("50")); w = w.Add(kg("0.37")) {
		fee := CarrierFee(c, w).Fee
		if !fee.Mod(decimal.NewFromInt(100)).IsZero() {
			t.Fatalf("AIR_CJ %skg: over-breakpoint fee %s is not a multiple of 100", w, fee)
		}
	}
}

func TestCarrierFeeMonotonic(t *testing.T) {
	step := kg("0.05")

	check := func(t *testing.T, c rates.Carrier, from, to decimal.Decimal) {
		t.Helper()
		previous := decimal.Zero
		for w := from; w.LessThanOrEqual(to); w = w.Add(step) {
			fee := CarrierFee(c, w).Fee
			if fee.LessThan(previous) {
				t.Fatalf("%s: fee dropped to %s at %skg (was %s)", c.Mode, fee, w, previous)
			}
			previous = fee
		}
	}

	check(t, carrier(t, types.ModeAirCJ), kg("0.01"), kg("3000"))
	check(t, carrier(t, types.ModeAirLotte), kg("0.01"), kg("3000"))

	// The sea table restarts from its published 100kg fee above the
	// breakpoint, so each domain is monotonic on its own.
	sea := carrier(t, types.ModeSea)
	check(t, sea, kg("0.01"), kg("100"))
	check(t, sea, kg("100.05"), kg("3000"))
}

func TestDomesticSubFees(t *testing.T) {
	d := rates.Default().Domestic

	tests := []struct {
		name     string
		fee      decimal.Decimal
		expected int64
	}{
		{"volume below breakpoint", DomesticVolumeFee(d, kg("60000")), 303000},
		{"volume at breakpoint", DomesticVolumeFee(d, kg("5000000")), 303000},
		{"volume one cm3 over", DomesticVolumeFee(d, kg("5000001")), 303600},
		{"volume 6M", DomesticVolumeFee(d, kg("6000000")), 363000},
		{"weight below breakpoint", DomesticWeightFee(d, kg("150")), 99400},
		{"weight at breakpoint", DomesticWeightFee(d, kg("1000")), 99400},
		{"weight 1500", DomesticWeightFee(d, kg("1500")), 139400},
		{"weight 1000.5", DomesticWeightFee(d, kg("1000.5")), 100200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.fee.Equal(decimal.NewFromInt(tt.expected)) {
				t.Errorf("expected %d, got %s", tt.expected, tt.fee)
			}
		})
	}
}

func TestDomesticLegFee(t *testing.T) {
	table := rates.Default()
	sudo, _ := table.RegionMultiplier(types.RegionSudo)
	other, _ := table.RegionMultiplier(types.RegionOther)

	byVolume := DomesticLegFee(table.Domestic, sudo, kg("6000000"), kg("100"))
	if !byVolume.BaseFee.Equal(byVolume.VolumeFee) {
		t.Errorf("expected volume fee to win, got %+v", byVolume)
	}
	if !byVolume.Fee.Equal(decimal.NewFromInt(435600)) {
		t.Errorf("expected 435600, got %s", byVolume.Fee)
	}

	surcharged := DomesticLegFee(table.Domestic, other, kg("6000000"), kg("100"))
	if !surcharged.Fee.GreaterThan(byVolume.Fee) {
		t.Errorf("OTHER (%s) should cost more than SUDO (%s)", surcharged.Fee, byVolume.Fee)
	}
	if !surcharged.Raw.Equal(kg("453750")) || !surcharged.Fee.Equal(decimal.NewFromInt(453800)) {
		t.Errorf("expected 453750 -> 453800, got %s -> %s", surcharged.Raw, surcharged.Fee)
	}

	byWeight := DomesticLegFee(table.Domestic, sudo, kg("60000"), kg("4000"))
	if !byWeight.BaseFee.Equal(byWeight.WeightFee) {
		t.Errorf("expected weight fee to win, got %+v", byWeight)
	}
	// 99400 + 300 × 800 = 339400; × 1.2 = 407280
	if !byWeight.Fee.Equal(decimal.NewFromInt(407300)) {
		t.Errorf("expected 407300, got %s", byWeight.Fee)
	}
}
