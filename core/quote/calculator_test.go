package quote

import (
	"math"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"logiquant/core/types"
	"logiquant/internal/errors"
)

func newTestCalculator() *Calculator {
	config := DefaultCalculatorConfig()
	config.Logger = zap.NewNop()
	return NewCalculator(nil, config)
}

func input(w, d, h, kg float64, mode types.Mode) types.QuoteInput {
	return types.QuoteInput{WidthCm: w, DepthCm: d, HeightCm: h, WeightKg: kg, Mode: mode, Region: types.RegionSudo}
}

func TestCalculateHeavySeaShipment(t *testing.T) {
	res := newTestCalculator().Calculate(input(50, 40, 30, 150, types.ModeSea))
	if !res.Success {
		t.Fatalf("expected success, got %s: %s", res.Code, res.Reason)
	}
	if res.Breakdown.BaseShipping <= 119700 {
		t.Errorf("expected base fee above 119700, got %d", res.Breakdown.BaseShipping)
	}
	if res.Breakdown.BaseShipping != 174700 {
		t.Errorf("expected base fee 174700, got %d", res.Breakdown.BaseShipping)
	}
	if res.Breakdown.DomesticShipping != 363600 {
		t.Errorf("expected domestic fee 363600, got %d", res.Breakdown.DomesticShipping)
	}
	if res.FinalPrice != 538300 {
		t.Errorf("expected final price 538300, got %d", res.FinalPrice)
	}
	if res.RatesVersion == "" {
		t.Error("expected a rates version")
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "100kg") {
		t.Errorf("expected the sea breakpoint warning, got %v", res.Warnings)
	}
}

func TestCalculateSmallAirShipment(t *testing.T) {
	res := newTestCalculator().Calculate(input(30, 20, 15, 10, types.ModeAirCJ))
	if !res.Success {
		t.Fatalf("expected success, got %s", res.Reason)
	}
	if res.Breakdown.DomesticShipping != 0 {
		t.Errorf("expected no domestic fee, got %d", res.Breakdown.DomesticShipping)
	}
	if res.CalculationDetails.DomesticShipping.Required {
		t.Error("domestic leg should not be required")
	}
	if res.Breakdown.BaseShipping != 26700 || res.FinalPrice != 26700 {
		t.Errorf("expected 26700, got base %d final %d", res.Breakdown.BaseShipping, res.FinalPrice)
	}
}

func TestCalculateRejectsOversizedVolume(t *testing.T) {
	res := newTestCalculator().Calculate(input(300, 250, 200, 2500, types.ModeSea))
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Code != errors.TypeInput {
		t.Errorf("expected %s, got %s", errors.TypeInput, res.Code)
	}
	if !strings.Contains(res.Reason, "volume") || !strings.Contains(res.Reason, "10,000,000") {
		t.Errorf("unexpected reason %q", res.Reason)
	}
	if res.Breakdown != nil || res.CalculationDetails != nil {
		t.Error("failed quotes must not carry a partial result")
	}
}

func TestCalculateAtMaximumLimits(t *testing.T) {
	res := newTestCalculator().Calculate(input(500, 500, 40, 3000, types.ModeSea))
	if !res.Success {
		t.Fatalf("expected success at the limits, got %s", res.Reason)
	}
	// 119700 + 5800 × 550 = 3309700; max(603000, 259400) × 1.2 = 723600
	if res.Breakdown.BaseShipping != 3309700 {
		t.Errorf("expected base 3309700, got %d", res.Breakdown.BaseShipping)
	}
	if res.Breakdown.DomesticShipping != 723600 {
		t.Errorf("expected domestic 723600, got %d", res.Breakdown.DomesticShipping)
	}
	if res.FinalPrice != 4033300 {
		t.Errorf("expected 4033300, got %d", res.FinalPrice)
	}
}

func TestValidateFirstFailure(t *testing.T) {
	tests := []struct {
		name  string
		in    types.QuoteInput
		field string
	}{
		{"everything invalid reports width", input(600, 0, 0, 0, types.ModeSea), "width"},
		{"depth before height", input(10, 600, 600, 5000, types.ModeSea), "depth"},
		{"height", input(10, 10, 0.05, 1, types.ModeSea), "height"},
		{"volume too small", input(0.1, 0.1, 0.1, 1, types.ModeSea), "volume"},
		{"volume before weight", input(300, 250, 200, 0, types.ModeSea), "volume"},
		{"weight too small", input(10, 10, 10, 0, types.ModeSea), "weight"},
		{"weight too large", input(10, 10, 10, 3000.01, types.ModeSea), "weight"},
		{"NaN width", input(math.NaN(), 10, 10, 1, types.ModeSea), "width"},
		{"infinite weight", input(10, 10, 10, math.Inf(1), types.ModeSea), "weight"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.in, DefaultLimits())
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if err.Context["field"] != tt.field {
				t.Errorf("expected field %s, got %v (%s)", tt.field, err.Context["field"], err.Message)
			}
			if !strings.HasPrefix(err.Message, tt.field) {
				t.Errorf("reason %q should name %s", err.Message, tt.field)
			}
		})
	}
}

func TestValidateAcceptsBoundaries(t *testing.T) {
	valid := []types.QuoteInput{
		input(0.1, 100, 100, 0.01, types.ModeSea),
		input(500, 500, 40, 3000, types.ModeSea),
		input(1, 1, 1, 1, types.ModeAirCJ),
	}
	for _, in := range valid {
		if err := Validate(in, DefaultLimits()); err != nil {
			t.Errorf("%+v: unexpected error %s", in, err.Message)
		}
	}
}

func TestDomesticTriggerBoundaries(t *testing.T) {
	c := newTestCalculator()

	tests := []struct {
		name     string
		in       types.QuoteInput
		required bool
	}{
		{"weight at threshold", input(10, 10, 10, 20, types.ModeSea), false},
		{"weight above threshold", input(10, 10, 10, 20.01, types.ModeSea), true},
		{"sides at threshold", input(60, 50, 50, 1, types.ModeSea), false},
		{"sides above threshold", input(60.1, 50, 50, 1, types.ModeSea), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := c.Calculate(tt.in)
			if !res.Success {
				t.Fatalf("unexpected failure: %s", res.Reason)
			}
			domestic := res.CalculationDetails.DomesticShipping
			if domestic.Required != tt.required {
				t.Errorf("required = %v, expected %v", domestic.Required, tt.required)
			}
			if tt.required && res.Breakdown.DomesticShipping == 0 {
				t.Error("expected a domestic fee")
			}
			if !tt.required && res.Breakdown.DomesticShipping != 0 {
				t.Errorf("expected no domestic fee, got %d", res.Breakdown.DomesticShipping)
			}
		})
	}
}

func TestDomesticTriggerUsesActualWeight(t *testing.T) {
	// 60×50×40 = 120000cm³ = 20kg volumetric; actual 5kg; sides 150
	res := newTestCalculator().Calculate(input(60, 50, 40, 5, types.ModeAirLotte))
	if !res.Success {
		t.Fatalf("unexpected failure: %s", res.Reason)
	}
	if res.CalculationDetails.DomesticShipping.Required {
		t.Error("volumetric weight must not trigger the domestic leg")
	}
	if res.CalculationDetails.Volume.WeightUsed != types.WeightVolume {
		t.Errorf("expected volumetric basis, got %s", res.CalculationDetails.Volume.WeightUsed)
	}
	if len(res.Warnings) == 0 {
		t.Error("expected a volumetric weight warning")
	}
}

func TestRegionMultiplierRaisesDomesticFee(t *testing.T) {
	c := newTestCalculator()
	in := input(200, 200, 150, 100, types.ModeSea)

	sudo := c.Calculate(in)
	in.Region = types.RegionJeju
	jeju := c.Calculate(in)
	in.Region = ""
	unset := c.Calculate(in)

	if jeju.Breakdown.DomesticShipping <= sudo.Breakdown.DomesticShipping {
		t.Errorf("JEJU (%d) should cost more than SUDO (%d)", jeju.Breakdown.DomesticShipping, sudo.Breakdown.DomesticShipping)
	}
	if unset.FinalPrice != sudo.FinalPrice {
		t.Errorf("empty region should default to SUDO: %d vs %d", unset.FinalPrice, sudo.FinalPrice)
	}
	if unset.CalculationDetails.Input.Region != types.RegionSudo {
		t.Errorf("expected echoed region SUDO, got %s", unset.CalculationDetails.Input.Region)
	}
}

func TestUnsupportedMode(t *testing.T) {
	res := newTestCalculator().Calculate(input(10, 10, 10, 1, types.Mode("TRUCK")))
	if res.Success || res.Code != errors.TypeUnsupportedMode {
		t.Errorf("expected %s, got %+v", errors.TypeUnsupportedMode, res)
	}
}

func TestResultsAreRoundedToHundred(t *testing.T) {
	c := newTestCalculator()
	for _, mode := range types.Modes() {
		for kg := 0.01; kg <= 60; kg += 0.73 {
			res := c.Calculate(input(40, 30, 20, kg, mode))
			if !res.Success {
				t.Fatalf("%s %.2fkg: %s", mode, kg, res.Reason)
			}
			b := res.Breakdown
			for name, v := range map[string]int64{
				"final":    res.FinalPrice,
				"base":     b.BaseShipping,
				"domestic": b.DomesticShipping,
				"extra":    b.ExtraCharge,
			} {
				if v%100 != 0 {
					t.Fatalf("%s %.2fkg: %s %d is not a multiple of 100", mode, kg, name, v)
				}
			}
			if res.FinalPrice != b.Total() {
				t.Fatalf("%s %.2fkg: final %d != components %d", mode, kg, res.FinalPrice, b.Total())
			}
		}
	}
}

func TestCalculateIsIdempotent(t *testing.T) {
	c := newTestCalculator()
	in := input(45.5, 33.3, 21.7, 17.25, types.ModeAirLotte)
	first := c.Calculate(in)
	for i := 0; i < 50; i++ {
		if got := c.Calculate(in); got.FinalPrice != first.FinalPrice {
			t.Fatalf("call %d: %d != %d", i, got.FinalPrice, first.FinalPrice)
		}
	}
}

func TestCalculateConcurrently(t *testing.T) {
	c := newTestCalculator()
	in := input(50, 40, 30, 150, types.ModeSea)
	expected := c.Calculate(in).FinalPrice

	var wg sync.WaitGroup
	results := make(chan int64, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- c.Calculate(in).FinalPrice
		}()
	}
	wg.Wait()
	close(results)

	for got := range results {
		if got != expected {
			t.Fatalf("concurrent quote %d != %d", got, expected)
		}
	}
}

func TestExplainAddsFormulas(t *testing.T) {
	c := newTestCalculator()
	in := input(50, 40, 30, 150, types.ModeSea)

	plain := c.Calculate(in)
	explained := c.Explain(in)

	if plain.FinalPrice != explained.FinalPrice {
		t.Fatalf("explain changed the price: %d vs %d", explained.FinalPrice, plain.FinalPrice)
	}
	if plain.CalculationDetails.BaseShipping.Calculation != "" {
		t.Error("Calculate should not render formulas")
	}

	base := explained.CalculationDetails.BaseShipping
	if base.Method != "formula (over 100kg)" {
		t.Errorf("unexpected method %q", base.Method)
	}
	if !strings.Contains(base.Calculation, "100 × 550") {
		t.Errorf("unexpected base calculation %q", base.Calculation)
	}

	domestic := explained.CalculationDetails.DomesticShipping
	if !strings.Contains(domestic.Calculation, "363,600") {
		t.Errorf("unexpected domestic calculation %q", domestic.Calculation)
	}
	if len(domestic.Reasons) != 1 || domestic.Reasons[0] != "actual weight 150kg > 20kg" {
		t.Errorf("unexpected reasons %v", domestic.Reasons)
	}
}

func TestCustomLimits(t *testing.T) {
	config := DefaultCalculatorConfig()
	config.Logger = zap.NewNop()
	config.Limits.MaxWeightKg = 100
	config.Thresholds.WeightKg = 50

	c := NewCalculator(nil, config)
	if res := c.Calculate(input(10, 10, 10, 150, types.ModeSea)); res.Success {
		t.Error("expected the lowered weight limit to reject 150kg")
	}
	res := c.Calculate(input(10, 10, 10, 30, types.ModeSea))
	if !res.Success || res.CalculationDetails.DomesticShipping.Required {
		t.Errorf("30kg should not trigger a 50kg threshold: %+v", res)
	}
}
