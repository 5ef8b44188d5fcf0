package rates

import (
	"github.com/shopspring/decimal"

	"logiquant/core/pricing/primitives"
	"logiquant/core/types"
)

// DefaultVersion is the revision of the compiled-in rate table
const DefaultVersion = "2025-12-18"

func n(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func airBands(firstStep, secondStep int64) []primitives.StepBand {
	return []primitives.StepBand{
		{UpToStep: 1, Rate: n(firstStep)},  // 0.5kg -> 1kg
		{UpToStep: 2, Rate: n(secondStep)}, // 1kg -> 1.5kg
		{UpToStep: 7, Rate: n(800)},        // 1.5kg -> 4kg
		{UpToStep: 8, Rate: n(1000)},       // 4kg -> 4.5kg
		{UpToStep: 9, Rate: n(2100)},       // 4.5kg -> 5kg
		{UpToStep: 0, Rate: n(1200)},       // 5kg -> 10kg
	}
}

// Default returns the compiled-in rate table. Each call returns a fresh copy.
func Default() *Table {
	half := decimal.RequireFromString("0.5")

	return &Table{
		Version: DefaultVersion,
		Carriers: map[types.Mode]Carrier{
			types.ModeAirCJ: {
				Mode:               types.ModeAirCJ,
				ReferenceKg:        half,
				StepKg:             half,
				BaseFee:            n(5200),
				Bands:              airBands(850, 1500),
				BreakpointKg:       n(10),
				BreakpointFee:      n(26650),
				OverBreakpointRate: n(1430),
				Calibration:        n(4900),
				RoundPrimaryBand:   false,
			},
			types.ModeAirLotte: {
				Mode:               types.ModeAirLotte,
				ReferenceKg:        half,
				StepKg:             half,
				BaseFee:            n(4800),
				Bands:              airBands(600, 1700),
				BreakpointKg:       n(10),
				BreakpointFee:      n(26200),
				OverBreakpointRate: n(1400),
				Calibration:        decimal.Zero,
				RoundPrimaryBand:   true,
			},
			types.ModeSea: {
				Mode:        types.ModeSea,
				ReferenceKg: half,
				StepKg:      half,
				BaseFee:     n(4700),
				Bands: []primitives.StepBand{
					{UpToStep: 1, Rate: n(400)},
					{UpToStep: 0, Rate: n(700)},
				},
				BreakpointKg:       n(100),
				BreakpointFee:      n(119700),
				OverBreakpointRate: n(550),
				Calibration:        decimal.Zero,
				RoundPrimaryBand:   true,
			},
		},
		Domestic: Domestic{
			VolumeBreakpointCm3: n(5_000_000),
			VolumeBaseFee:       n(303_000),
			VolumeUnitCm3:       n(10_000),
			VolumeUnitRate:      n(600),
			WeightBreakpointKg:  n(1_000),
			WeightBaseFee:       n(99_400),
			WeightUnitKg:        n(10),
			WeightUnitRate:      n(800),
		},
		RegionMultipliers: map[types.Region]decimal.Decimal{
			types.RegionSudo:  decimal.RequireFromString("1.20"),
			types.RegionOther: decimal.RequireFromString("1.25"),
			types.RegionJeju:  decimal.RequireFromString("1.25"),
		},
	}
}
