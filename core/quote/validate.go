// Package quote is the shipping quote orchestrator.
// It validates cargo input, selects the chargeable weight, evaluates the
// carrier and domestic-leg formulas and assembles the quote result.
package quote

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"logiquant/core/explanation"
	"logiquant/core/pricing/primitives"
	"logiquant/core/types"
	"logiquant/internal/errors"
)

// Fixed lower bounds of the accepted input
const (
	MinDimensionCm = 0.1
	MinVolumeCm3   = 1.0
	MinWeightKg    = 0.01
)

// Limits are the configurable upper bounds of the accepted input
type Limits struct {
	MaxDimensionCm float64 `json:"max_dimension_cm" yaml:"max_dimension_cm"`
	MaxVolumeCm3   float64 `json:"max_volume_cm3" yaml:"max_volume_cm3"`
	MaxWeightKg    float64 `json:"max_weight_kg" yaml:"max_weight_kg"`
}

// DefaultLimits returns the published input limits
func DefaultLimits() Limits {
	return Limits{
		MaxDimensionCm: 500,
		MaxVolumeCm3:   10_000_000,
		MaxWeightKg:    3_000,
	}
}

// Validate checks the input against limits and returns the first violation.
// Checks run in a fixed order: width, depth, height, volume, weight.
func Validate(in types.QuoteInput, limits Limits) *errors.Error {
	dimensions := []struct {
		name  string
		value float64
	}{
		{"width", in.WidthCm},
		{"depth", in.DepthCm},
		{"height", in.HeightCm},
	}
	for _, d := range dimensions {
		if !within(d.value, MinDimensionCm, limits.MaxDimensionCm) {
			return outOfRange(d.name, d.value, MinDimensionCm, limits.MaxDimensionCm, "cm")
		}
	}

	volume := primitives.Volume(
		decimal.NewFromFloat(in.WidthCm),
		decimal.NewFromFloat(in.DepthCm),
		decimal.NewFromFloat(in.HeightCm),
	)
	if volume.LessThan(decimal.NewFromFloat(MinVolumeCm3)) || volume.GreaterThan(decimal.NewFromFloat(limits.MaxVolumeCm3)) {
		return outOfRange("volume", volume.InexactFloat64(), MinVolumeCm3, limits.MaxVolumeCm3, "cm³")
	}

	if !within(in.WeightKg, MinWeightKg, limits.MaxWeightKg) {
		return outOfRange("weight", in.WeightKg, MinWeightKg, limits.MaxWeightKg, "kg")
	}

	return nil
}

// within reports whether v is finite and in [min, max]
func within(v, min, max float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v >= min && v <= max
}

func outOfRange(name string, got, min, max float64, unit string) *errors.Error {
	value := "a non-finite value"
	if !math.IsNaN(got) && !math.IsInf(got, 0) {
		value = explanation.Quantity(got) + unit
	}
	return errors.Input(fmt.Sprintf("%s must be between %s%s and %s%s, got %s",
		name,
		explanation.Quantity(min), unit,
		explanation.Quantity(max), unit,
		value,
	)).WithContext("field", name)
}
