package quote

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"logiquant/core/explanation"
	"logiquant/core/pricing"
	"logiquant/core/pricing/primitives"
	"logiquant/core/rates"
	"logiquant/core/types"
	"logiquant/internal/errors"
	"logiquant/internal/logging"
)

// Thresholds decide when the domestic leg is added to a quote
type Thresholds struct {
	// WeightKg is compared against the actual (not chargeable) weight
	WeightKg float64 `json:"weight_kg" yaml:"weight_kg"`

	// SumOfSidesCm is compared against width + depth + height
	SumOfSidesCm float64 `json:"sum_of_sides_cm" yaml:"sum_of_sides_cm"`
}

// DefaultThresholds returns the published domestic-leg thresholds
func DefaultThresholds() Thresholds {
	return Thresholds{
		WeightKg:     20,
		SumOfSidesCm: 160,
	}
}

// CalculatorConfig configures a Calculator
type CalculatorConfig struct {
	Limits     Limits
	Thresholds Thresholds

	// Logger receives one debug entry per quote (nil = logging.Logger)
	Logger *zap.Logger
}

// DefaultCalculatorConfig returns the published limits and thresholds
func DefaultCalculatorConfig() CalculatorConfig {
	return CalculatorConfig{
		Limits:     DefaultLimits(),
		Thresholds: DefaultThresholds(),
	}
}

// Calculator computes shipping quotes against one rate table.
// It is immutable after construction and safe for concurrent use.
type Calculator struct {
	table      *rates.Table
	limits     Limits
	thresholds Thresholds
	logger     *zap.Logger
}

// NewCalculator creates a calculator. A nil table uses rates.Default().
func NewCalculator(table *rates.Table, config CalculatorConfig) *Calculator {
	if table == nil {
		table = rates.Default()
	}
	logger := config.Logger
	if logger == nil {
		logger = logging.Logger
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{
		table:      table.Clone(),
		limits:     config.Limits,
		thresholds: config.Thresholds,
		logger:     logger,
	}
}

// RatesVersion returns the version of the rate table in use
func (c *Calculator) RatesVersion() string {
	return c.table.Version
}

// Rates returns a copy of the rate table in use
func (c *Calculator) Rates() *rates.Table {
	return c.table.Clone()
}

// Limits returns the input limits in use
func (c *Calculator) Limits() Limits {
	return c.limits
}

// Calculate computes a quote with its numeric trace
func (c *Calculator) Calculate(in types.QuoteInput) types.QuoteResult {
	return c.calculate(in, false)
}

// Explain computes a quote whose trace also carries human-readable formulas
func (c *Calculator) Explain(in types.QuoteInput) types.QuoteResult {
	return c.calculate(in, true)
}

func (c *Calculator) calculate(in types.QuoteInput, explain bool) types.QuoteResult {
	if err := Validate(in, c.limits); err != nil {
		return c.fail(err)
	}

	carrier, ok := c.table.Carrier(in.Mode)
	if !ok {
		return c.fail(errors.UnsupportedMode(string(in.Mode)))
	}

	region := in.Region.OrDefault()
	multiplier, ok := c.table.RegionMultiplier(region)
	if !ok {
		return c.fail(errors.Newf(errors.TypeInput, "unsupported region: %s", region))
	}

	width := decimal.NewFromFloat(in.WidthCm)
	depth := decimal.NewFromFloat(in.DepthCm)
	height := decimal.NewFromFloat(in.HeightCm)
	actual := decimal.NewFromFloat(in.WeightKg)

	volume := primitives.Volume(width, depth, height)
	volumeWeight := primitives.VolumeWeight(width, depth, height)
	chargeable := primitives.ChargeableWeight(actual, volumeWeight)
	basis := types.WeightActual
	if volumeWeight.GreaterThan(actual) {
		basis = types.WeightVolume
	}

	// Base fee
	fee := pricing.CarrierFee(carrier, chargeable)
	baseFee := fee.Rounded()

	details := &types.CalculationDetails{
		Input: types.InputEcho{
			WidthCm:  in.WidthCm,
			DepthCm:  in.DepthCm,
			HeightCm: in.HeightCm,
			WeightKg: in.WeightKg,
			Mode:     in.Mode,
			Region:   region,
		},
		Volume: types.VolumeDetails{
			VolumeCm3:          volume,
			VolumeWeightKg:     volumeWeight,
			ActualWeightKg:     actual,
			ChargeableWeightKg: chargeable,
			WeightUsed:         basis,
		},
		BaseShipping: types.BaseShippingDetails{
			Mode:     in.Mode,
			WeightKg: chargeable,
			Branch:   fee.Branch,
			Steps:    fee.Steps,
			Bands:    fee.Bands,
			RawFee:   fee.Raw,
			Fee:      baseFee,
		},
	}
	if explain {
		e := explanation.Carrier(carrier, fee, decimal.NewFromInt(baseFee))
		details.BaseShipping.Method = e.Method
		details.BaseShipping.Calculation = e.Calculation()
		c.logger.Debug(e.ToNarrative())
	}

	// Domestic leg
	domestic := types.DomesticShippingDetails{RegionMultiplier: multiplier, RawFee: decimal.Zero}
	domestic.Reasons = c.domesticReasons(actual, width.Add(depth).Add(height))
	if len(domestic.Reasons) > 0 {
		leg := pricing.DomesticLegFee(c.table.Domestic, multiplier, volume, actual)
		domestic.Required = true
		domestic.VolumeFee = leg.VolumeFee.IntPart()
		domestic.WeightFee = leg.WeightFee.IntPart()
		domestic.BaseFee = leg.BaseFee.IntPart()
		domestic.RawFee = leg.Raw
		domestic.Fee = leg.Fee.IntPart()
		if explain {
			e := explanation.Domestic(leg, region)
			domestic.Calculation = e.Calculation()
			c.logger.Debug(e.ToNarrative())
		}
	}
	details.DomesticShipping = domestic

	breakdown := &types.Breakdown{
		BaseShipping:     baseFee,
		DomesticShipping: domestic.Fee,
		ExtraCharge:      0,
	}
	finalPrice := primitives.Won(decimal.NewFromInt(breakdown.Total()))

	c.logger.Debug("quote calculated",
		zap.String("mode", string(in.Mode)),
		zap.String("region", string(region)),
		zap.String("chargeable_kg", chargeable.String()),
		zap.String("branch", string(fee.Branch)),
		zap.Bool("domestic", domestic.Required),
		zap.Int64("final_price", finalPrice),
	)

	return types.QuoteResult{
		Success:            true,
		FinalPrice:         finalPrice,
		Breakdown:          breakdown,
		CalculationDetails: details,
		Warnings:           c.warnings(carrier, basis, actual, volumeWeight, chargeable),
		RatesVersion:       c.table.Version,
	}
}

func (c *Calculator) fail(err *errors.Error) types.QuoteResult {
	c.logger.Debug("quote rejected", zap.String("code", string(err.Type)), zap.String("reason", err.Message))
	return types.Failure(err)
}

// domesticReasons lists every threshold the cargo exceeds (strictly)
func (c *Calculator) domesticReasons(actual, sumOfSides decimal.Decimal) []string {
	var reasons []string
	weightLimit := decimal.NewFromFloat(c.thresholds.WeightKg)
	if actual.GreaterThan(weightLimit) {
		reasons = append(reasons, explanation.TriggerReason("actual weight", actual, weightLimit, "kg"))
	}
	sidesLimit := decimal.NewFromFloat(c.thresholds.SumOfSidesCm)
	if sumOfSides.GreaterThan(sidesLimit) {
		reasons = append(reasons, explanation.TriggerReason("sum of sides", sumOfSides, sidesLimit, "cm"))
	}
	return reasons
}

func (c *Calculator) warnings(carrier rates.Carrier, basis types.WeightBasis, actual, volumeWeight, chargeable decimal.Decimal) []string {
	var warnings []string
	if basis == types.WeightVolume {
		warnings = append(warnings, fmt.Sprintf(
			"charged by volumetric weight %s (actual weight %s)",
			explanation.Kg(volumeWeight.Round(2)), explanation.Kg(actual)))
	}
	if carrier.Mode == types.ModeSea && chargeable.GreaterThan(carrier.BreakpointKg) {
		warnings = append(warnings, fmt.Sprintf(
			"sea weight above %s is priced from the %s rate of %s, which can be lower than the rate at exactly %s",
			explanation.Kg(carrier.BreakpointKg), explanation.Kg(carrier.BreakpointKg),
			explanation.Amount(carrier.BreakpointFee), explanation.Kg(carrier.BreakpointKg)))
	}
	return warnings
}
