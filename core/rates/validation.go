package rates

import (
	"github.com/shopspring/decimal"

	"logiquant/core/types"
	"logiquant/internal/errors"
)

// Validate checks that the table can price every mode and region
func (t *Table) Validate() error {
	if t.Version == "" {
		return errors.Config("rate table version is required")
	}

	for _, mode := range types.Modes() {
		c, ok := t.Carriers[mode]
		if !ok {
			return errors.Config("rate table has no carrier entry").WithContext("mode", string(mode))
		}
		if err := c.validate(); err != nil {
			return err.WithContext("mode", string(mode))
		}
	}

	for mode := range t.Carriers {
		if !mode.Valid() {
			return errors.Config("rate table names an unsupported carrier").WithContext("mode", string(mode))
		}
	}

	one := decimal.NewFromInt(1)
	for _, region := range types.Regions() {
		m, ok := t.RegionMultipliers[region]
		if !ok {
			return errors.Config("rate table has no region multiplier").WithContext("region", string(region))
		}
		if m.LessThan(one) {
			return errors.Newf(errors.TypeConfig, "region multiplier %s is below 1.0", m).WithContext("region", string(region))
		}
	}

	d := t.Domestic
	if !d.VolumeUnitCm3.IsPositive() || !d.WeightUnitKg.IsPositive() {
		return errors.Config("domestic volume and weight units must be positive")
	}
	if d.VolumeBreakpointCm3.IsNegative() || d.WeightBreakpointKg.IsNegative() {
		return errors.Config("domestic breakpoints must not be negative")
	}

	return nil
}

func (c Carrier) validate() *errors.Error {
	if !c.ReferenceKg.IsPositive() {
		return errors.Config("reference weight must be positive")
	}
	if !c.StepKg.IsPositive() {
		return errors.Config("step weight must be positive")
	}
	if !c.BreakpointKg.GreaterThan(c.ReferenceKg) {
		return errors.Config("breakpoint must be above the reference weight")
	}
	if c.BaseFee.IsNegative() || c.BreakpointFee.IsNegative() || c.OverBreakpointRate.IsNegative() {
		return errors.Config("fees and rates must not be negative")
	}
	if len(c.Bands) == 0 {
		return errors.Config("at least one rate band is required")
	}

	previous := int64(0)
	for i, band := range c.Bands {
		last := i == len(c.Bands)-1
		if band.Rate.IsNegative() {
			return errors.Newf(errors.TypeConfig, "band %d has a negative rate", i)
		}
		if band.Unlimited() {
			if !last {
				return errors.Newf(errors.TypeConfig, "band %d is unlimited but not last", i)
			}
			continue
		}
		if last {
			return errors.Config("the last rate band must be unlimited (up_to_step = 0)")
		}
		if band.UpToStep <= previous {
			return errors.Newf(errors.TypeConfig, "band %d does not extend past step %d", i, previous)
		}
		previous = band.UpToStep
	}

	return nil
}
