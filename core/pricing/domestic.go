package pricing

import (
	"github.com/shopspring/decimal"

	"logiquant/core/pricing/primitives"
	"logiquant/core/rates"
)

// DomesticFee is the secondary carrier fee with its intermediate values
type DomesticFee struct {
	VolumeFee  decimal.Decimal
	WeightFee  decimal.Decimal
	BaseFee    decimal.Decimal
	Multiplier decimal.Decimal
	Raw        decimal.Decimal
	Fee        decimal.Decimal
}

// DomesticVolumeFee prices a shipment by bulk. At or below the breakpoint the
// published base fee applies; above it every started unit adds the unit rate.
func DomesticVolumeFee(d rates.Domestic, volumeCm3 decimal.Decimal) decimal.Decimal {
	units := primitives.StepsOver(volumeCm3, d.VolumeBreakpointCm3, d.VolumeUnitCm3)
	raw := d.VolumeBaseFee.Add(d.VolumeUnitRate.Mul(decimal.NewFromInt(units)))
	return primitives.RoundUpToHundred(raw)
}

// DomesticWeightFee prices a shipment by mass, in the same shape as
// DomesticVolumeFee.
func DomesticWeightFee(d rates.Domestic, weightKg decimal.Decimal) decimal.Decimal {
	units := primitives.StepsOver(weightKg, d.WeightBreakpointKg, d.WeightUnitKg)
	raw := d.WeightBaseFee.Add(d.WeightUnitRate.Mul(decimal.NewFromInt(units)))
	return primitives.RoundUpToHundred(raw)
}

// DomesticLegFee bills whichever of bulk or mass is more expensive, then
// applies the destination region multiplier.
func DomesticLegFee(d rates.Domestic, multiplier, volumeCm3, weightKg decimal.Decimal) DomesticFee {
	fee := DomesticFee{
		VolumeFee:  DomesticVolumeFee(d, volumeCm3),
		WeightFee:  DomesticWeightFee(d, weightKg),
		Multiplier: multiplier,
	}
	fee.BaseFee = decimal.Max(fee.VolumeFee, fee.WeightFee)
	fee.Raw = fee.BaseFee.Mul(multiplier)
	fee.Fee = primitives.RoundUpToHundred(fee.Raw)
	return fee
}
