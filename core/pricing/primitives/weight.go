package primitives

import "github.com/shopspring/decimal"

// Volume returns width × depth × height in cm³
func Volume(widthCm, depthCm, heightCm decimal.Decimal) decimal.Decimal {
	return widthCm.Mul(depthCm).Mul(heightCm)
}

// VolumeWeight returns the dimensional weight in kg (volume / 6000)
func VolumeWeight(widthCm, depthCm, heightCm decimal.Decimal) decimal.Decimal {
	return Volume(widthCm, depthCm, heightCm).Div(VolumetricDivisor)
}

// ChargeableWeight returns the greater of actual and volumetric weight
func ChargeableWeight(actualKg, volumeKg decimal.Decimal) decimal.Decimal {
	return decimal.Max(actualKg, volumeKg)
}

// StepsOver counts how many whole units value lies above origin, rounding
// partial units up. A value exactly on a unit boundary takes the lower count.
func StepsOver(value, origin, unit decimal.Decimal) int64 {
	if value.LessThanOrEqual(origin) {
		return 0
	}
	return value.Sub(origin).Div(unit).Ceil().IntPart()
}
