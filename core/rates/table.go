// Package rates holds the versioned rate constants the quote engine prices with.
//
// A Table is loaded once at process start, either from the compiled-in
// defaults or from an HCL rate file, and is never mutated afterwards.
// Consumers that keep a table should hold their own Clone.
package rates

import (
	"github.com/shopspring/decimal"

	"logiquant/core/pricing/primitives"
	"logiquant/core/types"
)

// Carrier holds the coefficients of one carrier's piecewise formula
type Carrier struct {
	// Mode is the carrier this entry prices
	Mode types.Mode `json:"mode"`

	// ReferenceKg is the weight covered by BaseFee
	ReferenceKg decimal.Decimal `json:"referenceKg"`

	// StepKg is the weight increment every band rate is charged per
	StepKg decimal.Decimal `json:"stepKg"`

	// BaseFee is the fee at or below ReferenceKg
	BaseFee decimal.Decimal `json:"baseFee"`

	// Bands are the ordered per-step rates between ReferenceKg and BreakpointKg
	Bands []primitives.StepBand `json:"bands"`

	// BreakpointKg is the weight above which the flat formula applies
	BreakpointKg decimal.Decimal `json:"breakpointKg"`

	// BreakpointFee is the published fee the flat formula starts from
	BreakpointFee decimal.Decimal `json:"breakpointFee"`

	// OverBreakpointRate is the amount per step above BreakpointKg
	OverBreakpointRate decimal.Decimal `json:"overBreakpointRate"`

	// Calibration is added to every over-breakpoint fee
	Calibration decimal.Decimal `json:"calibration"`

	// RoundPrimaryBand rounds band results up to 100. Some published tables
	// quote band prices unrounded; the orchestrator still rounds before exposure.
	RoundPrimaryBand bool `json:"roundPrimaryBand"`
}

// Domestic holds the secondary carrier constants
type Domestic struct {
	VolumeBreakpointCm3 decimal.Decimal `json:"volumeBreakpointCm3"`
	VolumeBaseFee       decimal.Decimal `json:"volumeBaseFee"`
	VolumeUnitCm3       decimal.Decimal `json:"volumeUnitCm3"`
	VolumeUnitRate      decimal.Decimal `json:"volumeUnitRate"`

	WeightBreakpointKg decimal.Decimal `json:"weightBreakpointKg"`
	WeightBaseFee      decimal.Decimal `json:"weightBaseFee"`
	WeightUnitKg       decimal.Decimal `json:"weightUnitKg"`
	WeightUnitRate     decimal.Decimal `json:"weightUnitRate"`
}

// Table is a complete, versioned set of rate constants
type Table struct {
	// Version identifies the rate revision for traceability
	Version string `json:"version"`

	Carriers          map[types.Mode]Carrier            `json:"carriers"`
	Domestic          Domestic                          `json:"domestic"`
	RegionMultipliers map[types.Region]decimal.Decimal `json:"regionMultipliers"`
}

// Carrier returns the coefficients for a mode
func (t *Table) Carrier(mode types.Mode) (Carrier, bool) {
	c, ok := t.Carriers[mode]
	return c, ok
}

// RegionMultiplier returns the domestic surcharge multiplier for a region
func (t *Table) RegionMultiplier(region types.Region) (decimal.Decimal, bool) {
	m, ok := t.RegionMultipliers[region]
	return m, ok
}

// Clone returns a deep copy that shares no slices or maps with t
func (t *Table) Clone() *Table {
	out := &Table{
		Version:           t.Version,
		Carriers:          make(map[types.Mode]Carrier, len(t.Carriers)),
		Domestic:          t.Domestic,
		RegionMultipliers: make(map[types.Region]decimal.Decimal, len(t.RegionMultipliers)),
	}
	for mode, c := range t.Carriers {
		c.Bands = append([]primitives.StepBand(nil), c.Bands...)
		out.Carriers[mode] = c
	}
	for region, m := range t.RegionMultipliers {
		out.RegionMultipliers[region] = m
	}
	return out
}
