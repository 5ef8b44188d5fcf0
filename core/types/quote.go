// Package types defines the value records exchanged by the quote engine.
// Every record is built fresh per quote and never mutated afterwards.
package types

import (
	"strings"

	"github.com/shopspring/decimal"

	"logiquant/internal/errors"
)

// Mode identifies the international carrier and transport
type Mode string

const (
	// ModeAirCJ is air freight handed to CJ (carrier A)
	ModeAirCJ Mode = "AIR_CJ"

	// ModeAirLotte is air freight handed to Lotte (carrier B)
	ModeAirLotte Mode = "AIR_LOTTE"

	// ModeSea is sea freight
	ModeSea Mode = "SEA"
)

// Modes returns all supported modes in display order
func Modes() []Mode {
	return []Mode{ModeAirCJ, ModeAirLotte, ModeSea}
}

// Valid reports whether m is one of the supported modes
func (m Mode) Valid() bool {
	switch m {
	case ModeAirCJ, ModeAirLotte, ModeSea:
		return true
	}
	return false
}

// String returns the string representation
func (m Mode) String() string {
	return string(m)
}

// Label returns a human-readable carrier name
func (m Mode) Label() string {
	switch m {
	case ModeAirCJ:
		return "Air (CJ)"
	case ModeAirLotte:
		return "Air (Lotte)"
	case ModeSea:
		return "Sea"
	default:
		return string(m)
	}
}

// ParseMode parses a mode name. The short aliases s, cj and lo are accepted.
func ParseMode(raw string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "AIR_CJ", "CJ":
		return ModeAirCJ, nil
	case "AIR_LOTTE", "LO", "LOTTE":
		return ModeAirLotte, nil
	case "SEA", "S":
		return ModeSea, nil
	}
	return "", errors.UnsupportedMode(raw)
}

// Region identifies the destination region of the domestic leg
type Region string

const (
	// RegionSudo is the capital area (region 1)
	RegionSudo Region = "SUDO"

	// RegionOther is every other mainland region (region 2)
	RegionOther Region = "OTHER"

	// RegionJeju is Jeju island (region 3)
	RegionJeju Region = "JEJU"
)

// DefaultRegion is applied when a quote does not name a region
const DefaultRegion = RegionSudo

// Regions returns all supported regions in display order
func Regions() []Region {
	return []Region{RegionSudo, RegionOther, RegionJeju}
}

// Valid reports whether r is one of the supported regions
func (r Region) Valid() bool {
	switch r {
	case RegionSudo, RegionOther, RegionJeju:
		return true
	}
	return false
}

// OrDefault returns r, or DefaultRegion when r is empty
func (r Region) OrDefault() Region {
	if r == "" {
		return DefaultRegion
	}
	return r
}

// String returns the string representation
func (r Region) String() string {
	return string(r)
}

// Label returns a human-readable region name
func (r Region) Label() string {
	switch r {
	case RegionSudo:
		return "capital area"
	case RegionOther:
		return "other regions"
	case RegionJeju:
		return "Jeju"
	default:
		return string(r)
	}
}

// ParseRegion parses a region name. An empty string yields DefaultRegion.
func ParseRegion(raw string) (Region, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "":
		return DefaultRegion, nil
	case "SUDO", "REGION_1":
		return RegionSudo, nil
	case "OTHER", "REGION_2":
		return RegionOther, nil
	case "JEJU", "REGION_3":
		return RegionJeju, nil
	}
	return "", errors.Newf(errors.TypeInput, "unsupported region: %s", raw)
}

// QuoteInput is the cargo description a quote is computed for
type QuoteInput struct {
	WidthCm  float64 `json:"widthCm"`
	DepthCm  float64 `json:"depthCm"`
	HeightCm float64 `json:"heightCm"`
	WeightKg float64 `json:"weightKg"`
	Mode     Mode    `json:"mode"`
	Region   Region  `json:"region,omitempty"`
}

// Breakdown splits the final price into its billed components
type Breakdown struct {
	// BaseShipping is the international carrier fee
	BaseShipping int64 `json:"baseShipping"`

	// DomesticShipping is the secondary carrier fee (0 when not triggered)
	DomesticShipping int64 `json:"domesticShipping"`

	// ExtraCharge is reserved for remote-area surcharges and is always 0
	ExtraCharge int64 `json:"extraCharge"`
}

// Total returns the unrounded sum of all components
func (b Breakdown) Total() int64 {
	return b.BaseShipping + b.DomesticShipping + b.ExtraCharge
}

// QuoteResult is the outcome of a quote. Failures carry Code and Reason only.
type QuoteResult struct {
	Success            bool                `json:"success"`
	FinalPrice         int64               `json:"finalPrice,omitempty"`
	Breakdown          *Breakdown          `json:"breakdown,omitempty"`
	CalculationDetails *CalculationDetails `json:"calculationDetails,omitempty"`
	Warnings           []string            `json:"warnings,omitempty"`
	RatesVersion       string              `json:"ratesVersion,omitempty"`

	Code   errors.Type `json:"code,omitempty"`
	Reason string      `json:"reason,omitempty"`
}

// Failure builds a failed result from a typed error
func Failure(err *errors.Error) QuoteResult {
	return QuoteResult{
		Success: false,
		Code:    err.Type,
		Reason:  err.Message,
	}
}

// WeightBasis records which weight a fee was keyed on
type WeightBasis string

const (
	WeightActual WeightBasis = "actual"
	WeightVolume WeightBasis = "volume"
)

// FeeBranch records which domain of a carrier formula was evaluated
type FeeBranch string

const (
	// BranchReference is the fixed fee at or below the reference weight
	BranchReference FeeBranch = "reference"

	// BranchPrimaryBand is the stepped band structure up to the breakpoint
	BranchPrimaryBand FeeBranch = "primary_band"

	// BranchOverBreakpoint is the flat post-breakpoint formula
	BranchOverBreakpoint FeeBranch = "over_breakpoint"
)

// BandCharge is the contribution of one rate band to a carrier fee
type BandCharge struct {
	FromStep int64           `json:"fromStep"`
	ToStep   int64           `json:"toStep"`
	Rate     decimal.Decimal `json:"rate"`
	Amount   decimal.Decimal `json:"amount"`
}

// Steps returns the number of half-kilogram steps the band covered
func (b BandCharge) Steps() int64 {
	return b.ToStep - b.FromStep + 1
}

// CalculationDetails is a reproducible trace of every intermediate value
type CalculationDetails struct {
	Input            InputEcho               `json:"input"`
	Volume           VolumeDetails           `json:"volume"`
	BaseShipping     BaseShippingDetails     `json:"baseShipping"`
	DomesticShipping DomesticShippingDetails `json:"domesticShipping"`
}

// InputEcho repeats the normalized input
type InputEcho struct {
	WidthCm  float64 `json:"widthCm"`
	DepthCm  float64 `json:"depthCm"`
	HeightCm float64 `json:"heightCm"`
	WeightKg float64 `json:"weightKg"`
	Mode     Mode    `json:"mode"`
	Region   Region  `json:"region"`
}

// VolumeDetails records the weight selection
type VolumeDetails struct {
	VolumeCm3          decimal.Decimal `json:"volumeCm3"`
	VolumeWeightKg     decimal.Decimal `json:"volumeWeightKg"`
	ActualWeightKg     decimal.Decimal `json:"actualWeightKg"`
	ChargeableWeightKg decimal.Decimal `json:"chargeableWeightKg"`
	WeightUsed         WeightBasis     `json:"weightUsed"`
}

// BaseShippingDetails records how the carrier fee was derived
type BaseShippingDetails struct {
	Mode     Mode            `json:"mode"`
	WeightKg decimal.Decimal `json:"weightUsed"`
	Branch   FeeBranch       `json:"branch"`
	Steps    int64           `json:"steps"`
	Bands    []BandCharge    `json:"bands,omitempty"`
	RawFee   decimal.Decimal `json:"rawFee"`
	Fee      int64           `json:"fee"`

	// Method and Calculation are only filled when an explanation is requested
	Method      string `json:"method,omitempty"`
	Calculation string `json:"calculation,omitempty"`
}

// DomesticShippingDetails records whether and how the domestic leg applied
type DomesticShippingDetails struct {
	Required         bool            `json:"required"`
	Reasons          []string        `json:"reasons,omitempty"`
	VolumeFee        int64           `json:"volumeFee,omitempty"`
	WeightFee        int64           `json:"weightFee,omitempty"`
	BaseFee          int64           `json:"baseFee,omitempty"`
	RegionMultiplier decimal.Decimal `json:"regionMultiplier"`
	RawFee           decimal.Decimal `json:"rawFee"`
	Fee              int64           `json:"fee"`

	Calculation string `json:"calculation,omitempty"`
}
