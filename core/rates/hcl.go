package rates

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"

	"logiquant/core/pricing/primitives"
	"logiquant/core/types"
	"logiquant/internal/errors"
)

// rateFile is the HCL layout of a rate table file
type rateFile struct {
	Version  string         `hcl:"version"`
	Carriers []carrierBlock `hcl:"carrier,block"`
	Domestic domesticBlock  `hcl:"domestic,block"`
	Regions  []regionBlock  `hcl:"region,block"`
}

type carrierBlock struct {
	Mode               string         `hcl:"mode,label"`
	ReferenceKg        hcl.Expression `hcl:"reference_kg"`
	StepKg             hcl.Expression `hcl:"step_kg"`
	BaseFee            hcl.Expression `hcl:"base_fee"`
	BreakpointKg       hcl.Expression `hcl:"breakpoint_kg"`
	BreakpointFee      hcl.Expression `hcl:"breakpoint_fee"`
	OverBreakpointRate hcl.Expression `hcl:"over_breakpoint_rate"`
	Calibration        hcl.Expression `hcl:"calibration,optional"`
	RoundPrimaryBand   *bool          `hcl:"round_primary_band,optional"`
	Bands              []bandBlock    `hcl:"band,block"`
}

type bandBlock struct {
	UpToStep int64          `hcl:"up_to_step"`
	Rate     hcl.Expression `hcl:"rate"`
}

type domesticBlock struct {
	VolumeBreakpointCm3 hcl.Expression `hcl:"volume_breakpoint_cm3"`
	VolumeBaseFee       hcl.Expression `hcl:"volume_base_fee"`
	VolumeUnitCm3       hcl.Expression `hcl:"volume_unit_cm3"`
	VolumeUnitRate      hcl.Expression `hcl:"volume_unit_rate"`
	WeightBreakpointKg  hcl.Expression `hcl:"weight_breakpoint_kg"`
	WeightBaseFee       hcl.Expression `hcl:"weight_base_fee"`
	WeightUnitKg        hcl.Expression `hcl:"weight_unit_kg"`
	WeightUnitRate      hcl.Expression `hcl:"weight_unit_rate"`
}

type regionBlock struct {
	Region     string         `hcl:"region,label"`
	Multiplier hcl.Expression `hcl:"multiplier"`
}

// LoadFile reads and validates an HCL rate table
func LoadFile(path string) (*Table, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("rate table", path)
		}
		return nil, errors.Wrap(errors.TypeConfig, "failed to read rate table", err)
	}
	return Parse(src, path)
}

// Parse decodes an HCL rate table. filename is only used in diagnostics.
func Parse(src []byte, filename string) (*Table, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diagError(diags)
	}

	var raw rateFile
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, diagError(diags)
	}

	table, diags := raw.toTable()
	if diags.HasErrors() {
		return nil, diagError(diags)
	}

	if err := table.Validate(); err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "invalid rate table %s", filename)
	}
	return table, nil
}

func (f *rateFile) toTable() (*Table, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	num := func(expr hcl.Expression) decimal.Decimal {
		v, d := decodeNumber(expr)
		diags = append(diags, d...)
		return v
	}

	table := &Table{
		Version:           f.Version,
		Carriers:          make(map[types.Mode]Carrier, len(f.Carriers)),
		RegionMultipliers: make(map[types.Region]decimal.Decimal, len(f.Regions)),
	}

	for _, cb := range f.Carriers {
		mode, err := types.ParseMode(cb.Mode)
		if err != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unsupported carrier",
				Detail:   fmt.Sprintf("carrier %q is not one of AIR_CJ, AIR_LOTTE, SEA", cb.Mode),
				Subject:  cb.ReferenceKg.Range().Ptr(),
			})
			continue
		}
		if _, dup := table.Carriers[mode]; dup {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate carrier",
				Detail:   fmt.Sprintf("carrier %q is declared more than once", mode),
				Subject:  cb.ReferenceKg.Range().Ptr(),
			})
			continue
		}

		c := Carrier{
			Mode:               mode,
			ReferenceKg:        num(cb.ReferenceKg),
			StepKg:             num(cb.StepKg),
			BaseFee:            num(cb.BaseFee),
			BreakpointKg:       num(cb.BreakpointKg),
			BreakpointFee:      num(cb.BreakpointFee),
			OverBreakpointRate: num(cb.OverBreakpointRate),
			Calibration:        decimal.Zero,
			RoundPrimaryBand:   true,
		}
		if isSet(cb.Calibration) {
			c.Calibration = num(cb.Calibration)
		}
		if cb.RoundPrimaryBand != nil {
			c.RoundPrimaryBand = *cb.RoundPrimaryBand
		}
		for _, bb := range cb.Bands {
			c.Bands = append(c.Bands, primitives.StepBand{
				UpToStep: bb.UpToStep,
				Rate:     num(bb.Rate),
			})
		}
		table.Carriers[mode] = c
	}

	d := f.Domestic
	table.Domestic = Domestic{
		VolumeBreakpointCm3: num(d.VolumeBreakpointCm3),
		VolumeBaseFee:       num(d.VolumeBaseFee),
		VolumeUnitCm3:       num(d.VolumeUnitCm3),
		VolumeUnitRate:      num(d.VolumeUnitRate),
		WeightBreakpointKg:  num(d.WeightBreakpointKg),
		WeightBaseFee:       num(d.WeightBaseFee),
		WeightUnitKg:        num(d.WeightUnitKg),
		WeightUnitRate:      num(d.WeightUnitRate),
	}

	for _, rb := range f.Regions {
		region, err := types.ParseRegion(rb.Region)
		if err != nil || rb.Region == "" {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unsupported region",
				Detail:   fmt.Sprintf("region %q is not one of SUDO, OTHER, JEJU", rb.Region),
				Subject:  rb.Multiplier.Range().Ptr(),
			})
			continue
		}
		table.RegionMultipliers[region] = num(rb.Multiplier)
	}

	return table, diags
}

// isSet reports whether an optional attribute was written in the file.
// gohcl hands absent optional expressions over as a synthetic null literal.
func isSet(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	v, diags := expr.Value(nil)
	return !diags.HasErrors() && !v.IsNull()
}

// decodeNumber evaluates a constant numeric attribute without float rounding
func decodeNumber(expr hcl.Expression) (decimal.Decimal, hcl.Diagnostics) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return decimal.Zero, diags
	}
	if val.IsNull() || !val.IsKnown() || !val.Type().Equals(cty.Number) {
		return decimal.Zero, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid rate value",
			Detail:   "rate attributes must be constant numbers",
			Subject:  expr.Range().Ptr(),
		}}
	}

	dec, err := decimal.NewFromString(val.AsBigFloat().Text('f', -1))
	if err != nil {
		return decimal.Zero, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid rate value",
			Detail:   err.Error(),
			Subject:  expr.Range().Ptr(),
		}}
	}
	return dec, nil
}

func diagError(diags hcl.Diagnostics) error {
	var first *hcl.Diagnostic
	for _, d := range diags {
		if d.Severity == hcl.DiagError {
			first = d
			break
		}
	}
	if first == nil {
		return errors.Parsing("failed to parse rate table", diags)
	}

	err := errors.Parsing(first.Summary+": "+first.Detail, diags)
	if first.Subject != nil {
		err.WithContext("file", first.Subject.Filename).WithContext("line", first.Subject.Start.Line)
	}
	return err
}
