package rates

import (
	"io"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"

	"logiquant/core/types"
)

// Encode renders t in the HCL rate file format accepted by Parse
func Encode(t *Table) []byte {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	root.SetAttributeValue("version", cty.StringVal(t.Version))

	for _, mode := range types.Modes() {
		c, ok := t.Carriers[mode]
		if !ok {
			continue
		}
		root.AppendNewline()
		block := root.AppendNewBlock("carrier", []string{string(mode)}).Body()
		block.SetAttributeValue("reference_kg", number(c.ReferenceKg))
		block.SetAttributeValue("step_kg", number(c.StepKg))
		block.SetAttributeValue("base_fee", number(c.BaseFee))
		block.SetAttributeValue("breakpoint_kg", number(c.BreakpointKg))
		block.SetAttributeValue("breakpoint_fee", number(c.BreakpointFee))
		block.SetAttributeValue("over_breakpoint_rate", number(c.OverBreakpointRate))
		block.SetAttributeValue("calibration", number(c.Calibration))
		block.SetAttributeValue("round_primary_band", cty.BoolVal(c.RoundPrimaryBand))

		for _, band := range c.Bands {
			block.AppendNewline()
			b := block.AppendNewBlock("band", nil).Body()
			b.SetAttributeValue("up_to_step", cty.NumberIntVal(band.UpToStep))
			b.SetAttributeValue("rate", number(band.Rate))
		}
	}

	root.AppendNewline()
	d := t.Domestic
	dom := root.AppendNewBlock("domestic", nil).Body()
	dom.SetAttributeValue("volume_breakpoint_cm3", number(d.VolumeBreakpointCm3))
	dom.SetAttributeValue("volume_base_fee", number(d.VolumeBaseFee))
	dom.SetAttributeValue("volume_unit_cm3", number(d.VolumeUnitCm3))
	dom.SetAttributeValue("volume_unit_rate", number(d.VolumeUnitRate))
	dom.SetAttributeValue("weight_breakpoint_kg", number(d.WeightBreakpointKg))
	dom.SetAttributeValue("weight_base_fee", number(d.WeightBaseFee))
	dom.SetAttributeValue("weight_unit_kg", number(d.WeightUnitKg))
	dom.SetAttributeValue("weight_unit_rate", number(d.WeightUnitRate))

	for _, region := range types.Regions() {
		m, ok := t.RegionMultipliers[region]
		if !ok {
			continue
		}
		root.AppendNewline()
		rb := root.AppendNewBlock("region", []string{string(region)}).Body()
		rb.SetAttributeValue("multiplier", number(m))
	}

	return f.Bytes()
}

// Write renders t to w
func Write(w io.Writer, t *Table) error {
	_, err := w.Write(Encode(t))
	return err
}

func number(d decimal.Decimal) cty.Value {
	v, err := cty.ParseNumberVal(d.String())
	if err != nil {
		// decimal.String always yields a plain decimal literal
		panic(err)
	}
	return v
}
