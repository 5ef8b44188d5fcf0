package output

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"logiquant/core/explanation"
	"logiquant/core/rates"
	"logiquant/core/types"
	"logiquant/core/ui"
)

// CLIFormatter renders quotes for a terminal
type CLIFormatter struct {
	noColor bool
}

// NewCLIFormatter creates a terminal formatter
func NewCLIFormatter(noColor bool) *CLIFormatter {
	return &CLIFormatter{noColor: noColor}
}

// Format returns the format type
func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

// RenderQuote prints the quote card, breakdown and any trace
func (f *CLIFormatter) RenderQuote(w io.Writer, report *QuoteReport) error {
	out := ui.NewWriter(w, f.noColor)
	res := report.Result

	if !res.Success {
		out.Error("%s: %s", res.Code, res.Reason)
		return nil
	}

	details := res.CalculationDetails
	card := out.NewQuoteCard()
	card.FinalPrice = won(res.FinalPrice)
	card.Mode = report.Input.Mode.Label()
	card.Region = report.Input.Region.OrDefault().Label()
	card.RatesVersion = res.RatesVersion
	if details != nil {
		card.Chargeable = fmt.Sprintf("%s (%s weight)",
			explanation.Kg(details.Volume.ChargeableWeightKg.Round(2)), details.Volume.WeightUsed)
	}
	card.Render()

	out.Header("Breakdown")
	table := out.NewTable("Component", "Amount").AlignRight(1)
	table.AddRow("Base shipping", won(res.Breakdown.BaseShipping))
	table.AddRow("Domestic shipping", won(res.Breakdown.DomesticShipping))
	table.AddRow("Extra charge", won(res.Breakdown.ExtraCharge))
	table.AddRow("Total", won(res.FinalPrice))
	table.Render()

	if details != nil && details.BaseShipping.Calculation != "" {
		renderTrace(out, details)
	}

	if len(res.Warnings) > 0 {
		out.Println("")
		for _, warning := range res.Warnings {
			out.Warning("%s", warning)
		}
	}
	return nil
}

func renderTrace(out *ui.Writer, d *types.CalculationDetails) {
	out.Header("Calculation")

	out.SubHeader("Weight")
	out.Println("  volume       %scm³", explanation.Amount(d.Volume.VolumeCm3))
	out.Println("  volumetric   %s", explanation.Kg(d.Volume.VolumeWeightKg.Round(2)))
	out.Println("  actual       %s", explanation.Kg(d.Volume.ActualWeightKg))
	out.Println("  chargeable   %s", explanation.Kg(d.Volume.ChargeableWeightKg.Round(2)))
	out.Println("")

	out.SubHeader("Base shipping: " + d.BaseShipping.Method)
	out.Println("  %s", d.BaseShipping.Calculation)
	out.Println("")

	out.SubHeader("Domestic shipping")
	if !d.DomesticShipping.Required {
		out.Println("  not required")
		return
	}
	for _, reason := range d.DomesticShipping.Reasons {
		out.Println("  because %s", reason)
	}
	out.Println("  %s", d.DomesticShipping.Calculation)
}

// RenderRates prints the carrier and domestic constants
func (f *CLIFormatter) RenderRates(w io.Writer, table *rates.Table) error {
	out := ui.NewWriter(w, f.noColor)
	out.Header("Rate table " + table.Version)

	for _, mode := range types.Modes() {
		c, ok := table.Carrier(mode)
		if !ok {
			continue
		}
		out.SubHeader(fmt.Sprintf("%s (%s)", mode.Label(), mode))

		t := out.NewTable("Weight", "Rate").AlignRight(1)
		t.AddRow("up to "+explanation.Kg(c.ReferenceKg), explanation.Amount(c.BaseFee))
		previous := int64(0)
		for _, band := range c.Bands {
			from := c.ReferenceKg.Add(c.StepKg.Mul(decimal.NewFromInt(previous)))
			label := fmt.Sprintf("%s to %s", explanation.Kg(from), explanation.Kg(c.BreakpointKg))
			if !band.Unlimited() {
				to := c.ReferenceKg.Add(c.StepKg.Mul(decimal.NewFromInt(band.UpToStep)))
				label = fmt.Sprintf("%s to %s", explanation.Kg(from), explanation.Kg(to))
			}
			t.AddRow(label, fmt.Sprintf("+%s per %s", explanation.Amount(band.Rate), explanation.Kg(c.StepKg)))
			previous = band.UpToStep
		}
		t.AddRow("at "+explanation.Kg(c.BreakpointKg)+" (restart)", explanation.Amount(c.BreakpointFee))
		t.AddRow("over "+explanation.Kg(c.BreakpointKg),
			fmt.Sprintf("+%s per %s", explanation.Amount(c.OverBreakpointRate), explanation.Kg(c.StepKg)))
		if !c.Calibration.IsZero() {
			t.AddRow("calibration over "+explanation.Kg(c.BreakpointKg), "+"+explanation.Amount(c.Calibration))
		}
		t.Render()
		out.Println("")
	}

	d := table.Domestic
	out.SubHeader("Domestic leg")
	t := out.NewTable("Basis", "Base fee", "Then").AlignRight(1)
	t.AddRow("volume ≤ "+explanation.Amount(d.VolumeBreakpointCm3)+"cm³", explanation.Amount(d.VolumeBaseFee),
		fmt.Sprintf("+%s per %scm³", explanation.Amount(d.VolumeUnitRate), explanation.Amount(d.VolumeUnitCm3)))
	t.AddRow("weight ≤ "+explanation.Kg(d.WeightBreakpointKg), explanation.Amount(d.WeightBaseFee),
		fmt.Sprintf("+%s per %s", explanation.Amount(d.WeightUnitRate), explanation.Kg(d.WeightUnitKg)))
	t.Render()
	out.Println("")

	out.SubHeader("Region multipliers")
	regions := out.NewTable("Region", "Multiplier").AlignRight(1)
	for _, region := range types.Regions() {
		if m, ok := table.RegionMultiplier(region); ok {
			regions.AddRow(fmt.Sprintf("%s (%s)", region, region.Label()), "×"+m.StringFixed(2))
		}
	}
	regions.Render()
	return nil
}

func won(amount int64) string {
	return explanation.Amount(decimal.NewFromInt(amount))
}
