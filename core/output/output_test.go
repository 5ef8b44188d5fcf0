package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap"

	"logiquant/core/quote"
	"logiquant/core/rates"
	"logiquant/core/types"
)

func report(t *testing.T, explain bool, in types.QuoteInput) *QuoteReport {
	t.Helper()
	config := quote.DefaultCalculatorConfig()
	config.Logger = zap.NewNop()
	calc := quote.NewCalculator(nil, config)

	res := calc.Calculate(in)
	if explain {
		res = calc.Explain(in)
	}
	return &QuoteReport{Input: in, Result: res}
}

var heavySea = types.QuoteInput{WidthCm: 50, DepthCm: 40, HeightCm: 30, WeightKg: 150, Mode: types.ModeSea}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in       string
		expected Format
		wantErr  bool
	}{
		{"", FormatCLI, false},
		{"JSON", FormatJSON, false},
		{" text ", FormatText, false},
		{"html", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.expected {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(true)
	for _, f := range []Format{FormatCLI, FormatJSON, FormatText} {
		if _, ok := r.Get(f); !ok {
			t.Errorf("missing formatter %s", f)
		}
	}
	if err := r.Register(NewJSONFormatter()); err == nil {
		t.Error("expected duplicate registration to fail")
	}
	if got := r.Formats(); len(got) != 3 || got[0] != FormatCLI {
		t.Errorf("unexpected formats %v", got)
	}
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTextFormatter().RenderQuote(&buf, report(t, false, heavySea)); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "538300\n" {
		t.Errorf("unexpected output %q", buf.String())
	}

	buf.Reset()
	bad := heavySea
	bad.WeightKg = 0
	_ = NewTextFormatter().RenderQuote(&buf, report(t, false, bad))
	if !strings.HasPrefix(buf.String(), "INVALID_INPUT: weight") {
		t.Errorf("unexpected failure output %q", buf.String())
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONFormatter().RenderQuote(&buf, report(t, false, heavySea)); err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		Success    bool  `json:"success"`
		FinalPrice int64 `json:"finalPrice"`
		Breakdown  struct {
			DomesticShipping int64 `json:"domesticShipping"`
		} `json:"breakdown"`
		RatesVersion string `json:"ratesVersion"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if !decoded.Success || decoded.FinalPrice != 538300 || decoded.Breakdown.DomesticShipping != 363600 {
		t.Errorf("unexpected decoded result %+v", decoded)
	}
	if decoded.RatesVersion != rates.DefaultVersion {
		t.Errorf("unexpected rates version %q", decoded.RatesVersion)
	}
}

func TestCLIFormatterQuote(t *testing.T) {
	var buf bytes.Buffer
	if err := NewCLIFormatter(true).RenderQuote(&buf, report(t, true, heavySea)); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{
		"538,300",
		"Base shipping",
		"174,700",
		"363,600",
		"formula (over 100kg)",
		"because actual weight 150kg > 20kg",
		"⚠ sea weight above 100kg",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestCLIFormatterWithoutTrace(t *testing.T) {
	var buf bytes.Buffer
	in := types.QuoteInput{WidthCm: 30, DepthCm: 20, HeightCm: 15, WeightKg: 10, Mode: types.ModeAirCJ}
	_ = NewCLIFormatter(true).RenderQuote(&buf, report(t, false, in))

	out := buf.String()
	if strings.Contains(out, "Calculation") {
		t.Errorf("trace should only be printed when explained:\n%s", out)
	}
	if !strings.Contains(out, "26,700") {
		t.Errorf("expected the price in output:\n%s", out)
	}
}

func TestCLIFormatterRates(t *testing.T) {
	var buf bytes.Buffer
	if err := NewCLIFormatter(true).RenderRates(&buf, rates.Default()); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{
		"Rate table 2025-12-18",
		"Air (CJ) (AIR_CJ)",
		"0.5kg to 1kg",
		"5kg to 10kg",
		"+1,430 per 0.5kg",
		"calibration over 10kg",
		"303,000",
		"JEJU (Jeju)",
		"×1.25",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestTextFormatterRatesIsHCL(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTextFormatter().RenderRates(&buf, rates.Default()); err != nil {
		t.Fatal(err)
	}
	if _, err := rates.Parse(buf.Bytes(), "export.hcl"); err != nil {
		t.Fatalf("exported table does not parse: %v", err)
	}
}
