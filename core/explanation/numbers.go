package explanation

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// Amount formats a monetary amount with thousands separators (12,400)
func Amount(d decimal.Decimal) string {
	if d.IsInteger() {
		return printer.Sprintf("%d", d.IntPart())
	}
	return printer.Sprint(number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(2)))
}

// Quantity formats a measurement such as 0.5, 160 or 10,000,000
func Quantity(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(4)))
}

// Kg formats a decimal weight without grouping noise, e.g. 1.5kg
func Kg(d decimal.Decimal) string {
	return Quantity(d.InexactFloat64()) + "kg"
}
