package primitives

import "github.com/shopspring/decimal"

// RoundUpToHundred returns the smallest multiple of 100 that is >= amount.
func RoundUpToHundred(amount decimal.Decimal) decimal.Decimal {
	return RoundUpTo(amount, hundred)
}

// RoundUpTo returns the smallest multiple of unit that is >= amount.
func RoundUpTo(amount, unit decimal.Decimal) decimal.Decimal {
	if unit.Sign() <= 0 {
		return amount
	}
	return amount.Div(unit).Ceil().Mul(unit)
}

// Won rounds amount up to the next hundred and returns it as an integer.
func Won(amount decimal.Decimal) int64 {
	return RoundUpToHundred(amount).IntPart()
}
