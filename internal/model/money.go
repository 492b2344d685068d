package model

import "github.com/shopspring/decimal"

// LineTotal returns qty × unit rounded half away from zero to cents.
func LineTotal(qty int, unit float64) float64 {
	return decimal.NewFromInt(int64(qty)).
		Mul(decimal.NewFromFloat(unit)).
		Round(2).
		InexactFloat64()
}

// SumTotals adds amounts without accumulating binary float error.
func SumTotals(amounts ...float64) float64 {
	sum := decimal.Zero
	for _, a := range amounts {
		sum = sum.Add(decimal.NewFromFloat(a))
	}
	return sum.Round(2).InexactFloat64()
}

// Ratio returns num/den rounded to cents, or 0 when den is zero.
func Ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return decimal.NewFromFloat(num).
		Div(decimal.NewFromFloat(den)).
		Round(2).
		InexactFloat64()
}
