package analytics

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Percent returns numerator/denominator as a percentage rounded to one
// decimal, or 0 when the denominator is 0.
func Percent(numerator, denominator int64) float64 {
	if denominator == 0 {
		return 0
	}
	return decimal.NewFromInt(numerator).
		Mul(hundred).
		Div(decimal.NewFromInt(denominator)).
		Round(1).
		InexactFloat64()
}

// Growth is the percentage change from previous to current, or 0 when there
// is no previous value to compare against.
func Growth(current, previous int64) float64 {
	return Percent(current-previous, previous)
}

// Ratio divides and rounds to one decimal, or returns 0 for a zero divisor.
func Ratio(numerator, denominator int64) float64 {
	if denominator == 0 {
		return 0
	}
	return decimal.NewFromInt(numerator).
		Div(decimal.NewFromInt(denominator)).
		Round(1).
		InexactFloat64()
}
