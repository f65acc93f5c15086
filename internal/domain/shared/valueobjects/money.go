// Package valueobjects holds value types shared by several aggregates.
package valueobjects

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxPriceCents bounds plan prices at 99,999,999.99.
const MaxPriceCents int64 = 9_999_999_999

// maxCents keeps sums far away from int64 overflow.
const maxCents int64 = 1_000_000_000_000_000

var hundred = decimal.NewFromInt(100)

// Money is an exact amount with two fraction digits, stored as integer cents.
// Sums never touch floating point.
type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func Zero() Money {
	return Money{}
}

// ParseMoney parses a decimal string such as "500", "499.5" or "12.34".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return MoneyFromDecimal(d)
}

// MoneyFromDecimal converts d to Money, rejecting more than two fraction digits.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	scaled := d.Mul(hundred)
	if !scaled.IsInteger() {
		return Money{}, fmt.Errorf("amount %s has more than two decimal places", d.String())
	}
	if scaled.Abs().GreaterThan(decimal.NewFromInt(maxCents)) {
		return Money{}, fmt.Errorf("amount %s is out of range", d.String())
	}
	return Money{cents: scaled.IntPart()}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.cents, -2)
}

// String renders the amount with exactly two fraction digits.
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Number renders the amount as a JSON number literal.
func (m Money) Number() json.Number {
	return json.Number(m.String())
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) Sub(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

func (m Money) IsPositive() bool {
	return m.cents > 0
}

func (m Money) IsZero() bool {
	return m.cents == 0
}

func (m Money) IsNegative() bool {
	return m.cents < 0
}

func (m Money) LessThan(other Money) bool {
	return m.cents < other.cents
}

func (m Money) GreaterOrEqual(other Money) bool {
	return m.cents >= other.cents
}

func (m Money) Equals(other Money) bool {
	return m.cents == other.cents
}

// DivideRound splits m into n parts and rounds half away from zero to cents.
// Used for averages; n <= 0 yields zero.
func (m Money) DivideRound(n int) Money {
	if n <= 0 {
		return Zero()
	}
	avg := decimal.NewFromInt(m.cents).Div(decimal.NewFromInt(int64(n))).Round(0)
	return Money{cents: avg.IntPart()}
}

// Sum adds up amounts.
func Sum(amounts ...Money) Money {
	var total int64
	for _, a := range amounts {
		total += a.cents
	}
	return Money{cents: total}
}
