// Package types provides common types used across Universe.
package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Decimals is the number of fractional digits of the fungible token.
const Decimals = 9

// Unit is one whole token expressed in base units.
const Unit Amount = 1_000_000_000

// Symbol is the ticker used when formatting amounts.
const Symbol = "UNIV"

var (
	// ErrOverflow is returned when a result does not fit in 64 bits.
	ErrOverflow = errors.New("types: arithmetic overflow")

	// ErrDivisionByZero is returned by MulDiv for a zero denominator.
	ErrDivisionByZero = errors.New("types: division by zero")

	// ErrInvalidAmount is returned when parsing a malformed amount.
	ErrInvalidAmount = errors.New("types: invalid amount")
)

// Amount is a quantity of the fungible token in base units (1e-9 token).
// All arithmetic is integer-only, with no floating point. Divisions truncate
// toward zero and the remainder is dropped.
type Amount int64

// Tokens returns n whole tokens in base units.
func Tokens(n int64) Amount { return Amount(n) * Unit }

// Int64 returns the raw base-unit count.
func (a Amount) Int64() int64 { return int64(a) }

// Add returns a+b, failing with ErrOverflow.
func (a Amount) Add(b Amount) (Amount, error) {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) {
		return 0, fmt.Errorf("%w: %d + %d", ErrOverflow, a, b)
	}
	return s, nil
}

// Sub returns a-b, failing with ErrOverflow.
func (a Amount) Sub(b Amount) (Amount, error) {
	d := a - b
	if (b > 0 && d > a) || (b < 0 && d < a) {
		return 0, fmt.Errorf("%w: %d - %d", ErrOverflow, a, b)
	}
	return d, nil
}

// SaturatingSub returns a-b, or zero when b exceeds a.
func (a Amount) SaturatingSub(b Amount) Amount {
	if b >= a {
		return 0
	}
	return a - b
}

// IsZero returns true if the amount is zero.
func (a Amount) IsZero() bool { return a == 0 }

// IsPositive returns true if the amount is greater than zero.
func (a Amount) IsPositive() bool { return a > 0 }

// IsNegative returns true if the amount is less than zero.
func (a Amount) IsNegative() bool { return a < 0 }

// Min returns the smaller of two amounts.
func (a Amount) Min(b Amount) Amount {
	if a < b {
		return a
	}
	return b
}

// MulDiv computes x × num / den with an exact intermediate product,
// truncating toward zero.
func MulDiv(x Amount, num, den int64) (Amount, error) {
	return MulDivN(x, den, num)
}

// MulDivN computes x × nums[0] × nums[1] ... / den with an exact
// intermediate product, truncating toward zero.
func MulDivN(x Amount, den int64, nums ...int64) (Amount, error) {
	if den == 0 {
		return 0, ErrDivisionByZero
	}

	product := decimal.NewFromInt(int64(x))
	for _, n := range nums {
		product = product.Mul(decimal.NewFromInt(n))
	}

	q, _ := product.QuoRem(decimal.NewFromInt(den), 0)
	if !q.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: %s / %d", ErrOverflow, product.String(), den)
	}
	return Amount(q.IntPart()), nil
}

// Percent returns x × pct / 100, truncated.
func Percent(x Amount, pct int64) (Amount, error) {
	return MulDiv(x, pct, 100)
}

// ParseAmount parses a decimal token quantity such as "1000" or "0.5"
// into base units. More than Decimals fractional digits is an error.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidAmount, s, err)
	}

	scaled := d.Shift(Decimals)
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, fmt.Errorf("%w: %q has more than %d decimals", ErrInvalidAmount, s, Decimals)
	}
	if !scaled.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: %q", ErrOverflow, s)
	}
	return Amount(scaled.IntPart()), nil
}

// FormatMajor returns the whole-token string without symbol.
// Example: "1000.000000000" for Tokens(1000).
func (a Amount) FormatMajor() string {
	return decimal.New(int64(a), -Decimals).StringFixed(Decimals)
}

// String returns a human-readable string with the token symbol.
func (a Amount) String() string {
	return a.FormatMajor() + " " + Symbol
}
