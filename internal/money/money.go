// Package money holds the fixed-point amount type used for expenses.
//
// Amounts are stored and summed as int64 minor units (cents). At the JSON
// boundary they travel as decimal major units, e.g. 12.50 or "12.50".
package money

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits kept by Amount.
const Scale = 2

// MaxAmount is the largest amount a single expense may carry (999,999.00).
const MaxAmount Amount = 999999 * 100

var (
	// ErrInvalidAmount is returned for text that is not a decimal number.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrOutOfRange is returned for amounts that do not fit in int64 cents.
	ErrOutOfRange = errors.New("amount out of range")
)

var maxCents = decimal.NewFromInt(1<<63 - 1)

// Amount is a monetary value in minor units.
type Amount int64

// FromMajor converts whole major units to an Amount.
func FromMajor(units int64) Amount {
	return Amount(units * 100)
}

// FromDecimal converts a decimal value in major units, rounding half away
// from zero to two places.
func FromDecimal(d decimal.Decimal) (Amount, error) {
	cents := d.Round(Scale).Shift(Scale)
	if cents.Abs().GreaterThan(maxCents) {
		return 0, ErrOutOfRange
	}
	return Amount(cents.IntPart()), nil
}

// Parse reads a decimal string in major units. A comma is accepted as the
// decimal separator.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return FromDecimal(d)
}

// Decimal returns the amount in major units.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -Scale)
}

// Float64 returns the amount in major units for charting and spreadsheets.
func (a Amount) Float64() float64 {
	f, _ := a.Decimal().Float64()
	return f
}

// Positive reports whether the amount is greater than zero.
func (a Amount) Positive() bool {
	return a > 0
}

// String formats the amount with exactly two decimals.
func (a Amount) String() string {
	return a.Decimal().StringFixed(Scale)
}

// MarshalJSON encodes the amount as a JSON number in major units.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	data = bytes.Trim(data, `"`)
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
