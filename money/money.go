package money

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// CentPlaces is the number of decimal places kept for settled amounts.
const CentPlaces int32 = 2

var ErrDivisionByZero = errors.New("money: division by zero")

// Money is an immutable monetary amount backed by an arbitrary-precision
// decimal. All operations return new values.
type Money struct {
	amount decimal.Decimal
}

func New(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

// FromFloat converts a boundary float64 into Money, rounded to cents.
func FromFloat(amount float64) Money {
	return Money{amount: decimal.NewFromFloat(amount).Round(CentPlaces)}
}

func FromString(amount string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return Money{amount: d}, nil
}

func Zero() Money {
	return Money{amount: decimal.Zero}
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor)}
}

func (m Money) Div(divisor decimal.Decimal) (Money, error) {
	if divisor.IsZero() {
		return Money{}, ErrDivisionByZero
	}
	return Money{amount: m.amount.Div(divisor)}, nil
}

func (m Money) Neg() Money {
	return Money{amount: m.amount.Neg()}
}

// Cmp returns -1, 0 or +1 like decimal.Decimal.Cmp.
func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.amount.GreaterThanOrEqual(other.amount)
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// RoundCents rounds half away from zero to whole cents.
func (m Money) RoundCents() Money {
	return Money{amount: m.amount.Round(CentPlaces)}
}

// Float64 converts to a native float for output. Only call this when
// building results; never feed the value back into arithmetic.
func (m Money) Float64() float64 {
	return m.amount.InexactFloat64()
}

func (m Money) String() string {
	return m.amount.StringFixed(CentPlaces)
}

// MarshalJSON encodes the amount as a decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.amount.String())
}

// UnmarshalJSON accepts both a JSON string and a JSON number.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	m.amount = d
	return nil
}

func Min(first Money, rest ...Money) Money {
	out := first
	for _, m := range rest {
		if m.LessThan(out) {
			out = m
		}
	}
	return out
}

func Max(first Money, rest ...Money) Money {
	out := first
	for _, m := range rest {
		if m.GreaterThan(out) {
			out = m
		}
	}
	return out
}

func Sum(amounts ...Money) Money {
	total := decimal.Zero
	for _, m := range amounts {
		total = total.Add(m.amount)
	}
	return Money{amount: total}
}
