package rentcheck

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Money represents a monetary value.
//
// Additions, subtractions and scaling by a rate are exact. Ratios between two
// amounts are float64 and follow IEEE-754 rules when the divisor is zero.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// ParseMoney parses a plain decimal amount like "720" or "1200.50".
func ParseMoney(s, currency string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{value: d, cur: currency}, nil
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the string representation of the money value, rounded to
// the currency's minor unit.
func (m Money) String() string {
	if m.cur == "" {
		return m.Plain()
	}
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(dec.IntPart())
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-"
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// Plain returns the amount without currency symbol, with two decimals.
func (m Money) Plain() string { return m.value.StringFixed(2) }

func (m Money) Currency() string                { return m.cur }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Float() float64                  { return m.value.InexactFloat64() }

// Mul scales the amount by a rate, e.g. a maintenance rate or a number of weeks.
func (m Money) Mul(rate float64) Money {
	return Money{value: m.value.Mul(decimal.NewFromFloat(rate)), cur: m.cur}
}

// DivInt splits the amount in n equal parts.
func (m Money) DivInt(n int) Money {
	return Money{value: m.value.Div(decimal.NewFromInt(int64(n))), cur: m.cur}
}

// Ratio returns m/n as a float64. A zero divisor yields ±Inf or NaN.
func (m Money) Ratio(n Money) float64 {
	return m.Float() / n.Float()
}

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// Sum adds up amounts, starting from a currency-less zero.
func Sum(amounts ...Money) Money {
	var s Money
	for _, a := range amounts {
		s = s.Add(a)
	}
	return s
}

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch " + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// MarshalJSON writes the amount rounded to the currency's minor unit.
func (m Money) MarshalJSON() ([]byte, error) {
	places := int32(2)
	if m.cur != "" {
		places = int32(m.currency().Fraction)
	}
	rounded := m.value.Round(places)
	return []byte(rounded.String()), nil
}
