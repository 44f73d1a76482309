// Package types provides common types used across Economy.
package types

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Amount represents a monetary balance in hundredths of the major unit.
// All arithmetic is integer-only — no floating point.
//
// Examples:
//   - FromFloat(49)     = 49.00 (4900 hundredths)
//   - FromFloat(12.345) = 12.35 (rounded half away from zero)
//   - FromCents(50)     = 0.50
type Amount int64

// FromCents creates an Amount from a count of hundredths.
func FromCents(cents int64) Amount { return Amount(cents) }

// FromInt creates an Amount from whole major units.
func FromInt(units int64) Amount { return Amount(units * 100) }

// FromFloat creates an Amount from a major-unit value, rounding half
// away from zero to 2 fractional digits. This is the only place a
// float crosses into the fixed-point domain.
func FromFloat(v float64) Amount {
	if v < 0 {
		return Amount(-int64(math.Floor(-v*100 + 0.5)))
	}
	return Amount(int64(math.Floor(v*100 + 0.5)))
}

// Zero is the zero balance.
const Zero Amount = 0

// Cents returns the raw count of hundredths.
func (a Amount) Cents() int64 { return int64(a) }

// Float64 returns the major-unit value. Exact for balances below 2^52 hundredths.
func (a Amount) Float64() float64 { return float64(a) / 100 }

// Arithmetic operations

// Add returns a + other.
func (a Amount) Add(other Amount) Amount { return a + other }

// Sub returns a - other.
func (a Amount) Sub(other Amount) Amount { return a - other }

// Comparison methods

// IsZero returns true if the amount is zero.
func (a Amount) IsZero() bool { return a == 0 }

// IsPositive returns true if the amount is greater than zero.
func (a Amount) IsPositive() bool { return a > 0 }

// IsNegative returns true if the amount is less than zero.
func (a Amount) IsNegative() bool { return a < 0 }

// Cmp returns -1, 0 or +1 comparing a to other.
func (a Amount) Cmp(other Amount) int {
	switch {
	case a < other:
		return -1
	case a > other:
		return 1
	default:
		return 0
	}
}

// Formatting methods

// String returns the plain major-unit string: "12.35", "-0.50".
func (a Amount) String() string {
	neg := a < 0
	abs := int64(a)
	if neg {
		abs = -abs
	}
	s := fmt.Sprintf("%d.%02d", abs/100, abs%100)
	if neg {
		return "-" + s
	}
	return s
}

// Format returns the thousands-separated major-unit string followed by
// the monetary unit symbol: Format("￦") on 1234500 hundredths gives
// "12,345￦". Fractional hundredths are shown only when non-zero.
func (a Amount) Format(unit string) string {
	neg := a < 0
	abs := int64(a)
	if neg {
		abs = -abs
	}

	major := groupThousands(abs / 100)
	minor := abs % 100

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(major)
	if minor != 0 {
		fmt.Fprintf(&b, ".%02d", minor)
	}
	b.WriteString(unit)
	return b.String()
}

// FormatKorean returns the amount grouped by Korean numeric units
// (조 = 10^12, 억 = 10^8, 만 = 10^4) followed by the monetary unit:
// 123456789 major units give "1억 2345만 6789￦". The fractional part
// is dropped; won displays have no minor unit.
func (a Amount) FormatKorean(unit string) string {
	money := int64(a) / 100

	var elements []string
	if money >= 1_000_000_000_000 {
		elements = append(elements, strconv.FormatInt(money/1_000_000_000_000, 10)+"조")
		money %= 1_000_000_000_000
	}
	if money >= 100_000_000 {
		elements = append(elements, strconv.FormatInt(money/100_000_000, 10)+"억")
		money %= 100_000_000
	}
	if money >= 10_000 {
		elements = append(elements, strconv.FormatInt(money/10_000, 10)+"만")
		money %= 10_000
	}
	if len(elements) == 0 || money > 0 {
		elements = append(elements, strconv.FormatInt(money, 10))
	}
	return strings.Join(elements, " ") + unit
}

// MarshalJSON implements json.Marshaler. Amounts serialize as raw
// hundredths alongside the display string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Cents   int64  `json:"cents"`
		Display string `json:"display"`
	}{
		Cents:   int64(a),
		Display: a.String(),
	})
}

// UnmarshalJSON implements json.Unmarshaler, accepting either the
// object form produced by MarshalJSON or a bare number of hundredths.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var obj struct {
		Cents int64 `json:"cents"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		*a = Amount(obj.Cents)
		return nil
	}
	var cents int64
	if err := json.Unmarshal(data, &cents); err != nil {
		return fmt.Errorf("types: invalid amount: %w", err)
	}
	*a = Amount(cents)
	return nil
}

// Helper functions

// groupThousands renders n with comma separators every three digits.
func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// Sum calculates the sum of multiple amounts.
func Sum(values ...Amount) Amount {
	var total Amount
	for _, v := range values {
		total += v
	}
	return total
}
