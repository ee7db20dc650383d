// Package money implements exact currency arithmetic in integer minor units.
//
// All computation stays in int64 cents; floating point only appears at the
// parse/format boundary. Splitting an amount never creates or loses minor
// units: Allocate distributes the remainder deterministically across buckets.
package money

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency assumed by the convenience constructors.
const DefaultCurrency = "USD"

// Money is an amount of a single currency in minor units (cents).
// The zero value is $0.00 USD. Money is a value type; operations return
// new values and never mutate their receivers.
type Money struct {
	amount   int64
	currency string
}

// New returns a Money of the given minor units in the default currency.
func New(minorUnits int64) Money {
	return Money{amount: minorUnits, currency: DefaultCurrency}
}

// NewWithCurrency returns a Money of the given minor units and currency.
func NewWithCurrency(minorUnits int64, currency string) Money {
	return Money{amount: minorUnits, currency: currency}
}

// Zero returns a zero amount in the default currency.
func Zero() Money {
	return New(0)
}

// FromFloat converts a decimal major-unit amount (e.g. 12.34 dollars) to
// Money by flooring to whole minor units. The conversion goes through
// shopspring/decimal so values like 0.29 do not pick up binary-float noise.
func FromFloat(majorUnits float64) Money {
	cents := decimal.NewFromFloat(majorUnits).Mul(decimal.NewFromInt(100)).Floor()
	return New(cents.IntPart())
}

// Amount returns the value in minor units.
func (m Money) Amount() int64 { return m.amount }

// Currency returns the currency code.
func (m Money) Currency() string {
	if m.currency == "" {
		return DefaultCurrency
	}
	return m.currency
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool { return m.amount == 0 }

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool { return m.amount > 0 }

// IsNegative reports whether the amount is less than zero.
func (m Money) IsNegative() bool { return m.amount < 0 }

// assertSameCurrency panics on a currency mismatch. Mixing currencies in a
// binary operation is a programming error, not a recoverable condition.
func (m Money) assertSameCurrency(other Money) {
	if m.Currency() != other.Currency() {
		panic(fmt.Sprintf("money: currency mismatch: %s vs %s", m.Currency(), other.Currency()))
	}
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	m.assertSameCurrency(other)
	return Money{amount: m.amount + other.amount, currency: m.Currency()}
}

// Subtract returns m - other. The result may be negative; negative Money
// represents a debt or overpayment and is valid everywhere.
func (m Money) Subtract(other Money) Money {
	m.assertSameCurrency(other)
	return Money{amount: m.amount - other.amount, currency: m.Currency()}
}

// Multiply returns m scaled by an integer factor.
func (m Money) Multiply(factor int64) Money {
	return Money{amount: m.amount * factor, currency: m.Currency()}
}

// Negate returns -m.
func (m Money) Negate() Money {
	return Money{amount: -m.amount, currency: m.Currency()}
}

// Equal reports whether two amounts are identical.
func (m Money) Equal(other Money) bool {
	m.assertSameCurrency(other)
	return m.amount == other.amount
}

// GreaterThan reports m > other.
func (m Money) GreaterThan(other Money) bool {
	m.assertSameCurrency(other)
	return m.amount > other.amount
}

// LessThan reports m < other.
func (m Money) LessThan(other Money) bool {
	m.assertSameCurrency(other)
	return m.amount < other.amount
}

// LessThanOrEqual reports m <= other.
func (m Money) LessThanOrEqual(other Money) bool {
	m.assertSameCurrency(other)
	return m.amount <= other.amount
}

// GreaterThanOrEqual reports m >= other.
func (m Money) GreaterThanOrEqual(other Money) bool {
	m.assertSameCurrency(other)
	return m.amount >= other.amount
}

// Minimum returns the smaller of a and b.
func Minimum(a, b Money) Money {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Allocate splits m into len(ratios) buckets proportional to the ratios.
// Each bucket is truncated toward zero, then leftover minor units are
// handed out one at a time to the buckets with the largest fractional
// remainders (ties to the larger ratio, then to the earlier bucket), so
// the buckets always sum exactly to m. Because the ranking depends on the
// ratios and not on their positions, complementary splits like [s, 100-s]
// and [100-s, s] place the remainder in the same logical bucket. A total
// ratio of zero yields all-zero buckets.
func (m Money) Allocate(ratios ...int64) []Money {
	buckets := make([]Money, len(ratios))
	for i := range buckets {
		buckets[i] = Money{currency: m.Currency()}
	}

	var total int64
	for _, r := range ratios {
		total += r
	}
	if total == 0 {
		return buckets
	}

	var allocated int64
	fracs := make([]int64, len(ratios))
	for i, r := range ratios {
		product := m.amount * r
		buckets[i].amount = product / total
		allocated += buckets[i].amount
		frac := product % total
		if frac < 0 {
			frac = -frac
		}
		fracs[i] = frac
	}

	remainder := m.amount - allocated
	step := int64(1)
	if remainder < 0 {
		step = -1
	}

	order := make([]int, len(ratios))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		if fracs[order[a]] != fracs[order[b]] {
			return fracs[order[a]] > fracs[order[b]]
		}
		return ratios[order[a]] > ratios[order[b]]
	})
	for k := 0; remainder != 0; k = (k + 1) % len(order) {
		buckets[order[k]].amount += step
		remainder -= step
	}

	return buckets
}

// Percentage returns share percent of m, where share is a whole percentage
// in [0, 100]. It allocates m into [share, 100-share] and takes the first
// bucket rather than multiplying and rounding, which guarantees
// Percentage(m, s) + Percentage(m, 100-s) == m exactly for s != 50. An odd
// amount at s == 50 has no exact half, so that one pair comes out a cent
// over; callers that split in half Allocate both buckets instead.
func (m Money) Percentage(share int64) Money {
	return m.PercentageScaled(share, 0)
}

// PercentageScaled is Percentage with scale decimal places of precision on
// the share: the share is taken out of 100^(scale+1). A 3.5% fee is
// PercentageScaled(350, 1).
func (m Money) PercentageScaled(share int64, scale int) Money {
	whole := int64(100)
	for i := 0; i < scale; i++ {
		whole *= 100
	}
	buckets := m.Allocate(share, whole-share)
	return buckets[0]
}

// ToNearestQuarter rounds to the nearest 0.25 of the major unit. This is
// the only permitted precision loss in the system; it exists for cash
// totals so drawers never need coins smaller than a quarter.
func (m Money) ToNearestQuarter() Money {
	quarters := decimal.New(m.amount, -2).Mul(decimal.NewFromInt(4)).Round(0)
	cents := quarters.Mul(decimal.NewFromInt(25))
	return Money{amount: cents.IntPart(), currency: m.Currency()}
}

// Format renders the amount for display: "$1,234.56". Whole-dollar amounts
// drop the cents unless forceDecimals is set. Display only; the output is
// never parsed back into a computation.
func (m Money) Format(forceDecimals bool) string {
	neg := m.amount < 0
	abs := m.amount
	if neg {
		abs = -abs
	}

	dollars := abs / 100
	cents := abs % 100

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	b.WriteString(groupThousands(dollars))
	if forceDecimals || cents != 0 {
		fmt.Fprintf(&b, ".%02d", cents)
	}
	return b.String()
}

// MarshalJSON encodes the amount as integer minor units.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(m.amount, 10)), nil
}

// UnmarshalJSON decodes integer minor units in the default currency.
func (m *Money) UnmarshalJSON(data []byte) error {
	amount, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return fmt.Errorf("money: invalid amount %q: %w", data, err)
	}
	m.amount = amount
	m.currency = DefaultCurrency
	return nil
}

// String implements fmt.Stringer with forced decimals, for logs.
func (m Money) String() string {
	return m.Format(true)
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
