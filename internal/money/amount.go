// Package money holds the currency normalization shared by the statement
// parser and the writers: one parse routine for amount tokens found in
// statement text and one display routine for spreadsheet/CSV cells.
package money

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the ISO-4217 code used for display. Statements handled by this
// module are US dollar statements.
const Currency = gomoney.USD

// ErrMalformedAmount is returned by Parse when a token does not follow the
// amount grammar.
var ErrMalformedAmount = errors.New("malformed amount")

// amountGrammar accepts "1,234.56", "1234.56", "$1,234.56", "-$20.00" and
// "$-20.00". Grouping must be in threes and exactly two fraction digits are
// required.
var amountGrammar = regexp.MustCompile(`^(-)?\$?(-)?(\d{1,3}(?:,\d{3})+|\d+)\.(\d{2})$`)

// Amount is a fixed-point currency value with two fraction digits.
// The zero value is $0.00.
type Amount struct {
	d decimal.Decimal
}

// Parse converts a statement amount token into an Amount.
func Parse(token string) (Amount, error) {
	s := strings.TrimSpace(token)
	s = strings.ReplaceAll(s, " ", "")

	m := amountGrammar.FindStringSubmatch(s)
	if m == nil || (m[1] != "" && m[2] != "") {
		return Amount{}, fmt.Errorf("%w: %q", ErrMalformedAmount, token)
	}

	digits := strings.ReplaceAll(m[3], ",", "") + "." + m[4]
	d, err := decimal.NewFromString(digits)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q: %v", ErrMalformedAmount, token, err)
	}
	if m[1] != "" || m[2] != "" {
		d = d.Neg()
	}
	return Amount{d: d}, nil
}

// MustParse is like Parse but panics on malformed input. Intended for
// constants and tests.
func MustParse(token string) Amount {
	a, err := Parse(token)
	if err != nil {
		panic(err)
	}
	return a
}

// FromCents builds an Amount from minor units.
func FromCents(cents int64) Amount {
	return Amount{d: decimal.New(cents, -2)}
}

// FromDecimal rounds d to cents.
func FromDecimal(d decimal.Decimal) Amount {
	return Amount{d: d.Round(2)}
}

// Decimal returns the underlying decimal value.
func (a Amount) Decimal() decimal.Decimal { return a.d }

// Cents returns the value in minor units.
func (a Amount) Cents() int64 { return a.d.Shift(2).Round(0).IntPart() }

func (a Amount) Abs() Amount { return Amount{d: a.d.Abs()} }

func (a Amount) Neg() Amount { return Amount{d: a.d.Neg()} }

// Debit returns the amount with a negative sign regardless of the sign it
// carried in the source text.
func (a Amount) Debit() Amount { return Amount{d: a.d.Abs().Neg()} }

func (a Amount) Add(b Amount) Amount { return Amount{d: a.d.Add(b.d)} }

func (a Amount) IsNegative() bool { return a.d.IsNegative() }

func (a Amount) IsZero() bool { return a.d.IsZero() }

func (a Amount) Sign() int { return a.d.Sign() }

func (a Amount) Cmp(b Amount) int { return a.d.Cmp(b.d) }

func (a Amount) Equal(b Amount) bool { return a.d.Equal(b.d) }

// String returns the plain decimal representation, e.g. "-20.00".
func (a Amount) String() string { return a.d.StringFixed(2) }

// Sum adds all amounts.
func Sum(amounts ...Amount) Amount {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a.d)
	}
	return Amount{d: total}
}

// Format renders a display string: "$" and the grouped absolute value,
// with a leading "-" for negative amounts ("$7,126.11", "-$45.67").
func Format(a Amount) string {
	return gomoney.New(a.Cents(), Currency).Display()
}

// FormatOptional formats a possibly absent amount, rendering nil as "$0.00".
func FormatOptional(a *Amount) string {
	if a == nil {
		return Format(Amount{})
	}
	return Format(*a)
}

// MarshalJSON encodes the amount as a bare JSON number with two decimals.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.d.StringFixed(2)), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		a.d = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrMalformedAmount, s)
	}
	a.d = d.Round(2)
	return nil
}
