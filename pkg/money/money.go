// Package money represents rupee amounts as integer paise.
//
// Amounts are stored and summed as int64 to keep dashboard totals exact.
// On the JSON wire they appear as numbers with two decimals (e.g. 1250.50).
package money

import (
	"bytes"
	"database/sql/driver"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Amount is a value in paise (1/100 rupee).
type Amount int64

const scale = 2

// Zero is the zero amount.
const Zero Amount = 0

// FromRupees converts a rupee value to Amount, rounding half away from zero to the paisa.
func FromRupees(v float64) Amount {
	return fromDecimal(decimal.NewFromFloat(v))
}

// Parse reads a decimal rupee string such as "1250.5".
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return fromDecimal(d), nil
}

func fromDecimal(d decimal.Decimal) Amount {
	return Amount(d.Shift(scale).Round(0).IntPart())
}

// Decimal returns the amount in rupees as a decimal.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -scale)
}

// Rupees returns the amount as a float for display and charts.
func (a Amount) Rupees() float64 {
	f, _ := a.Decimal().Float64()
	return f
}

// String formats the amount with two decimals.
func (a Amount) String() string {
	return a.Decimal().StringFixed(scale)
}

// MulQty multiplies a unit rate by a fractional quantity (metres, units).
func (a Amount) MulQty(qty float64) Amount {
	return fromDecimal(a.Decimal().Mul(decimal.NewFromFloat(qty)))
}

// Sum adds amounts.
func Sum(amounts ...Amount) Amount {
	var total Amount
	for _, a := range amounts {
		total += a
	}
	return total
}

// MarshalJSON writes the amount as a JSON number in rupees.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}
	data = bytes.Trim(data, `"`)
	if len(data) == 0 {
		*a = 0
		return nil
	}
	v, err := Parse(string(data))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Value stores the amount as an integer number of paise.
func (a Amount) Value() (driver.Value, error) {
	return int64(a), nil
}

// Scan reads an integer column. Drivers that return numerics as text or
// floats are accepted too.
func (a *Amount) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*a = 0
	case int64:
		*a = Amount(v)
	case int32:
		*a = Amount(v)
	case float64:
		*a = Amount(v)
	case []byte:
		return a.scanText(string(v))
	case string:
		return a.scanText(v)
	default:
		return fmt.Errorf("cannot scan %T into money.Amount", value)
	}
	return nil
}

func (a *Amount) scanText(s string) error {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("cannot scan %q into money.Amount: %w", s, err)
	}
	*a = Amount(n)
	return nil
}
