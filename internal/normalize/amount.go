// Package normalize converts locale-formatted cell values into canonical amounts, dates and identifiers.
// Every function here is total: unparseable input degrades to zero or to an absent date.
package normalize

import (
	"math"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// AmountTolerance is the epsilon under which two amounts are considered equal.
var AmountTolerance = decimal.New(1, -2)

var currencyMarkers = []string{"R$", "US$", "BRL", "USD", "$"}

// ParseMonetaryAmount accepts a number or a string such as "R$ 1.234,56" or "(1.234,56)".
// Dots are thousands separators and the comma is the decimal mark. A parenthesized value is negative.
// It returns zero for anything it cannot parse.
func ParseMonetaryAmount(raw any) decimal.Decimal {
	switch v := raw.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return v
	case float64:
		return fromFloat(v)
	case float32:
		return fromFloat(float64(v))
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case []byte:
		return parseAmountText(string(v))
	case string:
		return parseAmountText(v)
	default:
		return decimal.Zero
	}
}

// AbsoluteAmount is ParseMonetaryAmount without the sign, as used for matching.
func AbsoluteAmount(raw any) decimal.Decimal {
	return ParseMonetaryAmount(raw).Abs()
}

// AmountsEqual reports whether a and b differ by less than AmountTolerance.
func AmountsEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(AmountTolerance)
}

func fromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

func parseAmountText(s string) decimal.Decimal {
	upper := strings.ToUpper(s)
	for _, marker := range currencyMarkers {
		upper = strings.ReplaceAll(upper, marker, "")
	}
	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, upper)

	negative := false
	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		negative = true
		clean = clean[1 : len(clean)-1]
	}
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.Replace(clean, ",", ".", 1)
	if clean == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero
	}
	if negative {
		return d.Abs().Neg()
	}
	return d
}
