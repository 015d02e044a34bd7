package normalize

import (
	"strconv"
	"strings"
	"unicode"
)

// DigitsOnly strips every non-digit character, e.g. "12.345.678/0001-90" -> "12345678000190".
func DigitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// CellText renders a cell as trimmed text. Numbers are printed without exponent or trailing zeros.
func CellText(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case []byte:
		return strings.TrimSpace(string(v))
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// HeaderLabel normalizes a header cell for alias matching: surrounding quotes and
// whitespace are removed and the label is upper-cased.
func HeaderLabel(cell any) string {
	s := CellText(cell)
	s = strings.Trim(s, "\"'")
	return strings.ToUpper(strings.TrimSpace(s))
}
