package steam

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice turns a localized Steam price string ("$12.34", "12,34€",
// "1 234,56 pуб.", "¥ 1,234") into a decimal amount.
func ParsePrice(raw string) (decimal.Decimal, error) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	// Currency abbreviations like "pуб." leave a trailing separator with no
	// digits after it; it must not influence the branch below.
	s = strings.TrimRight(s, ".,")
	if s == "" {
		return decimal.Zero, fmt.Errorf("no digits in price string")
	}

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastComma > lastDot && len(s)-lastComma-1 != 3:
		// Comma is the decimal separator, dots group thousands. A comma
		// followed by exactly three digits is grouping ("1,234"), not a
		// decimal point; Steam never prints three decimal places.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	default:
		s = strings.ReplaceAll(s, ",", "")
	}

	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	return price, nil
}

// parseVolume handles Steam's thousands-grouped counts like "1,234".
func parseVolume(raw string) (int64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	return strconv.ParseInt(s, 10, 64)
}
