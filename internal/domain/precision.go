package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FeePrecision is the number of decimal places fees are truncated to.
const FeePrecision = 8

// PrecisionFromString counts significant decimal places in an increment
// such as "0.0001" (4). Trailing zeros do not count.
func PrecisionFromString(s string) int32 {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = strings.TrimRight(s, "0")
		return int32(len(s) - i - 1)
	}
	return 0
}

// Truncate drops digits beyond places without rounding, so the magnitude
// never grows.
func Truncate(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Truncate(places)
}

// ToPrecision renders d truncated to places, as sent back to an exchange.
func ToPrecision(d decimal.Decimal, places int32) string {
	return Truncate(d, places).String()
}

func ParseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

// ParseNullDecimal maps a missing or empty value to null.
func ParseNullDecimal(s *string) (decimal.NullDecimal, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := ParseDecimal(*s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}
