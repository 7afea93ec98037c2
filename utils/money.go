package utils

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Round2 rounds x to 2 decimal places (half away from zero). Used when
// normalizing float DTO fields before they become decimals.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// ParseMoney parses a monetary input string into a 2-decimal amount.
// Blank input yields zero.
func ParseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	return d.Round(2), nil
}
