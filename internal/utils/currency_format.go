package utils

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MinorUnitsToDisplay converts an amount in integer minor units (cents/paise)
// into a decimal display string with exactly two fraction digits.
// Example: 123456 returns "1234.56"; -50 returns "-0.50".
func MinorUnitsToDisplay(amount int64) string {
	return decimal.New(amount, -2).StringFixed(2)
}

// DisplayToMinorUnits parses a decimal amount string and converts it to
// integer minor units, rounding half-up at two decimal places.
// Example: "1234.56" returns 123456; "0.005" returns 1.
func DisplayToMinorUnits(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d.Shift(2).Round(0).IntPart(), nil
}
