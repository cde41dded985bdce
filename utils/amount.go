package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a statement numeric token ("1,23,456.78") to a
// decimal. Indian statements group digits with commas; anything that still
// fails to parse is treated as zero, matching the skip-don't-fail stance of
// the extractors.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// BaseISIN strips the synthetic "_n" folio disambiguation suffix.
func BaseISIN(isin string) string {
	if i := strings.Index(isin, "_"); i >= 0 {
		return isin[:i]
	}
	return strings.TrimSpace(isin)
}
