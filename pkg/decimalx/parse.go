package decimalx

import (
	"strings"

	"github.com/shopspring/decimal"
)

func MustFromString(s string) decimal.Decimal {
	res, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return res
}

// ParseAmount parses a disclosed dollar amount that may carry currency
// noise: "$1,001", "15,000.50", or a bracketed range like "$1,001 - $15,000"
// (congressional filings report brackets, not exact values). For a range the
// lower bound is returned. Unparseable input yields zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	if i := strings.Index(s, "-"); i > 0 {
		s = s[:i]
	}
	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	res, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return res
}
