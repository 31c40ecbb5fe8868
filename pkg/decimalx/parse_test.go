package decimalx

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want decimal.Decimal
	}{
		{"plain", "1001", decimal.NewFromInt(1001)},
		{"dollar sign", "$1001", decimal.NewFromInt(1001)},
		{"commas", "$1,000,001", decimal.NewFromInt(1000001)},
		{"decimal places", "15,000.50", decimal.NewFromFloat(15000.50)},
		{"bracket range", "$1,001 - $15,000", decimal.NewFromInt(1001)},
		{"scientific", "1.5e+06", decimal.NewFromInt(1500000)},
		{"empty", "", decimal.Zero},
		{"garbage", "n/a", decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(ParseAmount(tt.in)), "got %s", ParseAmount(tt.in))
		})
	}
}
