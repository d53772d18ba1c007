package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateTotalPayable(t *testing.T) {
	tests := []struct {
		name      string
		principal decimal.Decimal
		rate      decimal.Decimal
		years     decimal.Decimal
		expected  decimal.Decimal
	}{
		{
			name:      "standard loan",
			principal: decimal.NewFromInt(100000),
			rate:      decimal.NewFromInt(10),
			years:     decimal.NewFromInt(2),
			expected:  decimal.NewFromInt(120000), // 100,000 + 100,000 * 2 * 0.10
		},
		{
			name:      "zero interest rate",
			principal: decimal.NewFromInt(50000),
			rate:      decimal.NewFromInt(0),
			years:     decimal.NewFromInt(5),
			expected:  decimal.NewFromInt(50000),
		},
		{
			name:      "fractional term",
			principal: decimal.NewFromInt(10000),
			rate:      decimal.NewFromInt(12),
			years:     decimal.NewFromFloat(0.5),
			expected:  decimal.NewFromInt(10600), // 10,000 + 10,000 * 0.5 * 0.12
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateTotalPayable(tt.principal, tt.rate, tt.years)
			assert.True(t, result.Equal(tt.expected),
				"Expected %v, but got %v", tt.expected, result)
		})
	}
}

func TestCalculateMonthlyEMI(t *testing.T) {
	tests := []struct {
		name     string
		total    decimal.Decimal
		years    decimal.Decimal
		expected decimal.Decimal
	}{
		{
			name:     "two year term",
			total:    decimal.NewFromInt(120000),
			years:    decimal.NewFromInt(2),
			expected: decimal.NewFromInt(5000), // 120,000 / 24
		},
		{
			name:     "one year term",
			total:    decimal.NewFromInt(12000),
			years:    decimal.NewFromInt(1),
			expected: decimal.NewFromInt(1000),
		},
		{
			name:     "half year term",
			total:    decimal.NewFromInt(10600),
			years:    decimal.NewFromFloat(0.5),
			expected: decimal.NewFromFloat(1766.666666666666667), // 10,600 / 6
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateMonthlyEMI(tt.total, tt.years)
			assert.True(t, result.Equal(tt.expected),
				"Expected %v, but got %v", tt.expected, result)
		})
	}
}

func TestInstallmentsLeft(t *testing.T) {
	tests := []struct {
		name        string
		outstanding decimal.Decimal
		emi         decimal.Decimal
		expected    int64
	}{
		{
			name:        "exact multiple",
			outstanding: decimal.NewFromInt(115000),
			emi:         decimal.NewFromInt(5000),
			expected:    23,
		},
		{
			name:        "partial installment rounds up",
			outstanding: decimal.NewFromInt(5001),
			emi:         decimal.NewFromInt(5000),
			expected:    2,
		},
		{
			name:        "zero balance",
			outstanding: decimal.Zero,
			emi:         decimal.NewFromInt(5000),
			expected:    0,
		},
		{
			name:        "overpaid balance floors at zero",
			outstanding: decimal.NewFromInt(-2500),
			emi:         decimal.NewFromInt(5000),
			expected:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, InstallmentsLeft(tt.outstanding, tt.emi))
		})
	}
}
