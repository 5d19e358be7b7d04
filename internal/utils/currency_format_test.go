package utils_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ptairone/logistica-flash-sub000/internal/utils"
)

func TestFormatBRL(t *testing.T) {
	testCases := []struct {
		name     string
		amount   decimal.Decimal
		expected string
	}{
		{"zero", decimal.Zero, "R$ 0,00"},
		{"small", decimal.NewFromFloat(0.5), "R$ 0,50"},
		{"hundreds", decimal.NewFromFloat(950.40), "R$ 950,40"},
		{"thousands", decimal.NewFromFloat(1234.56), "R$ 1.234,56"},
		{"millions", decimal.NewFromInt(1234567), "R$ 1.234.567,00"},
		{"negative", decimal.NewFromFloat(-1050.75), "-R$ 1.050,75"},
		{"rounds extra precision", decimal.RequireFromString("10.996"), "R$ 11,00"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, utils.FormatBRL(tc.amount))
		})
	}
}
