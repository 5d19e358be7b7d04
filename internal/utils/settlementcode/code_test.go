package settlementcode_test

import (
	"testing"
	"time"

	"github.com/ptairone/logistica-flash-sub000/internal/utils/settlementcode"
	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	refDate := time.Date(2025, 3, 2, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name       string
		driverName string
		tripCount  int
		want       string
	}{
		{name: "plain name", driverName: "Carlos Pereira", tripCount: 3, want: "AC-CARL-20250302-3"},
		{name: "accented name is folded", driverName: "João da Silva", tripCount: 1, want: "AC-JOAO-20250302-1"},
		{name: "short name", driverName: "Zé", tripCount: 2, want: "AC-ZE-20250302-2"},
		{name: "lowercase input", driverName: "antônio", tripCount: 5, want: "AC-ANTO-20250302-5"},
		{name: "no usable letters", driverName: "123", tripCount: 1, want: "AC-DRV-20250302-1"},
		{name: "leading whitespace", driverName: "  Márcia  ", tripCount: 4, want: "AC-MARC-20250302-4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := settlementcode.Generate(tt.driverName, refDate, tt.tripCount)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateWithSuffix(t *testing.T) {
	refDate := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)

	got := settlementcode.GenerateWithSuffix("Carlos", refDate, 2, "a1b2")
	assert.Equal(t, "AC-CARL-20250302-2-A1B2", got)
}
