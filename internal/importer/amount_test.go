package importer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/budgetsync/internal/importer"
)

func TestParseAmount(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		want    string
		wantErr bool
	}

	tests := []testCase{
		{name: "Plain", input: "42.50", want: "42.50"},
		{name: "Negative", input: "-500.00", want: "-500.00"},
		{name: "CurrencyAndThousands", input: "$1,234.56", want: "1234.56"},
		{name: "Parentheses", input: "(12.00)", want: "-12.00"},
		{name: "ParenthesesWithCurrency", input: "($1,000.10)", want: "-1000.10"},
		{name: "Spaces", input: " 1 000.00 ", want: "1000.00"},
		{name: "Integer", input: "7", want: "7.00"},
		{name: "Empty", input: "  ", wantErr: true},
		{name: "Garbage", input: "N/A", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := importer.ParseAmount(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name    string
		input   string
		wantErr bool
	}

	tests := []testCase{
		{name: "US", input: "12/15/2024"},
		{name: "USShortYear", input: "12/15/24"},
		{name: "ISO", input: "2024-12-15"},
		{name: "Padded", input: " 12/15/2024 "},
		{name: "Empty", input: "", wantErr: true},
		{name: "Footer", input: "Total", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := importer.ParseDate(tt.input, importer.DefaultDateLayouts)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}
