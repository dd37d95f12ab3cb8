package citi_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/budgetsync/internal/categorize"
	"github.com/MrJamesThe3rd/budgetsync/internal/importer/citi"
)

func TestSource_Signs(t *testing.T) {
	type testCase struct {
		name     string
		body     string
		wantDesc []string
		want     []string
	}

	tests := []testCase{
		{
			name: "SplitColumns",
			body: "Status,Date,Description,Debit,Credit\n" +
				"Cleared,12/15/2024,SHELL OIL 5743,10.00,\n" +
				"Cleared,12/16/2024,ONLINE PAYMENT,,-25.00\n" +
				"Cleared,12/17/2024,MERCHANT CREDIT,,25.00\n",
			wantDesc: []string{"SHELL OIL 5743", "ONLINE PAYMENT", "MERCHANT CREDIT"},
			want:     []string{"-10.00", "25.00", "25.00"},
		},
		{
			name: "SingleColumn",
			body: "Date,Description,Amount,Category\n" +
				"12/15/2024,SHELL OIL 5743,10.00,Gas\n" +
				"12/16/2024,ONLINE PAYMENT,\"-1,025.00\",\n",
			wantDesc: []string{"SHELL OIL 5743", "ONLINE PAYMENT"},
			want:     []string{"-10.00", "1025.00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "citi.CSV")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o600))

			src := citi.New("Hector Hernandez", categorize.NewResolver(nil, nil, nil))
			ctx := context.Background()

			records := src.ToRecords(src.Clean(ctx, src.Read(ctx, []string{path})))
			require.Len(t, records, len(tt.want))

			for i, r := range records {
				assert.Equal(t, tt.wantDesc[i], r.MerchantName)
				assert.Equal(t, tt.want[i], r.Amount.StringFixed(2))
				assert.Equal(t, "Citi Card", r.AccountType)
				assert.NotEmpty(t, r.Category)
			}
		})
	}
}
