package apple_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/budgetsync/internal/categorize"
	"github.com/MrJamesThe3rd/budgetsync/internal/importer"
	"github.com/MrJamesThe3rd/budgetsync/internal/importer/apple"
)

func TestSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "apple.csv")

	require.NoError(t, os.WriteFile(path, []byte(
		"Transaction Date,Clearing Date,Description,Merchant,Category,Type,Amount (USD),Purchased By\n"+
			"12/15/2024,12/16/2024,BLUE BOTTLE 123,Blue Bottle,Restaurants,Purchase,12.34,Hector Hernandez\n"+
			"12/20/2024,12/20/2024,ACH DEPOSIT,Payment Thank You,Payment,Payment,-100.00,Hector Hernandez\n",
	), 0o600))

	src := apple.New("Hector Hernandez", categorize.NewResolver(nil, nil, []string{"Dining"}))
	ctx := context.Background()

	rr := src.Read(ctx, []string{path})
	records := src.ToRecords(src.Clean(ctx, rr))
	require.Len(t, records, 2)
	assert.Equal(t, []string{path}, rr.Consumed())

	assert.Equal(t, "Blue Bottle", records[0].MerchantName)
	assert.Equal(t, "-12.34", records[0].Amount.StringFixed(2))
	assert.Equal(t, "Other", records[0].Category)
	assert.Equal(t, apple.AccountType, records[0].AccountType)

	assert.Equal(t, "100.00", records[1].Amount.StringFixed(2))
	assert.Equal(t, "Payments", records[1].Category)
}

func TestSource_PartialFailure(t *testing.T) {
	dir := t.TempDir()

	var paths []string

	for i, body := range []string{
		"Transaction Date,Merchant,Amount (USD),Purchased By,Category\n12/01/2024,SAFEWAY,10.00,H,Groceries\n",
		"Transaction Date,Merchant,Amount (USD),Purchased By,Category\n12/02/2024,KROGER,11.00,H,Groceries\n",
		"\x00\x01 this is not an export \x02",
		"Transaction Date,Merchant,Amount (USD),Purchased By,Category\n12/03/2024,SPROUTS,12.00,H,Groceries\n",
		"Transaction Date,Merchant,Amount (USD),Purchased By,Category\n12/04/2024,TRADER JOE,13.00,H,Groceries\n",
	} {
		p := filepath.Join(dir, "apple"+string(rune('a'+i))+".csv")
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
		paths = append(paths, p)
	}

	src := apple.New("H", categorize.NewResolver(nil, nil, nil))
	ctx := context.Background()

	rr := src.Read(ctx, paths)

	assert.Equal(t, importer.StatusSkipped, rr.Files[2].Status)
	assert.ErrorIs(t, rr.Files[2].Err, importer.ErrNoProfile)
	assert.Len(t, src.Clean(ctx, rr), 4)
	assert.Len(t, rr.Consumed(), 4)
	assert.NotContains(t, rr.Consumed(), paths[2])
}
