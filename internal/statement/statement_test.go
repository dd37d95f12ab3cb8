package statement_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/budgetsync/internal/statement"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStatementYear(t *testing.T) {
	now := time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name      string
		page      string
		wantYear  int
		wantFound bool
	}

	tests := []testCase{
		{
			name:      "TwoDigitYears",
			page:      "Opening/Closing Date 11/16/25 - 12/15/25",
			wantYear:  2025,
			wantFound: true,
		},
		{
			name:      "FourDigitYears",
			page:      "Statement Period: 11/16/2024 - 12/15/2024",
			wantYear:  2024,
			wantFound: true,
		},
		{
			name:      "ClosingYearWinsAcrossNewYear",
			page:      "Opening/Closing Date 12/16/24-01/15/25",
			wantYear:  2025,
			wantFound: true,
		},
		{
			name:      "NoPeriodFallsBackToNow",
			page:      "Payment Due Date: 01/10",
			wantYear:  2030,
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, found := statement.StatementYear(tt.page, now)

			assert.Equal(t, tt.wantYear, year)
			assert.Equal(t, tt.wantFound, found)
		})
	}
}

func TestParse_Golden(t *testing.T) {
	res := statement.Parse([]string{"12/15 STARBUCKS COFFEE 4.75\nTOTAL DUE 500.00"}, 2024, "Chase")

	require.Len(t, res.Rows, 1)
	assert.Empty(t, res.Rejected)

	row := res.Rows[0]
	assert.Equal(t, day(2024, time.December, 15), row.Date)
	assert.Equal(t, "STARBUCKS COFFEE", row.Description)
	assert.Equal(t, "4.75", row.Amount.StringFixed(2))
	assert.Equal(t, "Chase", row.Bank)
}

func TestParse_Lines(t *testing.T) {
	type testCase struct {
		name         string
		line         string
		wantDesc     string
		wantAmount   string
		wantRejected bool
	}

	tests := []testCase{
		{name: "DollarAndThousands", line: "11/18 WHOLE FOODS MARKET $1,234.56", wantDesc: "WHOLE FOODS MARKET", wantAmount: "1234.56"},
		{name: "Negative", line: "11/20 AUTOMATIC PAYMENT - THANK YOU -500.00", wantDesc: "AUTOMATIC PAYMENT - THANK YOU", wantAmount: "-500.00"},
		{name: "CollapsesWhitespace", line: "  11/21   SHELL    OIL   40.00  ", wantDesc: "SHELL OIL", wantAmount: "40.00"},
		{name: "NoDescription", line: "11/22 40.00", wantRejected: true},
		{name: "AmountWithoutCents", line: "11/23 REFERENCE NUMBER 12345", wantRejected: true},
		{name: "AmountWithThreeDecimals", line: "11/23 RATE 1.234", wantRejected: true},
		{name: "ImpossibleDate", line: "02/30 GHOST 1.00", wantRejected: true},
		{name: "TrailingNoise", line: "11/24 COFFEE 4.75 *", wantRejected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := statement.Parse([]string{tt.line}, 2024, "Chase")

			if tt.wantRejected {
				assert.Empty(t, res.Rows)
				require.Len(t, res.Rejected, 1)
				assert.Equal(t, 1, res.Rejected[0].Page)

				return
			}

			require.Len(t, res.Rows, 1)
			assert.Equal(t, tt.wantDesc, res.Rows[0].Description)
			assert.Equal(t, tt.wantAmount, res.Rows[0].Amount.StringFixed(2))
		})
	}
}

func TestParse_SkipsNonCandidates(t *testing.T) {
	page := "ACCOUNT ACTIVITY\n" +
		"Date of Transaction Merchant Name $ Amount\n" +
		"\n" +
		"12/15/24 closing balance 10.00\n" +
		"1/5 SHORT DATE 1.00\n" +
		"Minimum Payment Due 35.00"

	res := statement.Parse([]string{page}, 2024, "Chase")

	assert.Empty(t, res.Rows)
	assert.Empty(t, res.Rejected)
}

func TestParse_SortsAcrossPagesStably(t *testing.T) {
	pages := []string{
		"12/15 SECOND SAME DAY 2.00\n12/01 EARLIEST 1.00",
		"12/15 THIRD SAME DAY 3.00\n12/10 MIDDLE 4.00",
	}

	res := statement.Parse(pages, 2024, "Chase")

	var got []string
	for _, r := range res.Rows {
		got = append(got, r.Description)
	}

	assert.Equal(t, []string{"EARLIEST", "MIDDLE", "SECOND SAME DAY", "THIRD SAME DAY"}, got)
}
