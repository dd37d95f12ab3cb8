// Package statement scans the text of card statements for transaction lines.
//
// Statements have no column grid once flattened to text. A transaction line
// is recognised by shape alone: it starts with an MM/DD token, has at least
// one description token and ends with a strictly formatted amount. Anything
// else is skipped, so the scanner misses oddly printed rows rather than
// inventing ones that never happened.
package statement

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Row is one transaction line as printed on the statement. Amount keeps the
// statement's own sign.
type Row struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Bank        string
}

// Rejection is a line that started with a date but did not parse.
type Rejection struct {
	Page   int // 1-based
	Line   string
	Reason string
}

type Result struct {
	Rows     []Row
	Rejected []Rejection
}

var (
	periodPattern = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4}|\d{2})\s*-\s*(\d{1,2})/(\d{1,2})/(\d{4}|\d{2})`)
	datePattern   = regexp.MustCompile(`^\d{2}/\d{2}$`)
	amountPattern = regexp.MustCompile(`^-?\d+\.\d{2}$`)
)

var headerMarkers = []string{"ACCOUNT ACTIVITY", "Date of"}

// StatementYear finds the closing date of the statement period on page 1,
// e.g. "Opening/Closing Date 11/16/25 - 12/15/25", and returns its year.
// Two-digit years are read as 20YY. Without a period it returns now's year
// and found=false.
func StatementYear(firstPage string, now time.Time) (year int, found bool) {
	m := periodPattern.FindStringSubmatch(firstPage)
	if m == nil {
		return now.Year(), false
	}

	y, err := strconv.Atoi(m[6])
	if err != nil {
		return now.Year(), false
	}

	if len(m[6]) == 2 {
		y += 2000
	}

	return y, true
}

// Parse scans every page for transaction lines, dating them in year.
// Rows come back sorted by date; rows sharing a date keep statement order.
func Parse(pages []string, year int, bank string) Result {
	var res Result

	for i, page := range pages {
		for _, raw := range strings.Split(page, "\n") {
			line := strings.TrimSpace(raw)
			if line == "" || isHeader(line) {
				continue
			}

			row, reason, candidate := parseLine(line, year)
			if !candidate {
				continue
			}

			if reason != "" {
				res.Rejected = append(res.Rejected, Rejection{Page: i + 1, Line: line, Reason: reason})
				continue
			}

			row.Bank = bank
			res.Rows = append(res.Rows, row)
		}
	}

	sort.SliceStable(res.Rows, func(a, b int) bool {
		return res.Rows[a].Date.Before(res.Rows[b].Date)
	})

	return res
}

func isHeader(line string) bool {
	for _, m := range headerMarkers {
		if strings.Contains(line, m) {
			return true
		}
	}

	return false
}

// parseLine returns candidate=false for lines that do not start with MM/DD.
// For candidates, a non-empty reason means the line was rejected.
func parseLine(line string, year int) (row Row, reason string, candidate bool) {
	tokens := strings.Fields(line)
	if !datePattern.MatchString(tokens[0]) {
		return Row{}, "", false
	}

	if len(tokens) < 3 {
		return Row{}, "too few tokens", true
	}

	amountText := strings.NewReplacer("$", "", ",", "").Replace(tokens[len(tokens)-1])
	if !amountPattern.MatchString(amountText) {
		return Row{}, "last token is not an amount", true
	}

	amount, err := decimal.NewFromString(amountText)
	if err != nil {
		return Row{}, "last token is not an amount", true
	}

	date, err := time.Parse("01/02/2006", tokens[0]+"/"+strconv.Itoa(year))
	if err != nil {
		return Row{}, "invalid date", true
	}

	return Row{
		Date:        date,
		Description: strings.Join(tokens[1:len(tokens)-1], " "),
		Amount:      amount,
	}, "", true
}
