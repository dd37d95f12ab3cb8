package importer

import "strings"

// AmountMode determines how amounts are extracted from a row.
type AmountMode int

const (
	// AmountSingle means one signed column.
	AmountSingle AmountMode = iota
	// AmountSplit means separate debit and credit columns.
	AmountSplit
)

// DefaultDateLayouts covers the US formats card issuers export.
var DefaultDateLayouts = []string{"01/02/2006", "1/2/2006", "01/02/06", "2006-01-02"}

// Profile describes the column layout of one export format.
type Profile struct {
	Name        string
	DateCol     string
	DescCol     string
	AmountMode  AmountMode
	AmountCol   string // AmountSingle
	DebitCol    string // AmountSplit
	CreditCol   string // AmountSplit
	CategoryCol string // optional

	DateLayouts []string

	// Negate flips single-column amounts for issuers that export charges as
	// positive numbers.
	Negate bool

	// CategoryAliases renames source categories before resolution. The ""
	// key applies to rows with a blank category.
	CategoryAliases map[string]string
}

func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case AmountSingle:
		cols = append(cols, p.AmountCol)
	case AmountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

func (p Profile) layouts() []string {
	if len(p.DateLayouts) == 0 {
		return DefaultDateLayouts
	}

	return p.DateLayouts
}

func (p Profile) alias(category string) string {
	if p.CategoryAliases == nil {
		return category
	}

	if a, ok := p.CategoryAliases[category]; ok {
		return a
	}

	return category
}

// colIndex maps lowercased column names to their index in the row.
type colIndex map[string]int

func (c colIndex) get(name string) int {
	if name == "" {
		return -1
	}

	if i, ok := c[strings.ToLower(name)]; ok {
		return i
	}

	return -1
}

// detectProfile scans rows for a header matching one of profiles, in order.
// Returns the matched profile, its column map and the header row index.
func detectProfile(profiles []Profile, rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if _, dup := cols[name]; name != "" && !dup {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if cols.get(name) < 0 {
			return false
		}
	}

	return true
}
