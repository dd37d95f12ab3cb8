package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a US-formatted amount such as "$1,234.56", "-4.75" or
// "(12.00)". Parentheses mean negative.
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.NewReplacer("$", "", ",", "", " ", "").Replace(clean)

	negative := false
	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		negative = true
		clean = clean[1 : len(clean)-1]
	}

	if clean == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}

	if negative {
		d = d.Neg()
	}

	return d, nil
}

// ParseDate tries each layout in order and returns a UTC calendar date.
func ParseDate(s string, layouts []string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
