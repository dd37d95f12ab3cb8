package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	enc "github.com/MrJamesThe3rd/budgetsync/internal/encoding"
)

// ReadCSVFile reads one export with the first profile whose header appears in it.
func ReadCSVFile(path string, profiles []Profile) ([]RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	return ReadCSV(f, path, profiles)
}

// ReadCSV decodes r to UTF-8 and returns its data rows. Lines before the
// header are ignored, as are fully blank rows.
func ReadCSV(r io.Reader, name string, profiles []Profile) ([]RawRow, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var (
		rows  [][]string
		lines []int
	)

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		line, _ := reader.FieldPos(0)
		rows = append(rows, row)
		lines = append(lines, line)
	}

	profile, cols, headerIdx := detectProfile(profiles, rows)
	if profile == nil {
		return nil, ErrNoProfile
	}

	idx := struct{ date, desc, amount, debit, credit, category int }{
		date:     cols.get(profile.DateCol),
		desc:     cols.get(profile.DescCol),
		amount:   cols.get(profile.AmountCol),
		debit:    cols.get(profile.DebitCol),
		credit:   cols.get(profile.CreditCol),
		category: cols.get(profile.CategoryCol),
	}

	var out []RawRow

	for i, row := range rows[headerIdx+1:] {
		if blank(row) {
			continue
		}

		out = append(out, RawRow{
			File:        name,
			Line:        lines[headerIdx+1+i],
			Profile:     profile,
			Date:        cellValue(row, idx.date),
			Description: cellValue(row, idx.desc),
			Amount:      cellValue(row, idx.amount),
			Debit:       cellValue(row, idx.debit),
			Credit:      cellValue(row, idx.credit),
			Category:    cellValue(row, idx.category),
		})
	}

	return out, nil
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
