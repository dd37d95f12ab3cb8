package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/budgetsync/internal/logger"
	"github.com/MrJamesThe3rd/budgetsync/internal/transaction"
)

// Cleaner turns raw rows into categorized rows and records for one issuer.
type Cleaner struct {
	AccountType string
	Person      string
	Resolver    Resolver
}

// Clean drops rows that do not parse, normalizes signs to debit-negative,
// collapses rows repeated across overlapping files and resolves a category
// for every remaining row. It records per file how many rows parsed, which
// decides what Consumed reports.
func (c *Cleaner) Clean(ctx context.Context, rr *ReadResult) []Row {
	log := logger.FromContext(ctx)

	type dedupKey struct {
		Date        string
		Description string
		Amount      string
	}

	seen := make(map[dedupKey]struct{}, len(rr.Rows))
	rows := make([]Row, 0, len(rr.Rows))
	existing := make([]string, 0, len(rr.Rows))
	parsed := make(map[string]int, len(rr.Files))

	for _, raw := range rr.Rows {
		row, err := normalize(raw)
		if err != nil {
			log.Warn("dropping row", "file", raw.File, "line", raw.Line, "error", err)
			continue
		}

		parsed[raw.File]++

		k := dedupKey{
			Date:        row.Date.Format(time.DateOnly),
			Description: row.Description,
			Amount:      row.Amount.StringFixed(2),
		}
		if _, dup := seen[k]; dup {
			log.Debug("dropping duplicate row", "file", raw.File, "line", raw.Line, "merchant", row.Description)
			continue
		}

		seen[k] = struct{}{}
		rows = append(rows, row)
		existing = append(existing, raw.Profile.alias(raw.Category))
	}

	rr.setParsed(parsed)

	for i := range rows {
		res := c.Resolver.Resolve(ctx, rows[i].Description, existing[i])
		rows[i].Category = res.Category
		rows[i].Tier = res.Tier
	}

	return rows
}

// ToRecords attaches the owner and card label to cleaned rows.
func (c *Cleaner) ToRecords(rows []Row) []transaction.Transaction {
	out := make([]transaction.Transaction, len(rows))

	for i, r := range rows {
		out[i] = transaction.Transaction{
			Date:         r.Date,
			Amount:       r.Amount,
			MerchantName: r.Description,
			Category:     r.Category,
			Person:       c.Person,
			AccountType:  c.AccountType,
		}
	}

	return out
}

func normalize(raw RawRow) (Row, error) {
	if raw.Profile == nil {
		return Row{}, fmt.Errorf("row has no profile")
	}

	date, err := ParseDate(raw.Date, raw.Profile.layouts())
	if err != nil {
		return Row{}, err
	}

	if raw.Description == "" {
		return Row{}, fmt.Errorf("missing description")
	}

	amount, err := signedAmount(raw)
	if err != nil {
		return Row{}, err
	}

	return Row{
		Date:        date,
		Description: raw.Description,
		Amount:      amount,
	}, nil
}

// signedAmount applies the profile's sign convention so debits come out
// negative.
func signedAmount(raw RawRow) (decimal.Decimal, error) {
	p := raw.Profile

	if p.AmountMode == AmountSplit {
		if raw.Debit != "" {
			d, err := ParseAmount(raw.Debit)
			if err != nil {
				return decimal.Zero, fmt.Errorf("debit: %w", err)
			}

			if !d.IsZero() {
				return d.Abs().Neg(), nil
			}
		}

		if raw.Credit != "" {
			d, err := ParseAmount(raw.Credit)
			if err != nil {
				return decimal.Zero, fmt.Errorf("credit: %w", err)
			}

			return d.Abs(), nil
		}

		return decimal.Zero, fmt.Errorf("no debit or credit amount")
	}

	d, err := ParseAmount(raw.Amount)
	if err != nil {
		return decimal.Zero, err
	}

	if p.Negate {
		d = d.Neg()
	}

	return d, nil
}
