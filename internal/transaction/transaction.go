package transaction

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the canonical record every issuer adapter converges to.
// Amounts follow one convention: debits negative, credits and refunds positive.
type Transaction struct {
	Date         time.Time // calendar date, time-of-day zeroed
	Amount       decimal.Decimal
	MerchantName string
	Category     string
	Person       string
	AccountType  string
}

// Key identifies a transaction for deduplication.
type Key struct {
	Date         string
	MerchantName string
	Amount       string
	Person       string
	AccountType  string
}

func (t Transaction) Key() Key {
	return Key{
		Date:         t.Date.Format(time.DateOnly),
		MerchantName: t.MerchantName,
		Amount:       t.Amount.StringFixed(2),
		Person:       t.Person,
		AccountType:  t.AccountType,
	}
}

// Dedupe drops later transactions sharing a Key with an earlier one.
func Dedupe(txs []Transaction) []Transaction {
	seen := make(map[Key]struct{}, len(txs))
	out := make([]Transaction, 0, len(txs))

	for _, t := range txs {
		k := t.Key()
		if _, dup := seen[k]; dup {
			continue
		}

		seen[k] = struct{}{}
		out = append(out, t)
	}

	return out
}

// SortByDate orders transactions by date, keeping input order for equal dates.
func SortByDate(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.Before(txs[j].Date)
	})
}

// Day truncates t to a timezone-naive calendar date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// RefKind names one of the reference tables a transaction points at.
type RefKind string

const (
	RefCategory    RefKind = "category"
	RefPerson      RefKind = "person"
	RefAccountType RefKind = "account_type"
)

// Row is a transaction with its references resolved to surrogate ids.
type Row struct {
	Date          time.Time
	Amount        decimal.Decimal
	MerchantName  string
	CategoryID    int64
	PersonID      int64
	AccountTypeID int64
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
