// Package amex reads American Express CSV exports.
package amex

import "github.com/MrJamesThe3rd/budgetsync/internal/importer"

const (
	Name        = "amex"
	AccountType = "Amex Card"
)

// Amex exports charges as positive amounts and has no category column.
var Profile = importer.Profile{
	Name:       "amex",
	DateCol:    "Date",
	DescCol:    "Description",
	AmountMode: importer.AmountSingle,
	AmountCol:  "Amount",
	Negate:     true,
}

func New(person string, resolver importer.Resolver) *importer.CSVSource {
	return importer.NewCSVSource(Name, []importer.Profile{Profile}, importer.Cleaner{
		AccountType: AccountType,
		Person:      person,
		Resolver:    resolver,
	})
}
