// Package apple reads Apple Card CSV exports.
package apple

import "github.com/MrJamesThe3rd/budgetsync/internal/importer"

const (
	Name        = "apple"
	AccountType = "Apple Card"
)

// Apple exports purchases as positive amounts and payments as negative ones.
var Profile = importer.Profile{
	Name:        "apple",
	DateCol:     "Transaction Date",
	DescCol:     "Merchant",
	AmountMode:  importer.AmountSingle,
	AmountCol:   "Amount (USD)",
	CategoryCol: "Category",
	Negate:      true,
}

func New(person string, resolver importer.Resolver) *importer.CSVSource {
	return importer.NewCSVSource(Name, []importer.Profile{Profile}, importer.Cleaner{
		AccountType: AccountType,
		Person:      person,
		Resolver:    resolver,
	})
}
