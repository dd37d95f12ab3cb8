// Package citi reads Citi card CSV exports.
package citi

import "github.com/MrJamesThe3rd/budgetsync/internal/importer"

const (
	Name        = "citi"
	AccountType = "Citi Card"
)

// Profiles is ordered most specific first. Current exports split debits and
// credits into two columns; older ones carry a single positive-debit amount
// and a category.
var Profiles = []importer.Profile{
	{
		Name:       "citi split",
		DateCol:    "Date",
		DescCol:    "Description",
		AmountMode: importer.AmountSplit,
		DebitCol:   "Debit",
		CreditCol:  "Credit",
	},
	{
		Name:        "citi single",
		DateCol:     "Date",
		DescCol:     "Description",
		AmountMode:  importer.AmountSingle,
		AmountCol:   "Amount",
		CategoryCol: "Category",
		Negate:      true,
	},
}

func New(person string, resolver importer.Resolver) *importer.CSVSource {
	return importer.NewCSVSource(Name, Profiles, importer.Cleaner{
		AccountType: AccountType,
		Person:      person,
		Resolver:    resolver,
	})
}
