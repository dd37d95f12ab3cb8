package store

import (
	"context"
	"fmt"
)

// sqliteSchema mirrors the budget_app Postgres tables.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS main.spending_categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		category_name TEXT NOT NULL UNIQUE COLLATE NOCASE
	)`,
	`CREATE TABLE IF NOT EXISTS main.persons (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE COLLATE NOCASE
	)`,
	`CREATE TABLE IF NOT EXISTS main.account_type (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		card_type TEXT NOT NULL UNIQUE COLLATE NOCASE
	)`,
	`CREATE TABLE IF NOT EXISTS main.transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		amount NUMERIC NOT NULL,
		merchant_name TEXT NOT NULL,
		category_id INTEGER NOT NULL REFERENCES spending_categories(id),
		person_id INTEGER NOT NULL REFERENCES persons(id),
		transaction_date TEXT NOT NULL,
		account_type_id INTEGER NOT NULL REFERENCES account_type(id),
		UNIQUE (amount, merchant_name, category_id, person_id, transaction_date, account_type_id)
	)`,
}

// EnsureSchema creates the tables on SQLite. The Postgres schema is managed
// outside this program, so it is left untouched there.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if s.dialect.Name != "sqlite" {
		return nil
	}

	for _, stmt := range sqliteSchema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	return nil
}
