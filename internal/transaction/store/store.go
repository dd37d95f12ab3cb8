package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/MrJamesThe3rd/budgetsync/internal/transaction"
)

type Store struct {
	db      *sql.DB
	dialect Dialect
}

func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

type refTable struct {
	name   string
	column string
}

var refTables = map[transaction.RefKind]refTable{
	transaction.RefCategory:    {name: "spending_categories", column: "category_name"},
	transaction.RefPerson:      {name: "persons", column: "name"},
	transaction.RefAccountType: {name: "account_type", column: "card_type"},
}

func lookupRefTable(kind transaction.RefKind) (refTable, error) {
	t, ok := refTables[kind]
	if !ok {
		return refTable{}, fmt.Errorf("unknown reference kind %q", kind)
	}

	return t, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]string, error) {
	t := refTables[transaction.RefCategory]
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s`, t.column, s.dialect.table(t.name), t.column)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var names []string

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	return names, nil
}

// batchLockKey serializes concurrent batches against the same schema, so two
// writers never race on creating the same reference row.
func batchLockKey(schema string) int64 {
	h := fnv.New64a()
	h.Write([]byte(schema))
	h.Write([]byte{0})
	h.Write([]byte("ingest"))

	return int64(h.Sum64())
}

type batch struct {
	tx      *sql.Tx
	dialect Dialect
}

func (s *Store) BeginBatch(ctx context.Context) (transaction.Batch, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning batch tx: %w", err)
	}

	if s.dialect.advisory {
		if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", batchLockKey(s.dialect.Schema)); err != nil {
			dbTx.Rollback()
			return nil, fmt.Errorf("acquiring batch lock: %w", err)
		}
	}

	return &batch{tx: dbTx, dialect: s.dialect}, nil
}

func (b *batch) Commit() error   { return b.tx.Commit() }
func (b *batch) Rollback() error { return b.tx.Rollback() }

func (b *batch) LoadReferences(ctx context.Context, cache *transaction.RefCache) error {
	for kind, t := range refTables {
		query := fmt.Sprintf(`SELECT id, %s FROM %s`, t.column, b.dialect.table(t.name))

		if err := b.loadTable(ctx, query, kind, cache); err != nil {
			return err
		}
	}

	return nil
}

func (b *batch) loadTable(ctx context.Context, query string, kind transaction.RefKind, cache *transaction.RefCache) error {
	rows, err := b.tx.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("loading %s references: %w", kind, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id   int64
			name string
		)

		if err := rows.Scan(&id, &name); err != nil {
			return fmt.Errorf("scanning %s reference: %w", kind, err)
		}

		cache.Put(kind, name, id)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating %s references: %w", kind, err)
	}

	return nil
}

// CreateReference returns the id of the row named name, inserting it when
// missing. A concurrent writer that wins the insert leaves us no RETURNING row,
// in which case the winner's id is read back.
func (b *batch) CreateReference(ctx context.Context, kind transaction.RefKind, name string) (int64, error) {
	t, err := lookupRefTable(kind)
	if err != nil {
		return 0, err
	}

	id, err := b.selectReference(ctx, t, name)
	if err == nil {
		return id, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	query := b.dialect.rebind(fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES (?) ON CONFLICT (%s) DO NOTHING RETURNING id`,
		b.dialect.table(t.name), t.column, t.column,
	))

	err = b.tx.QueryRowContext(ctx, query, name).Scan(&id)
	switch {
	case err == nil:
		return id, nil
	case errors.Is(err, sql.ErrNoRows):
		return b.selectReference(ctx, t, name)
	default:
		return 0, fmt.Errorf("inserting %s: %w", t.name, err)
	}
}

func (b *batch) selectReference(ctx context.Context, t refTable, name string) (int64, error) {
	query := b.dialect.rebind(fmt.Sprintf(
		`SELECT id FROM %s WHERE lower(%s) = lower(?) ORDER BY id LIMIT 1`,
		b.dialect.table(t.name), t.column,
	))

	var id int64
	if err := b.tx.QueryRowContext(ctx, query, name).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, err
		}

		return 0, fmt.Errorf("selecting %s: %w", t.name, err)
	}

	return id, nil
}

// InsertTransaction reports false when the row already exists. A row is the
// same transaction when date, merchant, amount, person and card match; the
// category is not part of its identity, so a row that resolves to another
// category on a later run is still ignored. The table's UNIQUE constraint
// also covers category_id and backs this check up within one category.
func (b *batch) InsertTransaction(ctx context.Context, row transaction.Row) (bool, error) {
	exists, err := b.transactionExists(ctx, row)
	if err != nil {
		return false, err
	}

	if exists {
		return false, nil
	}

	query := b.dialect.rebind(fmt.Sprintf(`
		INSERT INTO %s (amount, merchant_name, category_id, person_id, transaction_date, account_type_id)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING`, b.dialect.table("transactions")))

	res, err := b.tx.ExecContext(ctx, query,
		row.Amount,
		row.MerchantName,
		row.CategoryID,
		row.PersonID,
		b.dialect.date(row.Date),
		row.AccountTypeID,
	)
	if err != nil {
		return false, fmt.Errorf("inserting transaction: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading rows affected: %w", err)
	}

	return n > 0, nil
}

func (b *batch) transactionExists(ctx context.Context, row transaction.Row) (bool, error) {
	query := b.dialect.rebind(fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s
			WHERE amount = ? AND merchant_name = ? AND person_id = ?
				AND transaction_date = ? AND account_type_id = ?
		)`, b.dialect.table("transactions")))

	var exists bool
	if err := b.tx.QueryRowContext(ctx, query,
		row.Amount,
		row.MerchantName,
		row.PersonID,
		b.dialect.date(row.Date),
		row.AccountTypeID,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking transaction: %w", err)
	}

	return exists, nil
}
