package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/MrJamesThe3rd/budgetsync/internal/config"
)

// driverNames maps config drivers to the database/sql registrations.
var driverNames = map[string]string{
	config.DriverPostgres: "pgx",
	config.DriverSQLite:   "sqlite",
}

func New(driver, connStr string) (*sql.DB, error) {
	name, ok := driverNames[driver]
	if !ok {
		return nil, fmt.Errorf("unknown driver %q", driver)
	}

	db, err := sql.Open(name, connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if driver == config.DriverSQLite {
		// SQLite allows one writer at a time.
		db.SetMaxOpenConns(1)
		return db, nil
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}
