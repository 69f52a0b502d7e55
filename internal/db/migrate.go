// Package db holds schema management shared by the migrator and integration tests.
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/gokatarajesh/trivia-api/db/migrations"
)

// OpenSQL opens a database/sql handle on the pgx driver; goose requires *sql.DB.
func OpenSQL(dsn string) (*sql.DB, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return conn, nil
}

// NewMigrator returns a goose provider over the embedded migrations.
func NewMigrator(conn *sql.DB) (*goose.Provider, error) {
	provider, err := goose.NewProvider(goose.DialectPostgres, conn, migrations.FS)
	if err != nil {
		return nil, fmt.Errorf("goose new provider: %w", err)
	}
	return provider, nil
}
