// Package repository implements the catalog store on Postgres.
package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is satisfied by *pgxpool.Pool, pgx.Tx and pgxmock pools.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// builder renders Postgres-style $N placeholders.
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const (
	questionsTable  = "questions"
	categoriesTable = "categories"
)

var (
	questionColumns = []string{"id", "question", "answer", "difficulty", "category"}
	categoryColumns = []string{"id", "type"}
)
