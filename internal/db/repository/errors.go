package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gokatarajesh/trivia-api/internal/catalog"
)

// ErrConstraint marks writes rejected by a foreign key or check constraint.
var ErrConstraint = errors.New("constraint violation")

func mapError(err error, entity string, id any) error {
	if err == nil {
		return nil
	}

	// context errors pass through as-is
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %v: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) || pgxscan.NotFound(err) {
		return fmt.Errorf("%s %v: %w", entity, id, catalog.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %v: %s: %w", entity, id, pgErr.ConstraintName, ErrConstraint)
		case "23514": // check_violation
			return fmt.Errorf("%s %v: %s: %w", entity, id, pgErr.ConstraintName, ErrConstraint)
		}
	}

	return fmt.Errorf("%s %v: %w", entity, id, err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike quotes LIKE wildcards so term matches literally.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
