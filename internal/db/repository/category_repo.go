package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/gokatarajesh/trivia-api/internal/catalog"
)

type categoryRow struct {
	ID   int64  `db:"id"`
	Type string `db:"type"`
}

// CategoryRepository reads the seeded categories table.
type CategoryRepository struct {
	q Querier
}

var _ catalog.CategoryStore = (*CategoryRepository)(nil)

func NewCategoryRepository(q Querier) *CategoryRepository {
	return &CategoryRepository{q: q}
}

// AllCategories returns every category ordered by id.
func (r *CategoryRepository) AllCategories(ctx context.Context) ([]catalog.Category, error) {
	sql, args, err := builder.Select(categoryColumns...).From(categoriesTable).OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, mapError(err, "categories", "all")
	}

	var rows []categoryRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, mapError(err, "categories", "all")
	}

	out := make([]catalog.Category, len(rows))
	for i, row := range rows {
		out[i] = catalog.Category{ID: row.ID, Type: row.Type}
	}
	return out, nil
}

// CategoryByID returns catalog.ErrNotFound when the category does not exist.
func (r *CategoryRepository) CategoryByID(ctx context.Context, id int64) (*catalog.Category, error) {
	sql, args, err := builder.Select(categoryColumns...).
		From(categoriesTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, mapError(err, "category", id)
	}

	var row categoryRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		return nil, mapError(err, "category", id)
	}
	return &catalog.Category{ID: row.ID, Type: row.Type}, nil
}
