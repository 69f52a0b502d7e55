package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/gokatarajesh/trivia-api/internal/catalog"
)

type questionRow struct {
	ID         int64  `db:"id"`
	Question   string `db:"question"`
	Answer     string `db:"answer"`
	Difficulty int    `db:"difficulty"`
	Category   int64  `db:"category"`
}

func (r questionRow) toDomain() catalog.Question {
	return catalog.Question{
		ID:         r.ID,
		Question:   r.Question,
		Answer:     r.Answer,
		Difficulty: r.Difficulty,
		Category:   r.Category,
	}
}

// QuestionRepository reads and writes the questions table.
type QuestionRepository struct {
	q Querier
}

var _ catalog.QuestionStore = (*QuestionRepository)(nil)

func NewQuestionRepository(q Querier) *QuestionRepository {
	return &QuestionRepository{q: q}
}

func (r *QuestionRepository) selectQuestions() squirrel.SelectBuilder {
	return builder.Select(questionColumns...).From(questionsTable).OrderBy("id ASC")
}

func (r *QuestionRepository) list(ctx context.Context, query squirrel.SelectBuilder, entity string, key any) ([]catalog.Question, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, mapError(err, entity, key)
	}

	var rows []questionRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, mapError(err, entity, key)
	}

	out := make([]catalog.Question, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// AllQuestions returns every question ordered by id.
func (r *QuestionRepository) AllQuestions(ctx context.Context) ([]catalog.Question, error) {
	return r.list(ctx, r.selectQuestions(), "questions", "all")
}

// CountQuestions returns the size of the whole collection.
func (r *QuestionRepository) CountQuestions(ctx context.Context) (int, error) {
	sql, args, err := builder.Select("COUNT(*)").From(questionsTable).ToSql()
	if err != nil {
		return 0, mapError(err, "questions", "count")
	}

	var n int
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, mapError(err, "questions", "count")
	}
	return n, nil
}

// QuestionsPage returns up to limit questions starting at offset.
// A negative offset or non-positive limit selects nothing.
func (r *QuestionRepository) QuestionsPage(ctx context.Context, offset, limit int) ([]catalog.Question, error) {
	if offset < 0 || limit <= 0 {
		return []catalog.Question{}, nil
	}
	query := r.selectQuestions().Limit(uint64(limit)).Offset(uint64(offset))
	return r.list(ctx, query, "questions page", offset)
}

// QuestionByID returns catalog.ErrNotFound when the row is absent.
func (r *QuestionRepository) QuestionByID(ctx context.Context, id int64) (*catalog.Question, error) {
	sql, args, err := r.selectQuestions().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, mapError(err, "question", id)
	}

	var row questionRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		return nil, mapError(err, "question", id)
	}
	q := row.toDomain()
	return &q, nil
}

// QuestionsByCategory returns the questions of one category ordered by id.
func (r *QuestionRepository) QuestionsByCategory(ctx context.Context, categoryID int64) ([]catalog.Question, error) {
	query := r.selectQuestions().Where(squirrel.Eq{"category": categoryID})
	return r.list(ctx, query, "category questions", categoryID)
}

// SearchQuestions runs a case-sensitive substring match on the question text.
func (r *QuestionRepository) SearchQuestions(ctx context.Context, term string) ([]catalog.Question, error) {
	query := r.selectQuestions().Where(squirrel.Like{"question": "%" + escapeLike(term) + "%"})
	return r.list(ctx, query, "question search", term)
}

// InsertQuestion stores a question and returns it with the assigned id.
func (r *QuestionRepository) InsertQuestion(ctx context.Context, in catalog.NewQuestion) (catalog.Question, error) {
	sql, args, err := builder.Insert(questionsTable).
		Columns("question", "answer", "difficulty", "category").
		Values(in.Question, in.Answer, in.Difficulty, in.Category).
		Suffix("RETURNING id, question, answer, difficulty, category").
		ToSql()
	if err != nil {
		return catalog.Question{}, mapError(err, "question", "new")
	}

	var row questionRow
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&row.ID, &row.Question, &row.Answer, &row.Difficulty, &row.Category); err != nil {
		return catalog.Question{}, mapError(err, "question", "new")
	}
	return row.toDomain(), nil
}

// DeleteQuestion returns catalog.ErrNotFound when no row was removed.
func (r *QuestionRepository) DeleteQuestion(ctx context.Context, id int64) error {
	sql, args, err := builder.Delete(questionsTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return mapError(err, "question", id)
	}

	tag, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		return mapError(err, "question", id)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "question", id)
	}
	return nil
}
