package repository

import "github.com/gokatarajesh/trivia-api/internal/catalog"

// NewStore returns the Postgres-backed catalog store.
func NewStore(q Querier) catalog.Composite {
	return catalog.Composite{
		QuestionStore: NewQuestionRepository(q),
		CategoryStore: NewCategoryRepository(q),
	}
}
