package catalog

import "context"

// QuestionStore is the question half of the catalog storage.
// All sequences are ordered by ascending question id.
type QuestionStore interface {
	AllQuestions(ctx context.Context) ([]Question, error)
	CountQuestions(ctx context.Context) (int, error)
	QuestionsPage(ctx context.Context, offset, limit int) ([]Question, error)
	// QuestionByID returns ErrNotFound when the question does not exist.
	QuestionByID(ctx context.Context, id int64) (*Question, error)
	QuestionsByCategory(ctx context.Context, categoryID int64) ([]Question, error)
	// SearchQuestions matches term as a case-sensitive substring of the question text.
	SearchQuestions(ctx context.Context, term string) ([]Question, error)
	InsertQuestion(ctx context.Context, q NewQuestion) (Question, error)
	// DeleteQuestion returns ErrNotFound when nothing was deleted.
	DeleteQuestion(ctx context.Context, id int64) error
}

// CategoryStore is the category half of the catalog storage.
type CategoryStore interface {
	AllCategories(ctx context.Context) ([]Category, error)
	// CategoryByID returns ErrNotFound when the category does not exist.
	CategoryByID(ctx context.Context, id int64) (*Category, error)
}

// Store is the full storage surface the engine reads and writes through.
type Store interface {
	QuestionStore
	CategoryStore
}

// EventPublisher delivers catalog mutations to subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, evt Event) error
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, Event) error { return nil }

// Composite joins separately backed question and category stores.
type Composite struct {
	QuestionStore
	CategoryStore
}
