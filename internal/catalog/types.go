package catalog

import "time"

const (
	// DefaultPageSize is the number of questions returned per listing page.
	DefaultPageSize = 10

	// AnyCategory is the quiz category selector meaning "no restriction".
	AnyCategory int64 = 0

	// MinDifficulty and MaxDifficulty bound Question.Difficulty, inclusive.
	MinDifficulty = 1
	MaxDifficulty = 5

	// AllCategoriesLabel is reported as currentCategory for unfiltered views.
	AllCategoriesLabel = "ALL"
)

// Question is a single catalog entry as delivered to clients.
type Question struct {
	ID         int64  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty int    `json:"difficulty"`
	Category   int64  `json:"category"`
}

// Category groups questions under a human-readable label.
type Category struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// NewQuestion carries the fields required to insert a question.
type NewQuestion struct {
	Question   string
	Answer     string
	Difficulty int
	Category   int64
}

// CategoryMap maps category id to its type label.
type CategoryMap map[int64]string

// QuestionPage is one page of the full question listing.
type QuestionPage struct {
	Questions       []Question  `json:"questions"`
	TotalQuestions  int         `json:"totalQuestions"`
	Categories      CategoryMap `json:"categories"`
	CurrentCategory string      `json:"currentCategory"`
}

// SearchResult holds every question matching a search term.
type SearchResult struct {
	Questions       []Question `json:"questions"`
	TotalQuestions  int        `json:"totalQuestions"`
	CurrentCategory string     `json:"currentCategory"`
}

// CategoryQuestions holds the questions of one category.
type CategoryQuestions struct {
	Questions       []Question `json:"questions"`
	TotalQuestions  int        `json:"totalQuestions"`
	CurrentCategory string     `json:"currentCategory"`
}

// EventType names a catalog mutation.
type EventType string

const (
	EventQuestionCreated EventType = "question_created"
	EventQuestionDeleted EventType = "question_deleted"
)

// Event describes a catalog mutation for downstream subscribers.
type Event struct {
	Type       EventType `json:"type"`
	QuestionID int64     `json:"question_id"`
	Category   int64     `json:"category,omitempty"`
	At         time.Time `json:"at"`
}
