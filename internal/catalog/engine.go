package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Engine serves read views over the catalog and applies question writes.
type Engine struct {
	store     Store
	publisher EventPublisher
	opts      Options
	logger    zerolog.Logger
	now       func() time.Time
}

// NewEngine constructs a query engine. publisher may be nil.
func NewEngine(store Store, publisher EventPublisher, opts Options, logger zerolog.Logger) *Engine {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &Engine{
		store:     store,
		publisher: publisher,
		opts:      opts.withDefaults(),
		logger:    logger.With().Str("component", "catalog_engine").Logger(),
		now:       time.Now,
	}
}

// Options returns the effective engine options.
func (e *Engine) Options() Options { return e.opts }

// ListCategories returns every category keyed by id.
func (e *Engine) ListCategories(ctx context.Context) (CategoryMap, error) {
	const op = "catalog.ListCategories"

	categories, err := e.categoryMap(ctx)
	if err != nil {
		return nil, NewError(op, KindUnprocessable, err)
	}
	if len(categories) == 0 && e.opts.EmptyResults == EmptyIsNotFound {
		return nil, NewError(op, KindNotFound, nil)
	}
	return categories, nil
}

// ListQuestions returns one page of the full question listing.
func (e *Engine) ListQuestions(ctx context.Context, page int) (QuestionPage, error) {
	const op = "catalog.ListQuestions"

	if page < 1 {
		return QuestionPage{}, NewError(op, KindBadRequest, nil)
	}

	var questions []Question
	if offset, ok := e.opts.Pagination.Offset(page, e.opts.PageSize); ok {
		var err error
		questions, err = e.store.QuestionsPage(ctx, offset, e.opts.PageSize)
		if err != nil {
			return QuestionPage{}, NewError(op, KindUnprocessable, err)
		}
	}
	total, err := e.store.CountQuestions(ctx)
	if err != nil {
		return QuestionPage{}, NewError(op, KindUnprocessable, err)
	}
	categories, err := e.categoryMap(ctx)
	if err != nil {
		return QuestionPage{}, NewError(op, KindUnprocessable, err)
	}

	if e.opts.EmptyResults == EmptyIsNotFound && (len(questions) == 0 || len(categories) == 0) {
		return QuestionPage{}, NewError(op, KindNotFound, nil)
	}

	return QuestionPage{
		Questions:       nonNil(questions),
		TotalQuestions:  total,
		Categories:      categories,
		CurrentCategory: AllCategoriesLabel,
	}, nil
}

// SearchQuestions returns every question whose text contains term.
// An empty match is a successful, empty result.
func (e *Engine) SearchQuestions(ctx context.Context, term string) (SearchResult, error) {
	const op = "catalog.SearchQuestions"

	questions, err := e.store.SearchQuestions(ctx, term)
	if err != nil {
		return SearchResult{}, NewError(op, KindUnprocessable, err)
	}
	total, err := e.store.CountQuestions(ctx)
	if err != nil {
		return SearchResult{}, NewError(op, KindUnprocessable, err)
	}

	return SearchResult{
		Questions:       nonNil(questions),
		TotalQuestions:  total,
		CurrentCategory: AllCategoriesLabel,
	}, nil
}

// ListQuestionsByCategory returns the questions filed under categoryID.
// Any failure other than "no questions" collapses to KindBadRequest.
func (e *Engine) ListQuestionsByCategory(ctx context.Context, categoryID int64) (CategoryQuestions, error) {
	const op = "catalog.ListQuestionsByCategory"

	category, err := e.store.CategoryByID(ctx, categoryID)
	if err != nil {
		return CategoryQuestions{}, NewError(op, KindBadRequest, err)
	}
	if category == nil {
		return CategoryQuestions{}, NewError(op, KindBadRequest, ErrNotFound)
	}
	questions, err := e.store.QuestionsByCategory(ctx, categoryID)
	if err != nil {
		return CategoryQuestions{}, NewError(op, KindBadRequest, err)
	}
	if len(questions) == 0 {
		return CategoryQuestions{}, NewError(op, KindNotFound, nil)
	}
	total, err := e.store.CountQuestions(ctx)
	if err != nil {
		return CategoryQuestions{}, NewError(op, KindBadRequest, err)
	}

	return CategoryQuestions{
		Questions:       questions,
		TotalQuestions:  total,
		CurrentCategory: category.Type,
	}, nil
}

// CreateQuestion validates and inserts a question.
// Validation and storage failures are both reported as KindUnprocessable.
func (e *Engine) CreateQuestion(ctx context.Context, in NewQuestion) (Question, error) {
	const op = "catalog.CreateQuestion"

	if err := validateNewQuestion(in); err != nil {
		return Question{}, NewError(op, KindUnprocessable, err)
	}

	created, err := e.store.InsertQuestion(ctx, in)
	if err != nil {
		return Question{}, NewError(op, KindUnprocessable, err)
	}

	e.publish(ctx, Event{Type: EventQuestionCreated, QuestionID: created.ID, Category: created.Category})
	return created, nil
}

// DeleteQuestion removes a question and confirms it is gone.
func (e *Engine) DeleteQuestion(ctx context.Context, id int64) error {
	const op = "catalog.DeleteQuestion"

	existing, err := e.store.QuestionByID(ctx, id)
	if err != nil {
		return NewError(op, KindNotFound, err)
	}
	if existing == nil {
		return NewError(op, KindNotFound, ErrNotFound)
	}
	if err := e.store.DeleteQuestion(ctx, id); err != nil {
		return NewError(op, KindNotFound, err)
	}

	remaining, err := e.store.QuestionByID(ctx, id)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return NewError(op, KindUnprocessable, err)
	case remaining != nil:
		return NewError(op, KindUnprocessable, errors.New("question still present after delete"))
	}

	e.publish(ctx, Event{Type: EventQuestionDeleted, QuestionID: id, Category: existing.Category})
	return nil
}

func (e *Engine) categoryMap(ctx context.Context) (CategoryMap, error) {
	categories, err := e.store.AllCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make(CategoryMap, len(categories))
	for _, c := range categories {
		out[c.ID] = c.Type
	}
	return out, nil
}

func (e *Engine) publish(ctx context.Context, evt Event) {
	evt.At = e.now().UTC()
	if err := e.publisher.Publish(ctx, evt); err != nil {
		e.logger.Warn().Err(err).
			Str("event", string(evt.Type)).
			Int64("question_id", evt.QuestionID).
			Msg("catalog event publish failed")
	}
}

func validateNewQuestion(in NewQuestion) error {
	switch {
	case strings.TrimSpace(in.Question) == "":
		return errors.New("question is required")
	case strings.TrimSpace(in.Answer) == "":
		return errors.New("answer is required")
	case in.Difficulty < MinDifficulty || in.Difficulty > MaxDifficulty:
		return errors.New("difficulty must be between 1 and 5")
	case in.Category < 1:
		return errors.New("category is required")
	}
	return nil
}

func nonNil(qs []Question) []Question {
	if qs == nil {
		return []Question{}
	}
	return qs
}
