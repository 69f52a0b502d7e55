// Package catalogtest provides an in-memory catalog.Store for tests.
package catalogtest

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/gokatarajesh/trivia-api/internal/catalog"
)

// MemoryStore keeps questions and categories in maps and enforces the category foreign key.
type MemoryStore struct {
	mu         sync.RWMutex
	questions  map[int64]catalog.Question
	categories map[int64]catalog.Category
	nextID     int64

	// Fail, when set, is returned by the named method ("AllQuestions", "InsertQuestion", ...).
	Fail map[string]error
	// KeepOnDelete makes DeleteQuestion report success without removing the row.
	KeepOnDelete bool
}

var _ catalog.Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		questions:  map[int64]catalog.Question{},
		categories: map[int64]catalog.Category{},
		Fail:       map[string]error{},
	}
}

// AddCategory seeds a category.
func (m *MemoryStore) AddCategory(id int64, label string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[id] = catalog.Category{ID: id, Type: label}
}

// AddQuestion seeds a question without category checks and returns its id.
func (m *MemoryStore) AddQuestion(text, answer string, difficulty int, category int64) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.questions[m.nextID] = catalog.Question{
		ID:         m.nextID,
		Question:   text,
		Answer:     answer,
		Difficulty: difficulty,
		Category:   category,
	}
	return m.nextID
}

func (m *MemoryStore) fail(method string) error {
	return m.Fail[method]
}

func (m *MemoryStore) sorted(keep func(catalog.Question) bool) []catalog.Question {
	out := make([]catalog.Question, 0, len(m.questions))
	for _, q := range m.questions {
		if keep == nil || keep(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *MemoryStore) AllQuestions(_ context.Context) ([]catalog.Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fail("AllQuestions"); err != nil {
		return nil, err
	}
	return m.sorted(nil), nil
}

func (m *MemoryStore) CountQuestions(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fail("CountQuestions"); err != nil {
		return 0, err
	}
	return len(m.questions), nil
}

func (m *MemoryStore) QuestionsPage(_ context.Context, offset, limit int) ([]catalog.Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fail("QuestionsPage"); err != nil {
		return nil, err
	}
	all := m.sorted(nil)
	if offset < 0 || limit <= 0 || offset >= len(all) {
		return []catalog.Question{}, nil
	}
	end := offset + limit
	if end > len(all) || end < offset {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *MemoryStore) QuestionByID(_ context.Context, id int64) (*catalog.Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fail("QuestionByID"); err != nil {
		return nil, err
	}
	q, ok := m.questions[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return &q, nil
}

func (m *MemoryStore) QuestionsByCategory(_ context.Context, categoryID int64) ([]catalog.Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fail("QuestionsByCategory"); err != nil {
		return nil, err
	}
	return m.sorted(func(q catalog.Question) bool { return q.Category == categoryID }), nil
}

func (m *MemoryStore) SearchQuestions(_ context.Context, term string) ([]catalog.Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fail("SearchQuestions"); err != nil {
		return nil, err
	}
	return m.sorted(func(q catalog.Question) bool { return strings.Contains(q.Question, term) }), nil
}

func (m *MemoryStore) InsertQuestion(_ context.Context, in catalog.NewQuestion) (catalog.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("InsertQuestion"); err != nil {
		return catalog.Question{}, err
	}
	if _, ok := m.categories[in.Category]; !ok {
		return catalog.Question{}, errors.New("foreign key violation: category")
	}
	m.nextID++
	q := catalog.Question{
		ID:         m.nextID,
		Question:   in.Question,
		Answer:     in.Answer,
		Difficulty: in.Difficulty,
		Category:   in.Category,
	}
	m.questions[q.ID] = q
	return q, nil
}

func (m *MemoryStore) DeleteQuestion(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("DeleteQuestion"); err != nil {
		return err
	}
	if _, ok := m.questions[id]; !ok {
		return catalog.ErrNotFound
	}
	if !m.KeepOnDelete {
		delete(m.questions, id)
	}
	return nil
}

func (m *MemoryStore) AllCategories(_ context.Context) ([]catalog.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fail("AllCategories"); err != nil {
		return nil, err
	}
	out := make([]catalog.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) CategoryByID(_ context.Context, id int64) (*catalog.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fail("CategoryByID"); err != nil {
		return nil, err
	}
	c, ok := m.categories[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return &c, nil
}

// RecordingPublisher captures published events.
type RecordingPublisher struct {
	mu     sync.Mutex
	Events []catalog.Event
	Err    error
}

func (p *RecordingPublisher) Publish(_ context.Context, evt catalog.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, evt)
	return p.Err
}

// Count returns the number of recorded events.
func (p *RecordingPublisher) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Events)
}
