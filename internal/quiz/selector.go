package quiz

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/catalog"
)

// Policy decides which unseen candidate is served next.
type Policy int

const (
	// SelectFirstUnseen serves the first unseen question in id order.
	SelectFirstUnseen Policy = iota
	// SelectRandomUnseen serves a uniformly random unseen question.
	SelectRandomUnseen
)

// ParsePolicy accepts "first" (or empty) and "random".
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "first":
		return SelectFirstUnseen, nil
	case "random":
		return SelectRandomUnseen, nil
	default:
		return 0, fmt.Errorf("unknown quiz selection policy %q", s)
	}
}

func (p Policy) String() string {
	if p == SelectRandomUnseen {
		return "random"
	}
	return "first"
}

// UnmarshalText lets config loaders parse the policy from its name.
func (p *Policy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Pool is the read surface the selector draws candidates from.
type Pool interface {
	AllQuestions(ctx context.Context) ([]catalog.Question, error)
	QuestionsByCategory(ctx context.Context, categoryID int64) ([]catalog.Question, error)
}

// SeenSet holds the ids already served in a quiz session.
type SeenSet map[int64]struct{}

// NewSeenSet builds a SeenSet from ids.
func NewSeenSet(ids ...int64) SeenSet {
	s := make(SeenSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id was already served.
func (s SeenSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

// Options configures a Selector.
type Options struct {
	Policy Policy
	// Source seeds random selection; defaults to a time-seeded source.
	Source rand.Source
}

// Selector picks the next question of a stateless quiz session.
type Selector struct {
	pool   Pool
	policy Policy
	logger zerolog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector constructs a quiz selector.
func NewSelector(pool Pool, opts Options, logger zerolog.Logger) *Selector {
	src := opts.Source
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Selector{
		pool:   pool,
		policy: opts.Policy,
		logger: logger.With().Str("component", "quiz_selector").Logger(),
		rng:    rand.New(src),
	}
}

// Policy returns the configured selection policy.
func (s *Selector) Policy() Policy { return s.policy }

// Next returns the next unseen question for category, or nil when the pool is exhausted.
// Exhaustion is not an error.
func (s *Selector) Next(ctx context.Context, category int64, seen SeenSet) (*catalog.Question, error) {
	const op = "quiz.Next"

	if category < catalog.AnyCategory {
		return nil, catalog.NewError(op, catalog.KindBadRequest, nil)
	}

	candidates, err := s.candidates(ctx, category)
	if err != nil {
		return nil, catalog.NewError(op, catalog.KindUnprocessable, err)
	}

	unseen := make([]catalog.Question, 0, len(candidates))
	for _, q := range candidates {
		if seen.Has(q.ID) {
			continue
		}
		if s.policy == SelectFirstUnseen {
			return &q, nil
		}
		unseen = append(unseen, q)
	}

	if len(unseen) == 0 {
		s.logger.Debug().
			Int64("category", category).
			Int("seen", len(seen)).
			Msg("quiz pool exhausted")
		return nil, nil
	}

	s.mu.Lock()
	pick := unseen[s.rng.Intn(len(unseen))]
	s.mu.Unlock()
	return &pick, nil
}

func (s *Selector) candidates(ctx context.Context, category int64) ([]catalog.Question, error) {
	if category == catalog.AnyCategory {
		return s.pool.AllQuestions(ctx)
	}
	return s.pool.QuestionsByCategory(ctx, category)
}
