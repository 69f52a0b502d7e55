package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by stores when a record does not exist.
var ErrNotFound = errors.New("not found")

// Kind classifies a failed catalog or quiz operation. Every failure carries exactly one.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindUnprocessable
	KindBadRequest
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindUnprocessable:
		return "unprocessable"
	case KindBadRequest:
		return "bad_request"
	default:
		return "unknown"
	}
}

// Error is the typed failure surfaced by the query engine and the quiz selector.
// The wrapped cause is kept for logging only.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds an Error of the given kind.
func NewError(op string, kind Kind, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf reports the Kind of err, or KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
