package catalog

import (
	"fmt"
	"math"
)

// PaginationMode selects how a page number maps to an item window.
type PaginationMode int

const (
	// PaginationOffset serves [(page-1)*size, page*size).
	PaginationOffset PaginationMode = iota
	// PaginationLegacy serves [page-1, page-1+size); adjacent pages overlap by size-1 items.
	PaginationLegacy
)

// ParsePaginationMode accepts "offset" (or empty) and "legacy".
func ParsePaginationMode(s string) (PaginationMode, error) {
	switch s {
	case "", "offset":
		return PaginationOffset, nil
	case "legacy":
		return PaginationLegacy, nil
	default:
		return 0, fmt.Errorf("unknown pagination mode %q", s)
	}
}

func (m PaginationMode) String() string {
	if m == PaginationLegacy {
		return "legacy"
	}
	return "offset"
}

// UnmarshalText lets config loaders parse the mode from its name.
func (m *PaginationMode) UnmarshalText(text []byte) error {
	parsed, err := ParsePaginationMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Offset returns the index of the first item of page. page must be >= 1.
// ok is false when the offset does not fit in an int, so the page is necessarily empty.
func (m PaginationMode) Offset(page, size int) (offset int, ok bool) {
	if m == PaginationLegacy || size <= 1 {
		return page - 1, true
	}
	if page-1 > math.MaxInt/size {
		return 0, false
	}
	return (page - 1) * size, true
}

// EmptyResultPolicy decides whether an empty category list or question page is a failure.
type EmptyResultPolicy int

const (
	// EmptyIsNotFound reports empty categories and empty pages as KindNotFound.
	EmptyIsNotFound EmptyResultPolicy = iota
	// EmptyIsSuccess returns empty payloads.
	EmptyIsSuccess
)

// Options tunes the query engine.
type Options struct {
	PageSize     int
	Pagination   PaginationMode
	EmptyResults EmptyResultPolicy
}

func (o Options) withDefaults() Options {
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	return o
}
