package domain

import (
	"strings"

	"thrivehub/internal/platform/calendar"
	apperrors "thrivehub/internal/platform/errors"
)

type Quote string

// Set is a non-empty, ordered collection of quotes. The only way to build one
// is NewSet, so a Set value always has at least one quote.
type Set struct {
	quotes []Quote
}

func NewSet(quotes ...string) (Set, error) {
	out := make([]Quote, 0, len(quotes))
	for _, q := range quotes {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		out = append(out, Quote(q))
	}
	if len(out) == 0 {
		return Set{}, apperrors.ErrEmptyQuoteSet
	}
	return Set{quotes: out}, nil
}

func (s Set) Len() int { return len(s.quotes) }

func (s Set) At(i int) Quote { return s.quotes[i] }

func (s Set) Contains(q Quote) bool {
	for _, item := range s.quotes {
		if item == q {
			return true
		}
	}
	return false
}

func (s Set) All() []Quote {
	return append([]Quote(nil), s.quotes...)
}

// Cache is the per-session memo of the day's quote. The zero value is an
// empty cache.
type Cache struct {
	Date  calendar.Date
	Quote Quote
}

// Current reports whether the cache already holds a quote for today.
func (c Cache) Current(today calendar.Date) bool {
	return c.Quote != "" && !c.Date.IsZero() && c.Date == today
}
