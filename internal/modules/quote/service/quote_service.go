package service

import (
	"thrivehub/internal/modules/quote/domain"
	quoteout "thrivehub/internal/modules/quote/port/out"
	"thrivehub/internal/platform/calendar"
)

type QuoteService struct {
	set    domain.Set
	picker quoteout.Picker
}

func NewQuoteService(set domain.Set, picker quoteout.Picker) *QuoteService {
	return &QuoteService{set: set, picker: picker}
}

// Daily returns the cached quote when the cache holds one for today, and
// otherwise draws a new quote and stores it in the cache with today's date.
func (s *QuoteService) Daily(cache *domain.Cache, today calendar.Date) (domain.Quote, bool) {
	if cache.Current(today) {
		return cache.Quote, false
	}
	q := s.set.At(s.picker.Intn(s.set.Len()))
	cache.Date = today
	cache.Quote = q
	return q, true
}

func (s *QuoteService) Set() domain.Set {
	return s.set
}
