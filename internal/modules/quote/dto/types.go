package dto

import "thrivehub/internal/platform/calendar"

// QuoteCache is session state owned by a UI shell and handed back on every
// call. It holds the last selected quote and the day it was selected.
type QuoteCache struct {
	Date  calendar.Date
	Quote string
}

type DailyQuoteInput struct {
	Cache *QuoteCache
}

type DailyQuoteOutput struct {
	Date  calendar.Date
	Quote string
	Fresh bool
}
