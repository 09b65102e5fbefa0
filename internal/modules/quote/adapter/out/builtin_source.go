package out

import (
	"context"

	"thrivehub/internal/modules/quote/domain"
	quoteout "thrivehub/internal/modules/quote/port/out"
)

var builtinQuotes = []string{
	"Failure is simply the opportunity to begin again, this time more intelligently. – Henry Ford",
	"Success is not final, failure is not fatal: It is the courage to continue that counts. – Winston Churchill",
	"Hardships often prepare ordinary people for an extraordinary destiny. – C.S. Lewis",
	"Believe you can and you're halfway there. – Theodore Roosevelt",
	"Your limitation—it's only your imagination.",
}

type BuiltinSource struct{}

func NewBuiltinSource() quoteout.QuoteSource {
	return BuiltinSource{}
}

func (BuiltinSource) Load(context.Context) (domain.Set, error) {
	return domain.NewSet(builtinQuotes...)
}
