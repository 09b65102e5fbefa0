package in

import (
	"context"

	quotedto "thrivehub/internal/modules/quote/dto"
	quotein "thrivehub/internal/modules/quote/port/in"
)

type CLIHandler struct {
	usecase quotein.Usecase
}

func NewCLIHandler(usecase quotein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Daily(ctx context.Context, cache *quotedto.QuoteCache) (quotedto.DailyQuoteOutput, error) {
	return h.usecase.Daily(ctx, quotedto.DailyQuoteInput{Cache: cache})
}

func (h CLIHandler) List(ctx context.Context) ([]string, error) {
	return h.usecase.List(ctx)
}
