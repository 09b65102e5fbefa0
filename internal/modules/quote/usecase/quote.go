package usecase

import (
	"context"
	"fmt"

	"thrivehub/internal/modules/quote/domain"
	"thrivehub/internal/modules/quote/dto"
	quotein "thrivehub/internal/modules/quote/port/in"
	"thrivehub/internal/modules/quote/service"
	"thrivehub/internal/platform/calendar"
	"thrivehub/internal/platform/clock"
)

type Interactor struct {
	svc   *service.QuoteService
	clock clock.Clock
}

func NewInteractor(svc *service.QuoteService, clock clock.Clock) quotein.Usecase {
	return &Interactor{svc: svc, clock: clock}
}

func (i *Interactor) Daily(_ context.Context, input dto.DailyQuoteInput) (dto.DailyQuoteOutput, error) {
	if input.Cache == nil {
		return dto.DailyQuoteOutput{}, fmt.Errorf("quote cache is required")
	}
	cache := domain.Cache{Date: input.Cache.Date, Quote: domain.Quote(input.Cache.Quote)}
	today := calendar.Of(i.clock.Now())
	q, fresh := i.svc.Daily(&cache, today)
	input.Cache.Date = cache.Date
	input.Cache.Quote = string(cache.Quote)
	return dto.DailyQuoteOutput{Date: cache.Date, Quote: string(q), Fresh: fresh}, nil
}

func (i *Interactor) List(_ context.Context) ([]string, error) {
	all := i.svc.Set().All()
	out := make([]string, 0, len(all))
	for _, q := range all {
		out = append(out, string(q))
	}
	return out, nil
}
