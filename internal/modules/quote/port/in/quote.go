package in

import (
	"context"

	"thrivehub/internal/modules/quote/dto"
)

type Usecase interface {
	Daily(ctx context.Context, input dto.DailyQuoteInput) (dto.DailyQuoteOutput, error)
	List(ctx context.Context) ([]string, error)
}
