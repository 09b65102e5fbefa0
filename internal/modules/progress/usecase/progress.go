package usecase

import (
	"context"

	"thrivehub/internal/modules/progress/dto"
	progressin "thrivehub/internal/modules/progress/port/in"
	"thrivehub/internal/modules/progress/service"
	"thrivehub/internal/platform/calendar"
	"thrivehub/internal/platform/clock"
)

type Interactor struct {
	svc   *service.ProgressService
	clock clock.Clock
}

func NewInteractor(svc *service.ProgressService, clock clock.Clock) progressin.Usecase {
	return &Interactor{svc: svc, clock: clock}
}

func (i *Interactor) Append(ctx context.Context, input dto.AppendInput) (dto.EntryOutput, error) {
	date := input.Date
	if date.IsZero() {
		date = calendar.Of(i.clock.Now())
	}
	entry, err := i.svc.Append(ctx, date, input.Value)
	if err != nil {
		return dto.EntryOutput{}, err
	}
	return dto.EntryOutput{Date: entry.Date, Value: entry.Value}, nil
}

func (i *Interactor) LoadAll(ctx context.Context) ([]dto.EntryOutput, error) {
	entries, err := i.svc.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EntryOutput, 0, len(entries))
	for _, entry := range entries {
		out = append(out, dto.EntryOutput{Date: entry.Date, Value: entry.Value})
	}
	return out, nil
}

func (i *Interactor) Reindex(ctx context.Context) (dto.ReindexOutput, error) {
	n, err := i.svc.Reindex(ctx)
	if err != nil {
		return dto.ReindexOutput{}, err
	}
	return dto.ReindexOutput{Indexed: n}, nil
}
