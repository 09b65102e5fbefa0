package usecase

import (
	"context"

	"thrivehub/internal/modules/reflection/dto"
	reflectionin "thrivehub/internal/modules/reflection/port/in"
	"thrivehub/internal/modules/reflection/service"
	"thrivehub/internal/platform/clock"
)

type Interactor struct {
	svc   *service.ReflectionService
	clock clock.Clock
}

func NewInteractor(svc *service.ReflectionService, clock clock.Clock) reflectionin.Usecase {
	return &Interactor{svc: svc, clock: clock}
}

func (i *Interactor) Append(ctx context.Context, input dto.AppendInput) (dto.EntryOutput, error) {
	entry, err := i.svc.Append(ctx, input.Text, i.clock.Now())
	if err != nil {
		return dto.EntryOutput{}, err
	}
	return dto.EntryOutput{Timestamp: entry.Timestamp, Text: entry.Text}, nil
}

func (i *Interactor) List(ctx context.Context) ([]dto.EntryOutput, error) {
	entries, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EntryOutput, 0, len(entries))
	for _, entry := range entries {
		out = append(out, dto.EntryOutput{Timestamp: entry.Timestamp, Text: entry.Text})
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
