package in

import (
	"context"

	"thrivehub/internal/modules/reflection/dto"
)

type Usecase interface {
	Append(ctx context.Context, input dto.AppendInput) (dto.EntryOutput, error)
	List(ctx context.Context) ([]dto.EntryOutput, error)
	Reindex(ctx context.Context) (dto.ReindexOutput, error)
}
