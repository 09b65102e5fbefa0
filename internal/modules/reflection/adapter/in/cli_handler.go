package in

import (
	"context"

	reflectiondto "thrivehub/internal/modules/reflection/dto"
	reflectionin "thrivehub/internal/modules/reflection/port/in"
)

type CLIHandler struct {
	usecase reflectionin.Usecase
}

func NewCLIHandler(usecase reflectionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Append(ctx context.Context, text string) (reflectiondto.EntryOutput, error) {
	return h.usecase.Append(ctx, reflectiondto.AppendInput{Text: text})
}

func (h CLIHandler) List(ctx context.Context) ([]reflectiondto.EntryOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Reindex(ctx context.Context) (reflectiondto.ReindexOutput, error) {
	return h.usecase.Reindex(ctx)
}
