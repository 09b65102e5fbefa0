package in

import (
	"context"

	progressdto "thrivehub/internal/modules/progress/dto"
	progressin "thrivehub/internal/modules/progress/port/in"
)

type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Save records value for today.
func (h CLIHandler) Save(ctx context.Context, value int) (progressdto.EntryOutput, error) {
	return h.usecase.Append(ctx, progressdto.AppendInput{Value: value})
}

func (h CLIHandler) History(ctx context.Context) ([]progressdto.EntryOutput, error) {
	return h.usecase.LoadAll(ctx)
}

func (h CLIHandler) Reindex(ctx context.Context) (progressdto.ReindexOutput, error) {
	return h.usecase.Reindex(ctx)
}
