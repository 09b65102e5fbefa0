package out

import (
	"context"

	"thrivehub/internal/modules/progress/domain"
)

// ProgressStore is the source of truth. Load returns an empty slice when
// nothing has been written yet.
type ProgressStore interface {
	Load(ctx context.Context) ([]domain.Entry, error)
	Replace(ctx context.Context, entries []domain.Entry) error
}

type ProgressIndexProjector interface {
	Reset(ctx context.Context) error
	Insert(ctx context.Context, seq int, entry domain.Entry) error
}
