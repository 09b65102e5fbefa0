package out

import (
	"context"

	"thrivehub/internal/modules/quote/domain"
)

type QuoteSource interface {
	Load(ctx context.Context) (domain.Set, error)
}

// Picker chooses an index in [0, n) uniformly at random.
type Picker interface {
	Intn(n int) int
}
