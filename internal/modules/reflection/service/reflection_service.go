package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"thrivehub/internal/modules/reflection/domain"
	reflectionout "thrivehub/internal/modules/reflection/port/out"
)

type ReflectionService struct {
	store     reflectionout.ReflectionStore
	projector reflectionout.ReflectionIndexProjector
	logger    *zap.Logger
}

// NewReflectionService accepts a nil projector, in which case no index is
// maintained.
func NewReflectionService(store reflectionout.ReflectionStore, projector reflectionout.ReflectionIndexProjector) *ReflectionService {
	return &ReflectionService{store: store, projector: projector, logger: zap.NewNop()}
}

// WithLogger sets where index failures are reported.
func (s *ReflectionService) WithLogger(logger *zap.Logger) *ReflectionService {
	if logger != nil {
		s.logger = logger
	}
	return s
}

func (s *ReflectionService) Append(ctx context.Context, text string, now time.Time) (domain.Entry, error) {
	entry := domain.Entry{Timestamp: now, Text: text}
	if err := entry.Validate(); err != nil {
		return domain.Entry{}, err
	}
	entries, err := s.store.Load(ctx)
	if err != nil {
		return domain.Entry{}, err
	}
	entries = append(entries, entry)
	if err := s.store.Replace(ctx, entries); err != nil {
		return domain.Entry{}, err
	}
	// The file is the source of truth; a stale index is repaired by reindex.
	if s.projector != nil {
		if err := s.projector.Insert(ctx, len(entries), entry); err != nil {
			s.logger.Warn("reflection saved but index update failed; run reindex",
				zap.Int("seq", len(entries)),
				zap.Error(err),
			)
		}
	}
	return entry, nil
}

func (s *ReflectionService) List(ctx context.Context) ([]domain.Entry, error) {
	return s.store.Load(ctx)
}

// Reindex rebuilds the projection from the store and returns the number of
// entries indexed.
func (s *ReflectionService) Reindex(ctx context.Context) (int, error) {
	if s.projector == nil {
		return 0, nil
	}
	entries, err := s.store.Load(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.projector.Reset(ctx); err != nil {
		return 0, err
	}
	for i, entry := range entries {
		if err := s.projector.Insert(ctx, i+1, entry); err != nil {
			return 0, err
		}
	}
	return len(entries), nil
}
