package service

import (
	"context"

	"go.uber.org/zap"

	"thrivehub/internal/modules/progress/domain"
	progressout "thrivehub/internal/modules/progress/port/out"
	"thrivehub/internal/platform/calendar"
)

type ProgressService struct {
	store     progressout.ProgressStore
	projector progressout.ProgressIndexProjector
	logger    *zap.Logger
}

// NewProgressService accepts a nil projector, in which case no index is
// maintained.
func NewProgressService(store progressout.ProgressStore, projector progressout.ProgressIndexProjector) *ProgressService {
	return &ProgressService{store: store, projector: projector, logger: zap.NewNop()}
}

// WithLogger sets where index failures are reported.
func (s *ProgressService) WithLogger(logger *zap.Logger) *ProgressService {
	if logger != nil {
		s.logger = logger
	}
	return s
}

func (s *ProgressService) Append(ctx context.Context, date calendar.Date, value int) (domain.Entry, error) {
	entry := domain.Entry{Date: date, Value: value}
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
			s.logger.Warn("progress saved but index update failed; run reindex",
				zap.Int("seq", len(entries)),
				zap.Error(err),
			)
		}
	}
	return entry, nil
}

// LoadAll returns every entry in insertion order, duplicates included.
func (s *ProgressService) LoadAll(ctx context.Context) ([]domain.Entry, error) {
	return s.store.Load(ctx)
}

func (s *ProgressService) Reindex(ctx context.Context) (int, error) {
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
