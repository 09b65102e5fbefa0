package service_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"thrivehub/internal/modules/progress/domain"
	"thrivehub/internal/modules/progress/service"
	"thrivehub/internal/platform/calendar"
	apperrors "thrivehub/internal/platform/errors"
)

type memoryStore struct {
	entries  []domain.Entry
	loadErr  error
	replaced int
}

func (m *memoryStore) Load(context.Context) ([]domain.Entry, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]domain.Entry{}, m.entries...), nil
}

func (m *memoryStore) Replace(_ context.Context, entries []domain.Entry) error {
	m.replaced++
	m.entries = append([]domain.Entry{}, entries...)
	return nil
}

type recordingProjector struct {
	inserted []domain.Entry
	resets   int
	err      error
}

func (r *recordingProjector) Reset(context.Context) error {
	r.resets++
	r.inserted = nil
	return nil
}

func (r *recordingProjector) Insert(_ context.Context, _ int, entry domain.Entry) error {
	if r.err != nil {
		return r.err
	}
	r.inserted = append(r.inserted, entry)
	return nil
}

func TestAppendKeepsDuplicateDatesInOrder(t *testing.T) {
	t.Parallel()
	store := &memoryStore{}
	projector := &recordingProjector{}
	svc := service.NewProgressService(store, projector)
	day := calendar.MustParse("2024-06-01")

	if _, err := svc.Append(context.Background(), day, 40); err != nil {
		t.Fatalf("append 40: %v", err)
	}
	if _, err := svc.Append(context.Background(), day, 70); err != nil {
		t.Fatalf("append 70: %v", err)
	}
	got, err := svc.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	if len(got) != 2 || got[0].Value != 40 || got[1].Value != 70 || got[0].Date != day || got[1].Date != day {
		t.Fatalf("expected both entries in order, got %+v", got)
	}
	if len(projector.inserted) != 2 {
		t.Fatalf("expected projection of both entries, got %d", len(projector.inserted))
	}
}

func TestAppendBoundaries(t *testing.T) {
	t.Parallel()
	store := &memoryStore{}
	svc := service.NewProgressService(store, nil)
	day := calendar.MustParse("2024-06-01")
	for _, v := range []int{0, 100} {
		entry, err := svc.Append(context.Background(), day, v)
		if err != nil {
			t.Fatalf("value %d should be accepted: %v", v, err)
		}
		if entry.Value != v {
			t.Fatalf("value %d stored as %d", v, entry.Value)
		}
	}
	for _, v := range []int{-1, 101} {
		if _, err := svc.Append(context.Background(), day, v); !errors.Is(err, apperrors.ErrProgressOutOfRange) {
			t.Fatalf("value %d should be rejected, got %v", v, err)
		}
	}
	if store.replaced != 2 || store.entries[0].Value != 0 || store.entries[1].Value != 100 {
		t.Fatalf("unexpected store state: replaced=%d entries=%+v", store.replaced, store.entries)
	}
}

func TestAppendPropagatesUnreadableStore(t *testing.T) {
	t.Parallel()
	store := &memoryStore{loadErr: apperrors.ErrStoreUnreadable}
	svc := service.NewProgressService(store, nil)
	if _, err := svc.Append(context.Background(), calendar.MustParse("2024-06-01"), 10); !errors.Is(err, apperrors.ErrStoreUnreadable) {
		t.Fatalf("expected unreadable store, got %v", err)
	}
	if _, err := svc.LoadAll(context.Background()); !errors.Is(err, apperrors.ErrStoreUnreadable) {
		t.Fatalf("expected unreadable store from load all, got %v", err)
	}
	if store.replaced != 0 {
		t.Fatalf("store must not be rewritten")
	}
}

func TestReindex(t *testing.T) {
	t.Parallel()
	day := calendar.MustParse("2024-06-01")
	store := &memoryStore{entries: []domain.Entry{{Date: day, Value: 1}, {Date: day, Value: 2}, {Date: day, Value: 3}}}
	projector := &recordingProjector{}
	n, err := service.NewProgressService(store, projector).Reindex(context.Background())
	if err != nil {
		t.Fatalf("reindex: %v", err)
	}
	if n != 3 || projector.resets != 1 || len(projector.inserted) != 3 {
		t.Fatalf("unexpected reindex n=%d projector=%+v", n, projector)
	}
}

func TestAppendSucceedsWhenIndexFails(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zap.WarnLevel)
	store := &memoryStore{}
	svc := service.NewProgressService(store, &recordingProjector{err: errors.New("index offline")}).WithLogger(zap.New(core))

	entry, err := svc.Append(context.Background(), calendar.MustParse("2024-06-01"), 40)
	if err != nil {
		t.Fatalf("a saved entry must not be reported as failed: %v", err)
	}
	if entry.Value != 40 {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if len(store.entries) != 1 || store.replaced != 1 {
		t.Fatalf("expected exactly one stored entry, got %d after %d writes", len(store.entries), store.replaced)
	}
	if logs.FilterMessageSnippet("run reindex").Len() != 1 {
		t.Fatalf("expected one index warning, got %v", logs.All())
	}
}

func TestReindexKeepsIndexWhenStoreUnreadable(t *testing.T) {
	t.Parallel()
	day := calendar.MustParse("2024-06-01")
	projector := &recordingProjector{inserted: []domain.Entry{{Date: day, Value: 5}}}
	svc := service.NewProgressService(&memoryStore{loadErr: apperrors.ErrStoreUnreadable}, projector)
	if _, err := svc.Reindex(context.Background()); !errors.Is(err, apperrors.ErrStoreUnreadable) {
		t.Fatalf("expected unreadable store, got %v", err)
	}
	if projector.resets != 0 || len(projector.inserted) != 1 {
		t.Fatalf("index must be left alone when the store cannot be read: %+v", projector)
	}
}
