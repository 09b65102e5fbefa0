package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"thrivehub/internal/modules/progress/domain"
	progressout "thrivehub/internal/modules/progress/port/out"
	"thrivehub/internal/platform/calendar"
	apperrors "thrivehub/internal/platform/errors"
	"thrivehub/internal/platform/fileutil"
)

type JSONProgressStore struct {
	path string
}

func NewJSONProgressStore(path string) progressout.ProgressStore {
	return &JSONProgressStore{path: path}
}

type record struct {
	Date     *calendar.Date `json:"date"`
	Progress *int           `json:"progress"`
}

func (s *JSONProgressStore) Load(_ context.Context) ([]domain.Entry, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.Entry{}, nil
		}
		return nil, fmt.Errorf("read progress: %w", err)
	}
	var records []record
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("decode progress %s: %w: %w", s.path, apperrors.ErrStoreUnreadable, err)
	}
	if records == nil {
		return nil, fmt.Errorf("decode progress %s: %w: top level must be an array", s.path, apperrors.ErrStoreUnreadable)
	}
	entries := make([]domain.Entry, 0, len(records))
	for i, r := range records {
		if r.Date == nil || r.Progress == nil {
			return nil, fmt.Errorf("decode progress %s: %w: entry %d needs date and progress", s.path, apperrors.ErrStoreUnreadable, i)
		}
		entries = append(entries, domain.Entry{Date: *r.Date, Value: *r.Progress})
	}
	return entries, nil
}

func (s *JSONProgressStore) Replace(_ context.Context, entries []domain.Entry) error {
	records := make([]record, 0, len(entries))
	for _, entry := range entries {
		date, value := entry.Date, entry.Value
		records = append(records, record{Date: &date, Progress: &value})
	}
	payload, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	payload = append(payload, '\n')
	if err := fileutil.WriteAtomic(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write progress: %w", err)
	}
	return nil
}
