package out

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"thrivehub/internal/modules/reflection/domain"
	reflectionout "thrivehub/internal/modules/reflection/port/out"
	apperrors "thrivehub/internal/platform/errors"
	"thrivehub/internal/platform/fileutil"
)

var header = []string{"timestamp", "reflection"}

// naiveLayouts accept zone-less ISO timestamps, read in local time.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

type CSVReflectionStore struct {
	path string
}

func NewCSVReflectionStore(path string) reflectionout.ReflectionStore {
	return &CSVReflectionStore{path: path}
}

func (s *CSVReflectionStore) Load(_ context.Context) ([]domain.Entry, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.Entry{}, nil
		}
		return nil, fmt.Errorf("read reflections: %w", err)
	}
	entries, err := decode(payload)
	if err != nil {
		return nil, fmt.Errorf("decode reflections %s: %w: %w", s.path, apperrors.ErrStoreUnreadable, err)
	}
	return entries, nil
}

func (s *CSVReflectionStore) Replace(_ context.Context, entries []domain.Entry) error {
	buf := bytes.Buffer{}
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("encode reflections header: %w", err)
	}
	for _, entry := range entries {
		if err := w.Write([]string{entry.Timestamp.Format(time.RFC3339Nano), entry.Text}); err != nil {
			return fmt.Errorf("encode reflection: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush reflections: %w", err)
	}
	if err := fileutil.WriteAtomic(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write reflections: %w", err)
	}
	return nil
}

func decode(payload []byte) ([]domain.Entry, error) {
	r := csv.NewReader(bytes.NewReader(payload))
	r.FieldsPerRecord = len(header)
	first, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("missing header")
		}
		return nil, err
	}
	if first[0] != header[0] || first[1] != header[1] {
		return nil, fmt.Errorf("unexpected header %q", first)
	}
	entries := []domain.Entry{}
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		ts, err := parseTimestamp(record[0])
		if err != nil {
			line, _ := r.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		entries = append(entries, domain.Entry{Timestamp: ts, Text: record[1]})
	}
	return entries, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return ts, nil
	}
	for _, layout := range naiveLayouts {
		if ts, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", raw)
}
