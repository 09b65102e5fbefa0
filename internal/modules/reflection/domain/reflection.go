package domain

import (
	"strings"
	"time"

	apperrors "thrivehub/internal/platform/errors"
)

// Entry is one journal reflection. Entries are never edited once written.
type Entry struct {
	Timestamp time.Time
	Text      string
}

func (e Entry) Validate() error {
	if strings.TrimSpace(e.Text) == "" {
		return apperrors.ErrEmptyReflection
	}
	if e.Timestamp.IsZero() {
		return apperrors.ErrInvalidInput
	}
	return nil
}
