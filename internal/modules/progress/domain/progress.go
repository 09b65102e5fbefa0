package domain

import (
	"thrivehub/internal/platform/calendar"
	apperrors "thrivehub/internal/platform/errors"
)

const (
	MinValue = 0
	MaxValue = 100
)

// Entry is one self-rated progress percentage. Several entries may share a
// date; their order is the order they were recorded in.
type Entry struct {
	Date  calendar.Date
	Value int
}

func (e Entry) Validate() error {
	if e.Date.IsZero() {
		return apperrors.ErrInvalidInput
	}
	if e.Value < MinValue || e.Value > MaxValue {
		return apperrors.ErrProgressOutOfRange
	}
	return nil
}
