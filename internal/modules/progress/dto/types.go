package dto

import "thrivehub/internal/platform/calendar"

// AppendInput records Value for Date; a zero Date means today.
type AppendInput struct {
	Date  calendar.Date
	Value int
}

type EntryOutput struct {
	Date  calendar.Date `json:"date"`
	Value int           `json:"progress"`
}

type ReindexOutput struct {
	Indexed int
}
