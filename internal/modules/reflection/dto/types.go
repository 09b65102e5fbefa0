package dto

import "time"

type AppendInput struct {
	Text string
}

type EntryOutput struct {
	Timestamp time.Time
	Text      string
}

type ReindexOutput struct {
	Indexed int
}
