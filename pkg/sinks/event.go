package sinks

import (
	"time"

	"github.com/google/uuid"
)

// Event represents one piece of display text handed to sinks.
type Event struct {
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	Text        string    `json:"text"`
	DeliveredAt time.Time `json:"delivered_at"`
}

// NewEvent constructs an Event for text produced by source.
func NewEvent(source, text string) Event {
	return Event{
		ID:          uuid.NewString(),
		Source:      source,
		Text:        text,
		DeliveredAt: time.Now().UTC(),
	}
}
