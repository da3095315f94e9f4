// Package notification publishes storefront notifications (sales alerts,
// customer emails) to a message broker for delivery by downstream workers.
package notification

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SchemaVersion of the event envelope
const SchemaVersion = 1

// Event is the JSON envelope published for every notification
type Event struct {
	ID            string         `json:"id"`
	Type          string         `json:"type"`
	OccurredAt    time.Time      `json:"occurred_at"`
	SchemaVersion int            `json:"schema_version"`
	RequestID     string         `json:"request_id,omitempty"`
	Payload       map[string]any `json:"payload"`
}

// NewEvent creates an envelope with a fresh id
func NewEvent(eventType string, payload map[string]any) Event {
	if payload == nil {
		payload = map[string]any{}
	}
	return Event{
		ID:            uuid.New().String(),
		Type:          eventType,
		OccurredAt:    time.Now().UTC(),
		SchemaVersion: SchemaVersion,
		Payload:       payload,
	}
}

// Marshal encodes the event as JSON
func (e Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}
