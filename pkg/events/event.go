package events

import "time"

// Document lifecycle event types published on the internal bus.
const (
	DocumentIngested = "DOCUMENT_INGESTED"
	DocumentDeleted  = "DOCUMENT_DELETED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "DOCUMENT_INGESTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the plain implementation used by publishers.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewDocumentIngested builds the event emitted after a successful upload.
func NewDocumentIngested(docID, source string, chunks int) Event {
	return BaseEvent{
		Type: DocumentIngested,
		Data: map[string]interface{}{
			"doc_id": docID,
			"source": source,
			"chunks": chunks,
		},
		OccurredAt: time.Now(),
	}
}

// NewDocumentDeleted builds the event emitted after a document removal.
func NewDocumentDeleted(docID string) Event {
	return BaseEvent{
		Type: DocumentDeleted,
		Data: map[string]interface{}{
			"doc_id": docID,
		},
		OccurredAt: time.Now(),
	}
}
