package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "research.report.generated").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent carries the common fields for concrete events.
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

// NewRetrievalCompleted describes a finished retrieval step.
func NewRetrievalCompleted(sessionID, industry string, documentCount int) Event {
	return BaseEvent{
		Type: "research.retrieval.completed",
		Data: map[string]interface{}{
			"session_id":     sessionID,
			"industry":       industry,
			"document_count": documentCount,
		},
		OccurredAt: time.Now(),
	}
}

// NewReportGenerated describes a finished generation step.
func NewReportGenerated(sessionID, industry, model string, reportLength int) Event {
	return BaseEvent{
		Type: "research.report.generated",
		Data: map[string]interface{}{
			"session_id":    sessionID,
			"industry":      industry,
			"model":         model,
			"report_length": reportLength,
		},
		OccurredAt: time.Now(),
	}
}
