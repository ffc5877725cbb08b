package messaging

import (
	"context"
	"time"
)

// Domain event types
const (
	EventAppointmentBooked    = "appointment.booked"
	EventAppointmentCancelled = "appointment.cancelled"
	EventBloodDonated         = "blood.donated"
	EventOrganRequested       = "organ.requested"
)

// Event is the envelope published for every successful write.
type Event struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// NewEvent stamps an event with the current time.
func NewEvent(eventType string, payload interface{}) Event {
	return Event{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// Publisher defines the interface for publishing domain events
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }
