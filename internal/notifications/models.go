package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventCreatedMessage is published when the wizard finalizes an event. The
// partition key is the creating staff member so one staffer's events stay
// ordered.
type EventCreatedMessage struct {
	ID          uuid.UUID  `json:"id"`
	EventID     uuid.UUID  `json:"event_id"`
	StaffID     uuid.UUID  `json:"staff_id"`
	Title       string     `json:"title"`
	EventType   string     `json:"event_type"`
	EventDate   string     `json:"event_date"`
	ClientName  string     `json:"client_name"`
	ClientEmail string     `json:"client_email"`
	TotalBudget float64    `json:"total_budget"`
	BookingRef  string     `json:"booking_ref,omitempty"`
	BookingID   *uuid.UUID `json:"booking_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewEventCreatedMessage builds a message with a fresh id and timestamp
func NewEventCreatedMessage(eventID, staffID uuid.UUID) *EventCreatedMessage {
	return &EventCreatedMessage{
		ID:        uuid.New(),
		EventID:   eventID,
		StaffID:   staffID,
		CreatedAt: time.Now(),
	}
}

// ToJSON serializes the message for the wire
func (m *EventCreatedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// GetPartitionKey returns the key used for Kafka partitioning
func (m *EventCreatedMessage) GetPartitionKey() string {
	return m.StaffID.String()
}
