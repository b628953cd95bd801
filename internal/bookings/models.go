package bookings

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// BookingRecord is an inquiry captured by the client-facing booking flow.
// The event builder reads these records to seed a wizard session; nothing in
// this codebase mutates one except MarkConverted after an event is created.
type BookingRecord struct {
	ID               uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Reference        string     `gorm:"uniqueIndex;not null" json:"reference"`
	Status           string     `gorm:"type:varchar(20);default:'PENDING'" json:"status"`
	ConvertedEventID *uuid.UUID `gorm:"type:uuid" json:"converted_event_id,omitempty"`

	// Client fields
	ClientName    string `json:"client_name"`
	ClientEmail   string `json:"client_email"`
	ClientPhone   string `json:"client_phone"`
	ClientAddress string `json:"client_address"`

	// Event fields
	EventType  string     `json:"event_type"`
	EventDate  string     `json:"event_date"`
	GuestCount int        `json:"guest_count"`
	Theme      string     `json:"theme"`
	StartTime  string     `json:"start_time"`
	EndTime    string     `json:"end_time"`
	PackageID  *uuid.UUID `gorm:"type:uuid" json:"package_id,omitempty"`
	VenueID    *uuid.UUID `gorm:"type:uuid" json:"venue_id,omitempty"`

	// ComponentChanges holds the structured inclusion/exclusion diff recorded
	// when the client customized their package. Older records smuggle the
	// same JSON inside Notes after a marker string instead.
	ComponentChanges string `gorm:"type:text" json:"component_changes,omitempty"`
	Notes            string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for BookingRecord
func (BookingRecord) TableName() string {
	return "booking_records"
}

// Booking statuses
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusConverted = "CONVERTED"
	StatusCancelled = "CANCELLED"
)

// IsConfirmed reports whether the booking can be converted into an event.
// Status comparison is case-insensitive: legacy records carry mixed case.
func (b *BookingRecord) IsConfirmed() bool {
	return strings.EqualFold(b.Status, StatusConfirmed)
}

// IsConverted reports whether this booking already produced an event
func (b *BookingRecord) IsConverted() bool {
	return b.ConvertedEventID != nil || strings.EqualFold(b.Status, StatusConverted)
}
