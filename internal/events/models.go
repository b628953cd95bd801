package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is a finalized, scheduled event produced by the builder wizard.
// The record is a flattened copy of the wizard payload: once created it no
// longer depends on the catalog rows it was composed from.
type Event struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CreatedBy uuid.UUID `gorm:"type:uuid;index;not null" json:"created_by"`

	// Client
	ClientID      string `gorm:"not null" json:"client_id"`
	ClientName    string `json:"client_name"`
	ClientEmail   string `json:"client_email"`
	ClientPhone   string `json:"client_phone"`
	ClientAddress string `json:"client_address"`

	// Event details
	Title       string `gorm:"not null" json:"title"`
	EventType   string `gorm:"not null" json:"event_type"`
	EventDate   string `gorm:"not null" json:"event_date"`
	Capacity    int    `gorm:"not null" json:"capacity"`
	Theme       string `json:"theme"`
	Description string `json:"description"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Notes       string `gorm:"type:text" json:"notes"`

	// Composition
	PackageID  *uuid.UUID `gorm:"type:uuid" json:"package_id,omitempty"`
	VenueID    *uuid.UUID `gorm:"type:uuid" json:"venue_id,omitempty"`
	VenueTitle string     `json:"venue_title"`
	Components string     `gorm:"type:text" json:"components"` // serialized component lines

	// Money
	TotalBudget      float64 `gorm:"not null" json:"total_budget"`
	DownPayment      float64 `gorm:"not null;default:0" json:"down_payment"`
	PaymentMethod    string  `json:"payment_method"`
	PaymentReference string  `json:"payment_reference"`

	// Provenance
	BookingRef string `gorm:"index" json:"booking_ref,omitempty"`

	Status    string    `gorm:"type:varchar(20);default:'SCHEDULED'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	WeddingDetails *WeddingDetails `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE;" json:"wedding_details,omitempty"`
}

// WeddingDetails is the wedding-specific sub-record saved best-effort after
// event creation
type WeddingDetails struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EventID   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"event_id"`
	BrideName string    `json:"bride_name"`
	GroomName string    `json:"groom_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for Event
func (Event) TableName() string {
	return "events"
}

// TableName sets the table name for WeddingDetails
func (WeddingDetails) TableName() string {
	return "wedding_details"
}
