package events

import "github.com/google/uuid"

// CreateEventRequest is the flattened payload the wizard submits when an
// event composition is finalized.
type CreateEventRequest struct {
	CreatedBy uuid.UUID `json:"-"`

	ClientID      string `json:"client_id" validate:"required"`
	ClientName    string `json:"client_name"`
	ClientEmail   string `json:"client_email"`
	ClientPhone   string `json:"client_phone"`
	ClientAddress string `json:"client_address"`

	Title       string `json:"title" validate:"required"`
	EventType   string `json:"event_type" validate:"required"`
	EventDate   string `json:"event_date" validate:"required"`
	Capacity    int    `json:"capacity" validate:"required,min=1"`
	Theme       string `json:"theme"`
	Description string `json:"description"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Notes       string `json:"notes"`

	PackageID  *uuid.UUID `json:"package_id,omitempty"`
	VenueID    *uuid.UUID `json:"venue_id,omitempty"`
	VenueTitle string     `json:"venue_title"`
	Components string     `json:"components"`

	TotalBudget      float64 `json:"total_budget" validate:"required,gt=0"`
	DownPayment      float64 `json:"down_payment" validate:"gte=0"`
	PaymentMethod    string  `json:"payment_method"`
	PaymentReference string  `json:"payment_reference"`

	BookingRef string `json:"booking_ref"`
}
