package wizard

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PricingMode tags how a composition is priced. The tag is set at the
// lookup boundary (selecting or clearing a package) so pricing never has to
// sniff field presence.
type PricingMode string

const (
	ModePackageBased PricingMode = "package_based"
	ModeFromScratch  PricingMode = "from_scratch"
)

// ComponentCategory classifies a component line
type ComponentCategory string

const (
	CategoryPackage ComponentCategory = "package"
	CategoryVenue   ComponentCategory = "venue"
	CategoryCustom  ComponentCategory = "custom"
)

// ClientRef identifies the event's client. ID must be non-empty before
// submission.
type ClientRef struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// EventDetails holds the event-level fields collected across the wizard.
// HasConflicts is set by the scheduling collaborator and hard-blocks
// submission.
type EventDetails struct {
	Title        string `json:"title"`
	Type         string `json:"type"`
	TypeID       string `json:"type_id"`
	Date         string `json:"date"`
	Capacity     int    `json:"capacity"`
	Theme        string `json:"theme"`
	Description  string `json:"description"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Notes        string `json:"notes"`
	HasConflicts bool   `json:"has_conflicts"`
}

// PackageSelection is present only for package-based compositions
type PackageSelection struct {
	PackageID            uuid.UUID `json:"package_id"`
	Name                 string    `json:"name"`
	OriginalPackagePrice float64   `json:"original_package_price"`
	VenueBufferFee       float64   `json:"venue_buffer_fee"`
	GuestCapacity        int       `json:"guest_capacity"`
}

// VenueSelection is the currently chosen venue
type VenueSelection struct {
	VenueID      uuid.UUID `json:"venue_id"`
	Title        string    `json:"title"`
	BasePrice    float64   `json:"base_price"`
	ExtraPaxRate float64   `json:"extra_pax_rate"`
}

// ComponentLine is an individually priced inclusion/exclusion unit. At most
// one venue-category line exists at a time; selecting a venue replaces it.
type ComponentLine struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Price         float64           `json:"price"`
	Category      ComponentCategory `json:"category"`
	Included      bool              `json:"included"`
	IsCustom      bool              `json:"is_custom"`
	OriginalID    string            `json:"original_id,omitempty"`
	SubComponents []string          `json:"sub_components,omitempty"`
}

// PaymentIntent captures the payment step. DownPayment must not exceed
// Total; ReferenceNumber is required for non-cash methods.
type PaymentIntent struct {
	Total           float64 `json:"total"`
	DownPayment     float64 `json:"down_payment"`
	Method          string  `json:"method"`
	ReferenceNumber string  `json:"reference_number"`
	Status          string  `json:"status"`
}

// WeddingInfo is collected on the conditionally inserted wedding step
type WeddingInfo struct {
	BrideName string `json:"bride_name"`
	GroomName string `json:"groom_name"`
}

// Attachment is a reference to an uploaded file; upload mechanics live
// outside this core.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// WizardSnapshot is the unit of persistence: the full in-progress state of
// one builder session. Revision increments on every mutation so a lookup
// response that raced a newer edit can be detected and dropped.
type WizardSnapshot struct {
	Mode        PricingMode       `json:"mode"`
	Client      ClientRef         `json:"client"`
	Details     EventDetails      `json:"details"`
	Package     *PackageSelection `json:"package,omitempty"`
	Venue       *VenueSelection   `json:"venue,omitempty"`
	Components  []ComponentLine   `json:"components"`
	Payment     PaymentIntent     `json:"payment"`
	Wedding     WeddingInfo       `json:"wedding"`
	Attachments []Attachment      `json:"attachments,omitempty"`

	// Conversion provenance, set when the session was seeded from a booking
	BookingID  *uuid.UUID `json:"booking_id,omitempty"`
	BookingRef string     `json:"booking_ref,omitempty"`

	CurrentStep int       `json:"current_step"`
	Revision    int64     `json:"revision"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewSnapshot returns an empty from-scratch snapshot
func NewSnapshot() *WizardSnapshot {
	return &WizardSnapshot{
		Mode:       ModeFromScratch,
		Components: []ComponentLine{},
		Revision:   1,
		Timestamp:  time.Now(),
	}
}

// Touch bumps the revision and refreshes the timestamp. Every mutation goes
// through here.
func (s *WizardSnapshot) Touch() {
	s.Revision++
	s.Timestamp = time.Now()
}

// VenueLine returns the active venue-category line, or nil
func (s *WizardSnapshot) VenueLine() *ComponentLine {
	for i := range s.Components {
		if s.Components[i].Category == CategoryVenue {
			return &s.Components[i]
		}
	}
	return nil
}

// SetVenueLine replaces any existing venue-category line with the given one
func (s *WizardSnapshot) SetVenueLine(line ComponentLine) {
	line.Category = CategoryVenue
	kept := s.Components[:0]
	for _, c := range s.Components {
		if c.Category != CategoryVenue {
			kept = append(kept, c)
		}
	}
	s.Components = append(kept, line)
}

// RemoveVenueLine drops the active venue line if present
func (s *WizardSnapshot) RemoveVenueLine() {
	kept := s.Components[:0]
	for _, c := range s.Components {
		if c.Category != CategoryVenue {
			kept = append(kept, c)
		}
	}
	s.Components = kept
}

// Clone returns a deep copy. The submission guard works on a clone so its
// lock-free validation and payload assembly never observe a concurrent edit
// applied under the session lock.
func (s *WizardSnapshot) Clone() *WizardSnapshot {
	if s == nil {
		return nil
	}
	clone := *s
	clone.Components = append([]ComponentLine(nil), s.Components...)
	for i := range clone.Components {
		if len(clone.Components[i].SubComponents) > 0 {
			clone.Components[i].SubComponents = append([]string(nil), clone.Components[i].SubComponents...)
		}
	}
	clone.Attachments = append([]Attachment(nil), s.Attachments...)
	if s.Package != nil {
		pkg := *s.Package
		clone.Package = &pkg
	}
	if s.Venue != nil {
		venue := *s.Venue
		clone.Venue = &venue
	}
	if s.BookingID != nil {
		id := *s.BookingID
		clone.BookingID = &id
	}
	return &clone
}

// FindComponent returns the component line with the given id, or nil
func (s *WizardSnapshot) FindComponent(id string) *ComponentLine {
	for i := range s.Components {
		if s.Components[i].ID == id {
			return &s.Components[i]
		}
	}
	return nil
}

// HasMeaningfulData gates draft persistence: an empty shell is never worth
// saving, and saving one would clobber a recoverable draft.
func (s *WizardSnapshot) HasMeaningfulData() bool {
	if s == nil {
		return false
	}
	switch {
	case strings.TrimSpace(s.Client.Name) != "",
		strings.TrimSpace(s.Client.Email) != "",
		strings.TrimSpace(s.Client.Phone) != "",
		strings.TrimSpace(s.Details.Title) != "",
		strings.TrimSpace(s.Details.Theme) != "",
		strings.TrimSpace(s.Details.Date) != "",
		s.Details.Capacity > 0,
		s.Package != nil,
		s.Venue != nil,
		len(s.Components) > 0,
		len(s.Attachments) > 0,
		strings.TrimSpace(s.Wedding.BrideName) != "",
		strings.TrimSpace(s.Wedding.GroomName) != "":
		return true
	}
	return false
}
