package wizard

// Component action names accepted by the components endpoint
const (
	ActionInclude       = "include"
	ActionExclude       = "exclude"
	ActionAddCustom     = "add-custom"
	ActionRemoveCustom  = "remove-custom"
	ActionSelectPackage = "select-package"
	ActionClearPackage  = "clear-package"
	ActionSelectVenue   = "select-venue"
)

// OpenRequest starts a wizard session. A booking reference converts that
// booking into initial state; skip_recovery suppresses the draft prompt.
type OpenRequest struct {
	BookingRef   string `json:"booking_ref"`
	SkipRecovery bool   `json:"skip_recovery"`
}

// RecoveryRequest answers a pending resume/discard prompt
type RecoveryRequest struct {
	Resume bool `json:"resume"`
}

// UpdateStateRequest carries section-level partial updates; only non-nil
// sections are applied
type UpdateStateRequest struct {
	Client      *ClientRef     `json:"client,omitempty"`
	Details     *EventDetails  `json:"details,omitempty"`
	Payment     *PaymentIntent `json:"payment,omitempty"`
	Wedding     *WeddingInfo   `json:"wedding,omitempty"`
	Attachments []Attachment   `json:"attachments,omitempty"`
}

// ComponentActionRequest mutates the component set
type ComponentActionRequest struct {
	Action      string  `json:"action" binding:"required"`
	ComponentID string  `json:"component_id,omitempty"`
	Name        string  `json:"name,omitempty"`
	Price       float64 `json:"price,omitempty"`
	PackageID   string  `json:"package_id,omitempty"`
	VenueID     string  `json:"venue_id,omitempty"`
}

// StepRequest navigates the step sequence. Strict turns the readiness
// predicate into a hard gate for forward moves.
type StepRequest struct {
	Direction string `json:"direction" binding:"required,oneof=next back"`
	Strict    bool   `json:"strict"`
}
