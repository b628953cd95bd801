package wizard

import "strings"

// StepID identifies one wizard step
type StepID string

const (
	StepClientDetails    StepID = "client-details"
	StepWeddingDetails   StepID = "wedding-details"
	StepEventDetails     StepID = "event-details"
	StepPackageSelection StepID = "package-selection"
	StepVenueSelection   StepID = "venue-selection"
	StepComponents       StepID = "components"
	StepPayment          StepID = "payment"
	StepReview           StepID = "review"
)

// Direction of a navigation request
type Direction string

const (
	DirectionNext Direction = "next"
	DirectionBack Direction = "back"
)

// Canonical event-type table. Booking records carry free-text type names;
// they are normalized against this table at conversion time.
const (
	EventTypeIDWedding     = "1"
	EventTypeIDDebut       = "2"
	EventTypeIDBirthday    = "3"
	EventTypeIDCorporate   = "4"
	EventTypeIDAnniversary = "5"
	EventTypeIDPageant     = "6"
	EventTypeIDOther       = "7"
)

var eventTypeIDs = map[string]string{
	"wedding":     EventTypeIDWedding,
	"debut":       EventTypeIDDebut,
	"birthday":    EventTypeIDBirthday,
	"corporate":   EventTypeIDCorporate,
	"anniversary": EventTypeIDAnniversary,
	"pageant":     EventTypeIDPageant,
	"other":       EventTypeIDOther,
}

// ResolveEventType normalizes a free-text event-type name to its canonical
// id. Unknown names map to "other" with the original name preserved.
func ResolveEventType(name string) (id string, canonical string) {
	key := strings.ToLower(strings.TrimSpace(name))
	if typeID, ok := eventTypeIDs[key]; ok {
		return typeID, key
	}
	return EventTypeIDOther, strings.TrimSpace(name)
}

// IsWeddingType reports whether the snapshot's resolved event type is a
// wedding, by canonical id or by name
func IsWeddingType(s *WizardSnapshot) bool {
	if s == nil {
		return false
	}
	return s.Details.TypeID == EventTypeIDWedding ||
		strings.EqualFold(strings.TrimSpace(s.Details.Type), "wedding")
}

// StepsFor returns the ordered step list for the snapshot. The wedding step
// is inserted immediately after client-details for wedding-type events; the
// list shrinks again when the type changes away.
func StepsFor(s *WizardSnapshot) []StepID {
	steps := make([]StepID, 0, 8)
	steps = append(steps, StepClientDetails)
	if IsWeddingType(s) {
		steps = append(steps, StepWeddingDetails)
	}
	steps = append(steps,
		StepEventDetails,
		StepPackageSelection,
		StepVenueSelection,
		StepComponents,
		StepPayment,
		StepReview,
	)
	return steps
}

// ClampStepIndex forces CurrentStep back into the valid range after the
// step list changed length
func ClampStepIndex(s *WizardSnapshot) {
	if s == nil {
		return
	}
	steps := StepsFor(s)
	if s.CurrentStep < 0 {
		s.CurrentStep = 0
	}
	if s.CurrentStep >= len(steps) {
		s.CurrentStep = len(steps) - 1
	}
}

// CurrentStepID returns the step the snapshot is on
func CurrentStepID(s *WizardSnapshot) StepID {
	steps := StepsFor(s)
	idx := s.CurrentStep
	if idx < 0 {
		idx = 0
	}
	if idx >= len(steps) {
		idx = len(steps) - 1
	}
	return steps[idx]
}

// IsStepValid is the per-step readiness predicate. It advises forward
// navigation and feeds the summary endpoint; it never blocks going back.
func IsStepValid(s *WizardSnapshot, step StepID) bool {
	if s == nil {
		return false
	}
	switch step {
	case StepClientDetails:
		return strings.TrimSpace(s.Client.ID) != ""
	case StepWeddingDetails:
		return strings.TrimSpace(s.Wedding.BrideName) != "" &&
			strings.TrimSpace(s.Wedding.GroomName) != ""
	case StepEventDetails:
		return strings.TrimSpace(s.Details.Title) != "" &&
			strings.TrimSpace(s.Details.Date) != "" &&
			s.Details.Capacity > 0
	case StepPackageSelection:
		return s.Mode == ModeFromScratch || s.Package != nil
	case StepVenueSelection:
		return s.Venue != nil || s.Mode == ModeFromScratch
	case StepComponents:
		return true
	case StepPayment:
		total := ComputeTotalBudget(s)
		if total <= 0 {
			return false
		}
		if requiresReferenceNumber(s.Payment.Method) &&
			strings.TrimSpace(s.Payment.ReferenceNumber) == "" {
			return false
		}
		return s.Payment.DownPayment >= 0 &&
			s.Payment.DownPayment <= total+PriceTolerance
	case StepReview:
		return true
	}
	return false
}

// StepReadiness maps every step in the current list to its validity
func StepReadiness(s *WizardSnapshot) map[StepID]bool {
	readiness := make(map[StepID]bool)
	for _, step := range StepsFor(s) {
		readiness[step] = IsStepValid(s, step)
	}
	return readiness
}

// Advance moves the snapshot one step in the given direction. Backward
// navigation is always permitted. Forward navigation is advisory by
// default: the move happens even when the current step is incomplete, and
// only the strict flag turns the readiness predicate into a hard gate.
func Advance(s *WizardSnapshot, direction Direction, strict bool) (StepID, error) {
	if s == nil {
		return "", ErrNoActiveSession
	}
	steps := StepsFor(s)
	ClampStepIndex(s)

	switch direction {
	case DirectionBack:
		if s.CurrentStep > 0 {
			s.CurrentStep--
		}
	case DirectionNext:
		if strict && !IsStepValid(s, steps[s.CurrentStep]) {
			return steps[s.CurrentStep], ErrStepNotReady
		}
		if s.CurrentStep < len(steps)-1 {
			s.CurrentStep++
		}
	}

	return steps[s.CurrentStep], nil
}

func requiresReferenceNumber(method string) bool {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case "gcash", "bank-transfer":
		return true
	}
	return false
}
