package wizard

import (
	"context"
	"encoding/json"
	"strings"
	"sync/atomic"

	"eventcraft/internal/events"
	"eventcraft/internal/notifications"
	"eventcraft/pkg/logger"

	"github.com/google/uuid"
)

// SubmissionState is the guard's explicit lifecycle. The state is
// inspectable: a second concurrent submit call is told exactly why it was
// rejected instead of bouncing off a hidden boolean.
type SubmissionState int32

const (
	StateIdle SubmissionState = iota
	StateSubmitting
	StateCompleted
	StateFailed
)

func (s SubmissionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Defaults applied during payload assembly when optional fields are absent
const (
	absentTextSentinel = "N/A"
	defaultStartTime   = "10:00"
	defaultEndTime     = "18:00"
)

// SubmissionResult reports a successful dispatch
type SubmissionResult struct {
	EventID uuid.UUID `json:"event_id"`
	Total   float64   `json:"total"`
}

// Guard serializes submission for one wizard session: exactly one
// create-event dispatch happens no matter how rapidly submit is
// re-triggered. Transitions run Idle → Submitting → Completed | Failed;
// Failed is retryable, Completed is terminal.
type Guard struct {
	state    atomic.Int32
	creator  EventCreator
	bookings BookingReader
	drafts   DraftStore
	producer notifications.Producer
	bus      *Bus
	log      *logger.Logger
}

// NewGuard creates a submission guard for one session
func NewGuard(creator EventCreator, bookingReader BookingReader, drafts DraftStore, producer notifications.Producer, bus *Bus) *Guard {
	g := &Guard{
		creator:  creator,
		bookings: bookingReader,
		drafts:   drafts,
		producer: producer,
		bus:      bus,
		log:      logger.GetDefault(),
	}
	g.state.Store(int32(StateIdle))
	return g
}

// State returns the guard's current lifecycle state
func (g *Guard) State() SubmissionState {
	return SubmissionState(g.state.Load())
}

// Reset returns the guard to Idle. Used when a session is discarded; a
// guard mid-submission cannot be reset.
func (g *Guard) Reset() bool {
	for {
		current := g.state.Load()
		if SubmissionState(current) == StateSubmitting {
			return false
		}
		if g.state.CompareAndSwap(current, int32(StateIdle)) {
			return true
		}
	}
}

// Submit runs the full pipeline: acquire the guard, validate fail-fast,
// assemble the payload, dispatch, then apply best-effort side effects. On
// any failure the snapshot is left intact for retry.
func (g *Guard) Submit(ctx context.Context, staffID uuid.UUID, snapshot *WizardSnapshot) (*SubmissionResult, error) {
	if !g.acquire() {
		if g.State() == StateCompleted {
			return nil, ErrSubmissionCompleted
		}
		return nil, ErrSubmissionInFlight
	}
	g.publishState(snapshot)

	result, err := g.submit(ctx, staffID, snapshot)
	if err != nil {
		g.transition(StateFailed)
		g.publishState(snapshot)
		return nil, err
	}

	g.transition(StateCompleted)
	g.publishState(snapshot)
	return result, nil
}

// acquire moves Idle or Failed to Submitting
func (g *Guard) acquire() bool {
	if g.state.CompareAndSwap(int32(StateIdle), int32(StateSubmitting)) {
		return true
	}
	return g.state.CompareAndSwap(int32(StateFailed), int32(StateSubmitting))
}

func (g *Guard) transition(to SubmissionState) {
	g.state.Store(int32(to))
}

func (g *Guard) publishState(snapshot *WizardSnapshot) {
	if g.bus == nil {
		return
	}
	var revision int64
	if snapshot != nil {
		revision = snapshot.Revision
	}
	g.bus.Publish(Event{
		Kind:       EventSubmissionStateChanged,
		Submission: g.State(),
		Revision:   revision,
	})
}

func (g *Guard) submit(ctx context.Context, staffID uuid.UUID, snapshot *WizardSnapshot) (*SubmissionResult, error) {
	if err := validateSubmission(staffID, snapshot); err != nil {
		g.log.LogSubmissionRejected(ctx, staffID.String(), err.Error())
		return nil, err
	}

	payload := buildPayload(staffID, snapshot)

	createResult, err := g.creator.CreateEvent(ctx, payload)
	if !dispatchSucceeded(createResult, err) {
		message := ""
		if createResult != nil {
			message = createResult.Message
		}
		return nil, &SubmissionError{Message: message, Err: err}
	}

	eventID := uuid.Nil
	if createResult != nil && createResult.EventID != nil {
		eventID = *createResult.EventID
	}

	g.applySideEffects(ctx, staffID, snapshot, eventID, payload)

	return &SubmissionResult{
		EventID: eventID,
		Total:   payload.TotalBudget,
	}, nil
}

// dispatchSucceeded is deliberately tolerant: the collaborator sometimes
// reports success with an empty body, so only an explicit failure or a
// transport error counts as one.
func dispatchSucceeded(result *CreateResult, err error) bool {
	if err != nil {
		return false
	}
	if result == nil {
		return true
	}
	return result.Success || result.EventID != nil
}

// applySideEffects runs the post-success steps. Each is independently
// best-effort: a failure is logged and never rolls back the created event.
func (g *Guard) applySideEffects(ctx context.Context, staffID uuid.UUID, snapshot *WizardSnapshot, eventID uuid.UUID, payload *events.CreateEventRequest) {
	if IsWeddingType(snapshot) && eventID != uuid.Nil {
		bride := strings.TrimSpace(snapshot.Wedding.BrideName)
		groom := strings.TrimSpace(snapshot.Wedding.GroomName)
		if bride != "" || groom != "" {
			if err := g.creator.SaveWeddingDetails(ctx, eventID, bride, groom); err != nil {
				g.log.Warn("failed to save wedding details", "event_id", eventID.String(), "error", err)
			}
		}
	}

	if g.drafts != nil {
		if err := g.drafts.Clear(ctx, staffID); err != nil {
			g.log.Warn("failed to clear draft after submission", "staff_id", staffID.String(), "error", err)
		}
	}

	if snapshot.BookingID != nil && eventID != uuid.Nil {
		if err := g.bookings.MarkConverted(ctx, *snapshot.BookingID, eventID); err != nil {
			g.log.Warn("failed to mark booking converted",
				"booking_id", snapshot.BookingID.String(), "event_id", eventID.String(), "error", err)
		}
		g.bookings.DropLookupCache(ctx, snapshot.BookingRef)
		g.log.LogBookingConverted(ctx, snapshot.BookingRef, staffID.String())
	}

	if g.producer != nil {
		message := notifications.NewEventCreatedMessage(eventID, staffID)
		message.Title = payload.Title
		message.EventType = payload.EventType
		message.EventDate = payload.EventDate
		message.ClientName = payload.ClientName
		message.ClientEmail = payload.ClientEmail
		message.TotalBudget = payload.TotalBudget
		message.BookingRef = snapshot.BookingRef
		message.BookingID = snapshot.BookingID
		if err := g.producer.PublishEventCreated(ctx, message); err != nil {
			g.log.Warn("failed to publish event-created message", "event_id", eventID.String(), "error", err)
		}
	}
}

// validateSubmission is the fail-fast pipeline. Order matters: each check
// aborts with its own message and no side effects.
func validateSubmission(staffID uuid.UUID, snapshot *WizardSnapshot) error {
	if staffID == uuid.Nil {
		return newValidationError("staff", "submitting staff identity is missing")
	}
	if snapshot == nil {
		return newValidationError("", "wizard state is empty")
	}
	if requiresReferenceNumber(snapshot.Payment.Method) &&
		strings.TrimSpace(snapshot.Payment.ReferenceNumber) == "" {
		return newValidationError("payment.reference_number",
			"a reference number is required for "+snapshot.Payment.Method+" payments")
	}
	if snapshot.Payment.DownPayment < 0 {
		return newValidationError("payment.down_payment", "down payment cannot be negative")
	}
	total := ComputeTotalBudget(snapshot)
	if total <= 0 {
		return newValidationError("total", "total budget must be greater than zero")
	}
	if snapshot.Payment.DownPayment > total+PriceTolerance {
		return newValidationError("payment.down_payment", "down payment exceeds the total balance")
	}
	if strings.TrimSpace(snapshot.Client.ID) == "" {
		return newValidationError("client", "a client must be selected")
	}
	if strings.TrimSpace(snapshot.Details.Date) == "" {
		return newValidationError("details.date", "an event date is required")
	}
	if snapshot.Details.Capacity <= 0 {
		return newValidationError("details.capacity", "guest capacity must be greater than zero")
	}
	if strings.TrimSpace(snapshot.Details.Theme) == "" {
		return newValidationError("details.theme", "an event theme is required")
	}
	if snapshot.Details.HasConflicts {
		return newValidationError("details.date", "the selected schedule has conflicts")
	}
	if snapshot.Mode == ModePackageBased {
		if snapshot.Package == nil {
			return newValidationError("package", "a package must be selected")
		}
		if snapshot.Venue == nil {
			return newValidationError("venue", "a venue must be selected for package-based events")
		}
	}
	return nil
}

// buildPayload flattens wizard state into the event-creation request.
// Absent optional text fields get a sentinel, absent times fixed defaults,
// and every monetary figure is rounded to 2 decimals.
func buildPayload(staffID uuid.UUID, snapshot *WizardSnapshot) *events.CreateEventRequest {
	req := &events.CreateEventRequest{
		CreatedBy:     staffID,
		ClientID:      snapshot.Client.ID,
		ClientName:    textOrSentinel(snapshot.Client.Name),
		ClientEmail:   textOrSentinel(snapshot.Client.Email),
		ClientPhone:   textOrSentinel(snapshot.Client.Phone),
		ClientAddress: textOrSentinel(snapshot.Client.Address),
		Title:         textOrSentinel(snapshot.Details.Title),
		EventType:     textOrSentinel(snapshot.Details.Type),
		EventDate:     snapshot.Details.Date,
		Capacity:      snapshot.Details.Capacity,
		Theme:         snapshot.Details.Theme,
		Description:   textOrSentinel(snapshot.Details.Description),
		StartTime:     timeOrDefault(snapshot.Details.StartTime, defaultStartTime),
		EndTime:       timeOrDefault(snapshot.Details.EndTime, defaultEndTime),
		Notes:         textOrSentinel(snapshot.Details.Notes),
		TotalBudget:   Round2(ComputeTotalBudget(snapshot)),
		DownPayment:   Round2(snapshot.Payment.DownPayment),
		PaymentMethod: textOrSentinel(snapshot.Payment.Method),
		BookingRef:    snapshot.BookingRef,
	}
	if strings.TrimSpace(snapshot.Payment.ReferenceNumber) != "" {
		req.PaymentReference = snapshot.Payment.ReferenceNumber
	}
	if snapshot.Package != nil {
		packageID := snapshot.Package.PackageID
		req.PackageID = &packageID
	}
	if snapshot.Venue != nil {
		venueID := snapshot.Venue.VenueID
		req.VenueID = &venueID
		req.VenueTitle = snapshot.Venue.Title
	}
	req.Components = serializeComponents(snapshot.Components)
	return req
}

// serializeComponents flattens the included lines for storage on the event
func serializeComponents(lines []ComponentLine) string {
	type componentEntry struct {
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Category string  `json:"category"`
		IsCustom bool    `json:"is_custom,omitempty"`
	}

	entries := make([]componentEntry, 0, len(lines))
	for _, line := range lines {
		if !line.Included {
			continue
		}
		entries = append(entries, componentEntry{
			Name:     line.Name,
			Price:    Round2(line.Price),
			Category: string(line.Category),
			IsCustom: line.IsCustom,
		})
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func textOrSentinel(value string) string {
	if strings.TrimSpace(value) == "" {
		return absentTextSentinel
	}
	return value
}

func timeOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
