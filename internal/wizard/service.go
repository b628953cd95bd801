package wizard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eventcraft/internal/notifications"
	"eventcraft/pkg/logger"

	"github.com/google/uuid"
)

// Service is the wizard's HTTP-facing surface: one session per staff
// account, seeded fresh, from a draft, or from a booking conversion, then
// mutated step by step until the submission guard dispatches it.
type Service interface {
	Open(ctx context.Context, staffID uuid.UUID, req *OpenRequest) (*OpenResponse, error)
	ResolveRecovery(ctx context.Context, staffID uuid.UUID, resume bool) (*SummaryResponse, error)
	UpdateState(ctx context.Context, staffID uuid.UUID, req *UpdateStateRequest) (*SummaryResponse, error)
	ComponentAction(ctx context.Context, staffID uuid.UUID, req *ComponentActionRequest) (*SummaryResponse, error)
	Step(ctx context.Context, staffID uuid.UUID, req *StepRequest) (*StepResponse, error)
	Summary(ctx context.Context, staffID uuid.UUID) (*SummaryResponse, error)
	Submit(ctx context.Context, staffID uuid.UUID) (*SubmissionResult, error)
	Discard(ctx context.Context, staffID uuid.UUID) error
}

type service struct {
	registry       *Registry
	drafts         DraftStore
	converter      *Converter
	catalog        CatalogReader
	recoveryWindow time.Duration
	log            *logger.Logger
}

// NewService creates the wizard service
func NewService(registry *Registry, drafts DraftStore, converter *Converter, catalogReader CatalogReader, recoveryWindow time.Duration) Service {
	if recoveryWindow <= 0 {
		recoveryWindow = 24 * time.Hour
	}
	return &service{
		registry:       registry,
		drafts:         drafts,
		converter:      converter,
		catalog:        catalogReader,
		recoveryWindow: recoveryWindow,
		log:            logger.GetDefault(),
	}
}

// NewDefaultRegistry wires a registry whose guards share the given
// collaborators; each session still gets its own guard and bus.
func NewDefaultRegistry(creator EventCreator, bookingReader BookingReader, drafts DraftStore, producer notifications.Producer) *Registry {
	return NewRegistry(func(bus *Bus) *Guard {
		return NewGuard(creator, bookingReader, drafts, producer, bus)
	})
}

// Open starts (or restarts) a wizard session. A booking reference or an
// explicit skip always clears the draft slot and bypasses recovery: a
// fresh conversion wins over a stale draft. Otherwise a meaningful draft
// younger than the recovery window is offered for resume, and anything
// older is cleared silently.
func (s *service) Open(ctx context.Context, staffID uuid.UUID, req *OpenRequest) (*OpenResponse, error) {
	if req == nil {
		req = &OpenRequest{}
	}

	if req.BookingRef != "" || req.SkipRecovery {
		if err := s.drafts.Clear(ctx, staffID); err != nil {
			s.log.Warn("failed to clear draft on open", "staff_id", staffID.String(), "error", err)
		}

		var snapshot *WizardSnapshot
		if req.BookingRef != "" {
			converted, err := s.converter.Convert(ctx, req.BookingRef)
			if err != nil {
				return nil, err
			}
			snapshot = converted
		} else {
			snapshot = NewSnapshot()
		}

		session := s.registry.Replace(staffID)
		session.withLock(func() {
			session.snapshot = snapshot
			session.recoveryResolved = true
			s.syncTotals(session.snapshot)
		})
		return s.openResponse(session, false, 0), nil
	}

	draft, err := s.drafts.Load(ctx, staffID)
	if err != nil {
		return nil, fmt.Errorf("draft load failed: %w", err)
	}

	session := s.registry.Replace(staffID)

	if draft != nil && draft.HasMeaningfulData() {
		age := time.Since(draft.Timestamp)
		if age <= s.recoveryWindow {
			session.withLock(func() {
				session.pendingRecovery = draft
				session.recoveryResolved = false
			})
			return s.openResponse(session, true, age), nil
		}
		// too old to offer; clear without prompting
		if err := s.drafts.Clear(ctx, staffID); err != nil {
			s.log.Warn("failed to clear stale draft", "staff_id", staffID.String(), "error", err)
		}
	}

	session.withLock(func() {
		session.recoveryResolved = true
	})
	return s.openResponse(session, false, 0), nil
}

// ResolveRecovery answers a pending resume/discard prompt. It runs exactly
// once per offer; autosave stays disabled until it has.
func (s *service) ResolveRecovery(ctx context.Context, staffID uuid.UUID, resume bool) (*SummaryResponse, error) {
	session := s.registry.Get(staffID)
	if session == nil {
		return nil, ErrNoActiveSession
	}

	var summary *SummaryResponse
	var resolveErr error
	session.withLock(func() {
		if session.pendingRecovery == nil {
			resolveErr = ErrNoRecoveryOffer
			return
		}

		if resume {
			draft := session.pendingRecovery
			age := time.Since(draft.Timestamp)
			session.snapshot = draft
			ClampStepIndex(session.snapshot)
			s.syncTotals(session.snapshot)
			s.log.LogDraftRecovered(ctx, staffID.String(), age)
			session.bus.Publish(Event{
				Kind:     EventDraftRecovered,
				Total:    session.snapshot.Payment.Total,
				Revision: session.snapshot.Revision,
			})
		} else {
			if err := s.drafts.Clear(ctx, staffID); err != nil {
				s.log.Warn("failed to clear discarded draft", "staff_id", staffID.String(), "error", err)
			}
		}

		session.pendingRecovery = nil
		session.recoveryResolved = true
		summary = s.buildSummary(session)
	})
	if resolveErr != nil {
		return nil, resolveErr
	}
	return summary, nil
}

// UpdateState applies section-level partial updates to the snapshot and
// recomputes everything derived from it
func (s *service) UpdateState(ctx context.Context, staffID uuid.UUID, req *UpdateStateRequest) (*SummaryResponse, error) {
	session, err := s.activeSession(staffID)
	if err != nil {
		return nil, err
	}

	var summary *SummaryResponse
	session.withLock(func() {
		snapshot := session.snapshot
		if req.Client != nil {
			snapshot.Client = *req.Client
		}
		if req.Details != nil {
			details := *req.Details
			details.TypeID, details.Type = resolveDetailsType(details)
			snapshot.Details = details
		}
		if req.Payment != nil {
			snapshot.Payment = *req.Payment
		}
		if req.Wedding != nil {
			snapshot.Wedding = *req.Wedding
		}
		if req.Attachments != nil {
			snapshot.Attachments = req.Attachments
		}

		s.afterMutation(ctx, session)
		summary = s.buildSummary(session)
	})
	return summary, nil
}

// ComponentAction mutates the component set: inclusion toggles, custom
// lines, and package/venue selection. Selection actions do their catalog
// lookup without holding the session lock; if the snapshot moved on while
// the lookup was in flight, the stale response is dropped instead of
// resurrecting old data.
func (s *service) ComponentAction(ctx context.Context, staffID uuid.UUID, req *ComponentActionRequest) (*SummaryResponse, error) {
	session, err := s.activeSession(staffID)
	if err != nil {
		return nil, err
	}

	switch req.Action {
	case ActionSelectPackage:
		return s.selectPackage(ctx, session, req.PackageID)
	case ActionClearPackage:
		return s.mutate(ctx, session, func(snapshot *WizardSnapshot) error {
			clearPackage(snapshot)
			return nil
		})
	case ActionSelectVenue:
		return s.selectVenue(ctx, session, req.VenueID)
	case ActionInclude, ActionExclude:
		return s.mutate(ctx, session, func(snapshot *WizardSnapshot) error {
			line := snapshot.FindComponent(req.ComponentID)
			if line == nil {
				return ErrUnknownComponent
			}
			line.Included = req.Action == ActionInclude
			return nil
		})
	case ActionAddCustom:
		return s.mutate(ctx, session, func(snapshot *WizardSnapshot) error {
			name := strings.TrimSpace(req.Name)
			if name == "" {
				return newValidationError("name", "a component name is required")
			}
			if req.Price < 0 {
				return newValidationError("price", "a component price cannot be negative")
			}
			snapshot.Components = append(snapshot.Components, ComponentLine{
				ID:       uuid.New().String(),
				Name:     name,
				Price:    req.Price,
				Category: CategoryCustom,
				Included: true,
				IsCustom: true,
			})
			return nil
		})
	case ActionRemoveCustom:
		return s.mutate(ctx, session, func(snapshot *WizardSnapshot) error {
			for i := range snapshot.Components {
				if snapshot.Components[i].ID == req.ComponentID && snapshot.Components[i].IsCustom {
					snapshot.Components = append(snapshot.Components[:i], snapshot.Components[i+1:]...)
					return nil
				}
			}
			return ErrUnknownComponent
		})
	}
	return nil, newValidationError("action", "unknown component action: "+req.Action)
}

func (s *service) selectPackage(ctx context.Context, session *Session, packageID string) (*SummaryResponse, error) {
	if strings.TrimSpace(packageID) == "" {
		return nil, newValidationError("package_id", "a package id is required")
	}

	var revision int64
	session.withLock(func() { revision = session.snapshot.Revision })

	pkg, err := s.catalog.GetPackageDetail(ctx, packageID)
	if err != nil {
		return nil, mapPackageErr(err)
	}

	var summary *SummaryResponse
	var applyErr error
	session.withLock(func() {
		snapshot := session.snapshot
		if snapshot.Revision != revision {
			applyErr = ErrStaleLookup
			return
		}

		snapshot.Mode = ModePackageBased
		snapshot.Package = &PackageSelection{
			PackageID:            pkg.ID,
			Name:                 pkg.Name,
			OriginalPackagePrice: pkg.Price,
			VenueBufferFee:       pkg.VenueBufferFee,
			GuestCapacity:        pkg.GuestCapacity,
		}

		// replace package lines; custom lines survive a package switch
		kept := snapshot.Components[:0]
		for _, line := range snapshot.Components {
			if line.Category != CategoryPackage {
				kept = append(kept, line)
			}
		}
		snapshot.Components = kept
		for _, component := range pkg.Components {
			snapshot.Components = append(snapshot.Components, ComponentLine{
				ID:       component.ID.String(),
				Name:     component.Name,
				Price:    component.Price,
				Category: CategoryPackage,
				Included: true,
			})
		}

		// the prior venue only survives if the new package scopes it
		if snapshot.Venue != nil {
			inScope := false
			for i := range pkg.Venues {
				if pkg.Venues[i].ID == snapshot.Venue.VenueID {
					inScope = true
					break
				}
			}
			if inScope {
				if line := snapshot.VenueLine(); line != nil {
					line.Price = 0
				}
			} else {
				snapshot.Venue = nil
				snapshot.RemoveVenueLine()
			}
		}

		s.afterMutation(ctx, session)
		summary = s.buildSummary(session)
	})
	if applyErr != nil {
		return nil, applyErr
	}
	return summary, nil
}

func (s *service) selectVenue(ctx context.Context, session *Session, venueID string) (*SummaryResponse, error) {
	if strings.TrimSpace(venueID) == "" {
		return nil, newValidationError("venue_id", "a venue id is required")
	}

	var revision int64
	session.withLock(func() { revision = session.snapshot.Revision })

	venue, err := s.catalog.GetVenueByID(ctx, venueID)
	if err != nil {
		return nil, mapVenueErr(err)
	}

	var summary *SummaryResponse
	var applyErr error
	session.withLock(func() {
		snapshot := session.snapshot
		if snapshot.Revision != revision {
			applyErr = ErrStaleLookup
			return
		}

		if snapshot.Mode == ModePackageBased {
			selectPackageVenue(snapshot, venue)
		} else {
			selectScratchVenue(snapshot, venue)
		}

		s.afterMutation(ctx, session)
		summary = s.buildSummary(session)
	})
	if applyErr != nil {
		return nil, applyErr
	}
	return summary, nil
}

// Step moves the session one step forward or back
func (s *service) Step(ctx context.Context, staffID uuid.UUID, req *StepRequest) (*StepResponse, error) {
	session, err := s.activeSession(staffID)
	if err != nil {
		return nil, err
	}

	var resp *StepResponse
	var stepErr error
	session.withLock(func() {
		snapshot := session.snapshot
		step, advErr := Advance(snapshot, Direction(req.Direction), req.Strict)
		if advErr != nil {
			stepErr = advErr
			return
		}
		snapshot.Touch()
		session.bus.Publish(Event{
			Kind:     EventStepChanged,
			Step:     step,
			Revision: snapshot.Revision,
		})
		s.autosave(ctx, session)
		resp = &StepResponse{
			Step:      step,
			StepIndex: snapshot.CurrentStep,
			Steps:     StepsFor(snapshot),
			Readiness: StepReadiness(snapshot),
		}
	})
	if stepErr != nil {
		return nil, stepErr
	}
	return resp, nil
}

// Summary reports the current totals partition and step readiness
func (s *service) Summary(ctx context.Context, staffID uuid.UUID) (*SummaryResponse, error) {
	session, err := s.activeSession(staffID)
	if err != nil {
		return nil, err
	}

	var summary *SummaryResponse
	session.withLock(func() {
		summary = s.buildSummary(session)
	})
	return summary, nil
}

// Submit hands the snapshot to the session's guard. The guard alone
// decides whether a dispatch happens. It receives a clone taken under the
// session lock: edits that land while the submission is in flight cannot
// change the payload being validated and dispatched.
func (s *service) Submit(ctx context.Context, staffID uuid.UUID) (*SubmissionResult, error) {
	session, err := s.activeSession(staffID)
	if err != nil {
		return nil, err
	}

	var snapshot *WizardSnapshot
	var pending bool
	session.withLock(func() {
		pending = session.pendingRecovery != nil
		snapshot = session.snapshot.Clone()
	})
	if pending {
		return nil, ErrRecoveryPending
	}

	return session.guard.Submit(ctx, staffID, snapshot)
}

// Discard clears the draft slot and replaces the session with a fresh one
func (s *service) Discard(ctx context.Context, staffID uuid.UUID) error {
	if err := s.drafts.Clear(ctx, staffID); err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}

	session := s.registry.Replace(staffID)
	session.withLock(func() {
		session.recoveryResolved = true
		session.bus.Publish(Event{Kind: EventSessionReset, Revision: session.snapshot.Revision})
	})
	return nil
}

// mutate applies fn to the snapshot under the session lock and runs the
// standard recompute/persist/publish tail
func (s *service) mutate(ctx context.Context, session *Session, fn func(*WizardSnapshot) error) (*SummaryResponse, error) {
	var summary *SummaryResponse
	var mutErr error
	session.withLock(func() {
		if err := fn(session.snapshot); err != nil {
			mutErr = err
			return
		}
		s.afterMutation(ctx, session)
		summary = s.buildSummary(session)
	})
	if mutErr != nil {
		return nil, mutErr
	}
	return summary, nil
}

// afterMutation is the synchronous recompute tail every mutation runs:
// bump revision, refresh derived totals, clamp the step index, notify the
// bus, then attempt persistence. Callers hold the session lock.
func (s *service) afterMutation(ctx context.Context, session *Session) {
	snapshot := session.snapshot
	snapshot.Touch()
	s.syncTotals(snapshot)
	ClampStepIndex(snapshot)
	session.bus.Publish(Event{
		Kind:     EventTotalsRecomputed,
		Total:    snapshot.Payment.Total,
		Revision: snapshot.Revision,
	})
	s.autosave(ctx, session)
}

func (s *service) syncTotals(snapshot *WizardSnapshot) {
	snapshot.Payment.Total = Round2(ComputeTotalBudget(snapshot))
}

// autosave persists the snapshot unless a recovery prompt is still
// unresolved; saving before resolution could clobber the very draft being
// offered. Persistence failures degrade the recovery guarantee, not the
// session, so they are logged and swallowed.
func (s *service) autosave(ctx context.Context, session *Session) {
	if !session.recoveryResolved {
		return
	}
	if err := s.drafts.Save(ctx, session.StaffID, session.snapshot); err != nil {
		s.log.Warn("draft autosave failed", "staff_id", session.StaffID.String(), "error", err)
	}
}

func (s *service) activeSession(staffID uuid.UUID) (*Session, error) {
	session := s.registry.Get(staffID)
	if session == nil {
		return nil, ErrNoActiveSession
	}
	return session, nil
}

func (s *service) openResponse(session *Session, recovery bool, age time.Duration) *OpenResponse {
	var resp *OpenResponse
	session.withLock(func() {
		resp = &OpenResponse{
			RecoveryAvailable: recovery,
			Summary:           s.buildSummary(session),
		}
		if recovery {
			resp.DraftAgeSeconds = int64(age.Seconds())
		} else {
			resp.Snapshot = session.snapshot
		}
	})
	return resp
}

// buildSummary assembles the summary view. Callers hold the session lock.
func (s *service) buildSummary(session *Session) *SummaryResponse {
	snapshot := session.snapshot
	return &SummaryResponse{
		Mode:                 snapshot.Mode,
		Step:                 CurrentStepID(snapshot),
		StepIndex:            snapshot.CurrentStep,
		Steps:                StepsFor(snapshot),
		Readiness:            StepReadiness(snapshot),
		Total:                Round2(ComputeTotalBudget(snapshot)),
		ComponentsTotal:      Round2(ComputeComponentsTotal(snapshot)),
		VenueInclusionsTotal: Round2(ComputeVenueInclusionsTotal(snapshot)),
		SubmissionState:      session.guard.State().String(),
		RecoveryPending:      session.pendingRecovery != nil,
		Revision:             snapshot.Revision,
		Snapshot:             snapshot,
	}
}

// clearPackage reverts the snapshot to from-scratch pricing
func clearPackage(snapshot *WizardSnapshot) {
	snapshot.Mode = ModeFromScratch
	snapshot.Package = nil

	kept := snapshot.Components[:0]
	for _, line := range snapshot.Components {
		if line.Category != CategoryPackage {
			kept = append(kept, line)
		}
	}
	snapshot.Components = kept

	// from-scratch venue lines price themselves
	if snapshot.Venue != nil {
		if line := snapshot.VenueLine(); line != nil {
			line.Price = ScratchVenuePrice(snapshot.Venue, snapshot.Details.Capacity)
		}
	}
}

func resolveDetailsType(details EventDetails) (typeID, typeName string) {
	if strings.TrimSpace(details.Type) != "" {
		return ResolveEventType(details.Type)
	}
	return details.TypeID, details.Type
}
