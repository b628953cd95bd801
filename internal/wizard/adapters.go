package wizard

import (
	"context"
	"errors"
	"fmt"

	"eventcraft/internal/bookings"
	"eventcraft/internal/catalog"
	"eventcraft/internal/events"

	"github.com/google/uuid"
)

// The wizard consumes its collaborators through narrow interfaces so the
// engine can be exercised against hand-rolled doubles. The concrete
// services in internal/catalog, internal/bookings and internal/events
// satisfy them directly or via thin adapters below.

// BookingReader reads booking records and applies conversion bookkeeping
type BookingReader interface {
	GetByReference(ctx context.Context, reference string) (*bookings.BookingRecord, error)
	MarkConverted(ctx context.Context, bookingID uuid.UUID, eventID uuid.UUID) error
	DropLookupCache(ctx context.Context, reference string)
}

// CatalogReader looks up packages (with their scoped venue lists) and venues
type CatalogReader interface {
	GetPackageDetail(ctx context.Context, id string) (*catalog.EventPackage, error)
	GetVenueByID(ctx context.Context, id string) (*catalog.Venue, error)
}

// CreateResult is what the event-creation collaborator reports back. A nil
// result with a nil error is a legal empty-body success.
type CreateResult struct {
	Success bool       `json:"success"`
	EventID *uuid.UUID `json:"event_id,omitempty"`
	Message string     `json:"message,omitempty"`
}

// EventCreator dispatches the assembled payload and saves the optional
// wedding sub-record afterwards
type EventCreator interface {
	CreateEvent(ctx context.Context, req *events.CreateEventRequest) (*CreateResult, error)
	SaveWeddingDetails(ctx context.Context, eventID uuid.UUID, brideName, groomName string) error
}

// eventServiceCreator adapts events.Service to the EventCreator contract
type eventServiceCreator struct {
	service events.Service
}

// NewEventCreator wraps the events service for use by the submission guard
func NewEventCreator(service events.Service) EventCreator {
	return &eventServiceCreator{service: service}
}

func (a *eventServiceCreator) CreateEvent(ctx context.Context, req *events.CreateEventRequest) (*CreateResult, error) {
	event, err := a.service.CreateEvent(ctx, req)
	if err != nil {
		return &CreateResult{Success: false, Message: err.Error()}, err
	}
	return &CreateResult{Success: true, EventID: &event.ID}, nil
}

func (a *eventServiceCreator) SaveWeddingDetails(ctx context.Context, eventID uuid.UUID, brideName, groomName string) error {
	return a.service.SaveWeddingDetails(ctx, eventID, brideName, groomName)
}

// mapPackageErr and mapVenueErr translate catalog sentinels into the
// wizard's own lookup errors so controllers handle one taxonomy

func mapPackageErr(err error) error {
	if errors.Is(err, catalog.ErrPackageNotFound) {
		return ErrPackageNotFound
	}
	return fmt.Errorf("package lookup failed: %w", err)
}

func mapVenueErr(err error) error {
	if errors.Is(err, catalog.ErrVenueNotFound) {
		return ErrVenueNotFound
	}
	return fmt.Errorf("venue lookup failed: %w", err)
}
