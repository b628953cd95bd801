package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventcraft/internal/bookings"
	"eventcraft/internal/catalog"
	"eventcraft/pkg/logger"

	"github.com/google/uuid"
)

// componentChangesMarker prefixes the JSON diff when a legacy booking
// record smuggles it inside the free-text notes field instead of the
// dedicated column.
const componentChangesMarker = "[COMPONENT_CHANGES]"

// componentChanges is the structured inclusion/exclusion diff a client
// recorded against their package at booking time
type componentChanges struct {
	RemovedComponents []string          `json:"removed_components"`
	CustomComponents  []customComponent `json:"custom_components"`
}

type customComponent struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Converter seeds a wizard snapshot from a confirmed booking record. The
// booking itself is never mutated here; MarkConverted happens only after a
// successful submission.
type Converter struct {
	bookings BookingReader
	catalog  CatalogReader
	log      *logger.Logger
}

// NewConverter creates a booking converter
func NewConverter(bookingReader BookingReader, catalogReader CatalogReader) *Converter {
	return &Converter{
		bookings: bookingReader,
		catalog:  catalogReader,
		log:      logger.GetDefault(),
	}
}

// Convert looks up a booking by reference and maps it into initial wizard
// state. Preconditions are checked in order, each with its own sentinel:
// the record must exist, must not already be converted, and must be
// confirmed.
func (c *Converter) Convert(ctx context.Context, reference string) (*WizardSnapshot, error) {
	record, err := c.bookings.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, bookings.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("booking lookup failed: %w", err)
	}

	if record.IsConverted() {
		return nil, ErrBookingAlreadyConverted
	}
	if !record.IsConfirmed() {
		return nil, ErrBookingNotConfirmed
	}

	snapshot := NewSnapshot()
	bookingID := record.ID
	snapshot.BookingID = &bookingID
	snapshot.BookingRef = record.Reference

	typeID, typeName := ResolveEventType(record.EventType)
	snapshot.Client = ClientRef{
		ID:      record.ID.String(),
		Name:    record.ClientName,
		Email:   record.ClientEmail,
		Phone:   record.ClientPhone,
		Address: record.ClientAddress,
	}
	snapshot.Details = EventDetails{
		Title:     buildEventTitle(record.ClientName, typeName),
		Type:      typeName,
		TypeID:    typeID,
		Date:      record.EventDate,
		Capacity:  record.GuestCount,
		Theme:     record.Theme,
		StartTime: record.StartTime,
		EndTime:   record.EndTime,
		Notes:     notesWithoutChanges(record.Notes),
	}

	if record.PackageID != nil {
		if err := c.seedFromPackage(ctx, snapshot, record); err != nil {
			return nil, err
		}
	} else if record.VenueID != nil {
		if err := c.seedScratchVenue(ctx, snapshot, *record.VenueID); err != nil {
			return nil, err
		}
	}

	changes := parseComponentChanges(record.ComponentChanges, record.Notes)
	applyComponentChanges(snapshot, changes)

	snapshot.Timestamp = time.Now()
	return snapshot, nil
}

// seedFromPackage fetches the booking's package, seeds the package
// selection and its component lines, and auto-selects the booked venue when
// it appears in the package's scoped venue list
func (c *Converter) seedFromPackage(ctx context.Context, snapshot *WizardSnapshot, record *bookings.BookingRecord) error {
	pkg, err := c.catalog.GetPackageDetail(ctx, record.PackageID.String())
	if err != nil {
		if errors.Is(err, catalog.ErrPackageNotFound) {
			return fmt.Errorf("%w: booked package %s", ErrPackageNotFound, record.PackageID)
		}
		return fmt.Errorf("package lookup failed: %w", err)
	}

	snapshot.Mode = ModePackageBased
	snapshot.Package = &PackageSelection{
		PackageID:            pkg.ID,
		Name:                 pkg.Name,
		OriginalPackagePrice: pkg.Price,
		VenueBufferFee:       pkg.VenueBufferFee,
		GuestCapacity:        pkg.GuestCapacity,
	}

	for _, component := range pkg.Components {
		snapshot.Components = append(snapshot.Components, ComponentLine{
			ID:       component.ID.String(),
			Name:     component.Name,
			Price:    component.Price,
			Category: CategoryPackage,
			Included: true,
		})
	}

	if record.VenueID != nil {
		for i := range pkg.Venues {
			if pkg.Venues[i].ID == *record.VenueID {
				selectPackageVenue(snapshot, &pkg.Venues[i])
				break
			}
		}
	}
	return nil
}

func (c *Converter) seedScratchVenue(ctx context.Context, snapshot *WizardSnapshot, venueID uuid.UUID) error {
	venue, err := c.catalog.GetVenueByID(ctx, venueID.String())
	if err != nil {
		if errors.Is(err, catalog.ErrVenueNotFound) {
			// a booking can outlive its venue; conversion still succeeds
			c.log.Warn("booked venue no longer exists", "venue_id", venueID.String())
			return nil
		}
		return fmt.Errorf("venue lookup failed: %w", err)
	}
	selectScratchVenue(snapshot, venue)
	return nil
}

// selectPackageVenue sets the venue selection and its line for a
// package-based snapshot. The line carries no price of its own; pricing
// charges the buffer excess instead.
func selectPackageVenue(snapshot *WizardSnapshot, venue *catalog.Venue) {
	snapshot.Venue = &VenueSelection{
		VenueID:      venue.ID,
		Title:        venue.Title,
		BasePrice:    venue.BasePrice,
		ExtraPaxRate: venue.ExtraPaxRate,
	}
	snapshot.SetVenueLine(ComponentLine{
		ID:       venue.ID.String(),
		Name:     venue.Title,
		Price:    0,
		Included: true,
	})
}

// selectScratchVenue sets the venue selection for a from-scratch snapshot;
// the line's stored price embeds the overflow charge at selection time
func selectScratchVenue(snapshot *WizardSnapshot, venue *catalog.Venue) {
	selection := &VenueSelection{
		VenueID:      venue.ID,
		Title:        venue.Title,
		BasePrice:    venue.BasePrice,
		ExtraPaxRate: venue.ExtraPaxRate,
	}
	snapshot.Venue = selection
	snapshot.SetVenueLine(ComponentLine{
		ID:       venue.ID.String(),
		Name:     venue.Title,
		Price:    ScratchVenuePrice(selection, snapshot.Details.Capacity),
		Included: true,
	})
}

// parseComponentChanges reads the diff from the dedicated column first,
// then from the notes field after the marker. Malformed or absent payloads
// resolve to an empty diff, never an error.
func parseComponentChanges(column, notes string) componentChanges {
	var changes componentChanges

	payload := strings.TrimSpace(column)
	if payload == "" {
		if idx := strings.Index(notes, componentChangesMarker); idx >= 0 {
			payload = strings.TrimSpace(notes[idx+len(componentChangesMarker):])
		}
	}
	if payload == "" {
		return changes
	}

	if err := json.Unmarshal([]byte(payload), &changes); err != nil {
		return componentChanges{}
	}
	return changes
}

// applyComponentChanges marks removed package lines excluded and appends
// the client's custom additions
func applyComponentChanges(snapshot *WizardSnapshot, changes componentChanges) {
	for _, removed := range changes.RemovedComponents {
		for i := range snapshot.Components {
			line := &snapshot.Components[i]
			if line.Category != CategoryPackage {
				continue
			}
			if line.ID == removed || strings.EqualFold(line.Name, removed) {
				line.Included = false
			}
		}
	}

	for _, custom := range changes.CustomComponents {
		if strings.TrimSpace(custom.Name) == "" {
			continue
		}
		snapshot.Components = append(snapshot.Components, ComponentLine{
			ID:       uuid.New().String(),
			Name:     custom.Name,
			Price:    custom.Price,
			Category: CategoryCustom,
			Included: true,
			IsCustom: true,
		})
	}
}

// notesWithoutChanges strips an embedded diff payload from the free-text
// notes so it does not surface in the wizard's notes field
func notesWithoutChanges(notes string) string {
	if idx := strings.Index(notes, componentChangesMarker); idx >= 0 {
		return strings.TrimSpace(notes[:idx])
	}
	return strings.TrimSpace(notes)
}

func buildEventTitle(clientName, typeName string) string {
	name := strings.TrimSpace(clientName)
	kind := strings.TrimSpace(typeName)
	if kind != "" {
		kind = strings.ToUpper(kind[:1]) + kind[1:]
	}
	switch {
	case name != "" && kind != "":
		return name + " - " + kind
	case name != "":
		return name
	default:
		return kind
	}
}
