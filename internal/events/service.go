package events

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eventcraft/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrInvalidEventData = errors.New("invalid event data")
)

// Service interface defines the contract for finalized events
type Service interface {
	CreateEvent(ctx context.Context, req *CreateEventRequest) (*Event, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*Event, error)
	ListEvents(ctx context.Context, staffID *uuid.UUID, limit, offset int) ([]Event, error)
	SaveWeddingDetails(ctx context.Context, eventID uuid.UUID, brideName, groomName string) error
}

type service struct {
	repo Repository
	log  *logger.Logger
}

// NewService creates a new event service instance
func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		log:  logger.GetDefault(),
	}
}

func (s *service) CreateEvent(ctx context.Context, req *CreateEventRequest) (*Event, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, err
	}

	event := &Event{
		CreatedBy:        req.CreatedBy,
		ClientID:         req.ClientID,
		ClientName:       req.ClientName,
		ClientEmail:      req.ClientEmail,
		ClientPhone:      req.ClientPhone,
		ClientAddress:    req.ClientAddress,
		Title:            req.Title,
		EventType:        req.EventType,
		EventDate:        req.EventDate,
		Capacity:         req.Capacity,
		Theme:            req.Theme,
		Description:      req.Description,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		Notes:            req.Notes,
		PackageID:        req.PackageID,
		VenueID:          req.VenueID,
		VenueTitle:       req.VenueTitle,
		Components:       req.Components,
		TotalBudget:      req.TotalBudget,
		DownPayment:      req.DownPayment,
		PaymentMethod:    req.PaymentMethod,
		PaymentReference: req.PaymentReference,
		BookingRef:       req.BookingRef,
		Status:           "SCHEDULED",
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.log.LogEventFinalized(ctx, event.ID.String(), event.CreatedBy.String(), event.TotalBudget)
	return event, nil
}

func (s *service) GetEvent(ctx context.Context, id uuid.UUID) (*Event, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListEvents(ctx context.Context, staffID *uuid.UUID, limit, offset int) ([]Event, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, staffID, limit, offset)
}

func (s *service) SaveWeddingDetails(ctx context.Context, eventID uuid.UUID, brideName, groomName string) error {
	details := &WeddingDetails{
		EventID:   eventID,
		BrideName: strings.TrimSpace(brideName),
		GroomName: strings.TrimSpace(groomName),
	}
	if err := s.repo.SaveWeddingDetails(ctx, details); err != nil {
		return fmt.Errorf("failed to save wedding details: %w", err)
	}
	return nil
}

func (s *service) validateCreateRequest(req *CreateEventRequest) error {
	if req == nil {
		return ErrInvalidEventData
	}
	if strings.TrimSpace(req.ClientID) == "" {
		return fmt.Errorf("%w: client id is required", ErrInvalidEventData)
	}
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidEventData)
	}
	if strings.TrimSpace(req.EventType) == "" {
		return fmt.Errorf("%w: event type is required", ErrInvalidEventData)
	}
	if strings.TrimSpace(req.EventDate) == "" {
		return fmt.Errorf("%w: event date is required", ErrInvalidEventData)
	}
	if req.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", ErrInvalidEventData)
	}
	if req.TotalBudget <= 0 {
		return fmt.Errorf("%w: total budget must be positive", ErrInvalidEventData)
	}
	return nil
}
