package bookings

import (
	"context"
	"errors"
	"fmt"

	"eventcraft/internal/shared/constants"
	"eventcraft/pkg/cache"
	"eventcraft/pkg/logger"

	"github.com/google/uuid"
)

var ErrBookingNotFound = errors.New("booking not found")

// Service interface defines the contract for booking record access
type Service interface {
	GetByReference(ctx context.Context, reference string) (*BookingRecord, error)
	List(ctx context.Context, status string, limit, offset int) ([]BookingRecord, error)
	MarkConverted(ctx context.Context, bookingID uuid.UUID, eventID uuid.UUID) error

	// DropLookupCache removes a reference from the lookup cache. The
	// submission guard calls this optimistically after a conversion so a
	// stale CONFIRMED record is not offered for conversion again.
	DropLookupCache(ctx context.Context, reference string)
}

type service struct {
	repo  Repository
	cache cache.Service
	log   *logger.Logger
}

// NewService creates a new booking service instance
func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{
		repo:  repo,
		cache: cacheService,
		log:   logger.GetDefault(),
	}
}

func (s *service) GetByReference(ctx context.Context, reference string) (*BookingRecord, error) {
	cacheKey := constants.CACHE_KEY_BOOKING_LOOKUP + reference

	var record BookingRecord
	err := s.cache.GetOrSet(ctx, cacheKey, constants.TTL_BOOKING_LOOKUP, func() (interface{}, error) {
		rec, err := s.repo.GetByReference(ctx, reference)
		if err != nil {
			return nil, err
		}
		return rec, nil
	}, &record)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("booking lookup failed: %w", err)
	}

	return &record, nil
}

func (s *service) List(ctx context.Context, status string, limit, offset int) ([]BookingRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, status, limit, offset)
}

func (s *service) MarkConverted(ctx context.Context, bookingID uuid.UUID, eventID uuid.UUID) error {
	if err := s.repo.MarkConverted(ctx, bookingID, eventID); err != nil {
		return fmt.Errorf("failed to mark booking converted: %w", err)
	}
	return nil
}

func (s *service) DropLookupCache(ctx context.Context, reference string) {
	if err := s.cache.Delete(ctx, constants.CACHE_KEY_BOOKING_LOOKUP+reference); err != nil {
		s.log.Warn("failed to drop booking lookup cache", "reference", reference, "error", err)
	}
	if err := s.cache.Delete(ctx, constants.CACHE_KEY_BOOKING_LIST); err != nil {
		s.log.Warn("failed to drop booking list cache", "error", err)
	}
}
