package catalog

import (
	"context"
	"errors"
	"fmt"

	"eventcraft/internal/shared/constants"
	"eventcraft/pkg/cache"
	"eventcraft/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPackageNotFound = errors.New("package not found")
	ErrVenueNotFound   = errors.New("venue not found")
)

type Service interface {
	// Packages
	GetPackages(ctx context.Context) ([]EventPackage, error)
	GetPackageDetail(ctx context.Context, id string) (*EventPackage, error)
	CreatePackage(ctx context.Context, req CreatePackageRequest) (*EventPackage, error)
	UpdatePackage(ctx context.Context, id string, req UpdatePackageRequest) (*EventPackage, error)
	DeletePackage(ctx context.Context, id string) error

	// Venues
	GetVenues(ctx context.Context) ([]Venue, error)
	GetVenueByID(ctx context.Context, id string) (*Venue, error)
	CreateVenue(ctx context.Context, req CreateVenueRequest) (*Venue, error)
	UpdateVenue(ctx context.Context, id string, req UpdateVenueRequest) (*Venue, error)
	DeleteVenue(ctx context.Context, id string) error
}

type service struct {
	repo  Repository
	cache cache.Service
	log   *logger.Logger
}

func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{
		repo:  repo,
		cache: cacheService,
		log:   logger.GetDefault(),
	}
}

// ============= PACKAGES =============

func (s *service) GetPackages(ctx context.Context) ([]EventPackage, error) {
	var packages []EventPackage
	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_PACKAGE_LIST, constants.TTL_PACKAGE_LIST, func() (interface{}, error) {
		return s.repo.GetPackages(ctx, true)
	}, &packages)
	if err != nil {
		return nil, fmt.Errorf("failed to get packages: %w", err)
	}
	return packages, nil
}

func (s *service) GetPackageDetail(ctx context.Context, id string) (*EventPackage, error) {
	packageID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid package ID: %w", err)
	}

	cacheKey := constants.CACHE_KEY_PACKAGE_DETAIL + id
	var pkg EventPackage
	err = s.cache.GetOrSet(ctx, cacheKey, constants.TTL_PACKAGE_DETAIL, func() (interface{}, error) {
		detail, err := s.repo.GetPackageByID(ctx, packageID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrPackageNotFound
			}
			return nil, fmt.Errorf("failed to get package: %w", err)
		}
		return detail, nil
	}, &pkg)
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (s *service) CreatePackage(ctx context.Context, req CreatePackageRequest) (*EventPackage, error) {
	pkg := &EventPackage{
		ID:             uuid.New(),
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		GuestCapacity:  req.GuestCapacity,
		VenueBufferFee: req.VenueBufferFee,
		IsActive:       true,
	}

	for i, comp := range req.Components {
		pkg.Components = append(pkg.Components, PackageComponent{
			ID:        uuid.New(),
			PackageID: pkg.ID,
			Name:      comp.Name,
			Price:     comp.Price,
			SortOrder: i,
		})
	}

	if err := s.repo.CreatePackage(ctx, pkg); err != nil {
		return nil, fmt.Errorf("failed to create package: %w", err)
	}

	if len(req.VenueIDs) > 0 {
		venueIDs, err := parseUUIDs(req.VenueIDs)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplacePackageVenues(ctx, pkg, venueIDs); err != nil {
			return nil, fmt.Errorf("failed to attach venues: %w", err)
		}
	}

	s.invalidatePackageCache(ctx, pkg.ID.String())
	return pkg, nil
}

func (s *service) UpdatePackage(ctx context.Context, id string, req UpdatePackageRequest) (*EventPackage, error) {
	packageID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid package ID: %w", err)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.GuestCapacity != nil {
		updates["guest_capacity"] = *req.GuestCapacity
	}
	if req.VenueBufferFee != nil {
		updates["venue_buffer_fee"] = *req.VenueBufferFee
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.repo.UpdatePackage(ctx, packageID, updates); err != nil {
			return nil, fmt.Errorf("failed to update package: %w", err)
		}
	}

	if req.VenueIDs != nil {
		venueIDs, err := parseUUIDs(req.VenueIDs)
		if err != nil {
			return nil, err
		}
		pkg := &EventPackage{ID: packageID}
		if err := s.repo.ReplacePackageVenues(ctx, pkg, venueIDs); err != nil {
			return nil, fmt.Errorf("failed to replace venues: %w", err)
		}
	}

	s.invalidatePackageCache(ctx, id)

	pkg, err := s.repo.GetPackageByID(ctx, packageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to reload package: %w", err)
	}
	return pkg, nil
}

func (s *service) DeletePackage(ctx context.Context, id string) error {
	packageID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid package ID: %w", err)
	}
	if err := s.repo.DeletePackage(ctx, packageID); err != nil {
		return fmt.Errorf("failed to delete package: %w", err)
	}
	s.invalidatePackageCache(ctx, id)
	return nil
}

// ============= VENUES =============

func (s *service) GetVenues(ctx context.Context) ([]Venue, error) {
	var venues []Venue
	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_VENUE_LIST, constants.TTL_VENUE_LIST, func() (interface{}, error) {
		return s.repo.GetVenues(ctx, true)
	}, &venues)
	if err != nil {
		return nil, fmt.Errorf("failed to get venues: %w", err)
	}
	return venues, nil
}

func (s *service) GetVenueByID(ctx context.Context, id string) (*Venue, error) {
	venueID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid venue ID: %w", err)
	}

	cacheKey := constants.CACHE_KEY_VENUE_DETAIL + id
	var venue Venue
	err = s.cache.GetOrSet(ctx, cacheKey, constants.TTL_VENUE_DETAIL, func() (interface{}, error) {
		v, err := s.repo.GetVenueByID(ctx, venueID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrVenueNotFound
			}
			return nil, fmt.Errorf("failed to get venue: %w", err)
		}
		return v, nil
	}, &venue)
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

func (s *service) CreateVenue(ctx context.Context, req CreateVenueRequest) (*Venue, error) {
	venue := &Venue{
		ID:           uuid.New(),
		Title:        req.Title,
		Address:      req.Address,
		BasePrice:    req.BasePrice,
		ExtraPaxRate: req.ExtraPaxRate,
		Capacity:     req.Capacity,
		IsActive:     true,
	}

	if err := s.repo.CreateVenue(ctx, venue); err != nil {
		return nil, fmt.Errorf("failed to create venue: %w", err)
	}

	s.invalidateVenueCache(ctx, venue.ID.String())
	return venue, nil
}

func (s *service) UpdateVenue(ctx context.Context, id string, req UpdateVenueRequest) (*Venue, error) {
	venueID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid venue ID: %w", err)
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.BasePrice != nil {
		updates["base_price"] = *req.BasePrice
	}
	if req.ExtraPaxRate != nil {
		updates["extra_pax_rate"] = *req.ExtraPaxRate
	}
	if req.Capacity != nil {
		updates["capacity"] = *req.Capacity
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.repo.UpdateVenue(ctx, venueID, updates); err != nil {
			return nil, fmt.Errorf("failed to update venue: %w", err)
		}
	}

	s.invalidateVenueCache(ctx, id)

	venue, err := s.repo.GetVenueByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("failed to reload venue: %w", err)
	}
	return venue, nil
}

func (s *service) DeleteVenue(ctx context.Context, id string) error {
	venueID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid venue ID: %w", err)
	}
	if err := s.repo.DeleteVenue(ctx, venueID); err != nil {
		return fmt.Errorf("failed to delete venue: %w", err)
	}
	s.invalidateVenueCache(ctx, id)
	return nil
}

// ============= CACHE INVALIDATION =============

func (s *service) invalidatePackageCache(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, constants.CACHE_KEY_PACKAGE_LIST); err != nil {
		s.log.Warn("failed to invalidate package list cache", "error", err)
	}
	if err := s.cache.Delete(ctx, constants.CACHE_KEY_PACKAGE_DETAIL+id); err != nil {
		s.log.Warn("failed to invalidate package detail cache", "error", err)
	}
}

func (s *service) invalidateVenueCache(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, constants.CACHE_KEY_VENUE_LIST); err != nil {
		s.log.Warn("failed to invalidate venue list cache", "error", err)
	}
	if err := s.cache.Delete(ctx, constants.CACHE_KEY_VENUE_DETAIL+id); err != nil {
		s.log.Warn("failed to invalidate venue detail cache", "error", err)
	}
}

func parseUUIDs(ids []string) ([]uuid.UUID, error) {
	parsed := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		u, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("invalid venue ID %q: %w", id, err)
		}
		parsed = append(parsed, u)
	}
	return parsed, nil
}
