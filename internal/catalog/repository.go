package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository interface for catalog operations
type Repository interface {
	// Packages
	CreatePackage(ctx context.Context, pkg *EventPackage) error
	GetPackageByID(ctx context.Context, id uuid.UUID) (*EventPackage, error)
	GetPackages(ctx context.Context, activeOnly bool) ([]EventPackage, error)
	UpdatePackage(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	DeletePackage(ctx context.Context, id uuid.UUID) error
	ReplacePackageVenues(ctx context.Context, pkg *EventPackage, venueIDs []uuid.UUID) error

	// Venues
	CreateVenue(ctx context.Context, venue *Venue) error
	GetVenueByID(ctx context.Context, id uuid.UUID) (*Venue, error)
	GetVenues(ctx context.Context, activeOnly bool) ([]Venue, error)
	UpdateVenue(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteVenue(ctx context.Context, id uuid.UUID) error
}

// repository implements Repository interface
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ============= PACKAGES =============

func (r *repository) CreatePackage(ctx context.Context, pkg *EventPackage) error {
	return r.db.WithContext(ctx).Create(pkg).Error
}

func (r *repository) GetPackageByID(ctx context.Context, id uuid.UUID) (*EventPackage, error) {
	var pkg EventPackage
	err := r.db.WithContext(ctx).
		Preload("Components", func(db *gorm.DB) *gorm.DB {
			return db.Order("package_components.sort_order ASC")
		}).
		Preload("Venues").
		First(&pkg, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *repository) GetPackages(ctx context.Context, activeOnly bool) ([]EventPackage, error) {
	var packages []EventPackage
	query := r.db.WithContext(ctx).Preload("Components").Order("name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&packages).Error; err != nil {
		return nil, err
	}
	return packages, nil
}

func (r *repository) UpdatePackage(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&EventPackage{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) DeletePackage(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&EventPackage{}, "id = ?", id).Error
}

func (r *repository) ReplacePackageVenues(ctx context.Context, pkg *EventPackage, venueIDs []uuid.UUID) error {
	var venues []Venue
	if len(venueIDs) > 0 {
		if err := r.db.WithContext(ctx).Find(&venues, "id IN ?", venueIDs).Error; err != nil {
			return err
		}
	}
	return r.db.WithContext(ctx).Model(pkg).Association("Venues").Replace(venues)
}

// ============= VENUES =============

func (r *repository) CreateVenue(ctx context.Context, venue *Venue) error {
	return r.db.WithContext(ctx).Create(venue).Error
}

func (r *repository) GetVenueByID(ctx context.Context, id uuid.UUID) (*Venue, error) {
	var venue Venue
	err := r.db.WithContext(ctx).First(&venue, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

func (r *repository) GetVenues(ctx context.Context, activeOnly bool) ([]Venue, error) {
	var venues []Venue
	query := r.db.WithContext(ctx).Order("title ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&venues).Error; err != nil {
		return nil, err
	}
	return venues, nil
}

func (r *repository) UpdateVenue(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&Venue{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) DeleteVenue(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Venue{}, "id = ?", id).Error
}
