package events

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository interface defines event data access
type Repository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*Event, error)
	List(ctx context.Context, staffID *uuid.UUID, limit, offset int) ([]Event, error)
	SaveWeddingDetails(ctx context.Context, details *WeddingDetails) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new event repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, event *Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	var event Event
	err := r.db.WithContext(ctx).
		Preload("WeddingDetails").
		First(&event, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *repository) List(ctx context.Context, staffID *uuid.UUID, limit, offset int) ([]Event, error) {
	var events []Event
	query := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Offset(offset)
	if staffID != nil {
		query = query.Where("created_by = ?", *staffID)
	}
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// SaveWeddingDetails upserts the wedding sub-record keyed by event id.
func (r *repository) SaveWeddingDetails(ctx context.Context, details *WeddingDetails) error {
	var existing WeddingDetails
	err := r.db.WithContext(ctx).First(&existing, "event_id = ?", details.EventID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.WithContext(ctx).Create(details).Error
		}
		return err
	}
	return r.db.WithContext(ctx).Model(&existing).Updates(map[string]interface{}{
		"bride_name": details.BrideName,
		"groom_name": details.GroomName,
	}).Error
}
