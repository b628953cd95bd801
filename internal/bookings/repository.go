package bookings

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository interface defines booking record data access
type Repository interface {
	Create(ctx context.Context, record *BookingRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*BookingRecord, error)
	GetByReference(ctx context.Context, reference string) (*BookingRecord, error)
	List(ctx context.Context, status string, limit, offset int) ([]BookingRecord, error)
	MarkConverted(ctx context.Context, id uuid.UUID, eventID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new booking repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, record *BookingRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*BookingRecord, error) {
	var record BookingRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *repository) GetByReference(ctx context.Context, reference string) (*BookingRecord, error) {
	var record BookingRecord
	err := r.db.WithContext(ctx).First(&record, "reference = ?", reference).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *repository) List(ctx context.Context, status string, limit, offset int) ([]BookingRecord, error) {
	var records []BookingRecord
	query := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Offset(offset)
	if status != "" {
		query = query.Where("UPPER(status) = UPPER(?)", status)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) MarkConverted(ctx context.Context, id uuid.UUID, eventID uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&BookingRecord{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":             StatusConverted,
			"converted_event_id": eventID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}
