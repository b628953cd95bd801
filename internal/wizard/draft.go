package wizard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventcraft/internal/shared/constants"
	"eventcraft/pkg/cache"
	"eventcraft/pkg/logger"

	"github.com/google/uuid"
)

// DraftStore persists one wizard snapshot per staff account so an
// interrupted session can be recovered. Saving is gated on meaningful data;
// an empty shell clears the slot instead of overwriting a recoverable
// draft.
type DraftStore interface {
	Save(ctx context.Context, staffID uuid.UUID, snapshot *WizardSnapshot) error
	Load(ctx context.Context, staffID uuid.UUID) (*WizardSnapshot, error)
	Clear(ctx context.Context, staffID uuid.UUID) error
}

type redisDraftStore struct {
	cache cache.Service
	ttl   time.Duration
	log   *logger.Logger
}

// NewDraftStore creates a Redis-backed draft store. The TTL doubles as the
// recovery window: an expired draft is simply gone.
func NewDraftStore(cacheService cache.Service, ttl time.Duration) DraftStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &redisDraftStore{
		cache: cacheService,
		ttl:   ttl,
		log:   logger.GetDefault(),
	}
}

func draftKey(staffID uuid.UUID) string {
	return constants.KEY_WIZARD_DRAFT + staffID.String()
}

func (d *redisDraftStore) Save(ctx context.Context, staffID uuid.UUID, snapshot *WizardSnapshot) error {
	if !snapshot.HasMeaningfulData() {
		return d.Clear(ctx, staffID)
	}
	if snapshot.Timestamp.IsZero() {
		snapshot.Timestamp = time.Now()
	}
	if err := d.cache.Set(ctx, draftKey(staffID), snapshot, d.ttl); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// Load returns the saved snapshot, or nil when the slot is empty. A corrupt
// payload is treated the same as an absent one: the slot is cleared and the
// caller sees no draft.
func (d *redisDraftStore) Load(ctx context.Context, staffID uuid.UUID) (*WizardSnapshot, error) {
	var snapshot WizardSnapshot
	err := d.cache.Get(ctx, draftKey(staffID), &snapshot)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, nil
		}
		d.log.Warn("discarding unreadable draft snapshot", "staff_id", staffID.String(), "error", err)
		if clearErr := d.Clear(ctx, staffID); clearErr != nil {
			d.log.Warn("failed to clear unreadable draft", "staff_id", staffID.String(), "error", clearErr)
		}
		return nil, nil
	}
	return &snapshot, nil
}

func (d *redisDraftStore) Clear(ctx context.Context, staffID uuid.UUID) error {
	if err := d.cache.Delete(ctx, draftKey(staffID)); err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	return nil
}
