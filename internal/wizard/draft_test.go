package wizard

import (
	"context"
	"testing"
	"time"

	"eventcraft/internal/shared/constants"
	"eventcraft/pkg/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDraftStore(t *testing.T) (DraftStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewDraftStore(cache.NewService(client), 24*time.Hour), mr
}

func meaningfulSnapshot() *WizardSnapshot {
	s := NewSnapshot()
	s.Client = ClientRef{ID: uuid.New().String(), Name: "Ana Dela Cruz", Email: "ana@example.com"}
	s.Details.Title = "Ana - Wedding"
	s.Details.Date = "2026-11-14"
	s.Details.Capacity = 180
	s.CurrentStep = 2
	return s
}

func TestDraftStore_RoundTrip(t *testing.T) {
	store, _ := newTestDraftStore(t)
	ctx := context.Background()
	staffID := uuid.New()

	saved := meaningfulSnapshot()
	require.NoError(t, store.Save(ctx, staffID, saved))

	loaded, err := store.Load(ctx, staffID)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, saved.Client, loaded.Client)
	assert.Equal(t, saved.Details, loaded.Details)
	assert.Equal(t, saved.CurrentStep, loaded.CurrentStep)
	assert.Equal(t, saved.Revision, loaded.Revision)
	assert.True(t, saved.Timestamp.Equal(loaded.Timestamp))
}

func TestDraftStore_EmptySlotLoadsNil(t *testing.T) {
	store, _ := newTestDraftStore(t)

	loaded, err := store.Load(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestDraftStore_MeaninglessSaveClearsSlot(t *testing.T) {
	store, _ := newTestDraftStore(t)
	ctx := context.Background()
	staffID := uuid.New()

	require.NoError(t, store.Save(ctx, staffID, meaningfulSnapshot()))

	// saving an empty shell must clear the slot, not overwrite it
	require.NoError(t, store.Save(ctx, staffID, NewSnapshot()))

	loaded, err := store.Load(ctx, staffID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestDraftStore_CorruptPayloadSwallowed(t *testing.T) {
	store, mr := newTestDraftStore(t)
	ctx := context.Background()
	staffID := uuid.New()

	require.NoError(t, mr.Set(constants.KEY_WIZARD_DRAFT+staffID.String(), "{not json"))

	loaded, err := store.Load(ctx, staffID)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// the corrupt value is gone
	assert.False(t, mr.Exists(constants.KEY_WIZARD_DRAFT+staffID.String()))
}

func TestDraftStore_SlotExpiresWithTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewDraftStore(cache.NewService(client), time.Hour)
	ctx := context.Background()
	staffID := uuid.New()

	require.NoError(t, store.Save(ctx, staffID, meaningfulSnapshot()))

	mr.FastForward(2 * time.Hour)

	loaded, err := store.Load(ctx, staffID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestDraftStore_Clear(t *testing.T) {
	store, _ := newTestDraftStore(t)
	ctx := context.Background()
	staffID := uuid.New()

	require.NoError(t, store.Save(ctx, staffID, meaningfulSnapshot()))
	require.NoError(t, store.Clear(ctx, staffID))

	loaded, err := store.Load(ctx, staffID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestHasMeaningfulData(t *testing.T) {
	assert.False(t, NewSnapshot().HasMeaningfulData())

	cases := map[string]func(*WizardSnapshot){
		"client name":  func(s *WizardSnapshot) { s.Client.Name = "Ana" },
		"client email": func(s *WizardSnapshot) { s.Client.Email = "a@b.c" },
		"client phone": func(s *WizardSnapshot) { s.Client.Phone = "0917" },
		"title":        func(s *WizardSnapshot) { s.Details.Title = "Gala" },
		"theme":        func(s *WizardSnapshot) { s.Details.Theme = "Rustic" },
		"date":         func(s *WizardSnapshot) { s.Details.Date = "2026-01-01" },
		"capacity":     func(s *WizardSnapshot) { s.Details.Capacity = 10 },
		"package":      func(s *WizardSnapshot) { s.Package = &PackageSelection{} },
		"venue":        func(s *WizardSnapshot) { s.Venue = &VenueSelection{} },
		"component":    func(s *WizardSnapshot) { s.Components = []ComponentLine{{ID: "x"}} },
		"attachment":   func(s *WizardSnapshot) { s.Attachments = []Attachment{{Name: "contract.pdf"}} },
		"bride":        func(s *WizardSnapshot) { s.Wedding.BrideName = "Ana" },
		"groom":        func(s *WizardSnapshot) { s.Wedding.GroomName = "Ben" },
	}

	for name, mutate := range cases {
		s := NewSnapshot()
		mutate(s)
		assert.True(t, s.HasMeaningfulData(), "case %q should be meaningful", name)
	}
}
