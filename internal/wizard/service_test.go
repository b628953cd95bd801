package wizard

import (
	"context"
	"fmt"
	"testing"
	"time"

	"eventcraft/internal/catalog"
	"eventcraft/pkg/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type wizardFixture struct {
	service  Service
	drafts   DraftStore
	bookings *mockBookingReader
	catalog  *mockCatalogReader
	creator  *countingCreator
	redis    *miniredis.Miniredis
}

func newWizardFixture(t *testing.T) *wizardFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	drafts := NewDraftStore(cache.NewService(client), 24*time.Hour)

	bookingReader := new(mockBookingReader)
	catalogReader := new(mockCatalogReader)
	creator := &countingCreator{}

	registry := NewDefaultRegistry(creator, bookingReader, drafts, nil)
	converter := NewConverter(bookingReader, catalogReader)
	service := NewService(registry, drafts, converter, catalogReader, 24*time.Hour)

	return &wizardFixture{
		service:  service,
		drafts:   drafts,
		bookings: bookingReader,
		catalog:  catalogReader,
		creator:  creator,
		redis:    mr,
	}
}

func TestService_OpenFreshSession(t *testing.T) {
	f := newWizardFixture(t)
	staffID := uuid.New()

	resp, err := f.service.Open(context.Background(), staffID, &OpenRequest{})
	require.NoError(t, err)
	assert.False(t, resp.RecoveryAvailable)
	require.NotNil(t, resp.Snapshot)
	assert.Equal(t, ModeFromScratch, resp.Snapshot.Mode)
	assert.Equal(t, "idle", resp.Summary.SubmissionState)
}

func TestService_OpenOffersRecentDraft(t *testing.T) {
	f := newWizardFixture(t)
	staffID := uuid.New()
	ctx := context.Background()

	draft := meaningfulSnapshot()
	require.NoError(t, f.drafts.Save(ctx, staffID, draft))

	resp, err := f.service.Open(ctx, staffID, &OpenRequest{})
	require.NoError(t, err)
	assert.True(t, resp.RecoveryAvailable)
	assert.Nil(t, resp.Snapshot)
	assert.True(t, resp.Summary.RecoveryPending)

	// resuming installs the draft
	summary, err := f.service.ResolveRecovery(ctx, staffID, true)
	require.NoError(t, err)
	assert.False(t, summary.RecoveryPending)
	assert.Equal(t, draft.Client.Name, summary.Snapshot.Client.Name)
}

func TestService_OpenClearsStaleDraftSilently(t *testing.T) {
	f := newWizardFixture(t)
	staffID := uuid.New()
	ctx := context.Background()

	draft := meaningfulSnapshot()
	draft.Timestamp = time.Now().Add(-48 * time.Hour)
	require.NoError(t, f.drafts.Save(ctx, staffID, draft))

	resp, err := f.service.Open(ctx, staffID, &OpenRequest{})
	require.NoError(t, err)
	assert.False(t, resp.RecoveryAvailable)

	loaded, err := f.drafts.Load(ctx, staffID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestService_OpenWithSkipDiscardsDraft(t *testing.T) {
	f := newWizardFixture(t)
	staffID := uuid.New()
	ctx := context.Background()

	require.NoError(t, f.drafts.Save(ctx, staffID, meaningfulSnapshot()))

	resp, err := f.service.Open(ctx, staffID, &OpenRequest{SkipRecovery: true})
	require.NoError(t, err)
	assert.False(t, resp.RecoveryAvailable)

	loaded, err := f.drafts.Load(ctx, staffID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestService_OpenWithBookingRefBeatsDraft(t *testing.T) {
	f := newWizardFixture(t)
	staffID := uuid.New()
	ctx := context.Background()

	// a stale draft exists, but the conversion must win
	require.NoError(t, f.drafts.Save(ctx, staffID, meaningfulSnapshot()))

	pkg := testPackage()
	record := confirmedBooking(pkg)
	f.bookings.On("GetByReference", mock.Anything, record.Reference).Return(record, nil)
	f.catalog.On("GetPackageDetail", mock.Anything, pkg.ID.String()).Return(pkg, nil)

	resp, err := f.service.Open(ctx, staffID, &OpenRequest{BookingRef: record.Reference})
	require.NoError(t, err)
	assert.False(t, resp.RecoveryAvailable)
	require.NotNil(t, resp.Snapshot)
	assert.Equal(t, ModePackageBased, resp.Snapshot.Mode)
	assert.Equal(t, record.Reference, resp.Snapshot.BookingRef)
}

func TestService_AutosaveGatedUntilRecoveryResolved(t *testing.T) {
	f := newWizardFixture(t)
	staffID := uuid.New()
	ctx := context.Background()

	draft := meaningfulSnapshot()
	require.NoError(t, f.drafts.Save(ctx, staffID, draft))

	_, err := f.service.Open(ctx, staffID, &OpenRequest{})
	require.NoError(t, err)

	// mutating before answering the prompt must not clobber the stored draft
	_, err = f.service.UpdateState(ctx, staffID, &UpdateStateRequest{
		Client: &ClientRef{ID: uuid.New().String(), Name: "Someone Else"},
	})
	require.NoError(t, err)

	stored, err := f.drafts.Load(ctx, staffID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, draft.Client.Name, stored.Client.Name)

	// once resolved, autosave flows again
	_, err = f.service.ResolveRecovery(ctx, staffID, false)
	require.NoError(t, err)
	_, err = f.service.UpdateState(ctx, staffID, &UpdateStateRequest{
		Client: &ClientRef{ID: uuid.New().String(), Name: "Someone Else"},
	})
	require.NoError(t, err)

	stored, err = f.drafts.Load(ctx, staffID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Someone Else", stored.Client.Name)
}

func TestService_ComponentActions(t *testing.T) {
	f := newWizardFixture(t)
	staffID := uuid.New()
	ctx := context.Background()

	_, err := f.service.Open(ctx, staffID, &OpenRequest{SkipRecovery: true})
	require.NoError(t, err)

	summary, err := f.service.ComponentAction(ctx, staffID, &ComponentActionRequest{
		Action: ActionAddCustom, Name: "Live Band", Price: 35000,
	})
	require.NoError(t, err)
	assert.InDelta(t, 35000, summary.Total, PriceTolerance)

	lineID := summary.Snapshot.Components[0].ID
	summary, err = f.service.ComponentAction(ctx, staffID, &ComponentActionRequest{
		Action: ActionExclude, ComponentID: lineID,
	})
	require.NoError(t, err)
	assert.InDelta(t, 0, summary.Total, PriceTolerance)

	summary, err = f.service.ComponentAction(ctx, staffID, &ComponentActionRequest{
		Action: ActionInclude, ComponentID: lineID,
	})
	require.NoError(t, err)
	assert.InDelta(t, 35000, summary.Total, PriceTolerance)

	_, err = f.service.ComponentAction(ctx, staffID, &ComponentActionRequest{
		Action: ActionExclude, ComponentID: "missing",
	})
	assert.ErrorIs(t, err, ErrUnknownComponent)
}

func TestService_SelectVenueFromScratchPricesLine(t *testing.T) {
	f := newWizardFixture(t)
	staffID := uuid.New()
	ctx := context.Background()

	_, err := f.service.Open(ctx, staffID, &OpenRequest{SkipRecovery: true})
	require.NoError(t, err)

	_, err = f.service.UpdateState(ctx, staffID, &UpdateStateRequest{
		Details: &EventDetails{Title: "Gala", Date: "2026-12-05", Capacity: 150, Theme: "Modern"},
	})
	require.NoError(t, err)

	venue := &catalog.Venue{ID: uuid.New(), Title: "Garden Terrace", BasePrice: 55000, ExtraPaxRate: 40}
	f.catalog.On("GetVenueByID", mock.Anything, venue.ID.String()).Return(venue, nil)

	summary, err := f.service.ComponentAction(ctx, staffID, &ComponentActionRequest{
		Action: ActionSelectVenue, VenueID: venue.ID.String(),
	})
	require.NoError(t, err)

	// base 55,000 + 50 extra guests at 40
	assert.InDelta(t, 57000, summary.Total, PriceTolerance)
	require.NotNil(t, summary.Snapshot.Venue)
	assert.Equal(t, venue.ID, summary.Snapshot.Venue.VenueID)
}

func TestService_StaleVenueLookupDropped(t *testing.T) {
	f := newWizardFixture(t)
	staffID := uuid.New()
	ctx := context.Background()

	_, err := f.service.Open(ctx, staffID, &OpenRequest{SkipRecovery: true})
	require.NoError(t, err)

	venue := &catalog.Venue{ID: uuid.New(), Title: "Seaside Hall", BasePrice: 65000, ExtraPaxRate: 60}
	// the lookup response arrives after the user already edited again
	f.catalog.On("GetVenueByID", mock.Anything, venue.ID.String()).
		Run(func(args mock.Arguments) {
			_, updateErr := f.service.UpdateState(ctx, staffID, &UpdateStateRequest{
				Client: &ClientRef{ID: uuid.New().String(), Name: "Racer"},
			})
			require.NoError(t, updateErr)
		}).
		Return(venue, nil)

	_, err = f.service.ComponentAction(ctx, staffID, &ComponentActionRequest{
		Action: ActionSelectVenue, VenueID: venue.ID.String(),
	})
	assert.ErrorIs(t, err, ErrStaleLookup)

	// the stale response did not resurrect old data
	summary, err := f.service.Summary(ctx, staffID)
	require.NoError(t, err)
	assert.Nil(t, summary.Snapshot.Venue)
	assert.Equal(t, "Racer", summary.Snapshot.Client.Name)
}

func TestService_StepNavigation(t *testing.T) {
	f := newWizardFixture(t)
	staffID := uuid.New()
	ctx := context.Background()

	_, err := f.service.Open(ctx, staffID, &OpenRequest{SkipRecovery: true})
	require.NoError(t, err)

	resp, err := f.service.Step(ctx, staffID, &StepRequest{Direction: "next"})
	require.NoError(t, err)
	assert.Equal(t, StepEventDetails, resp.Step)

	resp, err = f.service.Step(ctx, staffID, &StepRequest{Direction: "back"})
	require.NoError(t, err)
	assert.Equal(t, StepClientDetails, resp.Step)

	_, err = f.service.Step(ctx, staffID, &StepRequest{Direction: "next", Strict: true})
	assert.ErrorIs(t, err, ErrStepNotReady)
}

func TestService_DiscardResetsEverything(t *testing.T) {
	f := newWizardFixture(t)
	staffID := uuid.New()
	ctx := context.Background()

	_, err := f.service.Open(ctx, staffID, &OpenRequest{SkipRecovery: true})
	require.NoError(t, err)

	_, err = f.service.UpdateState(ctx, staffID, &UpdateStateRequest{
		Client: &ClientRef{ID: uuid.New().String(), Name: "Ana"},
	})
	require.NoError(t, err)

	require.NoError(t, f.service.Discard(ctx, staffID))

	loaded, err := f.drafts.Load(ctx, staffID)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	summary, err := f.service.Summary(ctx, staffID)
	require.NoError(t, err)
	assert.Empty(t, summary.Snapshot.Client.Name)
	assert.Equal(t, "idle", summary.SubmissionState)
}

func TestService_SubmitUnaffectedByConcurrentEdits(t *testing.T) {
	f := newWizardFixture(t)
	staffID := uuid.New()
	ctx := context.Background()
	clientID := uuid.New().String()

	_, err := f.service.Open(ctx, staffID, &OpenRequest{SkipRecovery: true})
	require.NoError(t, err)

	_, err = f.service.UpdateState(ctx, staffID, &UpdateStateRequest{
		Client:  &ClientRef{ID: clientID, Name: "Ana Dela Cruz"},
		Details: &EventDetails{Title: "Gala", Date: "2026-12-05", Capacity: 120, Theme: "Modern"},
		Payment: &PaymentIntent{Method: "cash", DownPayment: 5000},
	})
	require.NoError(t, err)
	_, err = f.service.ComponentAction(ctx, staffID, &ComponentActionRequest{
		Action: ActionAddCustom, Name: "Catering", Price: 40000,
	})
	require.NoError(t, err)

	// hold the dispatch open while edits keep landing on the session
	f.creator.block = make(chan struct{})

	var result *SubmissionResult
	var submitErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		result, submitErr = f.service.Submit(ctx, staffID)
	}()

	for i := 0; i < 50; i++ {
		_, updateErr := f.service.UpdateState(ctx, staffID, &UpdateStateRequest{
			Client: &ClientRef{ID: clientID, Name: fmt.Sprintf("Edit %d", i)},
		})
		require.NoError(t, updateErr)
	}

	close(f.creator.block)
	<-done

	require.NoError(t, submitErr)
	require.NotNil(t, result)
	assert.InDelta(t, 40000, result.Total, PriceTolerance)

	// the dispatched payload is internally consistent: the total matches the
	// component set it was assembled from, untouched by the racing edits
	payload := f.creator.capturedRequest()
	require.NotNil(t, payload)
	assert.InDelta(t, 40000, payload.TotalBudget, PriceTolerance)
	assert.Equal(t, clientID, payload.ClientID)
}

func TestService_SubmitRequiresSession(t *testing.T) {
	f := newWizardFixture(t)

	_, err := f.service.Submit(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestService_WeddingTypeExtendsSteps(t *testing.T) {
	f := newWizardFixture(t)
	staffID := uuid.New()
	ctx := context.Background()

	_, err := f.service.Open(ctx, staffID, &OpenRequest{SkipRecovery: true})
	require.NoError(t, err)

	summary, err := f.service.UpdateState(ctx, staffID, &UpdateStateRequest{
		Details: &EventDetails{Type: "wedding", Title: "W", Date: "2026-11-14", Capacity: 100, Theme: "Rustic"},
	})
	require.NoError(t, err)
	assert.Contains(t, summary.Steps, StepWeddingDetails)

	summary, err = f.service.UpdateState(ctx, staffID, &UpdateStateRequest{
		Details: &EventDetails{Type: "corporate", Title: "W", Date: "2026-11-14", Capacity: 100, Theme: "Rustic"},
	})
	require.NoError(t, err)
	assert.NotContains(t, summary.Steps, StepWeddingDetails)
}
