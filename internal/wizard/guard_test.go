package wizard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"eventcraft/internal/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// countingCreator counts dispatches and keeps the last payload it saw; used
// for the mutual-exclusion and snapshot-isolation tests
type countingCreator struct {
	dispatches atomic.Int64
	block      chan struct{}
	result     *CreateResult
	err        error

	mu       sync.Mutex
	captured *events.CreateEventRequest
}

func (c *countingCreator) CreateEvent(ctx context.Context, req *events.CreateEventRequest) (*CreateResult, error) {
	c.dispatches.Add(1)
	c.mu.Lock()
	c.captured = req
	c.mu.Unlock()
	if c.block != nil {
		<-c.block
	}
	if c.result == nil && c.err == nil {
		eventID := uuid.New()
		return &CreateResult{Success: true, EventID: &eventID}, nil
	}
	return c.result, c.err
}

func (c *countingCreator) SaveWeddingDetails(ctx context.Context, eventID uuid.UUID, brideName, groomName string) error {
	return nil
}

func (c *countingCreator) capturedRequest() *events.CreateEventRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.captured
}

type mockDraftStore struct {
	mock.Mock
}

func (m *mockDraftStore) Save(ctx context.Context, staffID uuid.UUID, snapshot *WizardSnapshot) error {
	args := m.Called(ctx, staffID, snapshot)
	return args.Error(0)
}

func (m *mockDraftStore) Load(ctx context.Context, staffID uuid.UUID) (*WizardSnapshot, error) {
	args := m.Called(ctx, staffID)
	if snapshot := args.Get(0); snapshot != nil {
		return snapshot.(*WizardSnapshot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDraftStore) Clear(ctx context.Context, staffID uuid.UUID) error {
	args := m.Called(ctx, staffID)
	return args.Error(0)
}

func submittableSnapshot() *WizardSnapshot {
	s := NewSnapshot()
	s.Client = ClientRef{ID: uuid.New().String(), Name: "Ana Dela Cruz"}
	s.Details.Title = "Ana - Wedding"
	s.Details.Date = "2026-11-14"
	s.Details.Capacity = 180
	s.Details.Theme = "Rustic Garden"
	s.Components = []ComponentLine{
		{ID: "a", Name: "Catering", Price: 90000, Category: CategoryCustom, Included: true},
	}
	s.Payment.Method = "cash"
	s.Payment.DownPayment = 10000
	return s
}

func newTestGuard(creator EventCreator) (*Guard, *mockBookingReader, *mockDraftStore) {
	bookingReader := new(mockBookingReader)
	drafts := new(mockDraftStore)
	drafts.On("Clear", mock.Anything, mock.Anything).Return(nil).Maybe()
	return NewGuard(creator, bookingReader, drafts, nil, NewBus()), bookingReader, drafts
}

func TestGuard_SuccessfulSubmission(t *testing.T) {
	creator := &countingCreator{}
	guard, _, drafts := newTestGuard(creator)
	staffID := uuid.New()

	result, err := guard.Submit(context.Background(), staffID, submittableSnapshot())
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEqual(t, uuid.Nil, result.EventID)
	assert.InDelta(t, 90000, result.Total, PriceTolerance)
	assert.Equal(t, StateCompleted, guard.State())
	drafts.AssertCalled(t, "Clear", mock.Anything, staffID)
}

func TestGuard_ConcurrentSubmitsDispatchOnce(t *testing.T) {
	creator := &countingCreator{block: make(chan struct{})}
	guard, _, _ := newTestGuard(creator)
	staffID := uuid.New()
	snapshot := submittableSnapshot()

	const attempts = 8
	errs := make([]error, attempts)
	var started, done sync.WaitGroup
	started.Add(attempts)
	done.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func(i int) {
			started.Done()
			_, errs[i] = guard.Submit(context.Background(), staffID, snapshot)
			done.Done()
		}(i)
	}
	started.Wait()
	close(creator.block)
	done.Wait()

	assert.Equal(t, int64(1), creator.dispatches.Load())

	succeeded, rejected := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrSubmissionInFlight), errors.Is(err, ErrSubmissionCompleted):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, rejected)
}

func TestGuard_BalanceExceededRejectedWithoutDispatch(t *testing.T) {
	creator := &countingCreator{}
	guard, _, _ := newTestGuard(creator)

	// down payment 15,000 against a 10,000 total
	snapshot := submittableSnapshot()
	snapshot.Components[0].Price = 10000
	snapshot.Payment.DownPayment = 15000

	_, err := guard.Submit(context.Background(), uuid.New(), snapshot)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "payment.down_payment", validationErr.Field)
	assert.Equal(t, int64(0), creator.dispatches.Load())
	assert.Equal(t, StateFailed, guard.State())
}

func TestGuard_ValidationPipelineOrder(t *testing.T) {
	base := submittableSnapshot()

	cases := []struct {
		name   string
		mutate func(*WizardSnapshot)
		field  string
	}{
		{"missing reference for gcash", func(s *WizardSnapshot) {
			s.Payment.Method = "gcash"
			s.Payment.ReferenceNumber = ""
		}, "payment.reference_number"},
		{"negative down payment", func(s *WizardSnapshot) { s.Payment.DownPayment = -1 }, "payment.down_payment"},
		{"zero total", func(s *WizardSnapshot) { s.Components = nil }, "total"},
		{"no client", func(s *WizardSnapshot) { s.Client.ID = "" }, "client"},
		{"no date", func(s *WizardSnapshot) { s.Details.Date = "" }, "details.date"},
		{"no capacity", func(s *WizardSnapshot) { s.Details.Capacity = 0 }, "details.capacity"},
		{"no theme", func(s *WizardSnapshot) { s.Details.Theme = "" }, "details.theme"},
		{"schedule conflicts", func(s *WizardSnapshot) { s.Details.HasConflicts = true }, "details.date"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snapshot := *base
			snapshot.Payment = base.Payment
			snapshot.Components = append([]ComponentLine(nil), base.Components...)
			tc.mutate(&snapshot)

			err := validateSubmission(uuid.New(), &snapshot)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.field, validationErr.Field)
		})
	}

	// identity check comes first
	err := validateSubmission(uuid.Nil, base)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "staff", validationErr.Field)
}

func TestGuard_PackageModeRequiresPackageAndVenue(t *testing.T) {
	snapshot := submittableSnapshot()
	snapshot.Mode = ModePackageBased
	snapshot.Package = &PackageSelection{PackageID: uuid.New(), OriginalPackagePrice: 100000}

	err := validateSubmission(uuid.New(), snapshot)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "venue", validationErr.Field)

	snapshot.Venue = &VenueSelection{VenueID: uuid.New()}
	assert.NoError(t, validateSubmission(uuid.New(), snapshot))
}

func TestGuard_TolerantSuccessDetection(t *testing.T) {
	// an empty body on a clean transport still counts as success
	assert.True(t, dispatchSucceeded(nil, nil))
	assert.True(t, dispatchSucceeded(&CreateResult{Success: true}, nil))

	eventID := uuid.New()
	assert.True(t, dispatchSucceeded(&CreateResult{EventID: &eventID}, nil))

	assert.False(t, dispatchSucceeded(&CreateResult{Success: false}, nil))
	assert.False(t, dispatchSucceeded(nil, errors.New("timeout")))
}

func TestGuard_FailureIsRetryable(t *testing.T) {
	creator := &countingCreator{err: errors.New("connection refused"), result: &CreateResult{Message: "backend unavailable"}}
	guard, _, _ := newTestGuard(creator)
	staffID := uuid.New()
	snapshot := submittableSnapshot()

	_, err := guard.Submit(context.Background(), staffID, snapshot)
	require.Error(t, err)

	// the most specific message wins
	var submissionErr *SubmissionError
	require.ErrorAs(t, err, &submissionErr)
	assert.Equal(t, "backend unavailable", submissionErr.Error())
	assert.Equal(t, StateFailed, guard.State())

	// a retry goes through once the collaborator recovers
	creator.err = nil
	creator.result = nil
	result, err := guard.Submit(context.Background(), staffID, snapshot)
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, StateCompleted, guard.State())
	assert.Equal(t, int64(2), creator.dispatches.Load())
}

func TestGuard_CompletedIsTerminal(t *testing.T) {
	creator := &countingCreator{}
	guard, _, _ := newTestGuard(creator)
	staffID := uuid.New()
	snapshot := submittableSnapshot()

	_, err := guard.Submit(context.Background(), staffID, snapshot)
	require.NoError(t, err)

	_, err = guard.Submit(context.Background(), staffID, snapshot)
	assert.ErrorIs(t, err, ErrSubmissionCompleted)
	assert.Equal(t, int64(1), creator.dispatches.Load())
}

func TestGuard_ConversionSideEffects(t *testing.T) {
	creator := &countingCreator{}
	guard, bookingReader, _ := newTestGuard(creator)
	staffID := uuid.New()

	snapshot := submittableSnapshot()
	bookingID := uuid.New()
	snapshot.BookingID = &bookingID
	snapshot.BookingRef = "BK-2026-0001"

	bookingReader.On("MarkConverted", mock.Anything, bookingID, mock.Anything).Return(nil)
	bookingReader.On("DropLookupCache", mock.Anything, "BK-2026-0001").Return()

	_, err := guard.Submit(context.Background(), staffID, snapshot)
	require.NoError(t, err)

	bookingReader.AssertExpectations(t)
}

func TestGuard_SideEffectFailureDoesNotFailSubmission(t *testing.T) {
	creator := &countingCreator{}
	guard, bookingReader, _ := newTestGuard(creator)

	snapshot := submittableSnapshot()
	bookingID := uuid.New()
	snapshot.BookingID = &bookingID
	snapshot.BookingRef = "BK-2026-0002"

	bookingReader.On("MarkConverted", mock.Anything, bookingID, mock.Anything).
		Return(errors.New("database unavailable"))
	bookingReader.On("DropLookupCache", mock.Anything, "BK-2026-0002").Return()

	result, err := guard.Submit(context.Background(), uuid.New(), snapshot)
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, StateCompleted, guard.State())
}
