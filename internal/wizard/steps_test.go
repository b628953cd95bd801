package wizard

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepsFor_WeddingInsertion(t *testing.T) {
	s := NewSnapshot()
	steps := StepsFor(s)
	assert.NotContains(t, steps, StepWeddingDetails)

	s.Details.Type = "Wedding"
	steps = StepsFor(s)
	require.Contains(t, steps, StepWeddingDetails)
	// inserted immediately after client-details
	assert.Equal(t, StepClientDetails, steps[0])
	assert.Equal(t, StepWeddingDetails, steps[1])
}

func TestStepsFor_WeddingByCanonicalID(t *testing.T) {
	s := NewSnapshot()
	s.Details.TypeID = EventTypeIDWedding
	assert.Contains(t, StepsFor(s), StepWeddingDetails)
}

func TestClampStepIndex_AfterTypeChange(t *testing.T) {
	s := NewSnapshot()
	s.Details.Type = "wedding"
	s.CurrentStep = len(StepsFor(s)) - 1 // last step of the longer list

	// changing away from wedding shrinks the list; the index must clamp
	s.Details.Type = "corporate"
	s.Details.TypeID = EventTypeIDCorporate
	ClampStepIndex(s)

	steps := StepsFor(s)
	assert.Less(t, s.CurrentStep, len(steps))
	assert.Equal(t, StepReview, CurrentStepID(s))
}

func TestResolveEventType(t *testing.T) {
	id, name := ResolveEventType("  Wedding ")
	assert.Equal(t, EventTypeIDWedding, id)
	assert.Equal(t, "wedding", name)

	id, name = ResolveEventType("Quiz Night")
	assert.Equal(t, EventTypeIDOther, id)
	assert.Equal(t, "Quiz Night", name)
}

func TestIsStepValid(t *testing.T) {
	s := NewSnapshot()

	assert.False(t, IsStepValid(s, StepClientDetails))
	s.Client.ID = uuid.New().String()
	assert.True(t, IsStepValid(s, StepClientDetails))

	assert.False(t, IsStepValid(s, StepEventDetails))
	s.Details.Title = "Gala"
	s.Details.Date = "2026-12-05"
	s.Details.Capacity = 120
	assert.True(t, IsStepValid(s, StepEventDetails))

	// from-scratch sessions need no package or venue
	assert.True(t, IsStepValid(s, StepPackageSelection))
	assert.True(t, IsStepValid(s, StepVenueSelection))

	s.Mode = ModePackageBased
	s.Package = &PackageSelection{PackageID: uuid.New(), OriginalPackagePrice: 100000}
	assert.True(t, IsStepValid(s, StepPackageSelection))
	assert.False(t, IsStepValid(s, StepVenueSelection))
	s.Venue = &VenueSelection{VenueID: uuid.New()}
	assert.True(t, IsStepValid(s, StepVenueSelection))
}

func TestIsStepValid_Payment(t *testing.T) {
	s := NewSnapshot()
	s.Components = []ComponentLine{{ID: "a", Price: 10000, Category: CategoryCustom, Included: true}}

	s.Payment.Method = "cash"
	s.Payment.DownPayment = 5000
	assert.True(t, IsStepValid(s, StepPayment))

	// non-cash methods need a reference number
	s.Payment.Method = "gcash"
	assert.False(t, IsStepValid(s, StepPayment))
	s.Payment.ReferenceNumber = "GC-123"
	assert.True(t, IsStepValid(s, StepPayment))

	// down payment above the total fails
	s.Payment.DownPayment = 15000
	assert.False(t, IsStepValid(s, StepPayment))

	// zero total fails regardless
	s.Payment.DownPayment = 0
	s.Components = nil
	assert.False(t, IsStepValid(s, StepPayment))
}

func TestAdvance_BackwardAlwaysAllowed(t *testing.T) {
	s := NewSnapshot()
	s.CurrentStep = 2

	step, err := Advance(s, DirectionBack, true)
	require.NoError(t, err)
	assert.Equal(t, 1, s.CurrentStep)
	assert.Equal(t, StepsFor(s)[1], step)

	s.CurrentStep = 0
	_, err = Advance(s, DirectionBack, true)
	require.NoError(t, err)
	assert.Equal(t, 0, s.CurrentStep)
}

func TestAdvance_ForwardAdvisoryByDefault(t *testing.T) {
	s := NewSnapshot() // client-details incomplete

	step, err := Advance(s, DirectionNext, false)
	require.NoError(t, err)
	assert.Equal(t, 1, s.CurrentStep)
	assert.Equal(t, StepEventDetails, step)
}

func TestAdvance_StrictBlocksIncompleteStep(t *testing.T) {
	s := NewSnapshot()

	step, err := Advance(s, DirectionNext, true)
	assert.ErrorIs(t, err, ErrStepNotReady)
	assert.Equal(t, StepClientDetails, step)
	assert.Equal(t, 0, s.CurrentStep)

	s.Client.ID = uuid.New().String()
	_, err = Advance(s, DirectionNext, true)
	require.NoError(t, err)
	assert.Equal(t, 1, s.CurrentStep)
}

func TestAdvance_ForwardStopsAtLastStep(t *testing.T) {
	s := NewSnapshot()
	last := len(StepsFor(s)) - 1
	s.CurrentStep = last

	step, err := Advance(s, DirectionNext, false)
	require.NoError(t, err)
	assert.Equal(t, last, s.CurrentStep)
	assert.Equal(t, StepReview, step)
}
