package wizard

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func packageSnapshot(price, bufferFee float64) *WizardSnapshot {
	s := NewSnapshot()
	s.Mode = ModePackageBased
	s.Package = &PackageSelection{
		PackageID:            uuid.New(),
		Name:                 "Test Package",
		OriginalPackagePrice: price,
		VenueBufferFee:       bufferFee,
	}
	return s
}

func TestComputeTotalBudget_PackageWithExclusion(t *testing.T) {
	// package price 100,000; one 20,000 component excluded; no venue
	s := packageSnapshot(100000, 0)
	s.Components = []ComponentLine{
		{ID: "c1", Name: "Catering", Price: 20000, Category: CategoryPackage, Included: false},
		{ID: "c2", Name: "Photography", Price: 30000, Category: CategoryPackage, Included: true},
	}

	assert.InDelta(t, 80000, ComputeTotalBudget(s), PriceTolerance)
}

func TestComputeTotalBudget_PackageWithVenueExcess(t *testing.T) {
	// bufferFee 5,000; rate 50; 200 guests => actual 10,000, excess 5,000
	s := packageSnapshot(100000, 5000)
	s.Details.Capacity = 200
	s.Venue = &VenueSelection{VenueID: uuid.New(), Title: "Pavilion", ExtraPaxRate: 50}
	s.SetVenueLine(ComponentLine{ID: "v1", Name: "Pavilion", Price: 999999, Included: true})

	// the venue line's own price field must be ignored in package mode
	assert.InDelta(t, 105000, ComputeTotalBudget(s), PriceTolerance)
}

func TestComputeTotalBudget_PackageVenueWithinBuffer(t *testing.T) {
	// 50 guests at rate 50 => actual 2,500, fully covered by the 5,000 buffer
	s := packageSnapshot(100000, 5000)
	s.Details.Capacity = 50
	s.Venue = &VenueSelection{VenueID: uuid.New(), Title: "Pavilion", ExtraPaxRate: 50}
	s.SetVenueLine(ComponentLine{ID: "v1", Name: "Pavilion", Included: true})

	assert.InDelta(t, 100000, ComputeTotalBudget(s), PriceTolerance)
}

func TestComputeTotalBudget_FromScratch(t *testing.T) {
	s := NewSnapshot()
	s.Components = []ComponentLine{
		{ID: "a", Price: 1000, Category: CategoryCustom, Included: true},
		{ID: "b", Price: 500, Category: CategoryCustom, Included: false},
		{ID: "v", Price: 2000, Category: CategoryVenue, Included: true},
	}

	assert.InDelta(t, 3000, ComputeTotalBudget(s), PriceTolerance)
}

func TestComputeTotalBudget_PackageFullFormula(t *testing.T) {
	// total == P - Σ(excluded package) + Σ(included custom) + venueExcess
	s := packageSnapshot(250000, 5000)
	s.Details.Capacity = 180
	s.Venue = &VenueSelection{VenueID: uuid.New(), ExtraPaxRate: 50}
	s.Components = []ComponentLine{
		{ID: "p1", Price: 90000, Category: CategoryPackage, Included: true},
		{ID: "p2", Price: 20000, Category: CategoryPackage, Included: false},
		{ID: "p3", Price: 15000, Category: CategoryPackage, Included: false},
		{ID: "x1", Price: 12000, Category: CategoryCustom, Included: true, IsCustom: true},
		{ID: "x2", Price: 7000, Category: CategoryCustom, Included: false, IsCustom: true},
	}
	s.SetVenueLine(ComponentLine{ID: "v", Included: true})

	excess := ComputeVenueExcess(s.Venue, 180, 5000) // 9000 - 5000 = 4000
	expected := 250000.0 - 20000 - 15000 + 12000 + excess
	assert.InDelta(t, expected, ComputeTotalBudget(s), PriceTolerance)
	assert.InDelta(t, 4000, excess, PriceTolerance)
}

func TestComputeTotalBudget_ExclusionsCanGoNegative(t *testing.T) {
	// the engine reports the arithmetic; the guard blocks it at submission
	s := packageSnapshot(10000, 0)
	s.Components = []ComponentLine{
		{ID: "p1", Price: 25000, Category: CategoryPackage, Included: false},
	}

	assert.InDelta(t, -15000, ComputeTotalBudget(s), PriceTolerance)
}

func TestComputeTotalBudget_Idempotent(t *testing.T) {
	s := packageSnapshot(100000, 5000)
	s.Details.Capacity = 200
	s.Venue = &VenueSelection{VenueID: uuid.New(), ExtraPaxRate: 50}
	s.SetVenueLine(ComponentLine{ID: "v", Included: true})

	first := ComputeTotalBudget(s)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ComputeTotalBudget(s))
	}
}

func TestComputeVenueExcess_Monotonicity(t *testing.T) {
	venue := &VenueSelection{ExtraPaxRate: 50}

	// non-decreasing in guest count
	prev := 0.0
	for guests := 0; guests <= 400; guests += 25 {
		excess := ComputeVenueExcess(venue, guests, 5000)
		assert.GreaterOrEqual(t, excess, prev)
		assert.GreaterOrEqual(t, excess, 0.0)
		prev = excess
	}

	// non-decreasing in rate
	prev = 0.0
	for rate := 0.0; rate <= 200; rate += 10 {
		excess := ComputeVenueExcess(&VenueSelection{ExtraPaxRate: rate}, 150, 5000)
		assert.GreaterOrEqual(t, excess, prev)
		prev = excess
	}

	// non-increasing in buffer fee
	prev = math.MaxFloat64
	for fee := 0.0; fee <= 20000; fee += 1000 {
		excess := ComputeVenueExcess(venue, 150, fee)
		assert.LessOrEqual(t, excess, prev)
		assert.GreaterOrEqual(t, excess, 0.0)
		prev = excess
	}
}

func TestComputeVenueExcess_MalformedInputs(t *testing.T) {
	assert.Equal(t, 0.0, ComputeVenueExcess(nil, 100, 5000))
	assert.Equal(t, 0.0, ComputeVenueExcess(&VenueSelection{ExtraPaxRate: math.NaN()}, 100, 0))
	assert.Equal(t, 0.0, ComputeVenueExcess(&VenueSelection{ExtraPaxRate: 50}, -5, 0))
	assert.Equal(t, 0.0, ComputeVenueExcess(&VenueSelection{ExtraPaxRate: -50}, 100, 0))
}

func TestScratchVenuePrice(t *testing.T) {
	venue := &VenueSelection{BasePrice: 55000, ExtraPaxRate: 40}

	// base price covers the first 100 guests
	assert.InDelta(t, 55000, ScratchVenuePrice(venue, 80), PriceTolerance)
	assert.InDelta(t, 55000, ScratchVenuePrice(venue, 100), PriceTolerance)
	assert.InDelta(t, 55000+50*40, ScratchVenuePrice(venue, 150), PriceTolerance)
	assert.Equal(t, 0.0, ScratchVenuePrice(nil, 150))
}

func TestTotalsPartition_PackageMode(t *testing.T) {
	s := packageSnapshot(250000, 5000)
	s.Details.Capacity = 180
	s.Venue = &VenueSelection{VenueID: uuid.New(), ExtraPaxRate: 50}
	s.Components = []ComponentLine{
		{ID: "p1", Price: 90000, Category: CategoryPackage, Included: true},
		{ID: "p2", Price: 20000, Category: CategoryPackage, Included: false},
		{ID: "x1", Price: 12000, Category: CategoryCustom, Included: true},
	}
	s.SetVenueLine(ComponentLine{ID: "v", Included: true})

	total := ComputeTotalBudget(s)
	parts := ComputeComponentsTotal(s) + ComputeVenueInclusionsTotal(s)
	assert.InDelta(t, total, parts, PriceTolerance)
}

func TestTotalsPartition_FromScratch(t *testing.T) {
	s := NewSnapshot()
	s.Components = []ComponentLine{
		{ID: "a", Price: 1500, Category: CategoryCustom, Included: true},
		{ID: "v", Price: 2000, Category: CategoryVenue, Included: true},
	}

	total := ComputeTotalBudget(s)
	parts := ComputeComponentsTotal(s) + ComputeVenueInclusionsTotal(s)
	assert.InDelta(t, total, parts, PriceTolerance)
	assert.InDelta(t, 2000, ComputeVenueInclusionsTotal(s), PriceTolerance)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.56, Round2(10.556))
	assert.Equal(t, 10.55, Round2(10.554))
	assert.Equal(t, 0.0, Round2(math.NaN()))
	assert.Equal(t, 0.0, Round2(math.Inf(1)))
}
