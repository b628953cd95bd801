package wizard

import "math"

// PriceTolerance is the accepted floating-point drift on intermediate
// currency arithmetic. Submission values are rounded to 2 decimals.
const PriceTolerance = 0.01

// scratchGuestAllowance is the guest count covered by a venue's base price
// when composing from scratch; guests beyond it bill at the extra-pax rate.
const scratchGuestAllowance = 100

// Round2 rounds a currency amount to 2 decimal places
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}

// sanitize coerces missing or unparseable numeric inputs to 0 so pricing
// never panics on a malformed record
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// ComputeVenueExcess prices venue usage beyond a package's buffer
// allowance: the venue's full cost basis (extra-pax rate times guest count)
// less the buffer fee, floored at zero.
func ComputeVenueExcess(venue *VenueSelection, guestCount int, venueBufferFee float64) float64 {
	if venue == nil || guestCount <= 0 {
		return 0
	}
	actualVenueCost := sanitize(venue.ExtraPaxRate) * float64(guestCount)
	excess := actualVenueCost - sanitize(venueBufferFee)
	if excess < 0 {
		return 0
	}
	return excess
}

// ScratchVenuePrice prices a venue line for a from-scratch composition: the
// base price covers up to the guest allowance, every guest beyond it bills
// at the extra-pax rate. No buffer fee applies.
func ScratchVenuePrice(venue *VenueSelection, guestCount int) float64 {
	if venue == nil {
		return 0
	}
	extra := 0.0
	if guestCount > scratchGuestAllowance {
		extra = float64(guestCount-scratchGuestAllowance) * sanitize(venue.ExtraPaxRate)
	}
	return sanitize(venue.BasePrice) + extra
}

// ComputeTotalBudget derives the running total from the snapshot. Pure and
// deterministic; recomputed eagerly on every state change.
//
// Package mode starts from the package price, subtracts excluded package
// lines, adds the venue excess for the venue line (its own price field is
// ignored), and adds included custom lines. Exclusions are not clamped: a
// total driven to or below zero is reported as-is and blocked at submission.
//
// From-scratch mode sums the price of every included line; the venue line's
// stored price already embeds any overflow charge computed at selection.
func ComputeTotalBudget(s *WizardSnapshot) float64 {
	if s == nil {
		return 0
	}

	if s.Mode == ModePackageBased && s.Package != nil {
		total := sanitize(s.Package.OriginalPackagePrice)
		for _, line := range s.Components {
			switch line.Category {
			case CategoryPackage:
				if !line.Included {
					total -= sanitize(line.Price)
				}
			case CategoryVenue:
				total += ComputeVenueExcess(s.Venue, s.Details.Capacity, s.Package.VenueBufferFee)
			case CategoryCustom:
				if line.Included {
					total += sanitize(line.Price)
				}
			}
		}
		return total
	}

	total := 0.0
	for _, line := range s.Components {
		if line.Included {
			total += sanitize(line.Price)
		}
	}
	return total
}

// ComputeVenueInclusionsTotal is the venue share of the total: the venue
// excess in package mode, the included venue line's own price from scratch.
func ComputeVenueInclusionsTotal(s *WizardSnapshot) float64 {
	if s == nil {
		return 0
	}
	line := s.VenueLine()
	if line == nil {
		return 0
	}
	if s.Mode == ModePackageBased && s.Package != nil {
		return ComputeVenueExcess(s.Venue, s.Details.Capacity, s.Package.VenueBufferFee)
	}
	if line.Included {
		return sanitize(line.Price)
	}
	return 0
}

// ComputeComponentsTotal is the non-venue share of the total. Together with
// ComputeVenueInclusionsTotal it partitions ComputeTotalBudget: the two
// always sum to the total within PriceTolerance.
func ComputeComponentsTotal(s *WizardSnapshot) float64 {
	if s == nil {
		return 0
	}

	if s.Mode == ModePackageBased && s.Package != nil {
		total := sanitize(s.Package.OriginalPackagePrice)
		for _, line := range s.Components {
			switch line.Category {
			case CategoryPackage:
				if !line.Included {
					total -= sanitize(line.Price)
				}
			case CategoryCustom:
				if line.Included {
					total += sanitize(line.Price)
				}
			}
		}
		return total
	}

	total := 0.0
	for _, line := range s.Components {
		if line.Category != CategoryVenue && line.Included {
			total += sanitize(line.Price)
		}
	}
	return total
}
