package constants

import "time"

// Redis key and TTL catalog for the eventcraft backend.
// Pattern: eventcraft:{module}:{operation}:{identifier}

const CACHE_PREFIX = "eventcraft"

// ================== CACHE TTL DURATIONS ==================

// Static data (long TTL: rarely changes)
const (
	TTL_STATIC_LONG   = 24 * time.Hour
	TTL_STATIC_MEDIUM = 12 * time.Hour
	TTL_STATIC_SHORT  = 6 * time.Hour
)

// Semi-static data (medium TTL: changes occasionally)
const (
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute
)

// Dynamic data (short TTL: changes frequently)
const (
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute
	TTL_DYNAMIC_SHORT  = 5 * time.Minute
)

// ================== CATALOG MODULE ==================

const (
	CACHE_KEY_PACKAGE_LIST   = CACHE_PREFIX + ":catalog:packages:list"
	CACHE_KEY_PACKAGE_DETAIL = CACHE_PREFIX + ":catalog:packages:detail:" // + package-id
	CACHE_KEY_VENUE_LIST     = CACHE_PREFIX + ":catalog:venues:list"
	CACHE_KEY_VENUE_DETAIL   = CACHE_PREFIX + ":catalog:venues:detail:" // + venue-id
)

const (
	TTL_PACKAGE_LIST   = TTL_STATIC_SHORT
	TTL_PACKAGE_DETAIL = TTL_STATIC_SHORT
	TTL_VENUE_LIST     = TTL_STATIC_SHORT
	TTL_VENUE_DETAIL   = TTL_STATIC_SHORT
)

// ================== BOOKINGS MODULE ==================

const (
	// Booking lookups are cached briefly so repeated reference lookups during
	// a conversion session do not hammer the database. The submission guard
	// drops entries optimistically after a booking is converted.
	CACHE_KEY_BOOKING_LOOKUP = CACHE_PREFIX + ":bookings:lookup:ref:" // + reference
	CACHE_KEY_BOOKING_LIST   = CACHE_PREFIX + ":bookings:list"
)

const (
	TTL_BOOKING_LOOKUP = TTL_DYNAMIC_MEDIUM
	TTL_BOOKING_LIST   = TTL_DYNAMIC_SHORT
)

// ================== WIZARD MODULE ==================

const (
	// One draft slot per staff account. The value is a serialized
	// WizardSnapshot; the TTL doubles as the recovery window.
	KEY_WIZARD_DRAFT = CACHE_PREFIX + ":wizard:draft:" // + staff-id
)

// ================== RATE LIMITING ==================

const (
	KEY_RATELIMIT = CACHE_PREFIX + ":ratelimit:" // + ip:type
)
