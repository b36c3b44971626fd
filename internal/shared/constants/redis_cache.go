package constants

import "time"

// Redis cache keys and TTL values for the TicketApp backend.
// Pattern: ticketapp:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_STATIC_LONG  = 24 * time.Hour // locations, rarely change
	TTL_STATIC_SHORT = 6 * time.Hour  // user profiles
)

const (
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour    // event details
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour    // event listings
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute // upcoming events
)

const (
	TTL_DYNAMIC_SHORT  = 5 * time.Minute  // price ranges
	TTL_REALTIME_SHORT = 30 * time.Second // occupied seat sets
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "ticketapp"
)

// ================== EVENTS MODULE ==================

const (
	CACHE_KEY_EVENTS_LIST     = CACHE_PREFIX + ":events:list"        // + :page:X:limit:Y
	CACHE_KEY_EVENTS_UPCOMING = CACHE_PREFIX + ":events:upcoming"    // + :limit:X
	CACHE_KEY_EVENT_DETAIL    = CACHE_PREFIX + ":events:detail:uuid:" // + event-id

	PATTERN_INVALIDATE_EVENT_ALL    = CACHE_PREFIX + ":events:*"
	PATTERN_INVALIDATE_EVENT_DETAIL = CACHE_PREFIX + ":events:detail:uuid:"
)

// ================== TICKETS MODULE ==================

const (
	CACHE_KEY_TICKETS_OCCUPIED = CACHE_PREFIX + ":tickets:occupied:uuid:" // + event-id

	PATTERN_INVALIDATE_TICKETS_ALL = CACHE_PREFIX + ":tickets:*"
)

// ================== LOCATIONS MODULE ==================

const (
	CACHE_KEY_LOCATIONS_LIST   = CACHE_PREFIX + ":locations:list"
	CACHE_KEY_LOCATION_DETAIL  = CACHE_PREFIX + ":locations:detail:uuid:" // + location-id

	PATTERN_INVALIDATE_LOCATIONS_ALL = CACHE_PREFIX + ":locations:*"
)
