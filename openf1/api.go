package openf1

import (
	"context"
)

// Upstream resource names.
const (
	ResourceRaces    = "races"
	ResourceSessions = "sessions"
	ResourceDrivers  = "drivers"
	ResourceStints   = "stints"
	ResourcePit      = "pit"
	ResourceLaps     = "laps"
)

// Resources lists every resource the aggregators read.
var Resources = []string{
	ResourceRaces,
	ResourceSessions,
	ResourceDrivers,
	ResourceStints,
	ResourcePit,
	ResourceLaps,
}

// Record is one raw upstream object, as decoded from JSON.
type Record map[string]any

// Fetcher defines the interface for fetching raw upstream records
type Fetcher interface {
	// Fetch retrieves every record of resource matching filters
	Fetch(ctx context.Context, resource string, filters Filters) ([]Record, error)
}
