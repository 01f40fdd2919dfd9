package report

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/s0up4200/pitwall/openf1"
	"github.com/s0up4200/pitwall/telemetry"
)

// LapDelta is a lap with its deltas to the session best and to the nearest
// earlier timed lap
type LapDelta struct {
	telemetry.Lap
	DeltaToBest     *float64 `json:"deltaToBestSeconds"`
	DeltaToPrevious *float64 `json:"deltaToPreviousSeconds"`
}

// SessionLapSummary groups one driver's laps of a single session
type SessionLapSummary struct {
	SessionID         string                `json:"sessionId"`
	RaceID            *string               `json:"raceId"`
	Name              string                `json:"name"`
	Type              telemetry.SessionType `json:"sessionType"`
	StartedAt         *time.Time            `json:"startedAt"`
	BestLapSeconds    *float64              `json:"bestLapSeconds"`
	AverageLapSeconds *float64              `json:"averageLapSeconds"`
	Laps              []LapDelta            `json:"laps"`
}

// DriverLapDelta is the lap-delta report of one driver
type DriverLapDelta struct {
	Driver   telemetry.Driver    `json:"driver"`
	Sessions []SessionLapSummary `json:"sessions"`
}

// DeltaOptions scopes a lap-delta report. Zero values are ignored and the
// rest are combined.
type DeltaOptions struct {
	Year       int
	Season     int // used when Year is unset
	RaceKey    string
	SessionKey string
}

// filters translates the options into upstream query filters
func (o DeltaOptions) filters(driverID string) openf1.Filters {
	filters := openf1.Filters{"driver_number": openf1.KeyValue(driverID)}
	if o.SessionKey != "" {
		filters["session_key"] = openf1.KeyValue(o.SessionKey)
	}
	if o.RaceKey != "" {
		filters["race_key"] = openf1.KeyValue(o.RaceKey)
	}
	if season := cmp.Or(o.Year, o.Season); season != 0 {
		filters["year"] = season
	}
	return filters
}

// LapDeltas builds the lap-delta report of the driver with car number
// driverID
func (s *Summarizer) LapDeltas(ctx context.Context, driverID string, opts DeltaOptions) (*DriverLapDelta, error) {
	filters := opts.filters(driverID)

	var driverEntries, lapEntries []openf1.Record
	err := s.fetchAll(ctx, []fetchJob{
		{resource: openf1.ResourceDrivers, filters: filters, dst: &driverEntries},
		{resource: openf1.ResourceLaps, filters: filters, dst: &lapEntries},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch laps of driver %s: %w", driverID, err)
	}

	if len(driverEntries) == 0 && len(lapEntries) == 0 {
		return nil, &NotFoundError{Kind: "driver", Key: driverID}
	}

	driver := telemetry.PlaceholderDriver(telemetry.KeyOf(driverID))
	if entry, ok := pickDriverEntry(driverEntries, opts); ok {
		driver = telemetry.NormalizeDriver(entry)
	}

	var sessionKeys []string
	lapsBySession := make(map[string][]openf1.Record)
	for _, raw := range lapEntries {
		key := telemetry.SessionKey(raw)
		if key == "" {
			continue
		}
		if _, seen := lapsBySession[key]; !seen {
			sessionKeys = append(sessionKeys, key)
		}
		lapsBySession[key] = append(lapsBySession[key], raw)
	}

	sessionInfo := make([][]openf1.Record, len(sessionKeys))
	jobs := make([]fetchJob, len(sessionKeys))
	for i, key := range sessionKeys {
		jobs[i] = fetchJob{
			resource: openf1.ResourceSessions,
			filters:  openf1.Filters{"session_key": openf1.KeyValue(key)},
			dst:      &sessionInfo[i],
		}
	}

	s.logger.Debug().
		Str("driver", driver.ID).
		Int("laps", len(lapEntries)).
		Int("sessions", len(sessionKeys)).
		Msg("Fetching session metadata for lap deltas")

	if err := s.fetchAll(ctx, jobs); err != nil {
		return nil, fmt.Errorf("failed to fetch sessions of driver %s: %w", driverID, err)
	}

	summaries := make([]SessionLapSummary, len(sessionKeys))
	for i, key := range sessionKeys {
		var info openf1.Record
		if len(sessionInfo[i]) > 0 {
			info = sessionInfo[i][0]
		}
		summary := newSessionLapSummary(key, info, opts)
		for _, raw := range lapsBySession[key] {
			summary.Laps = append(summary.Laps, LapDelta{Lap: telemetry.NormalizeLap(key, raw)})
		}
		finalizeSession(&summary)
		summaries[i] = summary
	}

	slices.SortStableFunc(summaries, compareSummaryStarts)

	return &DriverLapDelta{
		Driver:   driver,
		Sessions: summaries,
	}, nil
}

// pickDriverEntry prefers the entry of the requested session, then of the
// requested race, and falls back to the first entry.
func pickDriverEntry(entries []openf1.Record, opts DeltaOptions) (openf1.Record, bool) {
	if len(entries) == 0 {
		return nil, false
	}

	if opts.SessionKey != "" {
		want := telemetry.KeyOf(opts.SessionKey)
		if entry, ok := lo.Find(entries, func(e openf1.Record) bool { return telemetry.SessionKey(e) == want }); ok {
			return entry, true
		}
	}
	if opts.RaceKey != "" {
		want := telemetry.KeyOf(opts.RaceKey)
		if entry, ok := lo.Find(entries, func(e openf1.Record) bool { return telemetry.RaceKey(e) == want }); ok {
			return entry, true
		}
	}
	return entries[0], true
}

// newSessionLapSummary describes session key from its metadata record, which
// may be nil when the API had none.
func newSessionLapSummary(key string, info openf1.Record, opts DeltaOptions) SessionLapSummary {
	summary := SessionLapSummary{
		SessionID: key,
		Name:      "Session " + key,
		Type:      telemetry.SessionTypePractice,
		Laps:      []LapDelta{},
	}

	if info == nil {
		if opts.SessionKey != "" {
			summary.Type = telemetry.SessionTypeRace
		}
		return summary
	}

	session := telemetry.NormalizeSession(info, "")
	summary.Name = session.Name
	summary.Type = session.Type
	if session.RaceID != "" {
		raceID := session.RaceID
		summary.RaceID = &raceID
	}
	if !session.StartedAt.IsZero() {
		start := session.StartedAt
		summary.StartedAt = &start
	}
	return summary
}

// finalizeSession orders the laps and computes best, average and deltas. The
// previous-lap delta skips back over laps without a resolved time.
func finalizeSession(summary *SessionLapSummary) {
	slices.SortStableFunc(summary.Laps, func(a, b LapDelta) int {
		return cmp.Compare(a.LapNumber, b.LapNumber)
	})

	times := make([]float64, 0, len(summary.Laps))
	for _, lap := range summary.Laps {
		if lap.LapTimeSeconds != nil {
			times = append(times, *lap.LapTimeSeconds)
		}
	}
	summary.BestLapSeconds = best(times)
	summary.AverageLapSeconds = mean(times)

	var previous *float64
	for i := range summary.Laps {
		lap := &summary.Laps[i]
		lap.DeltaToBest = nil
		lap.DeltaToPrevious = nil
		if lap.LapTimeSeconds == nil {
			continue
		}

		current := *lap.LapTimeSeconds
		if summary.BestLapSeconds != nil {
			delta := difference(current, *summary.BestLapSeconds)
			lap.DeltaToBest = &delta
		}
		if previous != nil {
			delta := difference(current, *previous)
			lap.DeltaToPrevious = &delta
		}
		previous = lap.LapTimeSeconds
	}
}

// compareSummaryStarts orders dated sessions by start and undated ones after
// them by id.
func compareSummaryStarts(a, b SessionLapSummary) int {
	switch {
	case a.StartedAt != nil && b.StartedAt != nil:
		if c := a.StartedAt.Compare(*b.StartedAt); c != 0 {
			return c
		}
	case a.StartedAt != nil:
		return -1
	case b.StartedAt != nil:
		return 1
	}
	return compareKeys(a.SessionID, b.SessionID)
}
