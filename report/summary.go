package report

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/samber/lo"

	"github.com/s0up4200/pitwall/openf1"
	"github.com/s0up4200/pitwall/telemetry"
)

// epoch stands in for a start instant nothing could resolve
var epoch = time.Unix(0, 0).UTC()

// RaceSummary is the aggregate report of one race weekend
type RaceSummary struct {
	Race     telemetry.Race      `json:"race"`
	Sessions []telemetry.Session `json:"sessions"`
	Drivers  []telemetry.Driver  `json:"drivers"`
	Stints   []telemetry.Stint   `json:"stints"`
	PitStops []telemetry.PitStop `json:"pitStops"`
	Laps     []telemetry.Lap     `json:"laps"`
	Metrics  SummaryMetrics      `json:"metrics"`
}

// SummaryOptions narrows a summary
type SummaryOptions struct {
	// SessionTypes keeps only sessions of these types; empty keeps all
	SessionTypes []telemetry.SessionType
}

// sessionTiming holds the raw per-session fetch results
type sessionTiming struct {
	stints   []openf1.Record
	pitStops []openf1.Record
	laps     []openf1.Record
	drivers  []openf1.Record
}

// Summarize builds the summary of the race identified by raceKey
func (s *Summarizer) Summarize(ctx context.Context, raceKey string, opts SummaryOptions) (*RaceSummary, error) {
	raceFilters := openf1.Filters{"race_key": openf1.KeyValue(raceKey)}

	races, err := s.fetcher.Fetch(ctx, openf1.ResourceRaces, raceFilters)
	if err != nil && !isUpstreamNotFound(err) {
		return nil, fmt.Errorf("failed to fetch race %s: %w", raceKey, err)
	}
	if len(races) == 0 {
		return nil, &NotFoundError{Kind: "race", Key: raceKey}
	}

	race := telemetry.NormalizeRace(races[0])
	if race.ID == "" {
		race.ID = telemetry.KeyOf(raceKey)
	}

	rawSessions, err := s.fetcher.Fetch(ctx, openf1.ResourceSessions, raceFilters)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sessions of race %s: %w", raceKey, err)
	}
	sessions := resolveSessions(rawSessions, race, opts.SessionTypes)

	timing := make([]sessionTiming, len(sessions))
	jobs := make([]fetchJob, 0, len(sessions)*4)
	for i, session := range sessions {
		filters := openf1.Filters{"session_key": openf1.KeyValue(session.ID)}
		jobs = append(jobs,
			fetchJob{resource: openf1.ResourceStints, filters: filters, dst: &timing[i].stints},
			fetchJob{resource: openf1.ResourcePit, filters: filters, dst: &timing[i].pitStops},
			fetchJob{resource: openf1.ResourceLaps, filters: filters, dst: &timing[i].laps},
			fetchJob{resource: openf1.ResourceDrivers, filters: filters, dst: &timing[i].drivers},
		)
	}

	s.logger.Debug().
		Str("race", race.ID).
		Int("sessions", len(sessions)).
		Int("fetches", len(jobs)).
		Msg("Fetching session timing data")

	if err := s.fetchAll(ctx, jobs); err != nil {
		return nil, fmt.Errorf("failed to fetch timing data of race %s: %w", raceKey, err)
	}

	summary := &RaceSummary{
		Sessions: sessions,
		Stints:   []telemetry.Stint{},
		PitStops: []telemetry.PitStop{},
		Laps:     []telemetry.Lap{},
	}

	var observed []string
	for i, session := range sessions {
		for j, raw := range timing[i].stints {
			stint := telemetry.NormalizeStint(session.ID, raw, j)
			summary.Stints = append(summary.Stints, stint)
			observed = append(observed, stint.DriverID)
		}
		for j, raw := range timing[i].pitStops {
			stop := telemetry.NormalizePitStop(session.ID, raw, j)
			summary.PitStops = append(summary.PitStops, stop)
			observed = append(observed, stop.DriverID)
		}
		for _, raw := range timing[i].laps {
			lap := telemetry.NormalizeLap(session.ID, raw)
			summary.Laps = append(summary.Laps, lap)
			observed = append(observed, lap.DriverID)
		}
	}

	summary.Drivers = mergeDrivers(timing, lo.Uniq(observed))
	summary.Metrics = CalculateMetrics(summary.Laps)
	summary.Race = resolveRaceWindow(race, sessions)

	s.logger.Debug().
		Str("race", race.ID).
		Int("drivers", len(summary.Drivers)).
		Int("laps", len(summary.Laps)).
		Int("stints", len(summary.Stints)).
		Int("pit_stops", len(summary.PitStops)).
		Msg("Built race summary")

	return summary, nil
}

// resolveSessions normalizes, filters and orders the sessions of race.
// Sessions with their own start come first in start order; the rest follow
// by id and borrow the race start for display.
func resolveSessions(raw []openf1.Record, race telemetry.Race, types []telemetry.SessionType) []telemetry.Session {
	sessions := make([]telemetry.Session, 0, len(raw))
	for _, record := range raw {
		session := telemetry.NormalizeSession(record, race.ID)
		if len(types) > 0 && !lo.Contains(types, session.Type) {
			continue
		}
		sessions = append(sessions, session)
	}

	slices.SortStableFunc(sessions, compareSessionStarts)

	for i := range sessions {
		if sessions[i].StartedAt.IsZero() {
			sessions[i].StartedAt = race.StartedAt
			if sessions[i].StartedAt.IsZero() {
				sessions[i].StartedAt = epoch
			}
		}
		if sessions[i].EndedAt == nil && race.CompletedAt != nil {
			end := *race.CompletedAt
			sessions[i].EndedAt = &end
		}
	}
	return sessions
}

// compareSessionStarts orders dated sessions by start then id, and undated
// sessions after them by id.
func compareSessionStarts(a, b telemetry.Session) int {
	aDated, bDated := !a.StartedAt.IsZero(), !b.StartedAt.IsZero()
	switch {
	case aDated && bDated:
		if c := a.StartedAt.Compare(b.StartedAt); c != 0 {
			return c
		}
	case aDated:
		return -1
	case bDated:
		return 1
	}
	return compareKeys(a.ID, b.ID)
}

// compareKeys orders canonical keys numerically when both are numbers and
// lexically otherwise.
func compareKeys(a, b string) int {
	an, aErr := strconv.ParseFloat(a, 64)
	bn, bErr := strconv.ParseFloat(b, 64)
	if aErr == nil && bErr == nil {
		if c := cmp.Compare(an, bn); c != 0 {
			return c
		}
	}
	return cmp.Compare(a, b)
}

// mergeDrivers deduplicates the per-session driver listings, first
// occurrence winning, and adds a placeholder for every observed id the
// listings lack. The result is ordered by car number.
func mergeDrivers(timing []sessionTiming, observed []string) []telemetry.Driver {
	drivers := make([]telemetry.Driver, 0, len(observed))
	known := make(map[string]bool)

	for _, session := range timing {
		for _, raw := range session.drivers {
			driver := telemetry.NormalizeDriver(raw)
			if known[driver.ID] {
				continue
			}
			known[driver.ID] = true
			drivers = append(drivers, driver)
		}
	}

	for _, id := range observed {
		if known[id] {
			continue
		}
		known[id] = true
		drivers = append(drivers, telemetry.PlaceholderDriver(id))
	}

	slices.SortStableFunc(drivers, func(a, b telemetry.Driver) int {
		if c := cmp.Compare(a.Number, b.Number); c != 0 {
			return c
		}
		return compareKeys(a.ID, b.ID)
	})
	return drivers
}

// resolveRaceWindow fills the race start from the earliest session (else the
// epoch) and the completion from the latest session end.
func resolveRaceWindow(race telemetry.Race, sessions []telemetry.Session) telemetry.Race {
	if race.StartedAt.IsZero() {
		race.StartedAt = epoch
		if len(sessions) > 0 {
			race.StartedAt = sessions[0].StartedAt
		}
	}

	if race.CompletedAt == nil {
		for _, session := range sessions {
			if session.EndedAt == nil {
				continue
			}
			if race.CompletedAt == nil || session.EndedAt.After(*race.CompletedAt) {
				end := *session.EndedAt
				race.CompletedAt = &end
			}
		}
	}
	return race
}

// isUpstreamNotFound reports whether the API answered a lookup with 404,
// which some API versions do instead of an empty array.
func isUpstreamNotFound(err error) bool {
	var upstreamErr *openf1.UpstreamError
	return errors.As(err, &upstreamErr) && upstreamErr.IsNotFound()
}
