package telemetry

import (
	"strings"
	"time"

	"github.com/s0up4200/pitwall/coerce"
	"github.com/s0up4200/pitwall/openf1"
)

// Race is the race-weekend metadata of a summary
type Race struct {
	ID          string     `json:"id"`
	Season      int        `json:"season"`
	Round       int        `json:"round"`
	Name        string     `json:"name"`
	Circuit     string     `json:"circuit"`
	Location    string     `json:"location"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt"`
}

// NormalizeRace converts a raw races record into a Race. StartedAt is left
// zero and CompletedAt nil when the record carries no usable window.
func NormalizeRace(raw openf1.Record) Race {
	id := RaceKey(raw)

	name, ok := coerce.String(raw, raceNameKeys...)
	if !ok {
		name = "Race " + id
	}
	circuit, _ := coerce.String(raw, circuitKeys...)

	race := Race{
		ID:       id,
		Season:   intOr(raw, seasonKeys, 0),
		Round:    intOr(raw, roundKeys, 0),
		Name:     name,
		Circuit:  circuit,
		Location: raceLocation(raw),
	}
	if start, ok := instant(raw, startDateKeys, startTimeKeys); ok {
		race.StartedAt = start
	}
	if end, ok := instant(raw, endDateKeys, endTimeKeys); ok {
		race.CompletedAt = &end
	}
	return race
}

func raceLocation(raw openf1.Record) string {
	var parts []string
	if location, ok := coerce.String(raw, locationKeys...); ok {
		parts = append(parts, location)
	}
	if country, ok := coerce.String(raw, raceCountryKeys...); ok {
		parts = append(parts, country)
	}
	return strings.Join(parts, ", ")
}
