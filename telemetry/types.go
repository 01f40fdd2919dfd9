package telemetry

import (
	"time"
)

// SessionType classifies a timed segment of a race weekend
type SessionType string

const (
	SessionTypePractice   SessionType = "practice"
	SessionTypeQualifying SessionType = "qualifying"
	SessionTypeRace       SessionType = "race"
)

// SessionTypes lists every classification bucket in weekend order
var SessionTypes = []SessionType{SessionTypePractice, SessionTypeQualifying, SessionTypeRace}

// Team is the constructor a driver races for
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Driver is a canonical driver identified by car number
type Driver struct {
	ID        string  `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Code      string  `json:"code"`
	Number    int     `json:"number"`
	Country   *string `json:"country"`
	Team      *Team   `json:"team"`
}

// FullName joins first and last name
func (d Driver) FullName() string {
	if d.FirstName == d.LastName {
		return d.FirstName
	}
	return d.FirstName + " " + d.LastName
}

// Session is one timed segment of a race weekend
type Session struct {
	ID        string      `json:"id"`
	RaceID    string      `json:"raceId"`
	Type      SessionType `json:"sessionType"`
	Name      string      `json:"name"`
	StartedAt time.Time   `json:"startedAt"`
	EndedAt   *time.Time  `json:"endedAt"`
}

// Stint is a continuous run on one tyre compound
type Stint struct {
	ID          string `json:"id"`
	SessionID   string `json:"sessionId"`
	DriverID    string `json:"driverId"`
	StintNumber int    `json:"stintNumber"`
	Compound    string `json:"compound"`
	StartLap    int    `json:"startLap"`
	EndLap      *int   `json:"endLap"` // nil while the stint is still open
}

// IsOpen reports whether the stint has no recorded end lap
func (s Stint) IsOpen() bool {
	return s.EndLap == nil
}

// PitStop is a single stop in the pit lane
type PitStop struct {
	ID              string   `json:"id"`
	SessionID       string   `json:"sessionId"`
	DriverID        string   `json:"driverId"`
	LapNumber       int      `json:"lapNumber"`
	DurationSeconds *float64 `json:"durationSeconds"`
	Duration        *string  `json:"rawDuration"`
	StopTime        *string  `json:"stopTime"`
	Reason          *string  `json:"reason"`
}

// Lap is one timed lap, keyed by session, driver and lap number. Each
// formatted timing string is derived from its seconds value.
type Lap struct {
	SessionID      string   `json:"sessionId"`
	DriverID       string   `json:"driverId"`
	LapNumber      int      `json:"lapNumber"`
	LapTimeSeconds *float64 `json:"lapTimeSeconds"`
	LapTime        *string  `json:"rawLapTime"`
	Sector1Seconds *float64 `json:"sector1Seconds"`
	Sector2Seconds *float64 `json:"sector2Seconds"`
	Sector3Seconds *float64 `json:"sector3Seconds"`
	Sector1        *string  `json:"rawSector1"`
	Sector2        *string  `json:"rawSector2"`
	Sector3        *string  `json:"rawSector3"`
	Position       *int     `json:"position"`
	IsPit          bool     `json:"isPit"`
}

// HasTime reports whether the lap carries a resolved lap time
func (l Lap) HasTime() bool {
	return l.LapTimeSeconds != nil
}
