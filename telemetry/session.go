package telemetry

import (
	"strings"
	"time"

	"github.com/s0up4200/pitwall/coerce"
	"github.com/s0up4200/pitwall/openf1"
)

// sessionTypeAliases maps user-supplied filter tokens to a classification
var sessionTypeAliases = map[string]SessionType{
	"practice":   SessionTypePractice,
	"fp1":        SessionTypePractice,
	"fp2":        SessionTypePractice,
	"fp3":        SessionTypePractice,
	"qualifying": SessionTypeQualifying,
	"quali":      SessionTypeQualifying,
	"q":          SessionTypeQualifying,
	"race":       SessionTypeRace,
	"grandprix":  SessionTypeRace,
}

// ClassifySession buckets a session by its declared type, or by its name
// when no type is declared. Anything not recognisable as practice or
// qualifying is a race.
func ClassifySession(sessionType, name string) SessionType {
	candidate := strings.TrimSpace(sessionType)
	if candidate == "" {
		candidate = strings.TrimSpace(name)
	}
	candidate = strings.ToLower(candidate)

	switch {
	case strings.Contains(candidate, "practice") || strings.HasPrefix(candidate, "fp"):
		return SessionTypePractice
	case strings.Contains(candidate, "qual") || strings.HasPrefix(candidate, "q"):
		return SessionTypeQualifying
	default:
		return SessionTypeRace
	}
}

// ParseSessionType resolves a filter token such as "FP2" or "quali"
func ParseSessionType(token string) (SessionType, bool) {
	t, ok := sessionTypeAliases[strings.ToLower(strings.TrimSpace(token))]
	return t, ok
}

// ParseSessionTypes resolves every token, splitting on commas, dropping
// unknown ones and duplicates while keeping first-seen order.
func ParseSessionTypes(tokens ...string) []SessionType {
	var out []SessionType
	seen := make(map[SessionType]bool)
	for _, token := range tokens {
		for _, part := range strings.Split(token, ",") {
			t, ok := ParseSessionType(part)
			if !ok || seen[t] {
				continue
			}
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// NormalizeSession converts a raw sessions record into a Session. StartedAt
// is left zero when the record carries no usable start.
func NormalizeSession(raw openf1.Record, raceID string) Session {
	id := SessionKey(raw)

	declaredType, _ := coerce.String(raw, sessionTypeKeys...)
	name, ok := coerce.String(raw, sessionNameKeys...)
	typ := ClassifySession(declaredType, name)
	if !ok {
		name = "Session " + id
	}

	if raceID == "" {
		raceID = RaceKey(raw)
	}

	session := Session{
		ID:     id,
		RaceID: raceID,
		Type:   typ,
		Name:   name,
	}
	if start, ok := instant(raw, startDateKeys, startTimeKeys); ok {
		session.StartedAt = start
	}
	if end, ok := instant(raw, endDateKeys, endTimeKeys); ok {
		session.EndedAt = &end
	}
	return session
}

func instant(raw openf1.Record, dateKeys, timeKeys []string) (time.Time, bool) {
	date, _ := coerce.String(raw, dateKeys...)
	clock, _ := coerce.String(raw, timeKeys...)
	return coerce.CombineDateAndTime(date, clock)
}
