package filter

import (
	"github.com/s0up4200/pitwall/report"
)

// ApplyToSessions returns a copy of sessions holding only the laps f keeps.
// Session best, average and lap deltas are left as computed over the full
// session. Sessions left without laps are kept.
func ApplyToSessions(f Filter, sessions []report.SessionLapSummary) []report.SessionLapSummary {
	out := make([]report.SessionLapSummary, len(sessions))
	for i, session := range sessions {
		kept := make([]report.LapDelta, 0, len(session.Laps))
		for _, lap := range session.Laps {
			if f.Evaluate(lap, session) {
				kept = append(kept, lap)
			}
		}
		out[i] = session
		out[i].Laps = kept
	}
	return out
}

// Apply filters the sessions of a lap-delta report in place of a copy
func Apply(f Filter, deltas *report.DriverLapDelta) *report.DriverLapDelta {
	filtered := *deltas
	filtered.Sessions = ApplyToSessions(f, deltas.Sessions)
	return &filtered
}
