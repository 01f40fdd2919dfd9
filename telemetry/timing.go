package telemetry

import (
	"fmt"

	"github.com/s0up4200/pitwall/coerce"
	"github.com/s0up4200/pitwall/openf1"
)

// NormalizeStint converts the index-th raw stint of sessionID into a Stint.
// A missing stint number falls back to its 1-based position in the list.
func NormalizeStint(sessionID string, raw openf1.Record, index int) Stint {
	driverNumber := driverID(raw)
	stintNumber := intOr(raw, stintNumberKeys, index+1)

	compound, ok := coerce.String(raw, compoundKeys...)
	if !ok {
		compound = "Unknown"
	}

	return Stint{
		ID:          fmt.Sprintf("%s-%s-%d", sessionID, driverNumber, stintNumber),
		SessionID:   sessionID,
		DriverID:    driverNumber,
		StintNumber: stintNumber,
		Compound:    compound,
		StartLap:    intOr(raw, stintStartLapKeys, 0),
		EndLap:      intPtr(raw, stintEndLapKeys),
	}
}

// NormalizePitStop converts the index-th raw pit record of sessionID into a
// PitStop. The index is part of the id so repeated stops on one lap stay
// distinct. Duration, time and reason are left nil when unresolved.
func NormalizePitStop(sessionID string, raw openf1.Record, index int) PitStop {
	driverNumber := driverID(raw)
	lapNumber := intOr(raw, lapNumberKeys, index+1)
	duration := numberPtr(raw, pitDurationKeys)

	return PitStop{
		ID:              fmt.Sprintf("%s-%s-%d-%d", sessionID, driverNumber, lapNumber, index),
		SessionID:       sessionID,
		DriverID:        driverNumber,
		LapNumber:       lapNumber,
		DurationSeconds: duration,
		Duration:        coerce.FormatSeconds(duration),
		StopTime:        stringPtr(raw, pitTimeKeys),
		Reason:          stringPtr(raw, pitReasonKeys),
	}
}
