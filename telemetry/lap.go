package telemetry

import (
	"github.com/s0up4200/pitwall/coerce"
	"github.com/s0up4200/pitwall/openf1"
)

// NormalizeLap converts a raw laps record of sessionID into a Lap
func NormalizeLap(sessionID string, raw openf1.Record) Lap {
	lapTime := numberPtr(raw, lapDurationKeys)
	sector1 := numberPtr(raw, sector1Keys)
	sector2 := numberPtr(raw, sector2Keys)
	sector3 := numberPtr(raw, sector3Keys)

	isPit, _ := coerce.Bool(raw, pitLapKeys...)

	return Lap{
		SessionID:      sessionID,
		DriverID:       driverID(raw),
		LapNumber:      intOr(raw, lapNumberKeys, 0),
		LapTimeSeconds: lapTime,
		LapTime:        coerce.FormatSeconds(lapTime),
		Sector1Seconds: sector1,
		Sector2Seconds: sector2,
		Sector3Seconds: sector3,
		Sector1:        coerce.FormatSeconds(sector1),
		Sector2:        coerce.FormatSeconds(sector2),
		Sector3:        coerce.FormatSeconds(sector3),
		Position:       intPtr(raw, positionKeys),
		IsPit:          isPit,
	}
}
