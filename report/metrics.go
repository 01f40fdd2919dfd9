package report

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/s0up4200/pitwall/telemetry"
)

// SummaryMetrics holds lap statistics across every session of a summary
type SummaryMetrics struct {
	TotalLaps         int             `json:"totalLaps"`
	FastestLapSeconds *float64        `json:"fastestLapSeconds"`
	AverageLapSeconds *float64        `json:"averageLapSeconds"`
	DriverAverages    []DriverAverage `json:"driverAverages"`
}

// DriverAverage holds one driver's timed-lap statistics
type DriverAverage struct {
	DriverID          string   `json:"driverId"`
	LapCount          int      `json:"lapCount"`
	AverageLapSeconds *float64 `json:"averageLapSeconds"`
	BestLapSeconds    *float64 `json:"bestLapSeconds"`
}

// CalculateMetrics computes fastest, average and per-driver statistics over
// the laps with a resolved lap time. Drivers without any timed lap are left
// out of DriverAverages; the remaining drivers keep first-seen order.
func CalculateMetrics(laps []telemetry.Lap) SummaryMetrics {
	times := lapTimes(laps)

	var order []string
	byDriver := make(map[string][]float64)
	for _, lap := range laps {
		if lap.LapTimeSeconds == nil {
			continue
		}
		if _, seen := byDriver[lap.DriverID]; !seen {
			order = append(order, lap.DriverID)
		}
		byDriver[lap.DriverID] = append(byDriver[lap.DriverID], *lap.LapTimeSeconds)
	}

	averages := lo.Map(order, func(driverID string, _ int) DriverAverage {
		values := byDriver[driverID]
		return DriverAverage{
			DriverID:          driverID,
			LapCount:          len(values),
			AverageLapSeconds: mean(values),
			BestLapSeconds:    best(values),
		}
	})

	return SummaryMetrics{
		TotalLaps:         len(laps),
		FastestLapSeconds: best(times),
		AverageLapSeconds: mean(times),
		DriverAverages:    averages,
	}
}

func lapTimes(laps []telemetry.Lap) []float64 {
	return lo.FilterMap(laps, func(lap telemetry.Lap, _ int) (float64, bool) {
		if lap.LapTimeSeconds == nil {
			return 0, false
		}
		return *lap.LapTimeSeconds, true
	})
}

func best(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	v := lo.Min(values)
	return &v
}

// mean averages in decimal so millisecond inputs do not pick up float noise
func mean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	ds := lo.Map(values, func(v float64, _ int) decimal.Decimal {
		return decimal.NewFromFloat(v)
	})
	v := decimal.Avg(ds[0], ds[1:]...).InexactFloat64()
	return &v
}

// difference returns a - b computed in decimal
func difference(a, b float64) float64 {
	return decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).InexactFloat64()
}
