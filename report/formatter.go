package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/shopspring/decimal"

	"github.com/s0up4200/pitwall/telemetry"
)

const placeholder = "-"

// TextFormatter renders reports as console tables
type TextFormatter struct {
	style table.Style
}

// NewTextFormatter creates a formatter using rounded table borders
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{style: table.StyleRounded}
}

// FormatSummary renders a race summary
func (f *TextFormatter) FormatSummary(summary *RaceSummary) string {
	var sb strings.Builder

	race := summary.Race
	fmt.Fprintf(&sb, "\n%s", race.Name)
	if race.Season > 0 {
		fmt.Fprintf(&sb, " %d", race.Season)
	}
	if race.Round > 0 {
		fmt.Fprintf(&sb, " (round %d)", race.Round)
	}
	sb.WriteString("\n")
	if race.Circuit != "" || race.Location != "" {
		fmt.Fprintf(&sb, "%s\n", strings.Trim(race.Circuit+" · "+race.Location, " ·"))
	}
	fmt.Fprintf(&sb, "Started: %s\n\n", race.StartedAt.Format("2006-01-02 15:04 MST"))

	if len(summary.Sessions) == 0 {
		sb.WriteString("No sessions found\n")
		return sb.String()
	}

	sessions := f.newTable()
	sessions.AppendHeader(table.Row{"Session", "Type", "Start", "Laps"})
	for _, session := range summary.Sessions {
		count := 0
		for _, lap := range summary.Laps {
			if lap.SessionID == session.ID {
				count++
			}
		}
		sessions.AppendRow(table.Row{
			session.Name,
			string(session.Type),
			session.StartedAt.Format("2006-01-02 15:04"),
			count,
		})
	}
	sb.WriteString(sessions.Render())
	sb.WriteString("\n\n")

	metrics := summary.Metrics
	fmt.Fprintf(&sb, "Laps: %d | Fastest: %s | Average: %s\n\n",
		metrics.TotalLaps, FormatLapTime(metrics.FastestLapSeconds), FormatLapTime(metrics.AverageLapSeconds))

	drivers := make(map[string]telemetry.Driver, len(summary.Drivers))
	for _, driver := range summary.Drivers {
		drivers[driver.ID] = driver
	}

	if len(metrics.DriverAverages) > 0 {
		pace := f.newTable()
		pace.AppendHeader(table.Row{"Driver", "Team", "Laps", "Best", "Average"})
		for _, avg := range metrics.DriverAverages {
			driver := drivers[avg.DriverID]
			pace.AppendRow(table.Row{
				ResolveDriverName(summary.Drivers, avg.DriverID),
				teamName(driver),
				avg.LapCount,
				FormatLapTime(avg.BestLapSeconds),
				FormatLapTime(avg.AverageLapSeconds),
			})
		}
		sb.WriteString(pace.Render())
		sb.WriteString("\n\n")
	}

	if len(summary.PitStops) > 0 {
		stops := f.newTable()
		stops.AppendHeader(table.Row{"Driver", "Session", "Lap", "Duration", "Reason"})
		for _, stop := range summary.PitStops {
			reason := placeholder
			if stop.Reason != nil {
				reason = *stop.Reason
			}
			stops.AppendRow(table.Row{
				ResolveDriverName(summary.Drivers, stop.DriverID),
				stop.SessionID,
				stop.LapNumber,
				FormatPitDuration(stop.DurationSeconds),
				reason,
			})
		}
		sb.WriteString(stops.Render())
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatLapDeltas renders a driver's lap-delta report, one table per session
func (f *TextFormatter) FormatLapDeltas(report *DriverLapDelta) string {
	var sb strings.Builder

	driver := report.Driver
	fmt.Fprintf(&sb, "\n%s (#%d", driver.FullName(), driver.Number)
	if driver.Code != "" && driver.Code != driver.ID {
		fmt.Fprintf(&sb, " %s", driver.Code)
	}
	sb.WriteString(")")
	if name := teamName(driver); name != placeholder {
		fmt.Fprintf(&sb, " ─ %s", name)
	}
	sb.WriteString("\n\n")

	if len(report.Sessions) == 0 {
		sb.WriteString("No laps found\n")
		return sb.String()
	}

	for _, session := range report.Sessions {
		fmt.Fprintf(&sb, "%s [%s]", session.Name, session.Type)
		if session.StartedAt != nil {
			fmt.Fprintf(&sb, " %s", session.StartedAt.Format("2006-01-02 15:04"))
		}
		fmt.Fprintf(&sb, "\nBest: %s | Average: %s\n",
			FormatLapTime(session.BestLapSeconds), FormatLapTime(session.AverageLapSeconds))

		laps := f.newTable()
		laps.AppendHeader(table.Row{"Lap", "Time", "S1", "S2", "S3", "Δ Best", "Δ Prev", "Pos", "Pit"})
		for _, lap := range session.Laps {
			pit := ""
			if lap.IsPit {
				pit = "PIT"
			}
			position := placeholder
			if lap.Position != nil {
				position = strconv.Itoa(*lap.Position)
			}
			laps.AppendRow(table.Row{
				lap.LapNumber,
				FormatLapTime(lap.LapTimeSeconds),
				orPlaceholder(lap.Sector1),
				orPlaceholder(lap.Sector2),
				orPlaceholder(lap.Sector3),
				FormatDelta(lap.DeltaToBest),
				FormatDelta(lap.DeltaToPrevious),
				position,
				pit,
			})
		}
		sb.WriteString(laps.Render())
		sb.WriteString("\n\n")
	}

	return sb.String()
}

func (f *TextFormatter) newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(f.style)
	return t
}

// FormatLapTime renders seconds as m:ss.sss, or ss.sss under a minute
func FormatLapTime(seconds *float64) string {
	if seconds == nil {
		return placeholder
	}
	d := decimal.NewFromFloat(*seconds).Round(3)
	minutes := d.Div(decimal.NewFromInt(60)).Floor()
	rest := d.Sub(minutes.Mul(decimal.NewFromInt(60)))
	if minutes.IsZero() {
		return rest.StringFixed(3)
	}
	secs := rest.StringFixed(3)
	if rest.LessThan(decimal.NewFromInt(10)) {
		secs = "0" + secs
	}
	return minutes.String() + ":" + secs
}

// FormatDelta renders a signed delta in seconds
func FormatDelta(seconds *float64) string {
	if seconds == nil {
		return placeholder
	}
	d := decimal.NewFromFloat(*seconds).Round(3)
	if d.IsPositive() {
		return "+" + d.StringFixed(3)
	}
	return d.StringFixed(3)
}

// FormatPitDuration renders a stationary time like 22.4s
func FormatPitDuration(seconds *float64) string {
	if seconds == nil {
		return placeholder
	}
	return decimal.NewFromFloat(*seconds).StringFixed(1) + "s"
}

// ResolveDriverName returns the full name of driverID within drivers, or
// the id itself when it is not listed.
func ResolveDriverName(drivers []telemetry.Driver, driverID string) string {
	for _, driver := range drivers {
		if driver.ID == driverID {
			return driver.FullName()
		}
	}
	return driverID
}

func teamName(driver telemetry.Driver) string {
	if driver.Team == nil {
		return placeholder
	}
	return driver.Team.Name
}

func orPlaceholder(s *string) string {
	if s == nil {
		return placeholder
	}
	return *s
}
