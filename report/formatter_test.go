package report

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/pitwall/telemetry"
)

func TestFormatLapTime(t *testing.T) {
	tests := []struct {
		seconds *float64
		want    string
	}{
		{seconds: nil, want: "-"},
		{seconds: ptr(84.998), want: "1:24.998"},
		{seconds: ptr(65.1), want: "1:05.100"},
		{seconds: ptr(9.5), want: "9.500"},
		{seconds: ptr(125.0004), want: "2:05.000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatLapTime(tt.seconds))
	}
}

func TestFormatDelta(t *testing.T) {
	assert.Equal(t, "-", FormatDelta(nil))
	assert.Equal(t, "+0.314", FormatDelta(ptr(0.314)))
	assert.Equal(t, "-0.314", FormatDelta(ptr(-0.314)))
	assert.Equal(t, "0.000", FormatDelta(ptr(0.0)))
}

func TestFormatPitDuration(t *testing.T) {
	assert.Equal(t, "-", FormatPitDuration(nil))
	assert.Equal(t, "22.4s", FormatPitDuration(ptr(22.4)))
	assert.Equal(t, "3.0s", FormatPitDuration(ptr(2.98)))
}

func TestResolveDriverName(t *testing.T) {
	drivers := []telemetry.Driver{{ID: "1", FirstName: "Max", LastName: "Verstappen"}}
	assert.Equal(t, "Max Verstappen", ResolveDriverName(drivers, "1"))
	assert.Equal(t, "99", ResolveDriverName(drivers, "99"))
}

func TestTextFormatter(t *testing.T) {
	s := newTestSummarizer(weekendFetcher())
	f := NewTextFormatter()

	summary, err := s.Summarize(context.Background(), "9", SummaryOptions{})
	require.NoError(t, err)
	out := f.FormatSummary(summary)
	assert.Contains(t, out, "Italian Grand Prix 2024 (round 16)")
	assert.Contains(t, out, "Practice 1")
	assert.Contains(t, out, "Lewis Hamilton")
	assert.Contains(t, out, "Mercedes")
	assert.Contains(t, out, "1:24.998")
	assert.Contains(t, out, "22.4s")

	deltas, err := s.LapDeltas(context.Background(), "44", DeltaOptions{})
	require.NoError(t, err)
	out = f.FormatLapDeltas(deltas)
	assert.Contains(t, out, "Lewis Hamilton (#44 HAM)")
	assert.Contains(t, out, "+0.314")
	assert.Contains(t, out, "1:25.155")
}

func TestTextFormatterEmpty(t *testing.T) {
	f := NewTextFormatter()
	assert.Contains(t, f.FormatSummary(&RaceSummary{Race: telemetry.Race{Name: "Race 1"}}), "No sessions found")
	assert.Contains(t, f.FormatLapDeltas(&DriverLapDelta{Driver: telemetry.PlaceholderDriver("7")}), "No laps found")
}
