package coerce

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name   string
		record map[string]any
		keys   []string
		want   float64
		wantOK bool
	}{
		{name: "float", record: map[string]any{"a": 84.998}, keys: []string{"a"}, want: 84.998, wantOK: true},
		{name: "int", record: map[string]any{"a": 44}, keys: []string{"a"}, want: 44, wantOK: true},
		{name: "json number", record: map[string]any{"a": json.Number("12.5")}, keys: []string{"a"}, want: 12.5, wantOK: true},
		{name: "padded string", record: map[string]any{"a": " 85.312 "}, keys: []string{"a"}, want: 85.312, wantOK: true},
		{name: "first usable wins", record: map[string]any{"a": "n/a", "b": 2, "c": 3}, keys: []string{"a", "b", "c"}, want: 2, wantOK: true},
		{name: "order is respected", record: map[string]any{"a": 1, "b": 2}, keys: []string{"b", "a"}, want: 2, wantOK: true},
		{name: "empty string", record: map[string]any{"a": "  "}, keys: []string{"a"}},
		{name: "nan", record: map[string]any{"a": math.NaN()}, keys: []string{"a"}},
		{name: "infinite string", record: map[string]any{"a": "Inf"}, keys: []string{"a"}},
		{name: "bool is not a number", record: map[string]any{"a": true}, keys: []string{"a"}},
		{name: "nil value", record: map[string]any{"a": nil}, keys: []string{"a"}},
		{name: "missing", record: map[string]any{}, keys: []string{"a", "b"}},
		{name: "nil record", record: nil, keys: []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Number(tt.record, tt.keys...)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name   string
		record map[string]any
		keys   []string
		want   string
		wantOK bool
	}{
		{name: "trimmed", record: map[string]any{"a": "  VER "}, keys: []string{"a"}, want: "VER", wantOK: true},
		{name: "integral number", record: map[string]any{"a": float64(44)}, keys: []string{"a"}, want: "44", wantOK: true},
		{name: "fractional number", record: map[string]any{"a": 1.5}, keys: []string{"a"}, want: "1.5", wantOK: true},
		{name: "skips blank", record: map[string]any{"a": "", "b": "Lewis"}, keys: []string{"a", "b"}, want: "Lewis", wantOK: true},
		{name: "bool rejected", record: map[string]any{"a": false}, keys: []string{"a"}},
		{name: "object rejected", record: map[string]any{"a": map[string]any{}}, keys: []string{"a"}},
		{name: "missing", record: map[string]any{}, keys: []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := String(tt.record, tt.keys...)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBool(t *testing.T) {
	tests := []struct {
		value  any
		want   bool
		wantOK bool
	}{
		{value: true, want: true, wantOK: true},
		{value: false, want: false, wantOK: true},
		{value: float64(1), want: true, wantOK: true},
		{value: 0, want: false, wantOK: true},
		{value: "Y", want: true, wantOK: true},
		{value: " yes", want: true, wantOK: true},
		{value: "TRUE", want: true, wantOK: true},
		{value: "1", want: true, wantOK: true},
		{value: "n", want: false, wantOK: true},
		{value: "No", want: false, wantOK: true},
		{value: "false", want: false, wantOK: true},
		{value: "0", want: false, wantOK: true},
		{value: float64(2)},
		{value: "maybe"},
		{value: nil},
	}

	for _, tt := range tests {
		got, ok := Bool(map[string]any{"pit": tt.value}, "pit")
		assert.Equal(t, tt.wantOK, ok, "value %#v", tt.value)
		assert.Equal(t, tt.want, got, "value %#v", tt.value)
	}
}

func TestBoolFallsThroughCandidates(t *testing.T) {
	got, ok := Bool(map[string]any{"is_pit_out_lap": "unknown", "pit_in": 1}, "is_pit_out_lap", "pit_out", "pit_in")
	require.True(t, ok)
	assert.True(t, got)
}

func TestMissingFieldsNeverResolve(t *testing.T) {
	records := []map[string]any{
		nil,
		{},
		{"other": 1},
		{"a": nil, "b": []any{1}},
	}
	for _, record := range records {
		_, ok := Number(record, "a", "b")
		assert.False(t, ok)
		_, ok = String(record, "a", "b")
		assert.False(t, ok)
		_, ok = Bool(record, "a", "b")
		assert.False(t, ok)
	}
}

func TestFormatSeconds(t *testing.T) {
	assert.Nil(t, FormatSeconds(nil))

	v := 84.998
	got := FormatSeconds(&v)
	require.NotNil(t, got)
	assert.Equal(t, "84.998", *got)

	whole := 90.0
	assert.Equal(t, "90.000", *FormatSeconds(&whole))

	long := 23.4567
	assert.Equal(t, "23.457", *FormatSeconds(&long))
}

func TestFormatSecondsRoundTrip(t *testing.T) {
	inputs := []any{84.998, "84.998", " 84.998", json.Number("84.998"), "84.9980"}
	for _, input := range inputs {
		v, ok := Number(map[string]any{"lap_duration": input}, "lap_duration")
		require.True(t, ok)
		assert.Equal(t, 84.998, v)
		assert.Equal(t, "84.998", *FormatSeconds(&v))
	}
}

func TestCombineDateAndTime(t *testing.T) {
	tests := []struct {
		name   string
		date   string
		clock  string
		want   time.Time
		wantOK bool
	}{
		{
			name:   "date and time",
			date:   "2024-03-02",
			clock:  "15:00:00",
			want:   time.Date(2024, 3, 2, 15, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "date only defaults to midnight",
			date:   "2024-03-02",
			want:   time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "full timestamp in date field",
			date:   "2023-09-16T13:00:00+02:00",
			want:   time.Date(2023, 9, 16, 11, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "time with zone",
			date:   "2024-03-02",
			clock:  "15:00:00Z",
			want:   time.Date(2024, 3, 2, 15, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{name: "missing date", clock: "15:00:00"},
		{name: "garbage", date: "soon", clock: "later"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CombineDateAndTime(tt.date, tt.clock)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, tt.want.Equal(got), "got %s", got)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Red Bull Racing":        "red-bull-racing",
		"  McLaren F1 Team  ":    "mclaren-f1-team",
		"Aston Martin--Aramco!!": "aston-martin-aramco",
		"RB":                     "rb",
		"***":                    "",
	}
	for input, want := range tests {
		assert.Equal(t, want, Slugify(input), "input %q", input)
	}
}
