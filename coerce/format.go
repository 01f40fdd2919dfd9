package coerce

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// secondsPlaces is the resolution of upstream timing data.
const secondsPlaces = 3

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// FormatSeconds renders a seconds value with millisecond precision. A nil
// value stays nil so the formatted form never exists without a number.
func FormatSeconds(seconds *float64) *string {
	if seconds == nil {
		return nil
	}
	s := decimal.NewFromFloat(*seconds).StringFixed(secondsPlaces)
	return &s
}

// CombineDateAndTime joins separate date and time-of-day fields into a UTC
// instant. A missing time defaults to midnight. A date that already carries a
// full timestamp is used as is. Timestamps without a zone are read as UTC.
func CombineDateAndTime(date, clock string) (time.Time, bool) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Time{}, false
	}
	clock = strings.TrimSpace(clock)

	var candidates []string
	if clock == "" {
		candidates = append(candidates, date)
		clock = "00:00:00"
	}
	candidates = append(candidates, date+"T"+clock, date+" "+clock)

	for _, candidate := range candidates {
		for _, layout := range dateTimeLayouts {
			if t, err := time.Parse(layout, candidate); err == nil {
				return t.UTC(), true
			}
		}
	}
	return time.Time{}, false
}

// Slugify lowercases value and collapses every run of characters outside
// [a-z0-9] into a single hyphen, with no leading or trailing hyphen.
func Slugify(value string) string {
	slug := nonAlphanumeric.ReplaceAllString(strings.ToLower(value), "-")
	return strings.Trim(slug, "-")
}
