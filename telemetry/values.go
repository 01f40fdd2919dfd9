package telemetry

import (
	"math"
	"strconv"

	"github.com/s0up4200/pitwall/coerce"
	"github.com/s0up4200/pitwall/openf1"
)

func numberPtr(raw openf1.Record, keys []string) *float64 {
	if v, ok := coerce.Number(raw, keys...); ok {
		return &v
	}
	return nil
}

// wholeNumber reports v as an int only when the conversion is exact.
func wholeNumber(v float64) (int, bool) {
	if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
		return 0, false
	}
	return int(v), true
}

func intPtr(raw openf1.Record, keys []string) *int {
	if v, ok := coerce.Number(raw, keys...); ok {
		if n, ok := wholeNumber(v); ok {
			return &n
		}
	}
	return nil
}

func intOr(raw openf1.Record, keys []string, fallback int) int {
	if v, ok := coerce.Number(raw, keys...); ok {
		if n, ok := wholeNumber(v); ok {
			return n
		}
	}
	return fallback
}

func stringPtr(raw openf1.Record, keys []string) *string {
	if v, ok := coerce.String(raw, keys...); ok {
		return &v
	}
	return nil
}

// keyFrom reads an upstream key as its canonical string: numeric keys lose
// any leading zeros or trailing ".0", anything else is kept as trimmed text.
func keyFrom(raw openf1.Record, keys []string) string {
	if v, ok := coerce.Number(raw, keys...); ok {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	v, _ := coerce.String(raw, keys...)
	return v
}

// driverID is the canonical driver number of raw, "0" when absent.
func driverID(raw openf1.Record) string {
	if id := keyFrom(raw, driverNumberKeys); id != "" {
		return id
	}
	return "0"
}

// KeyOf returns the canonical form of a raw key value supplied by a caller
func KeyOf(key string) string {
	return keyFrom(openf1.Record{"key": key}, []string{"key"})
}

// SessionKey returns the canonical session key of any raw record
func SessionKey(raw openf1.Record) string {
	return keyFrom(raw, sessionKeyKeys)
}

// RaceKey returns the canonical race key of any raw record
func RaceKey(raw openf1.Record) string {
	return keyFrom(raw, raceKeyKeys)
}
