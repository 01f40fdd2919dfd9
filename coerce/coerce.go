// Package coerce extracts typed values from loosely-typed upstream records.
//
// Each extractor takes an ordered list of candidate field names and returns
// the first one holding a usable value. The extractors never panic; a field
// that cannot be resolved under any candidate name reports ok == false.
package coerce

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number returns the first candidate whose value is a finite number or a
// string that parses as one.
func Number(record map[string]any, keys ...string) (float64, bool) {
	for _, key := range keys {
		if v, ok := toNumber(record[key]); ok {
			return v, true
		}
	}
	return 0, false
}

// String returns the first candidate whose value is a non-empty string after
// trimming, or a finite number rendered in its shortest decimal form.
func String(record map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		if v, ok := toString(record[key]); ok {
			return v, true
		}
	}
	return "", false
}

// Bool returns the first candidate that can be read as a boolean: native
// booleans, the numbers 1 and 0, or the strings y/yes/true/1 and n/no/false/0
// in any case.
func Bool(record map[string]any, keys ...string) (bool, bool) {
	for _, key := range keys {
		if v, ok := toBool(record[key]); ok {
			return v, true
		}
	}
	return false, false
}

func toNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		return parseNumber(v.String())
	case string:
		return parseNumber(v)
	}
	return 0, false
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return finite(f)
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func toString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		trimmed := strings.TrimSpace(v)
		return trimmed, trimmed != ""
	case json.Number:
		if f, ok := parseNumber(v.String()); ok {
			return strconv.FormatFloat(f, 'f', -1, 64), true
		}
		return "", false
	case bool, nil:
		return "", false
	}
	if f, ok := toNumber(value); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	return "", false
}

func toBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "y", "yes", "true", "1":
			return true, true
		case "n", "no", "false", "0":
			return false, true
		}
		return false, false
	}
	if f, ok := toNumber(value); ok {
		switch f {
		case 1:
			return true, true
		case 0:
			return false, true
		}
	}
	return false, false
}
