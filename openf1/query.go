package openf1

import (
	"fmt"
	"math"
	"net/url"
	"reflect"
	"strconv"
)

// Filters maps query keys to a scalar or a slice of scalars. Slices expand
// to one query parameter per element; nil values are dropped.
type Filters map[string]any

// Clone returns a shallow copy that can be extended without touching f.
func (f Filters) Clone() Filters {
	out := make(Filters, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Values encodes the filters as URL query values.
func (f Filters) Values() url.Values {
	values := url.Values{}
	for key, value := range f {
		if value == nil {
			continue
		}
		rv := reflect.ValueOf(value)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			for i := 0; i < rv.Len(); i++ {
				if s, ok := scalarString(rv.Index(i).Interface()); ok {
					values.Add(key, s)
				}
			}
			continue
		}
		if s, ok := scalarString(value); ok {
			values.Add(key, s)
		}
	}
	return values
}

// KeyValue returns key as a number when it parses as one, so "09" and "9"
// select the same upstream entity.
func KeyValue(key string) any {
	if n, err := strconv.ParseInt(key, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(key, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return key
}

func scalarString(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case fmt.Stringer:
		return v.String(), true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		return scalarString(rv.Elem().Interface())
	}
	return fmt.Sprint(value), true
}
