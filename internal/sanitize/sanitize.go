// Package sanitize prepares write payloads for the document store. The store
// rejects undefined values and NaN, so both are removed before any write.
package sanitize

import (
	"math"
	"reflect"
)

type undefined struct{}

// Undefined marks a field that was never set. It is dropped by Clean, unlike
// nil which is kept and written as null.
var Undefined any = undefined{}

// Clean walks maps and slices recursively and drops entries whose value is
// Undefined, a nil pointer, or a NaN float. Non-nil pointers are dereferenced.
// The input is not modified.
func Clean(v any) any {
	out, _ := clean(v)
	return out
}

// Map is Clean for the common payload shape.
func Map(m map[string]any) map[string]any {
	out, ok := clean(m)
	if !ok {
		return map[string]any{}
	}
	return out.(map[string]any)
}

func clean(v any) (any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, true
	case undefined:
		return nil, false
	case float64:
		return t, !math.IsNaN(t)
	case float32:
		return t, !math.IsNaN(float64(t))
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if c, ok := clean(val); ok {
				out[k] = c
			}
		}
		return out, true
	case []any:
		out := make([]any, 0, len(t))
		for _, val := range t {
			if c, ok := clean(val); ok {
				out = append(out, c)
			}
		}
		return out, true
	case []string, string, bool, int, int64, int32:
		return t, true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, false
		}
		return clean(rv.Elem().Interface())
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v, true
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			if c, ok := clean(iter.Value().Interface()); ok {
				out[iter.Key().String()] = c
			}
		}
		return out, true
	case reflect.Slice:
		if rv.IsNil() {
			return v, true
		}
		out := make([]any, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			if c, ok := clean(rv.Index(i).Interface()); ok {
				out = append(out, c)
			}
		}
		return out, true
	case reflect.Float32, reflect.Float64:
		return v, !math.IsNaN(rv.Float())
	}
	return v, true
}
