package validation

import (
	"encoding/json"
	"math"
	"reflect"
)

// hasValue reports whether name is present in values with a value other than
// nil or the empty string.
func hasValue(values map[string]any, name string) bool {
	value, ok := values[name]
	if !ok {
		return false
	}
	return !isEmpty(value)
}

// isAbsent is the presence test of the required rule: missing, nil, empty
// string and NaN all count as absent.
func isAbsent(values map[string]any, name string) bool {
	value, ok := values[name]
	if !ok || isEmpty(value) {
		return true
	}
	return isNaN(value)
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return s == ""
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

func isNaN(value any) bool {
	switch v := value.(type) {
	case float64:
		return math.IsNaN(v)
	case float32:
		return math.IsNaN(float64(v))
	default:
		return false
	}
}

// toFloat converts numeric values. Strings, booleans and NaN are not numbers.
func toFloat(value any) (float64, bool) {
	var out float64
	switch v := value.(type) {
	case int:
		out = float64(v)
	case int8:
		out = float64(v)
	case int16:
		out = float64(v)
	case int32:
		out = float64(v)
	case int64:
		out = float64(v)
	case uint:
		out = float64(v)
	case uint8:
		out = float64(v)
	case uint16:
		out = float64(v)
	case uint32:
		out = float64(v)
	case uint64:
		out = float64(v)
	case float32:
		out = float64(v)
	case float64:
		out = v
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		out = parsed
	default:
		rv := reflect.ValueOf(value)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			out = float64(rv.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			out = float64(rv.Uint())
		case reflect.Float32, reflect.Float64:
			out = rv.Float()
		default:
			return 0, false
		}
	}
	if math.IsNaN(out) {
		return 0, false
	}
	return out, true
}

func toString(value any) (string, bool) {
	if s, ok := value.(string); ok {
		return s, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

// isPrimitiveKey reports whether value looks like a foreign key reference.
func isPrimitiveKey(value any) bool {
	if _, ok := toString(value); ok {
		return true
	}
	_, ok := toFloat(value)
	return ok
}

// collectionLen returns the length of slices and arrays.
func collectionLen(value any) (int, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Len(), true
	default:
		return 0, false
	}
}

func equalValues(a, b any) bool {
	if af, ok := toFloat(a); ok {
		bf, ok := toFloat(b)
		return ok && af == bf
	}
	if as, ok := toString(a); ok {
		bs, ok := toString(b)
		return ok && as == bs
	}
	return reflect.DeepEqual(a, b)
}
