package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	kilobyte = 1024
	megabyte = 1024 * kilobyte
)

// ParseSize converts a MaxSize declaration into bytes. Integers (and
// integral floats) are byte counts; strings may carry a case-insensitive KB
// or MB suffix ("512KB", "2mb"). Plain numeric strings are byte counts.
func ParseSize(value any) (int64, error) {
	switch v := value.(type) {
	case int:
		return nonNegative(int64(v))
	case int8:
		return nonNegative(int64(v))
	case int16:
		return nonNegative(int64(v))
	case int32:
		return nonNegative(int64(v))
	case int64:
		return nonNegative(v)
	case uint:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, fmt.Errorf("schema: size %d overflows", v)
		}
		return int64(v), nil
	case float32:
		return floatSize(float64(v))
	case float64:
		return floatSize(v)
	case json.Number:
		return parseSizeString(v.String())
	case string:
		return parseSizeString(v)
	default:
		return 0, fmt.Errorf("schema: unsupported size %T", value)
	}
}

func parseSizeString(raw string) (int64, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(raw))
	if trimmed == "" {
		return 0, fmt.Errorf("schema: empty size")
	}

	multiplier := float64(1)
	switch {
	case strings.HasSuffix(trimmed, "KB"):
		multiplier = kilobyte
		trimmed = strings.TrimSuffix(trimmed, "KB")
	case strings.HasSuffix(trimmed, "MB"):
		multiplier = megabyte
		trimmed = strings.TrimSuffix(trimmed, "MB")
	case strings.HasSuffix(trimmed, "B"):
		trimmed = strings.TrimSuffix(trimmed, "B")
	}

	number, err := strconv.ParseFloat(strings.TrimSpace(trimmed), 64)
	if err != nil {
		return 0, fmt.Errorf("schema: invalid size %q", raw)
	}
	return floatSize(number * multiplier)
}

func floatSize(v float64) (int64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > math.MaxInt64 {
		return 0, fmt.Errorf("schema: invalid size %v", v)
	}
	return int64(math.Floor(v)), nil
}

func nonNegative(v int64) (int64, error) {
	if v < 0 {
		return 0, fmt.Errorf("schema: negative size %d", v)
	}
	return v, nil
}
