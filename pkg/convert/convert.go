// Package convert turns untyped values received from the scripting runtime
// into the typed values property setters expect. Values arrive JSON-decoded,
// so numbers are usually float64 and objects are map[string]any, but native
// callers may hand in any Go numeric type.
package convert

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Int converts various numeric types to int.
func Int(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float32:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

// Int64 converts various numeric types to int64.
func Int64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float32:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

// Float64 converts various numeric types to float64.
func Float64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	default:
		return 0, false
	}
}

// String extracts a string from an any value.
func String(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	case fmt.Stringer:
		return s.String(), true
	default:
		return "", false
	}
}

// Bool extracts a bool from an any value.
func Bool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch b {
		case "true":
			return true, true
		case "false":
			return false, true
		}
		return false, false
	default:
		return false, false
	}
}

// Map extracts a map[string]any from an any value. Keys of map[any]any
// inputs (as produced by some codecs) are filtered to strings.
func Map(v any) (map[string]any, bool) {
	if v == nil {
		return nil, false
	}
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	if m, ok := v.(map[any]any); ok {
		converted := make(map[string]any, len(m))
		for key, val := range m {
			if keyString, ok := key.(string); ok {
				converted[keyString] = val
			}
		}
		return converted, true
	}
	return nil, false
}

// Color converts a value to a packed ARGB color. Accepted forms:
// a numeric ARGB value, "#RRGGBB", "#AARRGGBB", or an SVG 1.1 color
// name ("red", "skyblue", ...).
func Color(v any) (uint32, bool) {
	switch c := v.(type) {
	case string:
		return parseColorString(c)
	default:
		n, ok := Int64(v)
		if !ok || n < 0 || n > 0xFFFFFFFF {
			return 0, false
		}
		return uint32(n), true
	}
}

func parseColorString(s string) (uint32, bool) {
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		switch len(hex) {
		case 6:
			rgb, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				return 0, false
			}
			return 0xFF000000 | uint32(rgb), true
		case 8:
			argb, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				return 0, false
			}
			return uint32(argb), true
		default:
			return 0, false
		}
	}
	named, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return 0, false
	}
	return uint32(named.A)<<24 | uint32(named.R)<<16 | uint32(named.G)<<8 | uint32(named.B), true
}
