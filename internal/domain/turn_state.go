package domain

import (
	"encoding/json"
	"math"
)

// TurnState is the per-turn state mapping handed over by the simulation
// engine. Keys follow the historical_data field names; list-valued keys
// (buildings, active_loans, researched_technologies, active_events,
// active_wars) are counted rather than copied.
type TurnState map[string]any

// Float returns the numeric value at key, or def when the key is absent,
// non-numeric, NaN or infinite.
func (s TurnState) Float(key string, def float64) float64 {
	v, ok := s[key]
	if !ok {
		return def
	}
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

// Int returns the numeric value at key truncated to int, or def when the
// value is missing or outside the int range.
func (s TurnState) Int(key string, def int) int {
	f := s.Float(key, math.NaN())
	if math.IsNaN(f) || f >= maxIntFloat || f < minIntFloat {
		return def
	}
	return int(f)
}

// Count returns the length of the list at key, or 0 when it is not a list.
func (s TurnState) Count(key string) int {
	switch v := s[key].(type) {
	case []any:
		return len(v)
	case []map[string]any:
		return len(v)
	case []TurnState:
		return len(v)
	case []string:
		return len(v)
	default:
		return 0
	}
}

// Records returns the mapping elements of the list at key. Elements that
// are not mappings are skipped.
func (s TurnState) Records(key string) []map[string]any {
	var out []map[string]any
	switch v := s[key].(type) {
	case []any:
		for _, item := range v {
			switch m := item.(type) {
			case map[string]any:
				out = append(out, m)
			case TurnState:
				out = append(out, m)
			}
		}
	case []map[string]any:
		out = append(out, v...)
	case []TurnState:
		for _, m := range v {
			out = append(out, m)
		}
	}
	return out
}

// float64(math.MaxInt) rounds up to 2^63, so the upper bound is exclusive.
const (
	maxIntFloat = float64(math.MaxInt)
	minIntFloat = float64(math.MinInt)
)

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
