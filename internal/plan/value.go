// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plan

import "math"

// Typed total accessors over decoded JSON values. Extractors compose
// these instead of asserting types inline so no input shape can panic.

// asMap returns v as a JSON object.
func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// asList returns v as a JSON array.
func asList(v any) ([]any, bool) {
	l, ok := v.([]any)
	return l, ok
}

// asString returns v as a JSON string.
func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asInt returns v as an integer. encoding/json decodes all numbers to
// float64, so any integral float64 within exact range counts.
func asInt(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) || math.Abs(f) >= 1<<53 {
		return 0, false
	}
	return int(f), true
}
