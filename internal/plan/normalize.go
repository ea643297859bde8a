// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plan

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pdiddy/paperplan/pkg/types"
)

// unknownSynonyms are the strings the generator uses to report absence.
// Matched case-insensitively after trimming.
var unknownSynonyms = map[string]bool{
	"unknown":       true,
	"n/a":           true,
	"na":            true,
	"not specified": true,
	"not stated":    true,
}

// Normalize maps an arbitrary JSON value to a present-text Field or
// Missing. Nil, empty strings, and absence synonyms are missing; other
// strings pass trimmed; non-string scalars and nested values are kept
// in a stable string form. Pure and total over any decoded JSON input.
func Normalize(v any) types.Field {
	switch x := v.(type) {
	case nil:
		return types.Missing()
	case string:
		s := strings.TrimSpace(x)
		if s == "" || unknownSynonyms[strings.ToLower(s)] {
			return types.Missing()
		}
		return types.Present(s)
	default:
		return types.Present(scalarString(v))
	}
}

// scalarString renders a non-string JSON value as text. Integral numbers
// print without a fractional part so a page count of 3 reads "3".
func scalarString(v any) string {
	switch x := v.(type) {
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1<<53 {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprintf("%v", v)
	}
}
