// Package plan validates, normalizes, and renders the structured plan
// JSON produced by the external generator. Every traversal is total:
// missing keys, wrong types, and malformed entries degrade to Unknown
// or empty rather than erroring, since the generator's adherence to the
// requested schema cannot be guaranteed.
// Implements: prd001-plan-generation (R1-R4);
//
//	docs/ARCHITECTURE § Plan Pipeline.
package plan

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	// leadingFence matches a code fence opening line (```json etc.).
	leadingFence = regexp.MustCompile("^```[a-zA-Z]*\n")

	// trailingFence matches a code fence closing line.
	trailingFence = regexp.MustCompile("\n```$")
)

// Parse parses a raw generator response into a plan document. A single
// leading and trailing code fence line is stripped before parsing. The
// response must decode to one JSON object; anything else is a parse
// failure that feeds the single repair round-trip. Shape problems below
// the top level are not errors — the extractors tolerate them.
func Parse(raw string) (map[string]any, error) {
	text := stripFences(strings.TrimSpace(raw))

	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, fmt.Errorf("parsing plan JSON: %w", err)
	}

	doc, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("plan JSON decoded to %T, want a JSON object", v)
	}
	return doc, nil
}

// stripFences removes one leading and one trailing code fence line.
func stripFences(text string) string {
	text = leadingFence.ReplaceAllString(text, "")
	text = trailingFence.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
