// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plan

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// maxQuoteWords bounds the length of a rendered evidence quote.
	maxQuoteWords = 40

	// maxEvidencePerItem caps how many evidence lines one item or
	// experiment contributes to the output.
	maxEvidencePerItem = 2
)

// whitespaceRun matches runs of whitespace for quote collapsing.
var whitespaceRun = regexp.MustCompile(`\s+`)

// FormatEvidence converts a raw evidence value into formatted citation
// lines of the form (p.X) "quote". Non-list input yields nil; entries
// that are not objects, or whose quote is empty after collapsing, are
// skipped. A missing or non-integer page renders as (p.?). Input order
// is preserved; nothing is deduplicated.
func FormatEvidence(v any) []string {
	entries, ok := asList(v)
	if !ok {
		return nil
	}

	var lines []string
	for _, entry := range entries {
		m, ok := asMap(entry)
		if !ok {
			continue
		}

		raw, ok := asString(m["quote"])
		if !ok {
			continue
		}
		quote := collapseQuote(raw)
		if quote == "" {
			continue
		}

		if page, ok := asInt(m["page"]); ok {
			lines = append(lines, fmt.Sprintf("(p.%d) \"%s\"", page, quote))
		} else {
			lines = append(lines, fmt.Sprintf("(p.?) \"%s\"", quote))
		}
	}
	return lines
}

// collapseQuote trims a quote, collapses internal whitespace runs to
// single spaces, and truncates past maxQuoteWords with an ellipsis.
func collapseQuote(q string) string {
	q = strings.TrimSpace(whitespaceRun.ReplaceAllString(q, " "))
	words := strings.Split(q, " ")
	if q == "" || len(words) <= maxQuoteWords {
		return q
	}
	return strings.Join(words[:maxQuoteWords], " ") + "..."
}

// capEvidence bounds a formatted evidence list to the per-item display cap.
func capEvidence(lines []string) []string {
	if len(lines) > maxEvidencePerItem {
		return lines[:maxEvidencePerItem]
	}
	return lines
}
