// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plan

import (
	"fmt"
	"strings"

	"github.com/pdiddy/paperplan/pkg/types"
)

// RenderConcise produces the concise plan document: the four headed
// sections with extractor text only. No evidence, no unknowns, no
// experiment sub-blocks beyond the field lines. Deterministic over its
// input, so repeated rendering is byte-identical.
func RenderConcise(s types.Sections) string {
	var b strings.Builder
	b.WriteString("# Plan\n")

	b.WriteString("## Objective\n")
	b.WriteString(s.Objective.Text.String() + "\n\n")

	b.WriteString("## Hypothesis\n")
	b.WriteString(renderList(s.Hypothesis) + "\n\n")

	b.WriteString("## Methodology\n")
	b.WriteString(renderList(s.Methodology) + "\n\n")

	b.WriteString("## Experiments\n")
	b.WriteString(renderExperiments(s.Experiments, false) + "\n")

	return b.String()
}

// RenderWithEvidence produces the annotated plan document: the same four
// sections, each followed by an Evidence sub-list when evidence exists
// (omitted entirely when none does), plus a trailing Unknowns section
// that always appears.
func RenderWithEvidence(s types.Sections) string {
	var b strings.Builder
	b.WriteString("# Plan (with evidence)\n")

	b.WriteString("## Objective\n")
	b.WriteString(s.Objective.Text.String() + "\n")
	writeEvidence(&b, s.Objective.Evidence)
	b.WriteString("\n")

	b.WriteString("## Hypothesis\n")
	b.WriteString(renderList(s.Hypothesis) + "\n")
	writeEvidence(&b, s.Hypothesis.Evidence)
	b.WriteString("\n")

	b.WriteString("## Methodology\n")
	b.WriteString(renderList(s.Methodology) + "\n")
	writeEvidence(&b, s.Methodology.Evidence)
	b.WriteString("\n")

	b.WriteString("## Experiments\n")
	b.WriteString(renderExperiments(s.Experiments, true) + "\n")

	b.WriteString("\n## Unknowns\n")
	if len(s.Unknowns) == 0 {
		b.WriteString("- (none)\n")
	} else {
		for _, u := range s.Unknowns {
			fmt.Fprintf(&b, "- %s\n", u)
		}
	}

	return b.String()
}

// renderList renders a numbered list section, or Unknown when no items
// survived extraction. Numbering is contiguous because dropped items
// never reach the Items slice.
func renderList(sec types.ListSection) string {
	if len(sec.Items) == 0 {
		return types.Unknown
	}
	var b strings.Builder
	for i, text := range sec.Items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, text)
	}
	return strings.TrimSpace(b.String())
}

// renderExperiments renders the experiment blocks, or Unknown when no
// named experiments survived. Evidence sub-lists appear only in the
// evidence variant and are capped per experiment.
func renderExperiments(exps []types.Experiment, includeEvidence bool) string {
	if len(exps) == 0 {
		return types.Unknown
	}

	blocks := make([]string, 0, len(exps))
	for _, e := range exps {
		var b strings.Builder
		fmt.Fprintf(&b, "### %s\n", e.Name)
		fmt.Fprintf(&b, "- What varied: %s\n", e.WhatVaried)
		fmt.Fprintf(&b, "- Metric: %s\n", e.Metric)
		fmt.Fprintf(&b, "- Main result: %s\n", e.MainResult)
		if includeEvidence && len(e.Evidence) > 0 {
			b.WriteString("- Evidence:\n")
			for _, line := range capEvidence(e.Evidence) {
				fmt.Fprintf(&b, "  - %s\n", line)
			}
		}
		blocks = append(blocks, b.String())
	}
	return strings.TrimSpace(strings.Join(blocks, "\n"))
}

// writeEvidence appends an Evidence sub-list, or nothing when the list
// is empty.
func writeEvidence(b *strings.Builder, lines []string) {
	if len(lines) == 0 {
		return
	}
	b.WriteString("\n**Evidence**:\n")
	for _, line := range lines {
		fmt.Fprintf(b, "- %s\n", line)
	}
}
