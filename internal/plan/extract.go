// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plan

import "github.com/pdiddy/paperplan/pkg/types"

// Extract reads the four content sections and the unknowns list from a
// parsed plan document. Each section traversal is independent, read-only,
// and total: any structural mismatch yields a missing field or an empty
// list, never an error. Per prd001-plan-generation R2.1-R2.5.
func Extract(doc map[string]any) types.Sections {
	return types.Sections{
		Objective:   extractObjective(doc),
		Hypothesis:  extractListSection(doc, "hypothesis"),
		Methodology: extractListSection(doc, "methodology"),
		Experiments: extractExperiments(doc),
		Unknowns:    extractUnknowns(doc),
	}
}

// extractObjective reads objective.text and objective.evidence. The
// objective keeps its full evidence list; there is no cap at this level.
func extractObjective(doc map[string]any) types.ObjectiveSection {
	obj, ok := asMap(doc["objective"])
	if !ok {
		return types.ObjectiveSection{Text: types.Missing()}
	}
	return types.ObjectiveSection{
		Text:     Normalize(obj["text"]),
		Evidence: FormatEvidence(obj["evidence"]),
	}
}

// extractListSection reads <key>.items for hypothesis and methodology.
// Items whose text normalizes to missing are dropped from the list, so
// rendered numbering stays contiguous. Evidence is collected across all
// object items, at most maxEvidencePerItem lines each, exposing only the
// canonical (p.X) "quote" form.
func extractListSection(doc map[string]any, key string) types.ListSection {
	sec, ok := asMap(doc[key])
	if !ok {
		return types.ListSection{}
	}
	items, ok := asList(sec["items"])
	if !ok {
		return types.ListSection{}
	}

	var out types.ListSection
	for _, raw := range items {
		item, ok := asMap(raw)
		if !ok {
			continue
		}

		if text := Normalize(item["text"]); text.Known() {
			out.Items = append(out.Items, text.Text())
		}
		out.Evidence = append(out.Evidence, capEvidence(FormatEvidence(item["evidence"]))...)
	}
	return out
}

// extractExperiments reads experiments.items. An experiment without a
// resolvable name is not renderable and is dropped whole; survivors
// carry independently normalized fields and their full evidence list
// (the renderer applies the display cap).
func extractExperiments(doc map[string]any) []types.Experiment {
	sec, ok := asMap(doc["experiments"])
	if !ok {
		return nil
	}
	items, ok := asList(sec["items"])
	if !ok {
		return nil
	}

	var out []types.Experiment
	for _, raw := range items {
		item, ok := asMap(raw)
		if !ok {
			continue
		}

		name := Normalize(item["name"])
		if !name.Known() {
			continue
		}

		out = append(out, types.Experiment{
			Name:       name.Text(),
			WhatVaried: Normalize(item["what_varied"]),
			Metric:     Normalize(item["metric"]),
			MainResult: Normalize(item["main_result"]),
			Evidence:   FormatEvidence(item["evidence"]),
		})
	}
	return out
}

// extractUnknowns reads the unknowns list. Entries are normalized
// independently; unlike list-section items, placeholder entries are
// kept and surface as the literal Unknown.
func extractUnknowns(doc map[string]any) []string {
	items, ok := asList(doc["unknowns"])
	if !ok {
		return nil
	}

	out := make([]string, 0, len(items))
	for _, raw := range items {
		out = append(out, Normalize(raw).String())
	}
	return out
}
