// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plan

import (
	"encoding/json"
	"testing"
)

// decodeDoc parses a JSON object fixture into a plan document.
func decodeDoc(t *testing.T, raw string) map[string]any {
	t.Helper()
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("bad test fixture: %v", err)
	}
	return doc
}

func TestExtractObjective(t *testing.T) {
	doc := decodeDoc(t, `{
		"objective": {
			"text": "Explain grokking dynamics",
			"evidence": [
				{"page": 1, "quote": "We study grokking."},
				{"page": 2, "quote": "Sudden generalization."},
				{"page": 3, "quote": "Weight decay matters."}
			]
		}
	}`)

	obj := extractObjective(doc)
	if obj.Text.String() != "Explain grokking dynamics" {
		t.Errorf("objective text = %q", obj.Text.String())
	}
	// No cap at the extractor level: the objective keeps all evidence.
	if len(obj.Evidence) != 3 {
		t.Errorf("got %d evidence lines, want 3", len(obj.Evidence))
	}
}

func TestExtractObjectiveMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"absent", `{}`},
		{"wrong type", `{"objective": "just a string"}`},
		{"list", `{"objective": [1, 2]}`},
		{"text wrong type nested", `{"objective": {"text": null}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := extractObjective(decodeDoc(t, tt.raw))
			if obj.Text.String() != "Unknown" {
				t.Errorf("objective = %q, want Unknown", obj.Text.String())
			}
		})
	}
}

func TestExtractListSectionDropsUnknownItems(t *testing.T) {
	doc := decodeDoc(t, `{
		"hypothesis": {"items": [
			{"text": "n/a"},
			{"text": "A"},
			{"text": "   "},
			{"text": "B"}
		]}
	}`)

	sec := extractListSection(doc, "hypothesis")
	if len(sec.Items) != 2 || sec.Items[0] != "A" || sec.Items[1] != "B" {
		t.Errorf("items = %v, want [A B]", sec.Items)
	}
}

func TestExtractListSectionEvidenceCap(t *testing.T) {
	doc := decodeDoc(t, `{
		"methodology": {"items": [
			{"text": "Probe activations", "evidence": [
				{"page": 1, "quote": "one"},
				{"page": 2, "quote": "two"},
				{"page": 3, "quote": "three"}
			]},
			{"text": "Ablate heads", "evidence": [
				{"page": 4, "quote": "four"}
			]}
		]}
	}`)

	sec := extractListSection(doc, "methodology")
	// Two lines from the first item (capped), one from the second.
	want := []string{`(p.1) "one"`, `(p.2) "two"`, `(p.4) "four"`}
	if len(sec.Evidence) != len(want) {
		t.Fatalf("evidence = %v, want %v", sec.Evidence, want)
	}
	for i := range want {
		if sec.Evidence[i] != want[i] {
			t.Errorf("evidence[%d] = %q, want %q", i, sec.Evidence[i], want[i])
		}
	}
}

func TestExtractListSectionMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"absent", `{}`},
		{"section wrong type", `{"hypothesis": 7}`},
		{"items wrong type", `{"hypothesis": {"items": "nope"}}`},
		{"items empty", `{"hypothesis": {"items": []}}`},
		{"non-map items", `{"hypothesis": {"items": [1, "two", null]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sec := extractListSection(decodeDoc(t, tt.raw), "hypothesis")
			if len(sec.Items) != 0 {
				t.Errorf("items = %v, want empty", sec.Items)
			}
		})
	}
}

func TestExtractExperimentsDropsNameless(t *testing.T) {
	doc := decodeDoc(t, `{
		"experiments": {"items": [
			{"metric": "accuracy"},
			{"name": "Unknown", "metric": "loss"},
			{"name": "Digit-length sweep", "metric": "exact-match accuracy"}
		]}
	}`)

	exps := extractExperiments(doc)
	if len(exps) != 1 {
		t.Fatalf("got %d experiments, want 1", len(exps))
	}
	e := exps[0]
	if e.Name != "Digit-length sweep" {
		t.Errorf("name = %q", e.Name)
	}
	if e.Metric.String() != "exact-match accuracy" {
		t.Errorf("metric = %q", e.Metric.String())
	}
	if e.WhatVaried.String() != "Unknown" || e.MainResult.String() != "Unknown" {
		t.Errorf("absent fields should read Unknown: %q / %q", e.WhatVaried, e.MainResult)
	}
}

func TestExtractExperimentsKeepsFullEvidence(t *testing.T) {
	doc := decodeDoc(t, `{
		"experiments": {"items": [
			{"name": "Sweep", "evidence": [
				{"page": 1, "quote": "a"},
				{"page": 2, "quote": "b"},
				{"page": 3, "quote": "c"}
			]}
		]}
	}`)

	exps := extractExperiments(doc)
	if len(exps) != 1 || len(exps[0].Evidence) != 3 {
		t.Fatalf("experiments keep full evidence lists, renderers cap display: %v", exps)
	}
}

func TestExtractUnknowns(t *testing.T) {
	doc := decodeDoc(t, `{"unknowns": ["learning rate schedule", "", "n/a", 42]}`)

	got := extractUnknowns(doc)
	want := []string{"learning rate schedule", "Unknown", "Unknown", "42"}
	if len(got) != len(want) {
		t.Fatalf("unknowns = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("unknowns[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExtractUnknownsNonList(t *testing.T) {
	for _, raw := range []string{`{}`, `{"unknowns": "none"}`, `{"unknowns": {"a": 1}}`} {
		if got := extractUnknowns(decodeDoc(t, raw)); len(got) != 0 {
			t.Errorf("unknowns for %s = %v, want empty", raw, got)
		}
	}
}

func TestExtractTotalOverGarbage(t *testing.T) {
	// Every key present with a hostile shape; Extract must not panic
	// and every section must degrade.
	doc := decodeDoc(t, `{
		"objective": 1,
		"hypothesis": [true],
		"methodology": {"items": {"text": "x"}},
		"experiments": {"items": [null, 3, {"name": null}]},
		"unknowns": {"oops": []}
	}`)

	s := Extract(doc)
	if s.Objective.Text.String() != "Unknown" {
		t.Error("objective should degrade to Unknown")
	}
	if len(s.Hypothesis.Items) != 0 || len(s.Methodology.Items) != 0 {
		t.Error("list sections should degrade to empty")
	}
	if len(s.Experiments) != 0 {
		t.Error("experiments should degrade to empty")
	}
	if len(s.Unknowns) != 0 {
		t.Error("unknowns should degrade to empty")
	}
}
