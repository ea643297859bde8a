// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Unknown is the canonical placeholder text for any plan field the
// generator could not determine or reported as absent.
const Unknown = "Unknown"

// Field is an extracted text value that is either present or missing.
// Keeping the distinction explicit until rendering avoids conflating a
// paper whose objective genuinely reads "Unknown" with a missing one
// inside the pipeline; the two still render identically at the boundary.
// Per prd001-plan-generation R2.1.
type Field struct {
	text  string
	known bool
}

// Present returns a Field carrying the given text.
func Present(text string) Field {
	return Field{text: text, known: true}
}

// Missing returns the absent Field.
func Missing() Field {
	return Field{}
}

// Known reports whether the field carries extracted text.
func (f Field) Known() bool {
	return f.known
}

// Text returns the underlying text, empty when missing.
func (f Field) Text() string {
	return f.text
}

// String renders the field at the output boundary: the literal "Unknown"
// when missing, the extracted text otherwise.
func (f Field) String() string {
	if !f.known {
		return Unknown
	}
	return f.text
}

// ObjectiveSection is the extracted objective of a paper.
type ObjectiveSection struct {
	// Text is the objective statement.
	Text Field

	// Evidence lists formatted citation lines supporting the objective.
	Evidence []string
}

// ListSection is an extracted numbered-list section (hypothesis or
// methodology). Items that normalized to missing have already been
// dropped, so rendering numbers the remainder contiguously.
type ListSection struct {
	// Items holds the surviving item texts in source order.
	Items []string

	// Evidence lists formatted citation lines collected across items,
	// at most two per source item.
	Evidence []string
}

// Experiment is one extracted experiment entry. Entries without a
// resolvable name are not representable and are dropped at extraction.
type Experiment struct {
	// Name is the experiment heading.
	Name string

	// WhatVaried describes the manipulated variable or condition.
	WhatVaried Field

	// Metric is the evaluation measure.
	Metric Field

	// MainResult is the headline outcome.
	MainResult Field

	// Evidence lists all formatted citation lines for the entry;
	// renderers cap the displayed count.
	Evidence []string
}

// Sections gathers the four extracted content sections plus the unknowns
// list for one paper. It is the sole input to both renderers.
type Sections struct {
	Objective   ObjectiveSection
	Hypothesis  ListSection
	Methodology ListSection
	Experiments []Experiment
	Unknowns    []string
}
