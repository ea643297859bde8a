// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"
)

// RepairInstruction is appended to the original prompt for the single
// repair round-trip after a parse failure. Per prd001-plan-generation R4.2.
const RepairInstruction = "\n\nYour last output was not valid JSON. Return valid JSON ONLY."

// Schema placeholder types. Marshaling structs keeps the key order the
// prompt presents to the model stable across runs.
type evidenceSchema struct {
	Page  string `json:"page"`
	Quote string `json:"quote"`
}

type objectiveSchema struct {
	Text     string           `json:"text"`
	Evidence []evidenceSchema `json:"evidence"`
}

type listItemSchema struct {
	Text     string           `json:"text"`
	Evidence []evidenceSchema `json:"evidence"`
}

type listSchema struct {
	Items            []listItemSchema `json:"items"`
	UnknownIfMissing bool             `json:"Unknown_if_missing"`
}

type experimentSchema struct {
	Name       string           `json:"name"`
	WhatVaried string           `json:"what_varied"`
	Metric     string           `json:"metric"`
	MainResult string           `json:"main_result"`
	Evidence   []evidenceSchema `json:"evidence"`
}

type experimentsSchema struct {
	Items            []experimentSchema `json:"items"`
	UnknownIfMissing bool               `json:"Unknown_if_missing"`
}

type planSchema struct {
	Objective   objectiveSchema   `json:"objective"`
	Hypothesis  listSchema        `json:"hypothesis"`
	Methodology listSchema        `json:"methodology"`
	Experiments experimentsSchema `json:"experiments"`
	Unknowns    []string          `json:"unknowns"`
}

// newPlanSchema builds the schema the prompt asks the generator to follow.
func newPlanSchema() planSchema {
	ev := []evidenceSchema{{Page: "int", Quote: "string"}}
	list := listSchema{
		Items:            []listItemSchema{{Text: "string", Evidence: ev}},
		UnknownIfMissing: true,
	}
	return planSchema{
		Objective:   objectiveSchema{Text: "string|Unknown", Evidence: ev},
		Hypothesis:  list,
		Methodology: list,
		Experiments: experimentsSchema{
			Items: []experimentSchema{{
				Name:       "string",
				WhatVaried: "string|Unknown",
				Metric:     "string|Unknown",
				MainResult: "string|Unknown",
				Evidence:   ev,
			}},
			UnknownIfMissing: true,
		},
		Unknowns: []string{"string"},
	}
}

// PromptInput carries the paper reference for prompt construction.
// Exactly one of PDFPath or PaperText should be set: the CLI backend
// points the generator at the local file, while the API backend cannot
// read local files and needs the text inline.
type PromptInput struct {
	PDFPath   string
	PaperText string
	MaxWords  int
}

// planPromptTmpl instructs the generator to read the paper and emit the
// five-key plan JSON. It enforces JSON-only output, the word budget,
// short verbatim evidence quotes, and explicit Unknown for absent
// sections. Per prd001-plan-generation R1.2.
var planPromptTmpl = template.Must(template.New("plan").Parse(`You are generating a structured Plan for a research paper to be evaluated by a standardized pipeline.

{{if .PaperText -}}
The full text of the paper appears at the end of this prompt between <paper> tags. Page boundaries are marked with <!-- page N --> comments.
{{- else -}}
You MUST read the PDF directly from this local path:
{{.PDFPath}}
{{- end}}

Hard constraints:
1) ONLY use information from the paper. Do NOT use external knowledge.
2) Output MUST be valid JSON ONLY. No markdown, no commentary.
3) The final plan must be concise:
   - Keep the combined length of objective+hypothesis+methodology+experiments summaries within ~{{.MaxWords}} words.
   - Methodology must not be empty or too shallow: include the core approach, model/data setting if stated, key analysis/intervention techniques, and how claims are tested.
4) The output must have EXACTLY these four content sections:
   - objective
   - hypothesis
   - methodology
   - experiments
   If a section cannot be found from the paper, set it explicitly to "Unknown" (or empty items with Unknown_if_missing honored).
5) Evidence:
   - For each hypothesis/methodology item and each experiment entry, include at least one evidence quote with page number.
   - Quotes must be short (<= 35 words) and plausibly verbatim from the paper.
6) Experiments must be a separate section (NOT nested under methodology). Provide 2-6 experiments if present, else Unknown.
7) Add an "unknowns" list for important missing details that a reproducer/evaluator would want but the paper does not specify.

Required JSON schema (types + keys). Follow it strictly:
{{.Schema}}

Now produce the JSON.
{{- if .PaperText}}

<paper>
{{.PaperText}}
</paper>
{{- end}}`))

// BuildPrompt renders the extraction request prompt for the given paper
// reference and word budget.
func BuildPrompt(in PromptInput) (string, error) {
	schema, err := json.MarshalIndent(newPlanSchema(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling plan schema: %w", err)
	}

	data := struct {
		PDFPath   string
		PaperText string
		MaxWords  int
		Schema    string
	}{
		PDFPath:   in.PDFPath,
		PaperText: in.PaperText,
		MaxWords:  in.MaxWords,
		Schema:    string(schema),
	}

	var buf bytes.Buffer
	if err := planPromptTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering plan prompt: %w", err)
	}
	return buf.String(), nil
}
