// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates one plan generation run: verify the
// input, build the prompt, invoke the generator, parse the response
// with at most one repair round-trip, render both documents, and
// persist them. Runs are sequential and stateless; both documents are
// rendered in memory before either file is written, so a fatal error
// leaves the output directory untouched.
// Implements: prd001-plan-generation (R1, R4, R6);
//
//	docs/ARCHITECTURE § Plan Pipeline.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paperplan/internal/generator"
	"github.com/pdiddy/paperplan/internal/paper"
	"github.com/pdiddy/paperplan/internal/plan"
	"github.com/pdiddy/paperplan/pkg/types"
)

const (
	planFile             = "plan.md"
	planWithEvidenceFile = "plan_with_evidence.md"
	planArtifactFile     = "plan.yaml"
)

// Result reports what a run produced.
type Result struct {
	// PlanPath is the concise document path.
	PlanPath string

	// EvidencePath is the annotated document path.
	EvidencePath string

	// Repaired reports whether the single repair round-trip was taken.
	Repaired bool

	// Pages is the probed input page count, zero when the probe failed.
	Pages int
}

// Run executes one generation run end to end. The input file must exist
// before the generator is contacted; generator failures and a second
// parse failure abort the run before any file is written.
func Run(ctx context.Context, gen generator.Generator, cfg types.GenerateConfig, w io.Writer) (Result, error) {
	info, err := paper.Verify(cfg.PaperPath)
	if err != nil {
		return Result{}, err
	}
	if info.Pages > 0 {
		fmt.Fprintf(w, "input %s (%d pages)\n", cfg.PaperPath, info.Pages)
	} else {
		fmt.Fprintf(w, "warning: %s does not probe as a PDF; handing it to the generator anyway\n", cfg.PaperPath)
	}

	in := plan.PromptInput{MaxWords: cfg.MaxWords}
	if cfg.Backend == types.BackendAPI {
		// The HTTP API cannot read local files; carry the text inline.
		text, err := paper.Text(cfg.PaperPath)
		if err != nil {
			return Result{}, fmt.Errorf("api backend needs the paper text inline: %w", err)
		}
		in.PaperText = text
	} else {
		abs, err := filepath.Abs(cfg.PaperPath)
		if err != nil {
			return Result{}, fmt.Errorf("resolving input path: %w", err)
		}
		in.PDFPath = abs
	}

	prompt, err := plan.BuildPrompt(in)
	if err != nil {
		return Result{}, err
	}

	fmt.Fprintln(w, "generating plan")
	raw, err := gen.Generate(ctx, prompt)
	if err != nil {
		return Result{}, err
	}

	doc, perr := plan.Parse(raw)
	repaired := false
	if perr != nil {
		// One repair round-trip; a second parse failure is fatal.
		fmt.Fprintf(w, "response was not valid JSON (%v); requesting repair\n", perr)
		raw, err = gen.Generate(ctx, prompt+plan.RepairInstruction)
		if err != nil {
			return Result{}, err
		}
		doc, perr = plan.Parse(raw)
		if perr != nil {
			return Result{}, fmt.Errorf("repair attempt still malformed: %w", perr)
		}
		repaired = true
	}

	sections := plan.Extract(doc)
	concise := plan.RenderConcise(sections)
	withEvidence := plan.RenderWithEvidence(sections)

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("creating output directory: %w", err)
	}

	res := Result{
		PlanPath:     filepath.Join(cfg.OutDir, planFile),
		EvidencePath: filepath.Join(cfg.OutDir, planWithEvidenceFile),
		Repaired:     repaired,
		Pages:        info.Pages,
	}

	if err := os.WriteFile(res.PlanPath, []byte(concise), 0o644); err != nil {
		return Result{}, fmt.Errorf("writing %s: %w", planFile, err)
	}
	if err := os.WriteFile(res.EvidencePath, []byte(withEvidence), 0o644); err != nil {
		return Result{}, fmt.Errorf("writing %s: %w", planWithEvidenceFile, err)
	}
	fmt.Fprintf(w, "wrote %s\n", res.PlanPath)
	fmt.Fprintf(w, "wrote %s\n", res.EvidencePath)

	if cfg.SavePlan {
		data, err := yaml.Marshal(doc)
		if err != nil {
			return res, fmt.Errorf("marshaling plan artifact: %w", err)
		}
		artifact := filepath.Join(cfg.OutDir, planArtifactFile)
		if err := os.WriteFile(artifact, data, 0o644); err != nil {
			return res, fmt.Errorf("writing %s: %w", planArtifactFile, err)
		}
		fmt.Fprintf(w, "wrote %s\n", artifact)
	}

	return res, nil
}
