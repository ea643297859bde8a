// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paperplan/internal/generator"
	"github.com/pdiddy/paperplan/internal/pipeline"
	"github.com/pdiddy/paperplan/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate plan.md and plan_with_evidence.md from a PDF",
	Long: `Generate asks the external Claude generator to read a research paper
and produce a structured plan, then validates the answer and renders two
Markdown documents into the output directory: plan.md (concise) and
plan_with_evidence.md (with evidence quotes and an unknowns appendix).

The generator runs once, with a single repair round-trip when its output
is not valid JSON. Schema-level problems in the answer never fail the
run; affected fields degrade to "Unknown".`,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := generateConfig(cmd)

	var gen generator.Generator
	switch cfg.Backend {
	case types.BackendAPI:
		key := secretDefault("anthropic-api-key", cfg.APIKey)
		if key == "" {
			return fmt.Errorf("api backend requires a key: set --api-key or .secrets/anthropic-api-key")
		}
		gen = &generator.API{APIKey: key, Model: cfg.Model, MaxRetries: cfg.MaxRetries}
	case types.BackendCLI:
		gen = generator.NewCLI(cfg.ClaudeCmd, cfg.Timeout)
	default:
		return fmt.Errorf("unknown backend %q: want cli or api", cfg.Backend)
	}

	_, err := pipeline.Run(context.Background(), gen, cfg, os.Stdout)
	return err
}

func generateConfig(cmd *cobra.Command) types.GenerateConfig {
	file, _ := cmd.Flags().GetString("file")
	outDir, _ := cmd.Flags().GetString("out-dir")
	backend, _ := cmd.Flags().GetString("backend")
	claudeCmd, _ := cmd.Flags().GetString("claude-cmd")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	maxWords, _ := cmd.Flags().GetInt("max-words")
	savePlan, _ := cmd.Flags().GetBool("save-plan")
	model, _ := cmd.Flags().GetString("model")
	apiKey, _ := cmd.Flags().GetString("api-key")
	maxRetries, _ := cmd.Flags().GetInt("max-retries")

	return types.GenerateConfig{
		AIConfig: types.AIConfig{
			Model:      model,
			APIKey:     apiKey,
			MaxRetries: maxRetries,
		},
		PaperPath: file,
		OutDir:    outDir,
		Backend:   types.GeneratorBackend(backend),
		ClaudeCmd: claudeCmd,
		Timeout:   timeout,
		MaxWords:  maxWords,
		SavePlan:  savePlan,
	}
}

func init() {
	generateCmd.Flags().String("file", "", "path to the input PDF (required)")
	generateCmd.Flags().String("out-dir", "", "output directory for the plan documents (required)")
	generateCmd.Flags().String("backend", "cli", "generator backend: cli or api")
	generateCmd.Flags().String("claude-cmd", "claude", "Claude CLI invocation, optionally with flags")
	generateCmd.Flags().Duration("timeout", 30*time.Minute, "generator invocation timeout")
	generateCmd.Flags().Int("max-words", 400, "target word budget for the content sections")
	generateCmd.Flags().Bool("save-plan", false, "also write the parsed plan as plan.yaml")
	generateCmd.Flags().String("model", "claude-sonnet-4-5-20250929", "model identifier for the api backend")
	generateCmd.Flags().String("api-key", "", "API key for the api backend (default: .secrets/anthropic-api-key)")
	generateCmd.Flags().Int("max-retries", 5, "rate-limit retries for the api backend")

	generateCmd.MarkFlagRequired("file")
	generateCmd.MarkFlagRequired("out-dir")

	rootCmd.AddCommand(generateCmd)
}
