// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// GeneratorBackend identifies how the external Claude generator is invoked.
// Per prd001-plan-generation R5.1.
type GeneratorBackend string

const (
	// BackendCLI pipes the prompt through the Claude Code CLI on stdin.
	BackendCLI GeneratorBackend = "cli"

	// BackendAPI calls the Anthropic Messages API over HTTP.
	BackendAPI GeneratorBackend = "api"
)

// AIConfig holds shared settings for the API generator backend.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for rate-limited API calls (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// GenerateConfig holds settings for one plan generation run.
// Per prd001-plan-generation R5.1-R5.6.
type GenerateConfig struct {
	AIConfig `yaml:",inline"`

	// PaperPath is the path to the input PDF. The file must exist before
	// the generator is contacted.
	PaperPath string `json:"paper_path" yaml:"paper_path"`

	// OutDir is the directory receiving plan.md and plan_with_evidence.md.
	// Created if absent.
	OutDir string `json:"out_dir" yaml:"out_dir"`

	// Backend selects the generator invocation: cli or api.
	Backend GeneratorBackend `json:"backend" yaml:"backend"`

	// ClaudeCmd is the CLI invocation string, optionally with flags
	// (e.g. "claude --dangerously-allow-file-access"). Default "claude".
	ClaudeCmd string `json:"claude_cmd" yaml:"claude_cmd"`

	// Timeout bounds a single generator invocation (default 30m).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// MaxWords is the soft combined word budget for the four content
	// sections of the plan (default 400).
	MaxWords int `json:"max_words" yaml:"max_words"`

	// SavePlan also persists the parsed plan as plan.yaml next to the
	// Markdown outputs.
	SavePlan bool `json:"save_plan" yaml:"save_plan"`
}

// CatalogConfig holds settings for the plan catalog stage.
// Per prd002-plan-catalog R1.2.
type CatalogConfig struct {
	// BaseDir is the directory tree scanned for generated plans. The
	// catalog database lives at BaseDir/index/plans.db.
	BaseDir string `json:"base_dir" yaml:"base_dir"`

	// MaxResults is the default maximum number of listing results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
