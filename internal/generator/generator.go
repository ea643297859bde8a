// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generator invokes the external Claude generator that reads a
// paper and drafts the plan JSON. The generator is a black box: it takes
// a text prompt and returns raw text within a bounded time. Failures
// carry the collaborator's diagnostic output verbatim and are never
// retried at this level.
// Implements: prd001-plan-generation (R5);
//
//	docs/ARCHITECTURE § Generation.
package generator

import "context"

// Generator produces raw text for a prompt. Implementations wrap the
// Claude Code CLI or the Anthropic HTTP API so tests can supply a mock.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
