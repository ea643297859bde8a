// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"
	"unicode"
)

// executor abstracts command execution for testing.
type executor interface {
	Run(ctx context.Context, name string, args []string, stdin io.Reader) (stdout, stderr string, err error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (osExecutor) Run(ctx context.Context, name string, args []string, stdin io.Reader) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	err := cmd.Run()
	return out.String(), errBuf.String(), err
}

// CLI invokes the Claude Code CLI with the prompt on stdin, capturing
// stdout as the model output. The invocation string may carry extra
// flags (e.g. "claude --dangerously-allow-file-access"); it is split
// shell-like, honoring quotes.
type CLI struct {
	// Command is the CLI invocation string.
	Command string

	// Timeout bounds one invocation. Zero means no bound beyond the
	// caller's context.
	Timeout time.Duration

	exec executor
}

// NewCLI creates a CLI generator for the given invocation string.
func NewCLI(command string, timeout time.Duration) *CLI {
	return &CLI{Command: command, Timeout: timeout, exec: osExecutor{}}
}

// Generate runs the CLI once. A non-zero exit or timeout is fatal and
// the error carries the command, exit indication, and captured stderr
// and stdout so the caller can surface the collaborator's diagnostics.
func (c *CLI) Generate(ctx context.Context, prompt string) (string, error) {
	parts, err := splitCommand(c.Command)
	if err != nil {
		return "", fmt.Errorf("parsing generator command %q: %w", c.Command, err)
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("empty generator command")
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	stdout, stderr, err := c.exec.Run(ctx, parts[0], parts[1:], strings.NewReader(prompt))
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("generator timed out after %s\nCommand: %s", c.Timeout, c.Command)
		}
		return "", fmt.Errorf(
			"generator failed\nCommand: %s\nError: %v\nSTDERR:\n%s\nSTDOUT:\n%s",
			c.Command, err, strings.TrimSpace(stderr), strings.TrimSpace(stdout),
		)
	}

	return strings.TrimSpace(stdout), nil
}

// splitCommand tokenizes a shell-like invocation string. Single and
// double quotes group words; backslash escapes the next character
// outside single quotes. Good enough for typical CLI invocations.
func splitCommand(s string) ([]string, error) {
	var parts []string
	var cur strings.Builder
	var quote rune
	inToken := false
	escaped := false

	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case quote == '\'':
			if r == '\'' {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\\':
			escaped = true
			inToken = true
		case quote == '"':
			if r == '"' {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inToken = true
		case unicode.IsSpace(r):
			if inToken {
				parts = append(parts, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}

	if escaped {
		return nil, fmt.Errorf("trailing backslash")
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if inToken {
		parts = append(parts, cur.String())
	}
	return parts, nil
}
