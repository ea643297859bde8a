// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generator

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"
)

// fakeExecutor records the invocation and plays back canned output.
type fakeExecutor struct {
	stdout string
	stderr string
	err    error

	gotName  string
	gotArgs  []string
	gotStdin string
	calls    int
}

func (f *fakeExecutor) Run(_ context.Context, name string, args []string, stdin io.Reader) (string, string, error) {
	f.calls++
	f.gotName = name
	f.gotArgs = args
	data, _ := io.ReadAll(stdin)
	f.gotStdin = string(data)
	return f.stdout, f.stderr, f.err
}

func TestCLIGenerate(t *testing.T) {
	fake := &fakeExecutor{stdout: "  {\"unknowns\": []}\n"}
	cli := &CLI{Command: "claude --print", Timeout: time.Minute, exec: fake}

	out, err := cli.Generate(context.Background(), "read the paper")
	if err != nil {
		t.Fatal(err)
	}
	if out != `{"unknowns": []}` {
		t.Errorf("output = %q", out)
	}
	if fake.gotName != "claude" {
		t.Errorf("binary = %q, want claude", fake.gotName)
	}
	if len(fake.gotArgs) != 1 || fake.gotArgs[0] != "--print" {
		t.Errorf("args = %v", fake.gotArgs)
	}
	if fake.gotStdin != "read the paper" {
		t.Errorf("stdin = %q", fake.gotStdin)
	}
}

func TestCLIGenerateFailureCarriesDiagnostics(t *testing.T) {
	fake := &fakeExecutor{
		stdout: "partial output",
		stderr: "auth expired",
		err:    fmt.Errorf("exit status 1"),
	}
	cli := &CLI{Command: "claude", Timeout: time.Minute, exec: fake}

	_, err := cli.Generate(context.Background(), "p")
	if err == nil {
		t.Fatal("want error on non-zero exit")
	}
	for _, want := range []string{"claude", "exit status 1", "auth expired", "partial output"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error missing %q: %v", want, err)
		}
	}
}

func TestCLIGenerateEmptyCommand(t *testing.T) {
	cli := &CLI{Command: "   ", exec: &fakeExecutor{}}
	if _, err := cli.Generate(context.Background(), "p"); err == nil {
		t.Fatal("want error for empty command")
	}
}

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []string
		wantErr bool
	}{
		{"single word", "claude", []string{"claude"}, false},
		{"flags", "claude --print --model opus", []string{"claude", "--print", "--model", "opus"}, false},
		{"double quotes", `claude --system "be terse"`, []string{"claude", "--system", "be terse"}, false},
		{"single quotes", `claude 'a b' c`, []string{"claude", "a b", "c"}, false},
		{"escaped space", `claude a\ b`, []string{"claude", "a b"}, false},
		{"empty quoted arg", `claude ""`, []string{"claude", ""}, false},
		{"extra whitespace", "  claude \t --print  ", []string{"claude", "--print"}, false},
		{"empty", "", nil, false},
		{"unterminated quote", `claude "oops`, nil, true},
		{"trailing backslash", `claude \`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := splitCommand(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("splitCommand(%q) succeeded, want error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("splitCommand(%q): %v", tt.in, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("splitCommand(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("part %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
