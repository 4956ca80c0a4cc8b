package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunMain - Command dispatch and exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"no command", []string{"md2notion"}, ExitUsage, "", "Usage: md2notion"},
		{"version", []string{"md2notion", "version"}, ExitSuccess, "md2notion dev", ""},
		{"help", []string{"md2notion", "help"}, ExitSuccess, "Commands:", ""},
		{"help push", []string{"md2notion", "help", "push"}, ExitSuccess, "NOTION_TOKEN", ""},
		{"unknown command", []string{"md2notion", "publish"}, ExitUsage, "", "unknown command: publish"},
		{"bad flag", []string{"md2notion", "convert", "--bogus"}, ExitUsage, "", "invalid flags"},
		{"flag help", []string{"md2notion", "convert", "--help"}, ExitSuccess, "", "Usage: md2notion convert"},
		{"missing file", []string{"md2notion", "convert", "missing.md"}, ExitIO, "", "error:"},
		{"missing token", []string{"md2notion", "push", "-p", testPageID, "a.md"}, ExitUsage, "", "hint: export NOTION_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env, stdout, stderr := testEnv(nil, nil)

			code := runMain(context.Background(), tt.args, env)

			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, stderr.String())
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want substring %q", stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want substring %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestRunMain_MarkdownShortcut(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeFile(t, dir, "note.md", "Hello **world**\n")
	env, _, stderr := testEnv(nil, nil)

	if code := runMain(context.Background(), []string{"md2notion", src, "-q"}, env); code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "note.json")); err != nil {
		t.Errorf("expected note.json: %v", err)
	}
}

func TestFormatError_Hints(t *testing.T) {
	t.Parallel()

	got := formatError(ErrNoParent)
	if !strings.HasPrefix(got, "error: ") || !strings.Contains(got, "hint:") {
		t.Errorf("formatError(ErrNoParent) = %q", got)
	}
}
