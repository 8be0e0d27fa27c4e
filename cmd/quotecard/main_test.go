package main

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunMain - Command dispatch
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
		{
			name:       "no command",
			args:       []string{"quotecard"},
			wantCode:   ExitUsage,
			wantStderr: "Usage: quotecard",
		},
		{
			name:       "unknown command",
			args:       []string{"quotecard", "render"},
			wantCode:   ExitUsage,
			wantStderr: "unknown command: render",
		},
		{
			name:       "version",
			args:       []string{"quotecard", "version"},
			wantCode:   ExitSuccess,
			wantStdout: "quotecard " + Version,
		},
		{
			name:       "version flag",
			args:       []string{"quotecard", "--version"},
			wantCode:   ExitSuccess,
			wantStdout: "quotecard " + Version,
		},
		{
			name:       "help",
			args:       []string{"quotecard", "help"},
			wantCode:   ExitSuccess,
			wantStdout: "Commands:",
		},
		{
			name:       "themes",
			args:       []string{"quotecard", "themes"},
			wantCode:   ExitSuccess,
			wantStdout: "purple",
		},
		{
			name:       "themes with argument",
			args:       []string{"quotecard", "themes", "blue"},
			wantCode:   ExitUsage,
			wantStderr: "error: invalid usage",
		},
		{
			name:       "export usage error",
			args:       []string{"quotecard", "export", "--theme", "red"},
			wantCode:   ExitUsage,
			wantStderr: "unknown theme",
		},
		{
			name:       "export help",
			args:       []string{"quotecard", "export", "--help"},
			wantCode:   ExitSuccess,
			wantStdout: "Usage: quotecard export",
		},
		{
			name:       "inspect missing file",
			args:       []string{"quotecard", "inspect", "/nonexistent/card.zip"},
			wantCode:   ExitIO,
			wantStderr: "error:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv(t, nil)
			code := runMain(tt.args, te.Environment)

			if code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d\nstderr: %s", code, tt.wantCode, te.stderr.String())
			}
			if tt.wantStdout != "" && !strings.Contains(te.stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want to contain %q", te.stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(te.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want to contain %q", te.stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestHasFlag(t *testing.T) {
	t.Parallel()

	if !hasFlag([]string{"--bundle", "-v"}, "-v", "--verbose") {
		t.Error("hasFlag should find -v")
	}
	if hasFlag([]string{"--value"}, "-v", "--verbose") {
		t.Error("hasFlag should match whole arguments only")
	}
}
