package main

// Notes:
// - Environment lookups are injected through Environment.Getenv, so
//   container and font tests run in parallel without touching os env.
// - Chrome detection depends on system state; only output consistency is checked.
// - Container hints other than QUOTECARD_CONTAINER are skipped when the
//   test itself runs in Docker, since /.dockerenv takes priority.

import (
	"encoding/json"
	"runtime"
	"strings"
	"testing"

	"github.com/alnah/go-quotecard/internal/fileutil"
)

func doctorJSON(t *testing.T, vars map[string]string) (*doctorResult, int) {
	t.Helper()
	te := newTestEnv(t, vars)
	code := runDoctorCmd([]string{"--json"}, te.Environment)

	var result doctorResult
	if err := json.Unmarshal(te.stdout.Bytes(), &result); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput was: %s", err, te.stdout.String())
	}
	return &result, code
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd_JSONOutput - Verifies JSON output format and structure
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_JSONOutput(t *testing.T) {
	t.Parallel()

	result, exitCode := doctorJSON(t, nil)

	validStatuses := map[string]bool{"ready": true, "warnings": true, "errors": true}
	if !validStatuses[result.Status] {
		t.Errorf("Invalid status %q, expected ready/warnings/errors", result.Status)
	}

	// Exit code should be consistent with status
	if result.Status == "errors" && exitCode != ExitGeneral {
		t.Errorf("Expected exit code %d for errors status, got %d", ExitGeneral, exitCode)
	}
	if result.Status != "errors" && exitCode != ExitSuccess {
		t.Errorf("Expected exit code %d for non-error status, got %d", ExitSuccess, exitCode)
	}

	if result.Env.OS != runtime.GOOS || result.Env.Arch != runtime.GOARCH {
		t.Errorf("platform = %s/%s, want %s/%s", result.Env.OS, result.Env.Arch, runtime.GOOS, runtime.GOARCH)
	}
	if !result.System.TempWritable {
		t.Error("temp directory should be writable in tests")
	}

	// Without a font source the doctor warns
	if result.Fonts.Source != "none" {
		t.Errorf("fonts.source = %q, want none", result.Fonts.Source)
	}
	if result.Status == "ready" {
		t.Error("status should not be ready without a font source")
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd_HumanOutput - Verifies human-readable output format
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_HumanOutput(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, nil)
	runDoctorCmd(nil, te.Environment)

	output := te.stdout.String()
	for _, section := range []string{
		"quotecard doctor",
		"Chrome/Chromium",
		"Environment",
		"Fonts",
		"System",
		"Status:",
	} {
		if !strings.Contains(output, section) {
			t.Errorf("Output should contain section %q", section)
		}
	}
	if !strings.Contains(output, runtime.GOOS+"/"+runtime.GOARCH) {
		t.Error("Output should contain the platform")
	}
	if !strings.Contains(output, "[WARN] No font source") {
		t.Errorf("Output should warn about fonts:\n%s", output)
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd_Fonts - Font source checks
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_Fonts(t *testing.T) {
	t.Parallel()

	complete := writeFontDir(t)
	partial := t.TempDir()
	writeFile(t, partial, "Huiwenmincho-improved.ttf", "font")

	tests := []struct {
		name        string
		vars        map[string]string
		wantSource  string
		wantMissing int
		wantError   string
	}{
		{
			name:       "complete directory",
			vars:       map[string]string{"QUOTECARD_FONTS_DIR": complete},
			wantSource: "dir",
		},
		{
			name:        "partial directory",
			vars:        map[string]string{"QUOTECARD_FONTS_DIR": partial},
			wantSource:  "dir",
			wantMissing: 2,
			wantError:   "Font files missing",
		},
		{
			name:       "url",
			vars:       map[string]string{"QUOTECARD_FONTS_URL": "https://cdn.example.com/font"},
			wantSource: "url",
		},
		{
			name:       "bad url",
			vars:       map[string]string{"QUOTECARD_FONTS_URL": "cdn.example.com"},
			wantSource: "url",
			wantError:  "QUOTECARD_FONTS_URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, _ := doctorJSON(t, tt.vars)
			if result.Fonts.Source != tt.wantSource {
				t.Errorf("source = %q, want %q", result.Fonts.Source, tt.wantSource)
			}
			if len(result.Fonts.Missing) != tt.wantMissing {
				t.Errorf("missing = %v, want %d entries", result.Fonts.Missing, tt.wantMissing)
			}

			joined := strings.Join(result.Errors, "\n")
			if tt.wantError == "" {
				if strings.Contains(joined, "Font") || strings.Contains(joined, "FONTS") {
					t.Errorf("unexpected font error: %s", joined)
				}
				return
			}
			if !strings.Contains(joined, tt.wantError) {
				t.Errorf("errors = %v, want one containing %q", result.Errors, tt.wantError)
			}
			if result.Status != "errors" {
				t.Errorf("status = %q, want errors", result.Status)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsContainer - Container detection signals
// ---------------------------------------------------------------------------

func TestIsContainer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		vars          map[string]string
		wantContainer bool
		wantHint      string
	}{
		{
			name:          "kubernetes environment",
			vars:          map[string]string{"KUBERNETES_SERVICE_HOST": "10.0.0.1"},
			wantContainer: true,
			wantHint:      "KUBERNETES_SERVICE_HOST",
		},
		{
			name:          "podman container",
			vars:          map[string]string{"container": "podman"},
			wantContainer: true,
			wantHint:      "container=podman",
		},
		{
			name: "no signal",
			vars: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if fileutil.FileExists("/.dockerenv") {
				t.Skip("running in Docker")
			}

			got, hint := isContainer(mapGetenv(tt.vars))
			if got != tt.wantContainer || hint != tt.wantHint {
				t.Errorf("isContainer() = (%v, %q), want (%v, %q)", got, hint, tt.wantContainer, tt.wantHint)
			}
		})
	}
}

func TestRunDoctorCmd_ContainerPriority(t *testing.T) {
	t.Parallel()

	result, _ := doctorJSON(t, map[string]string{
		"QUOTECARD_CONTAINER":     "1",
		"KUBERNETES_SERVICE_HOST": "10.0.0.1",
	})

	// QUOTECARD_CONTAINER should have highest priority
	if result.Env.ContainerHint != "QUOTECARD_CONTAINER=1" {
		t.Errorf("QUOTECARD_CONTAINER should have priority, got hint %q", result.Env.ContainerHint)
	}
	if !strings.Contains(strings.Join(result.Warnings, "\n"), "ROD_NO_SANDBOX") {
		t.Errorf("container without ROD_NO_SANDBOX should warn, got %v", result.Warnings)
	}
}

func TestRunDoctorCmd_CIDetection(t *testing.T) {
	t.Parallel()

	result, _ := doctorJSON(t, map[string]string{"GITHUB_ACTIONS": "true", "ROD_NO_SANDBOX": "1"})
	if !result.Env.CI {
		t.Error("CI should be detected")
	}
	for _, w := range result.Warnings {
		if strings.Contains(w, "ROD_NO_SANDBOX") {
			t.Errorf("no sandbox warning expected when ROD_NO_SANDBOX=1, got %q", w)
		}
	}
}
