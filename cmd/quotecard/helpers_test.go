package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	quotecard "github.com/alnah/go-quotecard"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake exporter and environment
// ---------------------------------------------------------------------------

// fakeExporter records what the CLI asked for and returns canned outcomes.
type fakeExporter struct {
	mu       sync.Mutex
	outcomes map[quotecard.Channel]quotecard.Outcome
	session  *quotecard.Session
	opts     int
	calls    []quotecard.Channel
	closed   bool
}

func (f *fakeExporter) Export(_ context.Context, ch quotecard.Channel) (quotecard.Outcome, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, ch)
	o, ok := f.outcomes[ch]
	if !ok {
		o = quotecard.Outcome{Channel: ch, FileName: "quote-card.out", Size: 1}
	}
	o.Channel = ch
	return o, true
}

func (f *fakeExporter) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeExporter) card() quotecard.Card {
	c, _ := f.session.Snapshot()
	return c
}

// testEnv bundles an Environment with its captured output.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	fake   *fakeExporter
}

func newTestEnv(t *testing.T, vars map[string]string) *testEnv {
	t.Helper()
	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		fake:   &fakeExporter{outcomes: map[quotecard.Channel]quotecard.Outcome{}},
	}
	te.Environment = &Environment{
		Now:     func() time.Time { return time.Date(2026, 3, 22, 0, 0, 0, 0, time.UTC) },
		Stdout:  te.stdout,
		Stderr:  te.stderr,
		Getenv:  func(k string) string { return vars[k] },
		Environ: func() []string { return envList(vars) },
		Clock:   clockwork.NewFakeClock(),
		NoColor: true,
		NewExporter: func(s *quotecard.Session, opts ...quotecard.Option) (Exporter, error) {
			te.fake.session = s
			te.fake.opts = len(opts)
			return te.fake, nil
		},
	}
	return te
}

func envList(vars map[string]string) []string {
	out := make([]string, 0, len(vars))
	for k, v := range vars {
		out = append(out, k+"="+v)
	}
	return out
}

// writeFontDir creates a directory holding every font variant.
func writeFontDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, v := range quotecard.FontVariants() {
		if err := os.WriteFile(filepath.Join(dir, v.Name), []byte("font:"+v.Name), 0o644); err != nil {
			t.Fatalf("write font: %v", err)
		}
	}
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
