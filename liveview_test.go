package quotecard

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

// ---------------------------------------------------------------------------
// TestLiveView_EnsureFonts - Font staging without Chrome
// ---------------------------------------------------------------------------

func TestLiveView_EnsureFonts_RetriesAfterFailure(t *testing.T) {
	t.Parallel()

	var calls, fail atomic.Int32
	fail.Store(1)
	src := FontSourceFunc(func(ctx context.Context, name string) ([]byte, error) {
		calls.Add(1)
		if fail.Load() == 1 {
			return nil, errors.New("connection reset")
		}
		return []byte("font-bytes:" + name), nil
	})

	s, err := newSettings([]Option{WithFontSource(src)})
	if err != nil {
		t.Fatalf("newSettings() error = %v", err)
	}
	v := newLiveView(s, nil)
	v.dir = t.TempDir()

	v.ensureFonts(context.Background())
	if v.fontsReady {
		t.Fatal("fontsReady = true after a failed fetch")
	}

	fail.Store(0)
	v.ensureFonts(context.Background())
	if !v.fontsReady {
		t.Fatal("fontsReady = false after a successful fetch")
	}
	for _, fv := range FontVariants() {
		path := filepath.Join(v.dir, filepath.FromSlash(fv.Path()))
		if _, err := os.Stat(path); err != nil {
			t.Errorf("font %s not staged: %v", fv.Name, err)
		}
	}

	before := calls.Load()
	v.ensureFonts(context.Background())
	if calls.Load() != before {
		t.Error("ensureFonts fetched again after success")
	}
}

func TestLiveView_EnsureFonts_NoSource(t *testing.T) {
	t.Parallel()

	s, err := newSettings(nil)
	if err != nil {
		t.Fatalf("newSettings() error = %v", err)
	}
	v := newLiveView(s, nil)
	v.dir = t.TempDir()

	v.ensureFonts(context.Background())
	if !v.fontsReady {
		t.Error("fontsReady = false without a font source, want true")
	}
}
