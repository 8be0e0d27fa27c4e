package quotecard

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/go-rod/rod/lib/proto"
)

// ---------------------------------------------------------------------------
// Shared test doubles
// ---------------------------------------------------------------------------

// stubFonts serves deterministic bytes for every variant.
var stubFonts = FontSourceFunc(func(_ context.Context, name string) ([]byte, error) {
	return []byte("font-bytes:" + name), nil
})

// failingFonts fails for one variant name.
func failingFonts(failName string) FontSource {
	return FontSourceFunc(func(_ context.Context, name string) ([]byte, error) {
		if name == failName {
			return nil, errors.New("connection refused")
		}
		return []byte("font-bytes:" + name), nil
	})
}

// recordingNotifier collects messages.
type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Failure(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, msg)
}

func (n *recordingNotifier) snapshot() (successes, failures []string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.successes...), append([]string(nil), n.failures...)
}

// memDownloader keeps delivered artifacts in memory.
type memDownloader struct {
	mu    sync.Mutex
	files map[string][]byte
	err   error
}

func newMemDownloader() *memDownloader {
	return &memDownloader{files: map[string][]byte{}}
}

func (d *memDownloader) Deliver(_ context.Context, name string, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.files[name] = append([]byte(nil), data...)
	return nil
}

func (d *memDownloader) get(name string) ([]byte, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	data, ok := d.files[name]
	return data, ok
}

func (d *memDownloader) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.files)
}

// fakeElement serves a canned box and capture and records every request.
// A zero box stands for a laid-out default card.
type fakeElement struct {
	box      ElementBox
	boxErr   error
	data     []byte
	err      error
	requests []proto.PageCaptureScreenshot
}

var defaultCardBox = ElementBox{X: 126, Y: 0, Width: 548, Height: 300}

func (e *fakeElement) Box(context.Context) (ElementBox, error) {
	if e.box == (ElementBox{}) {
		return defaultCardBox, e.boxErr
	}
	return e.box, e.boxErr
}

func (e *fakeElement) Capture(_ context.Context, req *proto.PageCaptureScreenshot) ([]byte, error) {
	e.requests = append(e.requests, *req)
	return e.data, e.err
}

// cardPNG encodes a w x h image filled with bg.
func cardPNG(t *testing.T, w, h int, bg color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, bg)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

// mustMarkup builds a renderer from the embedded assets.
func mustMarkup(t *testing.T) *markupRenderer {
	t.Helper()
	s := defaultSettings()
	m, err := s.markupRenderer()
	if err != nil {
		t.Fatalf("markupRenderer() error = %v", err)
	}
	return m
}

func writeTestFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

// Collaborator seams for controller tests.

func withView(v liveRenderer) Option {
	return func(s *settings) { s.view = v }
}

func withBundler(b cardBundler) Option {
	return func(s *settings) { s.bundler = b }
}

func withRasterizer(r Rasterizer) Option {
	return func(s *settings) { s.rasterizer = r }
}

// fakeView serves a canned element instead of a Chrome page.
type fakeView struct {
	mu        sync.Mutex
	renderErr error
	el        ElementHandle
	found     bool
	elErr     error
	rendered  []Card
	closed    int
}

func (v *fakeView) Render(_ context.Context, card Card) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rendered = append(v.rendered, card)
	return v.renderErr
}

func (v *fakeView) Element(context.Context) (ElementHandle, bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.el, v.found, v.elErr
}

func (v *fakeView) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed++
	return nil
}

// bundlerFunc adapts a function to cardBundler.
type bundlerFunc func(ctx context.Context, card Card) ([]byte, error)

func (f bundlerFunc) Bundle(ctx context.Context, card Card) ([]byte, error) {
	return f(ctx, card)
}

// blockingBundler holds every Bundle call until release is closed.
type blockingBundler struct {
	started chan Card
	release chan struct{}
}

func newBlockingBundler() *blockingBundler {
	return &blockingBundler{started: make(chan Card, 8), release: make(chan struct{})}
}

func (b *blockingBundler) Bundle(ctx context.Context, card Card) ([]byte, error) {
	b.started <- card
	select {
	case <-b.release:
		return []byte("zip:" + card.Body), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
