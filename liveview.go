package quotecard

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog"

	"github.com/alnah/go-quotecard/internal/fileutil"
)

// Viewport of the live page. Wide enough for the fixed-width card.
const (
	viewportWidth  = 800
	viewportHeight = 600
)

// cardSelector locates the captured element.
const cardSelector = ".card"

// fontsReadyJS resolves once every declared web font has loaded or failed.
const fontsReadyJS = `() => document.fonts.ready.then(() => document.fonts.size)`

// LiveView is the rendered card in a headless Chrome page. The image
// export captures its card element.
type LiveView struct {
	mu      sync.Mutex
	markup  *markupRenderer
	fonts   FontSource
	timeout time.Duration
	scale   float64
	logger  zerolog.Logger

	browser    *browserHandle
	page       *rod.Page
	dir        string
	cleanupDir func()
	fontsReady bool
}

// NewLiveView creates a LiveView. Chrome starts on the first Render.
func NewLiveView(opts ...Option) (*LiveView, error) {
	s, err := newSettings(opts)
	if err != nil {
		return nil, err
	}
	markup, err := s.markupRenderer()
	if err != nil {
		return nil, err
	}
	return newLiveView(s, markup), nil
}

func newLiveView(s settings, markup *markupRenderer) *LiveView {
	return &LiveView{
		markup:  markup,
		fonts:   s.fonts,
		timeout: s.timeout,
		scale:   s.scale,
		logger:  s.logger,
	}
}

// Render shows card in the page and waits until layout and fonts settle.
func (v *LiveView) Render(ctx context.Context, card Card) error {
	if err := card.Validate(); err != nil {
		return err
	}
	doc, err := v.markup.Render(card)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.ensureWorkspace(); err != nil {
		return err
	}
	v.ensureFonts(ctx)

	indexPath := filepath.Join(v.dir, IndexFile)
	if err := fileutil.WriteFileAtomic(indexPath, doc, 0o600); err != nil {
		return fmt.Errorf("%w: writing document: %v", ErrPageLoad, err)
	}

	page, err := v.ensurePage()
	if err != nil {
		return err
	}

	p := page.Context(ctx).Timeout(v.timeout)
	defer p.CancelTimeout()

	if err := p.Navigate("file://" + indexPath); err != nil {
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if _, err := p.Eval(fontsReadyJS); err != nil {
		return fmt.Errorf("%w: waiting for fonts: %v", ErrPageLoad, err)
	}
	return nil
}

// Element returns the card element. ok is false when nothing has been
// rendered or the page holds no card.
func (v *LiveView) Element(ctx context.Context) (el ElementHandle, ok bool, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.page == nil {
		return nil, false, nil
	}
	has, found, err := v.page.Context(ctx).Has(cardSelector)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrElementNotFound, err)
	}
	if !has {
		return nil, false, nil
	}
	return cardElement{el: found}, true, nil
}

// Close shuts Chrome down and removes the working directory.
func (v *LiveView) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	err := v.browser.Close()
	v.browser = nil
	v.page = nil
	if v.cleanupDir != nil {
		v.cleanupDir()
		v.cleanupDir = nil
	}
	return err
}

func (v *LiveView) ensureWorkspace() error {
	if v.dir != "" {
		return nil
	}
	dir, cleanup, err := fileutil.MakeTempDir()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	v.dir, v.cleanupDir = dir, cleanup
	return nil
}

// ensureFonts copies the font files next to the document. Failure is not
// fatal: the page renders with the fallback font stack and the next Render
// fetches again.
func (v *LiveView) ensureFonts(ctx context.Context) {
	if v.fontsReady {
		return
	}
	if v.fonts == nil {
		v.logger.Debug().Msg("no font source configured, live view uses fallback fonts")
		v.fontsReady = true
		return
	}

	files, err := fetchFonts(ctx, v.fonts)
	if err != nil {
		v.logger.Warn().Err(err).Msg("live view uses fallback fonts")
		return
	}
	for _, f := range files {
		path := filepath.Join(v.dir, filepath.FromSlash(f.Variant.Path()))
		if err := fileutil.WriteFileAtomic(path, f.Data, 0o600); err != nil {
			v.logger.Warn().Err(err).Str("font", f.Variant.Name).Msg("writing font file")
			return
		}
	}
	v.fontsReady = true
}

func (v *LiveView) ensurePage() (*rod.Page, error) {
	if v.page != nil {
		return v.page, nil
	}
	if v.browser == nil {
		h, err := launchBrowser()
		if err != nil {
			return nil, err
		}
		v.browser = h
	}

	page, err := v.browser.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             viewportWidth,
		Height:            viewportHeight,
		DeviceScaleFactor: v.scale,
	}); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	v.page = page
	return page, nil
}

// boxJS reports the element's border box in document coordinates.
const boxJS = `() => {
	const r = this.getBoundingClientRect();
	return {x: r.left + window.scrollX, y: r.top + window.scrollY, width: r.width, height: r.height};
}`

// cardElement is the card node of the live page.
type cardElement struct {
	el *rod.Element
}

func (c cardElement) Box(ctx context.Context) (ElementBox, error) {
	res, err := c.el.Context(ctx).Eval(boxJS)
	if err != nil {
		return ElementBox{}, err
	}
	v := res.Value
	return ElementBox{
		X:      v.Get("x").Num(),
		Y:      v.Get("y").Num(),
		Width:  v.Get("width").Num(),
		Height: v.Get("height").Num(),
	}, nil
}

func (c cardElement) Capture(ctx context.Context, req *proto.PageCaptureScreenshot) ([]byte, error) {
	res, err := req.Call(c.el.Page().Context(ctx))
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

var _ ElementHandle = cardElement{}
