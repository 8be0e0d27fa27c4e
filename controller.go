package quotecard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/alnah/go-quotecard/internal/imageutil"
)

// Channel identifies an export kind. Each channel runs at most one export.
type Channel int

const (
	ChannelImage Channel = iota
	ChannelBundle

	channelCount
)

func (c Channel) String() string {
	switch c {
	case ChannelImage:
		return "image"
	case ChannelBundle:
		return "bundle"
	default:
		return fmt.Sprintf("channel(%d)", int(c))
	}
}

func (c Channel) valid() bool {
	return c >= 0 && c < channelCount
}

// FailureMessage is the generic user-facing text for a failed export.
func (c Channel) FailureMessage() string {
	return c.String() + " export failed"
}

// SuccessMessage is the user-facing text for a delivered artifact.
func (c Channel) SuccessMessage(fileName string) string {
	return c.String() + " exported: " + fileName
}

// Notifier receives one message per finished export.
type Notifier interface {
	Success(msg string)
	Failure(msg string)
}

// liveRenderer is the rendered card the image channel captures.
type liveRenderer interface {
	Render(ctx context.Context, card Card) error
	Element(ctx context.Context) (ElementHandle, bool, error)
	Close() error
}

// cardBundler builds the bundle archive.
type cardBundler interface {
	Bundle(ctx context.Context, card Card) ([]byte, error)
}

// Outcome describes one finished export.
type Outcome struct {
	Channel  Channel
	ExportID string
	Revision uint64 // Session revision the export was taken from
	FileName string
	Size     int
	Skipped  bool // Nothing to capture; no artifact, no notification
	Err      error
	Duration time.Duration
}

// fidelityThreshold is the Lab distance above which a captured background
// is logged as not matching the theme.
const fidelityThreshold = 0.05

// Controller runs exports for a Session and reports their outcome.
type Controller struct {
	cfg        settings
	session    *Session
	view       liveRenderer
	raster     Rasterizer
	bundler    cardBundler
	downloader Downloader
	notifier   Notifier
	logger     zerolog.Logger
	wg         sync.WaitGroup
}

// NewController creates a Controller for session. A nil session starts
// from the sample card. Chrome is only started by the first image export.
func NewController(session *Session, opts ...Option) (*Controller, error) {
	s, err := newSettings(opts)
	if err != nil {
		return nil, err
	}
	if session == nil {
		session = NewDefaultSession()
	}

	c := &Controller{
		cfg:        s,
		session:    session,
		view:       s.view,
		raster:     s.rasterizer,
		bundler:    s.bundler,
		downloader: s.downloader,
		notifier:   s.notifier,
		logger:     s.logger,
	}

	if c.view == nil || c.bundler == nil {
		markup, err := s.markupRenderer()
		if err != nil {
			return nil, err
		}
		if c.view == nil {
			c.view = newLiveView(s, markup)
		}
		if c.bundler == nil {
			c.bundler = newBundler(s.fonts, markup)
		}
	}
	if c.raster == nil {
		c.raster = newRodRasterizer(s.format, s.quality)
	}
	if c.downloader == nil {
		c.downloader = discardDownloader{}
	}
	if c.notifier == nil {
		c.notifier = nopNotifier{}
	}

	return c, nil
}

// Session returns the session the controller exports from.
func (c *Controller) Session() *Session {
	return c.session
}

// Busy reports whether an export is in flight on ch.
func (c *Controller) Busy(ch Channel) bool {
	return c.session.Busy(ch)
}

// Trigger starts an export on ch from a snapshot of the current card.
// If ch is busy nothing happens and ok is false. Otherwise the returned
// channel receives exactly one Outcome, after the notification was sent
// and the channel was returned to idle.
func (c *Controller) Trigger(ctx context.Context, ch Channel) (<-chan Outcome, bool) {
	card, revision, ok := c.session.begin(ch)
	if !ok {
		c.logger.Debug().Str("channel", ch.String()).Msg("export already in progress, trigger ignored")
		return nil, false
	}

	out := make(chan Outcome, 1)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		out <- c.run(ctx, ch, card, revision)
	}()
	return out, true
}

// Export runs an export on ch and waits for its outcome.
// ok is false if ch was busy.
func (c *Controller) Export(ctx context.Context, ch Channel) (Outcome, bool) {
	out, ok := c.Trigger(ctx, ch)
	if !ok {
		return Outcome{}, false
	}
	return <-out, true
}

// Close waits for in-flight exports and releases the browser.
func (c *Controller) Close() error {
	c.wg.Wait()
	return c.view.Close()
}

// run executes one export. Deferred calls report the outcome first and
// then return the channel to idle, on every exit path including panics.
func (c *Controller) run(ctx context.Context, ch Channel, card Card, revision uint64) (o Outcome) {
	start := time.Now()
	o = Outcome{Channel: ch, ExportID: uuid.NewString(), Revision: revision}
	logger := c.logger.With().
		Str("channel", ch.String()).
		Str("export_id", o.ExportID).
		Uint64("revision", revision).
		Logger()

	defer c.session.end(ch)
	defer func() {
		if r := recover(); r != nil {
			o.Err = fmt.Errorf("internal error: %v", r)
			o.Skipped = false
		}
		o.Duration = time.Since(start)
		c.report(logger, o)
	}()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	logger.Debug().Msg("export started")

	var data []byte
	switch ch {
	case ChannelImage:
		data, o.Err = c.captureImage(ctx, logger, card)
		o.FileName = c.cfg.format.FileName()
	case ChannelBundle:
		data, o.Err = c.bundler.Bundle(ctx, card)
		o.FileName = artifactBaseName + ".zip"
	}
	if o.Err != nil {
		return o
	}
	if data == nil {
		o.Skipped = true
		return o
	}

	if err := c.downloader.Deliver(ctx, o.FileName, data); err != nil {
		o.Err = err
		return o
	}
	o.Size = len(data)
	return o
}

// captureImage renders the card and captures it. A missing element
// returns (nil, nil).
func (c *Controller) captureImage(ctx context.Context, logger zerolog.Logger, card Card) ([]byte, error) {
	if err := card.Validate(); err != nil {
		return nil, err
	}
	if err := c.view.Render(ctx, card); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCapture, err)
	}

	el, ok, err := c.view.Element(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCapture, err)
	}
	if !ok {
		return nil, nil
	}

	data, err := c.raster.Rasterize(ctx, el)
	if err != nil || data == nil {
		return nil, err
	}

	c.checkFidelity(logger, data, card)
	return data, nil
}

// checkFidelity logs when the captured background drifts from the theme.
// It never fails the export.
func (c *Controller) checkFidelity(logger zerolog.Logger, data []byte, card Card) {
	theme, err := ResolveTheme(card.Theme)
	if err != nil {
		return
	}
	img, err := imageutil.Decode(data)
	if err != nil {
		return
	}
	d, err := imageutil.Distance(imageutil.BackgroundSample(img), theme.Background)
	if err != nil {
		return
	}
	if d > fidelityThreshold {
		logger.Warn().Float64("distance", d).Str("theme", string(theme.ID)).Msg("captured background differs from theme")
	}
}

func (c *Controller) report(logger zerolog.Logger, o Outcome) {
	switch {
	case o.Err != nil:
		logger.Error().Err(o.Err).Dur("duration", o.Duration).Msg("export failed")
		c.notifier.Failure(o.Channel.FailureMessage())
	case o.Skipped:
		logger.Debug().Dur("duration", o.Duration).Msg("nothing to capture, export skipped")
	default:
		logger.Info().
			Str("file", o.FileName).
			Int("bytes", o.Size).
			Dur("duration", o.Duration).
			Msg("export delivered")
		c.notifier.Success(o.Channel.SuccessMessage(o.FileName))
	}
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Failure(string) {}

// Compile-time interface checks.
var (
	_ liveRenderer = (*LiveView)(nil)
	_ cardBundler  = (*Bundler)(nil)
	_ Notifier     = nopNotifier{}
)
