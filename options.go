package quotecard

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-quotecard/internal/assets"
)

// Option configures a Controller or a LiveView.
type Option func(*settings)

// settings holds configuration shared by Controller and LiveView.
type settings struct {
	timeout    time.Duration
	logger     zerolog.Logger
	fonts      FontSource
	downloader Downloader
	notifier   Notifier
	format     ImageFormat
	quality    int
	scale      float64
	assetPath  string

	// Collaborators replaced in tests.
	view       liveRenderer
	rasterizer Rasterizer
	bundler    cardBundler
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

func defaultSettings() settings {
	return settings{
		timeout: defaultTimeout,
		logger:  zerolog.Nop(),
		format:  DefaultImageFormat,
		quality: DefaultQuality,
		scale:   DefaultScale,
	}
}

func newSettings(opts []Option) (settings, error) {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	if err := s.validate(); err != nil {
		return settings{}, err
	}
	return s, nil
}

func (s *settings) validate() error {
	format, err := ParseImageFormat(string(s.format))
	if err != nil {
		return err
	}
	s.format = format
	if err := ValidateQuality(s.quality); err != nil {
		return err
	}
	if s.scale <= 0 || s.scale > MaxScale {
		return fmt.Errorf("%w: %.2f (must be >0 and <=%.0f)", ErrInvalidScale, s.scale, MaxScale)
	}
	return nil
}

// markupRenderer builds the renderer from the configured asset path.
func (s *settings) markupRenderer() (*markupRenderer, error) {
	var loader assets.AssetLoader = assets.NewEmbeddedLoader()
	if s.assetPath != "" {
		resolver, err := assets.NewAssetResolver(s.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		loader = resolver
	}
	return newMarkupRenderer(loader)
}

// WithTimeout bounds each browser operation of an export.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("quotecard: WithTimeout duration must be positive")
	}
	return func(s *settings) {
		s.timeout = d
	}
}

// WithLogger sets the structured logger. Default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = l
	}
}

// WithFontSource sets where font binaries come from. Without one, bundle
// exports fail with ErrAssetFetch and the live view uses fallback fonts.
func WithFontSource(src FontSource) Option {
	return func(s *settings) {
		s.fonts = src
	}
}

// WithDownloader sets where finished artifacts are handed off.
func WithDownloader(d Downloader) Option {
	return func(s *settings) {
		s.downloader = d
	}
}

// WithNotifier sets the receiver of success and failure messages.
func WithNotifier(n Notifier) Option {
	return func(s *settings) {
		s.notifier = n
	}
}

// WithImageFormat selects the capture encoding. Default is PNG.
func WithImageFormat(f ImageFormat) Option {
	return func(s *settings) {
		s.format = f
	}
}

// WithQuality sets the lossy encoding quality (1-100). Ignored for PNG.
func WithQuality(q int) Option {
	return func(s *settings) {
		s.quality = q
	}
}

// WithScale sets the device scale factor of the capture (default 1).
func WithScale(f float64) Option {
	return func(s *settings) {
		s.scale = f
	}
}

// WithAssetPath overrides the card stylesheet and template with files
// from dir (styles/card.css, templates/card.html). Missing files fall
// back to the built-in ones.
func WithAssetPath(dir string) Option {
	return func(s *settings) {
		s.assetPath = dir
	}
}
