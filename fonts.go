package quotecard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"resty.dev/v3"

	"github.com/alnah/go-quotecard/internal/assets"
)

// FontFamily is the CSS family name declared for the embedded font.
const FontFamily = "HuiWenMingChao"

// FontDir is the directory holding font files inside a bundle.
const FontDir = "font"

// FontVariant is one encoding of the card font.
type FontVariant struct {
	Name   string // File name, e.g. "Huiwenmincho-improved.woff2"
	Format string // CSS format() hint
}

// Path returns the variant's path relative to index.html.
func (v FontVariant) Path() string {
	return FontDir + "/" + v.Name
}

// fontVariants lists the font encodings in @font-face src order.
var fontVariants = []FontVariant{
	{Name: "Huiwenmincho-improved.woff2", Format: "woff2"},
	{Name: "Huiwenmincho-improved.woff", Format: "woff"},
	{Name: "Huiwenmincho-improved.ttf", Format: "truetype"},
}

// FontVariants returns the font encodings in declaration order.
func FontVariants() []FontVariant {
	out := make([]FontVariant, len(fontVariants))
	copy(out, fontVariants)
	return out
}

// FontSource retrieves font binaries by file name. The bytes are opaque.
type FontSource interface {
	FetchFont(ctx context.Context, name string) ([]byte, error)
}

// FontSourceFunc adapts a function to FontSource.
type FontSourceFunc func(ctx context.Context, name string) ([]byte, error)

// FetchFont calls f.
func (f FontSourceFunc) FetchFont(ctx context.Context, name string) ([]byte, error) {
	return f(ctx, name)
}

// DirFontSource reads font files from a local directory.
type DirFontSource struct {
	loader *assets.FilesystemLoader
}

// NewDirFontSource creates a DirFontSource rooted at dir.
// Returns ErrInvalidAssetPath if dir is not a readable directory.
func NewDirFontSource(dir string) (*DirFontSource, error) {
	loader, err := assets.NewFilesystemLoader(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	return &DirFontSource{loader: loader}, nil
}

// FetchFont reads {dir}/{name}. Names with separators are rejected.
func (s *DirFontSource) FetchFont(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.loader.LoadFont(name)
}

// Dir returns the resolved directory.
func (s *DirFontSource) Dir() string {
	return s.loader.BasePath()
}

// Default HTTP font source settings.
const (
	defaultFontFetchTimeout = 15 * time.Second
	defaultFontRetryCount   = 2
	maxFontSize             = 32 << 20
)

// HTTPFontSource downloads font files from {baseURL}/{name}.
type HTTPFontSource struct {
	client  *resty.Client
	baseURL string
}

// NewHTTPFontSource creates an HTTPFontSource. baseURL must be http or https.
func NewHTTPFontSource(baseURL string) (*HTTPFontSource, error) {
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFontURL, baseURL)
	}

	client := resty.New().
		SetRetryCount(defaultFontRetryCount).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetTimeout(defaultFontFetchTimeout).
		SetHeader("User-Agent", "go-quotecard")

	return &HTTPFontSource{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// FetchFont GETs {baseURL}/{name}. Any status other than 200 is an error.
func (s *HTTPFontSource) FetchFont(ctx context.Context, name string) ([]byte, error) {
	if err := assets.ValidateFileName(name); err != nil {
		return nil, err
	}

	resp, err := s.client.R().SetContext(ctx).Get(s.baseURL + "/" + url.PathEscape(name))
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %d", name, resp.StatusCode())
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFontSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if len(data) > maxFontSize {
		return nil, fmt.Errorf("fetching %s: body exceeds %d bytes", name, maxFontSize)
	}
	return data, nil
}

// Close releases the HTTP client.
func (s *HTTPFontSource) Close() error {
	s.client.Close()
	return nil
}

// fontFile is a fetched font variant.
type fontFile struct {
	Variant FontVariant
	Data    []byte
}

// fetchFonts retrieves every variant concurrently. The result keeps
// declaration order. Any failure cancels the rest and returns ErrAssetFetch.
func fetchFonts(ctx context.Context, src FontSource) ([]fontFile, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: no font source configured", ErrAssetFetch)
	}

	files := make([]fontFile, len(fontVariants))
	g, gctx := errgroup.WithContext(ctx)
	for i, v := range fontVariants {
		g.Go(func() error {
			data, err := src.FetchFont(gctx, v.Name)
			if err != nil {
				return fmt.Errorf("%s: %v", v.Name, err)
			}
			if len(data) == 0 {
				return fmt.Errorf("%s: empty font file", v.Name)
			}
			files[i] = fontFile{Variant: v, Data: data}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetFetch, err)
	}
	return files, nil
}

// Compile-time interface checks.
var (
	_ FontSource = (*DirFontSource)(nil)
	_ FontSource = (*HTTPFontSource)(nil)
	_ FontSource = FontSourceFunc(nil)
)
