package quotecard

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-quotecard/internal/imageutil"
)

// ImageFormat is the encoding of a captured card.
type ImageFormat string

// Supported capture formats.
const (
	FormatPNG  ImageFormat = "png"
	FormatJPEG ImageFormat = "jpeg"
	FormatWebP ImageFormat = "webp"
)

// Capture defaults.
const (
	DefaultImageFormat = FormatPNG
	DefaultQuality     = 95
	DefaultScale       = 1.0
	MaxScale           = 4.0
)

// artifactBaseName is the fixed stem of every exported file.
const artifactBaseName = "quote-card"

// ParseImageFormat maps a user-supplied name to an ImageFormat.
// Empty selects DefaultImageFormat; "jpg" is accepted for jpeg.
func ParseImageFormat(s string) (ImageFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultImageFormat, nil
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "webp":
		return FormatWebP, nil
	default:
		return "", fmt.Errorf("%w: %q (must be png, jpeg, or webp)", ErrInvalidFormat, s)
	}
}

// Extension returns the file extension including the dot.
func (f ImageFormat) Extension() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatWebP:
		return ".webp"
	default:
		return ".png"
	}
}

// FileName returns the delivery name for an image in this format.
func (f ImageFormat) FileName() string {
	return artifactBaseName + f.Extension()
}

// Lossy reports whether quality applies to the format.
func (f ImageFormat) Lossy() bool {
	return f == FormatJPEG || f == FormatWebP
}

func (f ImageFormat) proto() proto.PageCaptureScreenshotFormat {
	switch f {
	case FormatJPEG:
		return proto.PageCaptureScreenshotFormatJpeg
	case FormatWebP:
		return proto.PageCaptureScreenshotFormatWebp
	default:
		return proto.PageCaptureScreenshotFormatPng
	}
}

// ValidateQuality checks q is within 1-100.
func ValidateQuality(q int) error {
	if q < 1 || q > 100 {
		return fmt.Errorf("%w: %d (must be 1-100)", ErrInvalidQuality, q)
	}
	return nil
}

// ElementBox is an element's border box in CSS pixels, relative to the
// document origin.
type ElementBox struct {
	X, Y, Width, Height float64
}

// ElementHandle is a rendered element the page can paint to an image.
// Box locates it; Capture runs a screenshot request against its page.
type ElementHandle interface {
	Box(ctx context.Context) (ElementBox, error)
	Capture(ctx context.Context, req *proto.PageCaptureScreenshot) ([]byte, error)
}

// Rasterizer converts a live element into encoded image bytes.
type Rasterizer interface {
	Rasterize(ctx context.Context, el ElementHandle) ([]byte, error)
}

// rodRasterizer asks Chrome to paint the element's box directly. The clip
// is in CSS pixels and the page's device scale factor applies on top, so
// the image is the card's natural size times the scale, whatever the
// viewport height.
type rodRasterizer struct {
	format  ImageFormat
	quality int
}

func newRodRasterizer(format ImageFormat, quality int) *rodRasterizer {
	return &rodRasterizer{format: format, quality: quality}
}

// Rasterize captures el. A nil handle yields (nil, nil): there is nothing
// to capture and nothing to report. Every failure wraps ErrCapture.
func (r *rodRasterizer) Rasterize(ctx context.Context, el ElementHandle) ([]byte, error) {
	if isNilHandle(el) {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCapture, err)
	}

	box, err := el.Box(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: locating card: %v", ErrCapture, err)
	}
	if box.Width <= 0 || box.Height <= 0 {
		return nil, fmt.Errorf("%w: card has no size (%.0fx%.0f)", ErrCapture, box.Width, box.Height)
	}

	data, err := el.Capture(ctx, r.request(box))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCapture, err)
	}

	info, err := imageutil.Inspect(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCapture, err)
	}
	if info.Format != string(r.format) {
		return nil, fmt.Errorf("%w: got %s, want %s", ErrCapture, info.Format, r.format)
	}

	return data, nil
}

func (r *rodRasterizer) request(box ElementBox) *proto.PageCaptureScreenshot {
	req := &proto.PageCaptureScreenshot{
		Format: r.format.proto(),
		Clip: &proto.PageViewport{
			X:      box.X,
			Y:      box.Y,
			Width:  box.Width,
			Height: box.Height,
			Scale:  1,
		},
		CaptureBeyondViewport: true,
	}
	if r.format.Lossy() {
		q := r.quality
		req.Quality = &q
	}
	return req
}

// isNilHandle catches both a nil interface and a typed nil pointer.
func isNilHandle(el ElementHandle) bool {
	if el == nil {
		return true
	}
	v := reflect.ValueOf(el)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// Compile-time interface check.
var _ Rasterizer = (*rodRasterizer)(nil)
