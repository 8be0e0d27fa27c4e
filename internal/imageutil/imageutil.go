// Package imageutil decodes captured card images and samples their colors.
package imageutil

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder

	"github.com/lucasb-eyer/go-colorful"
	_ "golang.org/x/image/webp" // register decoder
)

// Sentinel errors for image inspection.
var (
	ErrEmptyImage   = errors.New("image data is empty")
	ErrUndecodable  = errors.New("image data cannot be decoded")
	ErrZeroSize     = errors.New("image has zero width or height")
	ErrInvalidColor = errors.New("color cannot be represented")
)

// EdgeInset is the horizontal offset, in pixels, of the background sample.
// It stays clear of the anti-aliased left border while remaining inside the
// card's padding at any device scale.
const EdgeInset = 4

// Info describes an encoded image.
type Info struct {
	Format string // "png", "jpeg" or "webp"
	Width  int
	Height int
}

// Inspect reads the header of an encoded image and returns its format and size.
func Inspect(data []byte) (Info, error) {
	if len(data) == 0 {
		return Info{}, ErrEmptyImage
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Info{}, fmt.Errorf("%w: %dx%d", ErrZeroSize, cfg.Width, cfg.Height)
	}
	return Info{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// Decode fully decodes an encoded image.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrZeroSize, b.Dx(), b.Dy())
	}
	return img, nil
}

// BackgroundSample returns the pixel at EdgeInset from the left edge, halfway down.
// For a card capture this lands in the padding, i.e. the theme background.
func BackgroundSample(img image.Image) color.Color {
	b := img.Bounds()
	x := b.Min.X + EdgeInset
	if x >= b.Max.X {
		x = b.Max.X - 1
	}
	return img.At(x, b.Min.Y+b.Dy()/2)
}

// Distance returns the perceptual (CIE Lab) distance between two colors.
// Zero means identical; values under ~0.02 are indistinguishable by eye.
func Distance(a, b color.Color) (float64, error) {
	ca, ok := colorful.MakeColor(a)
	if !ok {
		return 0, ErrInvalidColor
	}
	cb, ok := colorful.MakeColor(b)
	if !ok {
		return 0, ErrInvalidColor
	}
	return ca.DistanceLab(cb), nil
}
