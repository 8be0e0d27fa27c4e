package quotecard

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/alnah/go-quotecard/internal/assets"
)

// IndexFile is the document entry at the root of a bundle.
const IndexFile = "index.html"

// bundleModTime stamps every archive entry so identical cards produce
// identical archives. It is the earliest time the zip format can encode.
var bundleModTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Bundler builds the self-contained document archive for a card.
type Bundler struct {
	fonts  FontSource
	markup *markupRenderer
}

// NewBundler creates a Bundler that embeds fonts from src and renders
// with the built-in card assets.
func NewBundler(src FontSource) (*Bundler, error) {
	markup, err := newMarkupRenderer(assets.NewEmbeddedLoader())
	if err != nil {
		return nil, err
	}
	return newBundler(src, markup), nil
}

func newBundler(src FontSource, markup *markupRenderer) *Bundler {
	return &Bundler{fonts: src, markup: markup}
}

// Bundle returns the zip archive for card: index.html followed by the
// font variants under font/. Nothing is returned unless the whole archive
// was built. Font errors wrap ErrAssetFetch; document and archive errors
// wrap ErrSynthesis.
func (b *Bundler) Bundle(ctx context.Context, card Card) ([]byte, error) {
	if err := card.Validate(); err != nil {
		return nil, err
	}

	fonts, err := fetchFonts(ctx, b.fonts)
	if err != nil {
		return nil, err
	}

	doc, err := b.markup.Render(card)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return packBundle(doc, fonts)
}

// packBundle writes the archive in memory with a fixed entry order.
func packBundle(doc []byte, fonts []fontFile) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	if err := addEntry(zw, IndexFile, doc); err != nil {
		_ = zw.Close()
		return nil, err
	}
	for _, f := range fonts {
		if err := addEntry(zw, f.Variant.Path(), f.Data); err != nil {
			_ = zw.Close()
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: finalizing archive: %v", ErrSynthesis, err)
	}
	return buf.Bytes(), nil
}

func addEntry(zw *zip.Writer, name string, data []byte) error {
	hdr := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: bundleModTime,
	}
	hdr.SetMode(0o644)

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrSynthesis, name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrSynthesis, name, err)
	}
	return nil
}

// BundleEntries lists the archive entry names in write order.
func BundleEntries() []string {
	names := []string{IndexFile}
	for _, v := range fontVariants {
		names = append(names, v.Path())
	}
	return names
}
