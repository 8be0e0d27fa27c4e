package quotecard

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
)

func newTestBundler(t *testing.T, src FontSource) *Bundler {
	t.Helper()
	return newBundler(src, mustMarkup(t))
}

func readZipEntry(t *testing.T, data []byte, name string) []byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return content
	}
	t.Fatalf("entry %s not found", name)
	return nil
}

// ---------------------------------------------------------------------------
// TestBundle_Layout - Entry names and order
// ---------------------------------------------------------------------------

func TestBundle_Layout(t *testing.T) {
	t.Parallel()

	data, err := newTestBundler(t, stubFonts).Bundle(context.Background(), DefaultCard())
	if err != nil {
		t.Fatalf("Bundle() error = %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader: %v", err)
	}

	want := BundleEntries()
	if len(zr.File) != len(want) {
		t.Fatalf("got %d entries, want %d", len(zr.File), len(want))
	}
	for i, f := range zr.File {
		if f.Name != want[i] {
			t.Errorf("entry[%d] = %q, want %q", i, f.Name, want[i])
		}
		if !f.Modified.Equal(bundleModTime) {
			t.Errorf("entry %s modified = %v, want %v", f.Name, f.Modified, bundleModTime)
		}
	}

	for _, v := range fontVariants {
		got := readZipEntry(t, data, v.Path())
		if string(got) != "font-bytes:"+v.Name {
			t.Errorf("%s content = %q, fonts must be stored byte-for-byte", v.Path(), got)
		}
	}
}

func TestBundle_Deterministic(t *testing.T) {
	t.Parallel()

	b := newTestBundler(t, stubFonts)
	card := Card{Title: "t", Body: "one\ntwo", Attribution: "a", Theme: ThemeGreen}

	first, err := b.Bundle(context.Background(), card)
	if err != nil {
		t.Fatalf("Bundle() error = %v", err)
	}
	second, err := b.Bundle(context.Background(), card)
	if err != nil {
		t.Fatalf("Bundle() error = %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("bundling the same card twice produced different archives")
	}
}

func TestBundle_DoesNotModifyCard(t *testing.T) {
	t.Parallel()

	card := Card{Body: "a\r\nb", Theme: ThemeBlue}
	before := card
	if _, err := newTestBundler(t, stubFonts).Bundle(context.Background(), card); err != nil {
		t.Fatalf("Bundle() error = %v", err)
	}
	if card != before {
		t.Errorf("card changed: %+v", card)
	}
}

// ---------------------------------------------------------------------------
// TestBundle_Errors - All-or-nothing failures
// ---------------------------------------------------------------------------

func TestBundle_Errors(t *testing.T) {
	t.Parallel()

	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name    string
		ctx     context.Context
		src     FontSource
		card    Card
		wantErr error
	}{
		{
			name:    "font fetch fails",
			ctx:     context.Background(),
			src:     failingFonts("Huiwenmincho-improved.ttf"),
			card:    DefaultCard(),
			wantErr: ErrAssetFetch,
		},
		{
			name:    "no font source",
			ctx:     context.Background(),
			src:     nil,
			card:    DefaultCard(),
			wantErr: ErrAssetFetch,
		},
		{
			name:    "empty body",
			ctx:     context.Background(),
			src:     stubFonts,
			card:    Card{Body: " ", Theme: ThemeBlue},
			wantErr: ErrEmptyBody,
		},
		{
			name:    "unknown theme",
			ctx:     context.Background(),
			src:     stubFonts,
			card:    Card{Body: "x", Theme: "red"},
			wantErr: ErrUnknownTheme,
		},
		{
			name:    "canceled",
			ctx:     canceled,
			src:     stubFonts,
			card:    DefaultCard(),
			wantErr: context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := newTestBundler(t, tt.src).Bundle(tt.ctx, tt.card)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Bundle() error = %v, want %v", err, tt.wantErr)
			}
			if data != nil {
				t.Errorf("Bundle() returned %d bytes on failure", len(data))
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestBundle_Inspect - What a browser would see
// ---------------------------------------------------------------------------

func TestBundle_Inspect(t *testing.T) {
	t.Parallel()

	for _, theme := range Themes() {
		t.Run(string(theme.ID), func(t *testing.T) {
			t.Parallel()

			card := Card{Title: "03/22", Body: "line one\nline two", Attribution: "-someone", Theme: theme.ID}
			data, err := newTestBundler(t, stubFonts).Bundle(context.Background(), card)
			if err != nil {
				t.Fatalf("Bundle() error = %v", err)
			}

			report, err := InspectBundle(data)
			if err != nil {
				t.Fatalf("InspectBundle() error = %v", err)
			}

			if !report.HasHeading || report.Heading != card.Title {
				t.Errorf("heading = %v %q", report.HasHeading, report.Heading)
			}
			if report.Body != card.Body {
				t.Errorf("body = %q, want %q", report.Body, card.Body)
			}
			if !report.HasFooter || report.Footer != card.Attribution {
				t.Errorf("footer = %v %q", report.HasFooter, report.Footer)
			}
			if report.Background != theme.BackgroundCSS() {
				t.Errorf("background = %q, want %q", report.Background, theme.BackgroundCSS())
			}
			if report.Foreground != theme.ForegroundCSS() {
				t.Errorf("foreground = %q, want %q", report.Foreground, theme.ForegroundCSS())
			}
			if report.WhiteSpace != "pre-line" {
				t.Errorf("white-space = %q, want pre-line", report.WhiteSpace)
			}
			if report.FontFamily != FontFamily {
				t.Errorf("font family = %q, want %q", report.FontFamily, FontFamily)
			}
			if len(report.Fonts) != len(fontVariants) {
				t.Fatalf("fonts = %v", report.Fonts)
			}
			for i, v := range fontVariants {
				if report.Fonts[i] != (FontRef{URL: v.Path(), Format: v.Format}) {
					t.Errorf("fonts[%d] = %+v", i, report.Fonts[i])
				}
			}
			if len(report.MissingFonts) != 0 {
				t.Errorf("missing fonts = %v", report.MissingFonts)
			}
		})
	}
}

func TestBundle_OptionalBlocks(t *testing.T) {
	t.Parallel()

	data, err := newTestBundler(t, stubFonts).Bundle(context.Background(), Card{Body: "only body", Theme: ThemeOrange})
	if err != nil {
		t.Fatalf("Bundle() error = %v", err)
	}
	report, err := InspectBundle(data)
	if err != nil {
		t.Fatalf("InspectBundle() error = %v", err)
	}
	if report.HasHeading {
		t.Error("heading rendered for empty title")
	}
	if report.HasFooter {
		t.Error("footer rendered for empty attribution")
	}
	if report.Body != "only body" {
		t.Errorf("body = %q", report.Body)
	}
}

func TestNewBundler(t *testing.T) {
	t.Parallel()

	b, err := NewBundler(stubFonts)
	if err != nil {
		t.Fatalf("NewBundler() error = %v", err)
	}
	if _, err := b.Bundle(context.Background(), DefaultCard()); err != nil {
		t.Errorf("Bundle() error = %v", err)
	}
}
