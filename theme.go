package quotecard

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ThemeID identifies a color theme.
type ThemeID string

// The closed set of themes.
const (
	ThemeBlue   ThemeID = "blue"
	ThemeGreen  ThemeID = "green"
	ThemePurple ThemeID = "purple"
	ThemeOrange ThemeID = "orange"
)

// Theme is a background/foreground color pair with a human-readable name.
type Theme struct {
	ID          ThemeID
	Background  color.RGBA
	Foreground  color.RGBA
	DisplayName string
}

// catalog is the single source of theme colors. The live view and the
// bundle both render from it, so an exported bundle matches the screen.
var catalog = []Theme{
	{ID: ThemeBlue, Background: rgb(243, 244, 246), Foreground: rgb(1, 51, 101), DisplayName: "沉稳蓝"},
	{ID: ThemeGreen, Background: rgb(229, 245, 239), Foreground: rgb(1, 101, 65), DisplayName: "优雅绿"},
	{ID: ThemePurple, Background: rgb(244, 238, 255), Foreground: rgb(107, 33, 168), DisplayName: "高贵紫"},
	{ID: ThemeOrange, Background: rgb(255, 247, 238), Foreground: rgb(245, 148, 10), DisplayName: "活力橙"},
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Themes returns the catalog in display order.
func Themes() []Theme {
	out := make([]Theme, len(catalog))
	copy(out, catalog)
	return out
}

// ThemeIDs returns the catalog identifiers in display order.
func ThemeIDs() []string {
	ids := make([]string, len(catalog))
	for i, t := range catalog {
		ids[i] = string(t.ID)
	}
	return ids
}

// ResolveTheme looks up a theme by identifier. Lookup ignores case and
// surrounding spaces.
func ResolveTheme(id ThemeID) (Theme, error) {
	want := ThemeID(strings.ToLower(strings.TrimSpace(string(id))))
	for _, t := range catalog {
		if t.ID == want {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, string(id))
}

// BackgroundCSS returns the background as a CSS rgb() value.
func (t Theme) BackgroundCSS() string {
	return cssRGB(t.Background)
}

// ForegroundCSS returns the foreground as a CSS rgb() value.
func (t Theme) ForegroundCSS() string {
	return cssRGB(t.Foreground)
}

// BackgroundHex returns the background as "#rrggbb".
func (t Theme) BackgroundHex() string {
	c, _ := colorful.MakeColor(t.Background)
	return c.Hex()
}

// ForegroundHex returns the foreground as "#rrggbb".
func (t Theme) ForegroundHex() string {
	c, _ := colorful.MakeColor(t.Foreground)
	return c.Hex()
}

func cssRGB(c color.RGBA) string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}
