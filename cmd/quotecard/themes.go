package main

import (
	"fmt"
	imagecolor "image/color"
	"io"

	"github.com/fatih/color"

	quotecard "github.com/alnah/go-quotecard"
)

// runThemes lists the theme catalog with a color swatch per theme.
func runThemes(args []string, env *Environment) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: themes takes no arguments", ErrUsage)
	}
	printThemes(env.Stdout, quotecard.Themes(), env.NoColor)
	return nil
}

func printThemes(w io.Writer, themes []quotecard.Theme, noColor bool) {
	fmt.Fprintf(w, "%-8s %-9s %-9s %s\n", "ID", "BG", "FG", "NAME")
	for _, t := range themes {
		fmt.Fprintf(w, "%-8s %-9s %-9s %s  %s\n",
			t.ID, t.BackgroundHex(), t.ForegroundHex(), t.DisplayName, swatch(t, noColor))
	}
}

// swatch renders a sample of the foreground on the background.
func swatch(t quotecard.Theme, noColor bool) string {
	c := trueColor(t.Foreground, t.Background)
	if noColor {
		c.DisableColor()
	}
	return c.Sprint(" Aa 文字 ")
}

// trueColor builds 24-bit SGR attributes: 38;2;r;g;b then 48;2;r;g;b.
func trueColor(fg, bg imagecolor.RGBA) *color.Color {
	return color.New(
		38, 2, color.Attribute(fg.R), color.Attribute(fg.G), color.Attribute(fg.B),
		48, 2, color.Attribute(bg.R), color.Attribute(bg.G), color.Attribute(bg.B),
	)
}
