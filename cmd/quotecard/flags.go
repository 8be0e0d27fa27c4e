package main

import (
	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	envFile string
	quiet   bool
	verbose bool
}

// cardFlags holds the card content flags. The *Set fields record whether
// the flag was given, so an explicit empty title can drop the heading.
type cardFlags struct {
	title          string
	titleSet       bool
	body           string
	bodyFile       string
	attribution    string
	attributionSet bool
	theme          string
}

// channelFlags selects which artifacts to export. None = both.
type channelFlags struct {
	image  bool
	bundle bool
}

// fontFlags selects the font source.
type fontFlags struct {
	dir string
	url string
}

// imageFlags holds raster capture flags.
type imageFlags struct {
	format  string
	quality int
	scale   float64
}

// exportFlags holds all flags for the export command.
type exportFlags struct {
	common    commonFlags
	card      cardFlags
	channels  channelFlags
	fonts     fontFlags
	image     imageFlags
	output    string
	timeout   string
	assetPath string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.envFile, "env-file", "", "load environment from file (default: .env if present)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// addCardFlags adds card content flags to a FlagSet.
func addCardFlags(fs *flag.FlagSet, f *cardFlags) {
	fs.StringVar(&f.title, "title", "", "card heading (\"\" = no heading, today[:FORMAT] = date)")
	fs.StringVar(&f.body, "body", "", "card body, \\n for line breaks")
	fs.StringVar(&f.bodyFile, "body-file", "", "read the card body from a file (- = stdin)")
	fs.StringVar(&f.attribution, "attribution", "", "card footer (\"\" = no footer)")
	fs.StringVar(&f.theme, "theme", "", "theme: blue, green, purple, orange")
}

// addChannelFlags adds export channel flags to a FlagSet.
func addChannelFlags(fs *flag.FlagSet, f *channelFlags) {
	fs.BoolVar(&f.image, "image", false, "export the card image")
	fs.BoolVar(&f.bundle, "bundle", false, "export the card bundle (zip)")
}

// addFontFlags adds font source flags to a FlagSet.
func addFontFlags(fs *flag.FlagSet, f *fontFlags) {
	fs.StringVar(&f.dir, "fonts-dir", "", "directory holding the font files")
	fs.StringVar(&f.url, "fonts-url", "", "base URL serving the font files")
}

// addImageFlags adds image capture flags to a FlagSet.
func addImageFlags(fs *flag.FlagSet, f *imageFlags) {
	fs.StringVar(&f.format, "format", "", "image format: png, jpeg, webp")
	fs.IntVar(&f.quality, "quality", 0, "jpeg/webp quality (1-100)")
	fs.Float64Var(&f.scale, "scale", 0, "device scale factor (0-4, default: 1)")
}

// parseExportFlags parses export command flags and returns positional args.
func parseExportFlags(args []string) (*exportFlags, []string, error) {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	f := &exportFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-export timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory (styles/, templates/)")

	addCommonFlags(fs, &f.common)
	addCardFlags(fs, &f.card)
	addChannelFlags(fs, &f.channels)
	addFontFlags(fs, &f.fonts)
	addImageFlags(fs, &f.image)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	f.card.titleSet = fs.Changed("title")
	f.card.attributionSet = fs.Changed("attribution")

	return f, fs.Args(), nil
}

// parseInspectFlags parses inspect command flags.
func parseInspectFlags(args []string) (jsonOutput bool, positional []string, err error) {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.BoolVar(&jsonOutput, "json", false, "print the report as JSON")
	if err := fs.Parse(args); err != nil {
		return false, nil, err
	}
	return jsonOutput, fs.Args(), nil
}
