package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	quotecard "github.com/alnah/go-quotecard"
	"github.com/alnah/go-quotecard/internal/config"
	"github.com/alnah/go-quotecard/internal/dateutil"
	"github.com/alnah/go-quotecard/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage    = errors.New("invalid usage")
	ErrReadBody = errors.New("failed to read body file")
)

// maxBodyFileSize bounds --body-file reads. The card itself caps the body
// far lower; this only keeps a wrong path from loading a huge file.
const maxBodyFileSize = 1 << 20

// runExport builds a card from config, env and flags, then exports it.
func runExport(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseExportFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printExportUsage(env.Stdout)
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, positional[0])
	}

	cfg, err := resolveConfig(flags, env)
	if err != nil {
		return err
	}

	card, err := buildCard(flags, cfg, os.Stdin, env.Now())
	if err != nil {
		return err
	}

	session := quotecard.NewSession(card)
	if cfg.Card.Theme != "" {
		if err := session.SetTheme(quotecard.ThemeID(cfg.Card.Theme)); err != nil {
			return fmt.Errorf("%w%s", err, hints.ForUnknownTheme(quotecard.ThemeIDs()))
		}
	}
	snapshot, _ := session.Snapshot()
	if err := snapshot.Validate(); err != nil {
		return err
	}

	logger := newLogger(env.Stderr, flags.common)
	presenter := newPresenter(env, cfg, flags.common.quiet)
	defer presenter.Close()

	opts, closeFonts, err := exportOptions(cfg, logger, presenter)
	if err != nil {
		return err
	}
	defer closeFonts()

	exporter, err := env.NewExporter(session, opts...)
	if err != nil {
		return err
	}
	defer exporter.Close()

	var errs []error
	for _, ch := range selectedChannels(flags.channels) {
		outcome, ok := exporter.Export(ctx, ch)
		if !ok {
			continue
		}
		if outcome.Err != nil {
			errs = append(errs, fmt.Errorf("%s export: %w%s", ch, outcome.Err, hintFor(outcome.Err, cfg, env.Getenv)))
			continue
		}
		if outcome.Skipped || flags.common.quiet {
			continue
		}
		fmt.Fprintf(env.Stdout, "%s (%d bytes)\n",
			quotecard.DirDownloader{Dir: cfg.Output.Dir}.Path(outcome.FileName), outcome.Size)
	}

	return errors.Join(errs...)
}

// resolveConfig loads the config file, then layers env vars and flags.
func resolveConfig(flags *exportFlags, env *Environment) (*config.Config, error) {
	fileVars, err := readEnvFile(flags.common.envFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	getenv := layeredGetenv(env.Getenv, fileVars)
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr, env.Environ(), fileVars)
	}
	envCfg := loadEnvConfig(getenv)

	cfg := config.DefaultConfig()
	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name != "" {
		cfg, err = config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(userConfigCandidates(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags applies set flags over cfg (CLI wins).
func mergeFlags(flags *exportFlags, cfg *config.Config) {
	if flags.card.theme != "" {
		cfg.Card.Theme = flags.card.theme
	}
	if flags.output != "" {
		cfg.Output.Dir = flags.output
	}
	if flags.timeout != "" {
		cfg.Timeout = flags.timeout
	}
	if flags.assetPath != "" {
		cfg.Assets.BasePath = flags.assetPath
	}
	if flags.fonts.dir != "" {
		cfg.Fonts.Dir, cfg.Fonts.URL = flags.fonts.dir, ""
	}
	if flags.fonts.url != "" {
		cfg.Fonts.URL, cfg.Fonts.Dir = flags.fonts.url, ""
	}
	if flags.image.format != "" {
		cfg.Image.Format = flags.image.format
	}
	if flags.image.quality != 0 {
		cfg.Image.Quality = flags.image.quality
	}
	if flags.image.scale != 0 {
		cfg.Image.Scale = flags.image.scale
	}
}

// buildCard starts from the sample card and applies config, then flags.
// A "today" title is expanded against now.
func buildCard(flags *exportFlags, cfg *config.Config, stdin io.Reader, now time.Time) (quotecard.Card, error) {
	card := quotecard.DefaultCard()

	if cfg.Card.Title != "" {
		card.Title = cfg.Card.Title
	}
	if cfg.Card.Body != "" {
		card.Body = cfg.Card.Body
	}
	if cfg.Card.Attribution != "" {
		card.Attribution = cfg.Card.Attribution
	}

	if flags.card.titleSet {
		card.Title = flags.card.title
	}
	if flags.card.attributionSet {
		card.Attribution = flags.card.attribution
	}

	switch {
	case flags.card.body != "" && flags.card.bodyFile != "":
		return quotecard.Card{}, fmt.Errorf("%w: --body and --body-file are mutually exclusive", ErrUsage)
	case flags.card.body != "":
		card.Body = unescapeNewlines(flags.card.body)
	case flags.card.bodyFile != "":
		body, err := readBodyFile(flags.card.bodyFile, stdin)
		if err != nil {
			return quotecard.Card{}, err
		}
		card.Body = body
	}

	title, err := dateutil.Expand(card.Title, now)
	if err != nil {
		return quotecard.Card{}, fmt.Errorf("%w: --title: %v", ErrUsage, err)
	}
	card.Title = title

	return card, nil
}

// unescapeNewlines turns a literal \n typed on the command line into a line break.
func unescapeNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

func readBodyFile(path string, stdin io.Reader) (string, error) {
	var r io.Reader
	if path == "-" {
		r = stdin
	} else {
		f, err := os.Open(path) // #nosec G304 -- path is user-provided
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrReadBody, err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, maxBodyFileSize))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadBody, err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// exportOptions translates the resolved config into controller options.
// The returned func releases the font source.
func exportOptions(cfg *config.Config, logger zerolog.Logger, n quotecard.Notifier) ([]quotecard.Option, func(), error) {
	opts := []quotecard.Option{
		quotecard.WithLogger(logger),
		quotecard.WithNotifier(n),
		quotecard.WithDownloader(quotecard.DirDownloader{Dir: cfg.Output.Dir}),
	}
	closeFonts := func() {}

	if d := cfg.TimeoutDuration(); d > 0 {
		opts = append(opts, quotecard.WithTimeout(d))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, quotecard.WithAssetPath(cfg.Assets.BasePath))
	}

	format, err := quotecard.ParseImageFormat(cfg.Image.Format)
	if err != nil {
		return nil, closeFonts, err
	}
	opts = append(opts, quotecard.WithImageFormat(format))
	if cfg.Image.Quality != 0 {
		opts = append(opts, quotecard.WithQuality(cfg.Image.Quality))
	}
	if cfg.Image.Scale != 0 {
		opts = append(opts, quotecard.WithScale(cfg.Image.Scale))
	}

	switch {
	case cfg.Fonts.Dir != "":
		src, err := quotecard.NewDirFontSource(cfg.Fonts.Dir)
		if err != nil {
			return nil, closeFonts, err
		}
		opts = append(opts, quotecard.WithFontSource(src))
	case cfg.Fonts.URL != "":
		src, err := quotecard.NewHTTPFontSource(cfg.Fonts.URL)
		if err != nil {
			return nil, closeFonts, err
		}
		closeFonts = func() { _ = src.Close() }
		opts = append(opts, quotecard.WithFontSource(src))
	}

	return opts, closeFonts, nil
}

// selectedChannels returns the channels to export, bundle first since it
// does not need a browser.
func selectedChannels(f channelFlags) []quotecard.Channel {
	if !f.image && !f.bundle {
		return []quotecard.Channel{quotecard.ChannelBundle, quotecard.ChannelImage}
	}
	var chs []quotecard.Channel
	if f.bundle {
		chs = append(chs, quotecard.ChannelBundle)
	}
	if f.image {
		chs = append(chs, quotecard.ChannelImage)
	}
	return chs
}

// newLogger writes human-readable logs to w.
// Level: warn by default, debug with --verbose, disabled with --quiet.
func newLogger(w io.Writer, f commonFlags) zerolog.Logger {
	level := zerolog.WarnLevel
	switch {
	case f.quiet:
		level = zerolog.Disabled
	case f.verbose:
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}

// hintFor returns an actionable hint for an export error.
func hintFor(err error, cfg *config.Config, getenv func(string) string) string {
	switch {
	case errors.Is(err, quotecard.ErrBrowserConnect):
		inContainer, _ := isContainer(getenv)
		return hints.ForBrowserConnect(getenv, inContainer)
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, quotecard.ErrAssetFetch):
		var files []string
		for _, v := range quotecard.FontVariants() {
			files = append(files, v.Name)
		}
		return hints.ForFontFetch(cfg.Fonts.URL != "", files)
	case errors.Is(err, quotecard.ErrDeliver):
		return hints.ForOutputDirectory()
	default:
		return ""
	}
}

// userConfigCandidates lists where a named config could be created.
func userConfigCandidates(name string) []string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, "go-quotecard", name+".yaml")}
}
