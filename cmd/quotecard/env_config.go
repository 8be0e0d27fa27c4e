package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/alnah/go-quotecard/internal/config"
)

// defaultEnvFile is read when present and --env-file is not given.
const defaultEnvFile = ".env"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring config files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string // QUOTECARD_CONFIG: config file name or path
	Theme      string // QUOTECARD_THEME: theme identifier
	Timeout    string // QUOTECARD_TIMEOUT: per-export timeout
	OutputDir  string // QUOTECARD_OUTPUT_DIR: artifact directory

	// Tier 2 - Fonts
	FontsDir string // QUOTECARD_FONTS_DIR: local font directory
	FontsURL string // QUOTECARD_FONTS_URL: remote font base URL

	// Tier 3 - Image
	ImageFormat  string  // QUOTECARD_IMAGE_FORMAT: png, jpeg, webp
	ImageQuality int     // QUOTECARD_IMAGE_QUALITY: 1-100
	ImageScale   float64 // QUOTECARD_IMAGE_SCALE: device scale factor
	ToastTime    string  // QUOTECARD_TOAST_DURATION: notification lifetime
}

// knownEnvVars lists valid QUOTECARD_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"QUOTECARD_CONFIG":     true,
	"QUOTECARD_THEME":      true,
	"QUOTECARD_TIMEOUT":    true,
	"QUOTECARD_OUTPUT_DIR": true,
	// Tier 2 - Fonts
	"QUOTECARD_FONTS_DIR": true,
	"QUOTECARD_FONTS_URL": true,
	// Tier 3 - Image
	"QUOTECARD_IMAGE_FORMAT":   true,
	"QUOTECARD_IMAGE_QUALITY":  true,
	"QUOTECARD_IMAGE_SCALE":    true,
	"QUOTECARD_TOAST_DURATION": true,
	// Doctor override
	"QUOTECARD_CONTAINER": true,
}

// readEnvFile reads KEY=VALUE pairs from path without touching the
// process environment. A missing default file is not an error.
func readEnvFile(path string) (map[string]string, error) {
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}
	return vars, nil
}

// layeredGetenv returns a lookup where the process environment wins over
// values read from an env file.
func layeredGetenv(getenv func(string) string, file map[string]string) func(string) string {
	return func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return file[key]
	}
}

// loadEnvConfig reads configuration through getenv.
// Numeric values that fail to parse are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:  getenv("QUOTECARD_CONFIG"),
		Theme:       getenv("QUOTECARD_THEME"),
		Timeout:     getenv("QUOTECARD_TIMEOUT"),
		OutputDir:   getenv("QUOTECARD_OUTPUT_DIR"),
		FontsDir:    getenv("QUOTECARD_FONTS_DIR"),
		FontsURL:    getenv("QUOTECARD_FONTS_URL"),
		ImageFormat: getenv("QUOTECARD_IMAGE_FORMAT"),
		ToastTime:   getenv("QUOTECARD_TOAST_DURATION"),
	}

	if q := getenv("QUOTECARD_IMAGE_QUALITY"); q != "" {
		if v, err := strconv.Atoi(q); err == nil && v > 0 {
			cfg.ImageQuality = v
		}
	}
	if s := getenv("QUOTECARD_IMAGE_SCALE"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil && v > 0 {
			cfg.ImageScale = v
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized QUOTECARD_* variables.
// Helps catch typos like QUOTECARD_FONT_DIR instead of QUOTECARD_FONTS_DIR.
func warnUnknownEnvVars(w io.Writer, environ []string, file map[string]string) {
	seen := map[string]bool{}
	for _, kv := range environ {
		seen[strings.SplitN(kv, "=", 2)[0]] = true
	}
	for k := range file {
		seen[k] = true
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		if strings.HasPrefix(name, "QUOTECARD_") && !knownEnvVars[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables replace file values: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Theme != "" {
		cfg.Card.Theme = env.Theme
	}
	if env.Timeout != "" {
		cfg.Timeout = env.Timeout
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}

	// Font sources are exclusive; the env choice replaces both file values.
	if env.FontsDir != "" {
		cfg.Fonts.Dir, cfg.Fonts.URL = env.FontsDir, ""
	}
	if env.FontsURL != "" {
		cfg.Fonts.URL, cfg.Fonts.Dir = env.FontsURL, ""
	}

	if env.ImageFormat != "" {
		cfg.Image.Format = env.ImageFormat
	}
	if env.ImageQuality != 0 {
		cfg.Image.Quality = env.ImageQuality
	}
	if env.ImageScale != 0 {
		cfg.Image.Scale = env.ImageScale
	}
	if env.ToastTime != "" {
		cfg.Toast.Duration = env.ToastTime
	}
}
