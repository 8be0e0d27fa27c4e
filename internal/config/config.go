package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/alnah/go-quotecard/internal/fileutil"
	"github.com/alnah/go-quotecard/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits. Card limits mirror the card validation in the root package.
const (
	MaxTitleLength       = 200
	MaxBodyLength        = 5000
	MaxAttributionLength = 200
	MaxThemeLength       = 20
	MaxPathLength        = 4096
	MaxURLLength         = 2048 // Browser limit
	MaxFormatLength      = 10
	MaxDurationLength    = 20 // "1m30s"
)

// MaxScale bounds the device scale factor accepted for image capture.
const MaxScale = 4.0

// Config holds all configuration for card exports.
// Struct tags cover both supported file formats.
type Config struct {
	Card    CardConfig   `yaml:"card" toml:"card"`
	Fonts   FontsConfig  `yaml:"fonts" toml:"fonts"`
	Image   ImageConfig  `yaml:"image" toml:"image"`
	Output  OutputConfig `yaml:"output" toml:"output"`
	Toast   ToastConfig  `yaml:"toast" toml:"toast"`
	Assets  AssetsConfig `yaml:"assets" toml:"assets"`
	Timeout string       `yaml:"timeout" toml:"timeout"` // Go duration, e.g. "45s"
}

// CardConfig seeds the session card. Empty fields keep the sample card value.
type CardConfig struct {
	Title       string `yaml:"title" toml:"title"`
	Body        string `yaml:"body" toml:"body"`
	Attribution string `yaml:"attribution" toml:"attribution"`
	Theme       string `yaml:"theme" toml:"theme"` // blue, green, purple, orange
}

// FontsConfig selects where font binaries come from. At most one may be set.
type FontsConfig struct {
	Dir string `yaml:"dir" toml:"dir"` // Directory holding the three font files
	URL string `yaml:"url" toml:"url"` // Base URL serving the three font files
}

// ImageConfig defines raster capture options.
type ImageConfig struct {
	Format  string  `yaml:"format" toml:"format"`   // png (default), jpeg, webp
	Quality int     `yaml:"quality" toml:"quality"` // 1-100, lossy formats only (default: 95)
	Scale   float64 `yaml:"scale" toml:"scale"`     // device scale factor (default: 1)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Dir string `yaml:"dir" toml:"dir"` // Empty = current directory
}

// ToastConfig defines notification options.
type ToastConfig struct {
	Duration string `yaml:"duration" toml:"duration"` // Go duration (default: "3s")
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath" toml:"basePath"` // Empty = use embedded assets
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"card.title", c.Card.Title, MaxTitleLength},
		{"card.body", c.Card.Body, MaxBodyLength},
		{"card.attribution", c.Card.Attribution, MaxAttributionLength},
		{"card.theme", c.Card.Theme, MaxThemeLength},
		{"fonts.dir", c.Fonts.Dir, MaxPathLength},
		{"fonts.url", c.Fonts.URL, MaxURLLength},
		{"image.format", c.Image.Format, MaxFormatLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"toast.duration", c.Toast.Duration, MaxDurationLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"timeout", c.Timeout, MaxDurationLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Fonts.Dir != "" && c.Fonts.URL != "" {
		return fmt.Errorf("%w: fonts.dir and fonts.url are mutually exclusive", ErrInvalidValue)
	}
	if c.Fonts.URL != "" && !fileutil.IsURL(c.Fonts.URL) {
		return fmt.Errorf("%w: fonts.url must start with http:// or https://, got %q", ErrInvalidValue, c.Fonts.URL)
	}

	switch strings.ToLower(c.Image.Format) {
	case "", "png", "jpeg", "jpg", "webp":
	default:
		return fmt.Errorf("%w: image.format %q (must be png, jpeg, or webp)", ErrInvalidValue, c.Image.Format)
	}
	if c.Image.Quality != 0 && (c.Image.Quality < 1 || c.Image.Quality > 100) {
		return fmt.Errorf("%w: image.quality must be between 1 and 100, got %d", ErrInvalidValue, c.Image.Quality)
	}
	if c.Image.Scale < 0 || c.Image.Scale > MaxScale {
		return fmt.Errorf("%w: image.scale must be between 0 and %.0f, got %.2f", ErrInvalidValue, MaxScale, c.Image.Scale)
	}

	if _, err := parseDuration("toast.duration", c.Toast.Duration); err != nil {
		return err
	}
	if _, err := parseDuration("timeout", c.Timeout); err != nil {
		return err
	}

	return nil
}

// TimeoutDuration returns the parsed timeout, or zero when unset.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := parseDuration("timeout", c.Timeout)
	return d
}

// ToastDuration returns the parsed toast duration, or zero when unset.
func (c *Config) ToastDuration() time.Duration {
	d, _ := parseDuration("toast.duration", c.Toast.Duration)
	return d
}

// parseDuration parses a positive Go duration. Empty means unset.
func parseDuration(fieldName, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidValue, fieldName, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive, got %s", ErrInvalidValue, fieldName, value)
	}
	return d, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration: sample card, embedded
// assets, no font source, library defaults for image and timing.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Files ending in .toml are decoded as TOML, everything else as YAML.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if isTOML(configPath) {
		err = decodeTOMLStrict(data, &cfg)
	} else {
		err = yamlutil.UnmarshalStrict(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// decodeTOMLStrict decodes TOML and rejects keys that map to no field.
func decodeTOMLStrict(data []byte, v any) error {
	if err := yamlutil.CheckSize(data); err != nil {
		return err
	}
	md, err := toml.Decode(string(data), v)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown field(s): %s", strings.Join(keys, ", "))
	}
	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml, .toml
// Tries locations in order: current directory, ~/.config/go-quotecard/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml", ".toml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-quotecard", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
