package main

import (
	"errors"
	"os"

	quotecard "github.com/alnah/go-quotecard"
	"github.com/alnah/go-quotecard/internal/config"
)

// Exit codes for the quotecard CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All requested exports delivered
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or card
	ExitIO      = 3 // File not found, permission denied, delivery or font retrieval
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, quotecard.ErrBrowserConnect) ||
		errors.Is(err, quotecard.ErrPageCreate) ||
		errors.Is(err, quotecard.ErrPageLoad) ||
		errors.Is(err, quotecard.ErrElementNotFound) ||
		errors.Is(err, quotecard.ErrCapture) {
		return ExitBrowser
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, quotecard.ErrEmptyBody) ||
		errors.Is(err, quotecard.ErrUnknownTheme) ||
		errors.Is(err, quotecard.ErrFieldTooLong) ||
		errors.Is(err, quotecard.ErrInvalidQuality) ||
		errors.Is(err, quotecard.ErrInvalidFormat) ||
		errors.Is(err, quotecard.ErrInvalidScale) ||
		errors.Is(err, quotecard.ErrInvalidAssetPath) ||
		errors.Is(err, quotecard.ErrInvalidFontURL) ||
		errors.Is(err, quotecard.ErrInvalidBundle) ||
		errors.Is(err, ErrUsage) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, quotecard.ErrAssetFetch) ||
		errors.Is(err, quotecard.ErrDeliver) ||
		errors.Is(err, ErrReadBody) {
		return ExitIO
	}

	return ExitGeneral
}
