package quotecard

import "errors"

// Sentinel errors for export operations.
var (
	// ErrCapture reports that the live card could not be turned into an image.
	ErrCapture = errors.New("image capture failed")
	// ErrAssetFetch reports that a font binary could not be retrieved.
	ErrAssetFetch = errors.New("font retrieval failed")
	// ErrSynthesis reports that the bundle document or archive could not be built.
	ErrSynthesis = errors.New("bundle synthesis failed")

	ErrBrowserConnect  = errors.New("failed to connect to browser")
	ErrPageCreate      = errors.New("failed to create browser page")
	ErrPageLoad        = errors.New("failed to load page")
	ErrElementNotFound = errors.New("card element not found")
	ErrDeliver         = errors.New("artifact delivery failed")
	ErrInvalidBundle   = errors.New("invalid bundle archive")

	// Card validation errors.
	ErrEmptyBody    = errors.New("card body cannot be empty")
	ErrUnknownTheme = errors.New("unknown theme")
	ErrFieldTooLong = errors.New("field exceeds maximum length")

	// Capture settings validation errors.
	ErrInvalidQuality = errors.New("invalid image quality")
	ErrInvalidFormat  = errors.New("invalid image format")
	ErrInvalidScale   = errors.New("invalid device scale factor")

	// Asset loading errors.
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrInvalidFontURL   = errors.New("invalid font base URL")
)
