package assets

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every "asset does not exist" error, so
// callers can fall back without listing asset kinds.
var ErrNotFound = errors.New("asset not found")

// Kind-specific not-found errors. Each wraps ErrNotFound.
var (
	ErrStyleNotFound    = fmt.Errorf("style %w", ErrNotFound)
	ErrTemplateNotFound = fmt.Errorf("template %w", ErrNotFound)
	ErrFontNotFound     = fmt.Errorf("font %w", ErrNotFound)
)

// Access errors. None of these trigger a fallback.
var (
	ErrInvalidAssetName = errors.New("invalid asset name") // separators, dots or traversal
	ErrInvalidBasePath  = errors.New("invalid base path")
	ErrAssetRead        = errors.New("failed to read asset")
	ErrPathTraversal    = errors.New("path traversal detected")
)
