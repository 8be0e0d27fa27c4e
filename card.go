package quotecard

import (
	"fmt"
	"strings"
)

// Field length limits, in bytes.
const (
	MaxTitleLength       = 200
	MaxBodyLength        = 5000
	MaxAttributionLength = 200
)

// Default sample card shown when a session starts.
const (
	DefaultTitle       = "03/22"
	DefaultBody        = "愿意放弃自由来换取保障的人，他最终既得不到自由，也得不到保障。"
	DefaultAttribution = "-哈耶克"
	DefaultTheme       = ThemeBlue
)

// Card is the content being composed. It is a value type: converters
// receive a copy and never modify the caller's card.
type Card struct {
	Title       string  // Empty = heading omitted
	Body        string  // Required; "\n" renders as a line break
	Attribution string  // Empty = footer omitted
	Theme       ThemeID // One of the catalog identifiers
}

// DefaultCard returns the sample card.
func DefaultCard() Card {
	return Card{
		Title:       DefaultTitle,
		Body:        DefaultBody,
		Attribution: DefaultAttribution,
		Theme:       DefaultTheme,
	}
}

// HasTitle reports whether the heading block is rendered.
func (c Card) HasTitle() bool {
	return c.Title != ""
}

// HasAttribution reports whether the footer block is rendered.
func (c Card) HasAttribution() bool {
	return c.Attribution != ""
}

// Validate checks the card before export.
//
// This is the TRUST BOUNDARY for cards built outside a Session: the
// controller validates every snapshot, whatever its origin.
func (c Card) Validate() error {
	if strings.TrimSpace(c.Body) == "" {
		return ErrEmptyBody
	}
	if _, err := ResolveTheme(c.Theme); err != nil {
		return err
	}
	if len(c.Title) > MaxTitleLength {
		return fmt.Errorf("%w: title (%d bytes, max %d)", ErrFieldTooLong, len(c.Title), MaxTitleLength)
	}
	if len(c.Body) > MaxBodyLength {
		return fmt.Errorf("%w: body (%d bytes, max %d)", ErrFieldTooLong, len(c.Body), MaxBodyLength)
	}
	if len(c.Attribution) > MaxAttributionLength {
		return fmt.Errorf("%w: attribution (%d bytes, max %d)", ErrFieldTooLong, len(c.Attribution), MaxAttributionLength)
	}
	return nil
}
