package assets

// AssetLoader defines the contract for loading the card stylesheet and
// the card document template.
// Implementations may load from embedded assets, filesystem, S3, database, etc.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)
}

// DefaultStyleName is the name of the built-in card stylesheet.
const DefaultStyleName = "card"

// DefaultTemplateName is the name of the built-in card document template.
const DefaultTemplateName = "card"
