package assets

import (
	"embed"
	"fmt"
)

//go:embed styles/*.css templates/*.html
var builtin embed.FS

// textKind locates one family of text assets inside a tree.
type textKind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = textKind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templateKind = textKind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
)

func (k textKind) path(name string) string {
	return k.dir + "/" + name + k.ext
}

// EmbeddedLoader serves the built-in card stylesheet and template.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle returns styles/{name}.css.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return e.load(styleKind, name)
}

// LoadTemplate returns templates/{name}.html.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return e.load(templateKind, name)
}

func (e *EmbeddedLoader) load(k textKind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	data, err := builtin.ReadFile(k.path(name))
	if err != nil {
		return "", fmt.Errorf("%w: %q", k.notFound, name)
	}
	return string(data), nil
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
