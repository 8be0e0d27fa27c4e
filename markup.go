package quotecard

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/alnah/go-quotecard/internal/assets"
)

// markupRenderer turns a card into a standalone HTML document.
// The same document feeds the live view and the bundle.
type markupRenderer struct {
	tmpl  *template.Template
	style template.CSS
}

// markupData is the template input. CSS values are typed so the template
// engine emits them verbatim; every other string is escaped.
type markupData struct {
	FontFamily  string
	Fonts       []FontVariant
	Style       template.CSS
	Background  template.CSS
	Foreground  template.CSS
	Title       string
	Body        string
	Attribution string
}

// newMarkupRenderer loads the card stylesheet and template from loader.
func newMarkupRenderer(loader assets.AssetLoader) (*markupRenderer, error) {
	style, err := loader.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return nil, fmt.Errorf("loading card style: %w", err)
	}

	src, err := loader.LoadTemplate(assets.DefaultTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading card template: %w", err)
	}

	tmpl, err := template.New(assets.DefaultTemplateName).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parsing card template: %w", err)
	}

	return &markupRenderer{
		tmpl:  tmpl,
		style: template.CSS(style), // #nosec G203 -- stylesheet comes from the asset loader, not user input
	}, nil
}

// Render synthesizes the document for card. The theme is resolved from
// the catalog; an unknown theme is an error.
func (m *markupRenderer) Render(card Card) ([]byte, error) {
	theme, err := ResolveTheme(card.Theme)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSynthesis, err)
	}

	data := markupData{
		FontFamily:  FontFamily,
		Fonts:       fontVariants,
		Style:       m.style,
		Background:  template.CSS(theme.BackgroundCSS()), // #nosec G203 -- catalog constant
		Foreground:  template.CSS(theme.ForegroundCSS()), // #nosec G203 -- catalog constant
		Title:       card.Title,
		Body:        normalizeNewlines(card.Body),
		Attribution: card.Attribution,
	}

	var buf bytes.Buffer
	if err := m.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: executing card template: %v", ErrSynthesis, err)
	}
	return buf.Bytes(), nil
}

// normalizeNewlines converts CRLF and lone CR to LF so pre-line breaks
// render the same regardless of where the text was typed.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
