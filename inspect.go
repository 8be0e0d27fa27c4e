package quotecard

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxIndexSize bounds how much of index.html InspectBundle will read.
const maxIndexSize = 1 << 20

// FontRef is one src entry of the bundle's @font-face rule.
type FontRef struct {
	URL    string
	Format string
}

// BundleReport is the structure recovered from a bundle archive.
type BundleReport struct {
	Entries []string // Archive entry names in stored order

	HasHeading bool
	Heading    string
	Body       string
	HasFooter  bool
	Footer     string

	Background string // .card background-color as declared
	Foreground string // .card color as declared
	WhiteSpace string // .card-main white-space as declared
	FontFamily string // @font-face family, unquoted
	Fonts      []FontRef

	MissingFonts []string // Font URLs with no matching archive entry
}

// InspectBundle opens a bundle produced by Bundler and reports what a
// browser opening index.html would show.
func InspectBundle(data []byte) (*BundleReport, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBundle, err)
	}

	report := &BundleReport{}
	var index *zip.File
	for _, f := range zr.File {
		report.Entries = append(report.Entries, f.Name)
		if f.Name == IndexFile {
			index = f
		}
	}
	if index == nil {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidBundle, IndexFile)
	}

	rc, err := index.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrInvalidBundle, IndexFile, err)
	}
	defer rc.Close()

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(rc, maxIndexSize))
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrInvalidBundle, IndexFile, err)
	}

	card := doc.Find("div.card").First()
	if card.Length() == 0 {
		return nil, fmt.Errorf("%w: no card element", ErrInvalidBundle)
	}

	if head := card.ChildrenFiltered(".card-head"); head.Length() > 0 {
		report.HasHeading = true
		report.Heading = head.Text()
	}
	report.Body = card.ChildrenFiltered(".card-main").Text()
	if foot := card.ChildrenFiltered(".card-foot"); foot.Length() > 0 {
		report.HasFooter = true
		report.Footer = foot.Text()
	}

	var css strings.Builder
	doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		css.WriteString(s.Text())
		css.WriteString("\n")
	})
	applyStyleRules(report, parseCSSRules(css.String()))

	present := make(map[string]bool, len(report.Entries))
	for _, name := range report.Entries {
		present[name] = true
	}
	for _, ref := range report.Fonts {
		if !present[ref.URL] {
			report.MissingFonts = append(report.MissingFonts, ref.URL)
		}
	}

	return report, nil
}

var (
	cssCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	cssRuleRe    = regexp.MustCompile(`([^{}]+)\{([^{}]*)\}`)
	fontSrcRe    = regexp.MustCompile(`url\(\s*['"]?([^'")]+)['"]?\s*\)\s*format\(\s*['"]?([^'")]+)['"]?\s*\)`)
)

// cssRule is a flat selector block. The card stylesheet has no nesting.
type cssRule struct {
	selector string
	decls    map[string]string
}

func parseCSSRules(css string) []cssRule {
	css = cssCommentRe.ReplaceAllString(css, "")
	var rules []cssRule
	for _, m := range cssRuleRe.FindAllStringSubmatch(css, -1) {
		rule := cssRule{selector: strings.TrimSpace(m[1]), decls: map[string]string{}}
		for _, decl := range strings.Split(m[2], ";") {
			prop, value, ok := strings.Cut(decl, ":")
			if !ok {
				continue
			}
			rule.decls[strings.ToLower(strings.TrimSpace(prop))] = strings.TrimSpace(value)
		}
		rules = append(rules, rule)
	}
	return rules
}

// applyStyleRules merges rules in cascade order; later declarations win.
func applyStyleRules(report *BundleReport, rules []cssRule) {
	for _, r := range rules {
		switch r.selector {
		case "@font-face":
			if v, ok := r.decls["font-family"]; ok {
				report.FontFamily = strings.Trim(v, `'"`)
			}
			if v, ok := r.decls["src"]; ok {
				report.Fonts = report.Fonts[:0]
				for _, m := range fontSrcRe.FindAllStringSubmatch(v, -1) {
					report.Fonts = append(report.Fonts, FontRef{URL: m[1], Format: m[2]})
				}
			}
		case ".card":
			if v, ok := r.decls["background-color"]; ok {
				report.Background = v
			}
			if v, ok := r.decls["color"]; ok {
				report.Foreground = v
			}
		case ".card-main":
			if v, ok := r.decls["white-space"]; ok {
				report.WhiteSpace = v
			}
		}
	}
}
