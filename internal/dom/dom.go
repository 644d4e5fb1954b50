// Package dom contains small helpers over goquery used by the teaser
// decorator.
package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseDocument parses a full HTML page from r.
func ParseDocument(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// ParseFragment parses an HTML fragment. The fragment is wrapped in an
// implicit html/body envelope by the parser.
func ParseFragment(fragment string) (*goquery.Document, error) {
	return ParseDocument(strings.NewReader(fragment))
}

// Render serializes the document back to HTML.
func Render(doc *goquery.Document) (string, error) {
	var sb strings.Builder
	for _, n := range doc.Nodes {
		if err := html.Render(&sb, n); err != nil {
			return "", fmt.Errorf("failed to render HTML: %w", err)
		}
	}
	return sb.String(), nil
}

// Span builds a span element carrying a single class and a text child.
func Span(class, text string) *html.Node {
	span := &html.Node{
		Type:     html.ElementNode,
		Data:     "span",
		DataAtom: atom.Span,
		Attr:     []html.Attribute{{Key: "class", Val: class}},
	}
	span.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return span
}

// headingNames covers all heading levels.
var headingNames = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// IsHeading reports whether the selection's first node is a heading element.
func IsHeading(s *goquery.Selection) bool {
	return headingNames[goquery.NodeName(s)]
}

// TrimmedText returns the selection's text content with surrounding
// whitespace removed.
func TrimmedText(s *goquery.Selection) string {
	return strings.TrimSpace(s.Text())
}

// SetStyle sets a single property in the selection's inline style attribute,
// preserving other declarations. An existing declaration for the same
// property is replaced.
func SetStyle(s *goquery.Selection, property, value string) {
	style, _ := s.Attr("style")
	var decls []string
	for _, decl := range strings.Split(style, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		name, _, ok := strings.Cut(decl, ":")
		if ok && strings.TrimSpace(name) == property {
			continue
		}
		decls = append(decls, decl)
	}
	decls = append(decls, property+": "+value)
	s.SetAttr("style", strings.Join(decls, "; "))
}
