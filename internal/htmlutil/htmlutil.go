// Package htmlutil strips the markup embedded in raw review files.
package htmlutil

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/happyhackingspace/imdbow/internal/textutil"
)

// LoadHTMLString parses HTML string into a goquery Document.
func LoadHTMLString(htmlStr string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
}

// Text returns the visible text of an HTML fragment with entities decoded.
// Line breaks become spaces so words on either side of a <br /> stay apart.
func Text(fragment string) (string, error) {
	if !strings.ContainsAny(fragment, "<&") {
		return strings.TrimSpace(textutil.NormalizeWhitespaces(fragment)), nil
	}
	doc, err := LoadHTMLString(escapeStrayBrackets(fragment))
	if err != nil {
		return "", err
	}
	doc.Find("br, p, div").Each(func(_ int, s *goquery.Selection) {
		s.BeforeNodes(space())
		s.AfterNodes(space())
	})
	return strings.TrimSpace(textutil.NormalizeWhitespaces(doc.Text())), nil
}

func space() *html.Node {
	return &html.Node{Type: html.TextNode, Data: " "}
}

// tagRe matches a complete start, end or self-closing tag.
var tagRe = regexp.MustCompile(`</?[A-Za-z][^<>]*>`)

// escapeStrayBrackets escapes every '<' that does not open a complete tag.
// The HTML tokenizer would otherwise swallow the rest of a review written
// like "a<b great film".
func escapeStrayBrackets(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	var sb strings.Builder
	last := 0
	for _, loc := range tagRe.FindAllStringIndex(s, -1) {
		sb.WriteString(strings.ReplaceAll(s[last:loc[0]], "<", "&lt;"))
		sb.WriteString(s[loc[0]:loc[1]])
		last = loc[1]
	}
	sb.WriteString(strings.ReplaceAll(s[last:], "<", "&lt;"))
	return sb.String()
}
