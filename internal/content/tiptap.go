// Package content converts between plain text and the editor's JSON
// document format. Article bodies are stored verbatim as that JSON; this
// package is the only place that looks inside them.
package content

import (
	"encoding/json"
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Node is one node of an editor document.
type Node struct {
	Type    string         `json:"type"`
	Text    string         `json:"text,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []Node         `json:"content,omitempty"`
}

// DefaultExcerptRunes is the excerpt length used by listings.
const DefaultExcerptRunes = 80

// Ellipsis is appended to truncated excerpts.
const Ellipsis = "..."

var (
	tagRE   = regexp.MustCompile(`<[^>]*>`)
	spaceRE = regexp.MustCompile(`\s+`)
)

// skipped node types never contribute text.
var skipped = map[string]bool{
	"codeBlock": true,
	"image":     true,
	"video":     true,
	"iframe":    true,
}

// block node types are separated by a space.
var block = map[string]bool{
	"paragraph":  true,
	"heading":    true,
	"blockquote": true,
}

// Wrap returns a document holding text as a single paragraph. Empty text
// yields a document with one empty paragraph.
func Wrap(text string) string {
	p := Node{Type: "paragraph"}
	if text != "" {
		p.Content = []Node{{Type: "text", Text: text}}
	}
	b, _ := json.Marshal(Node{Type: "doc", Content: []Node{p}})
	return string(b)
}

// Parse decodes raw into a document. It reports false for anything that
// is not a JSON object with a "type".
func Parse(raw string) (Node, bool) {
	var n Node
	if err := json.Unmarshal([]byte(raw), &n); err != nil || n.Type == "" {
		return Node{}, false
	}
	return n, true
}

// IsDocument reports whether raw is an editor document.
func IsDocument(raw string) bool {
	_, ok := Parse(raw)
	return ok
}

// PlainText extracts readable text from raw. Media and code blocks are
// dropped, hard breaks become spaces, markup is stripped, HTML entities are
// decoded, and whitespace is collapsed. Input that is not a document is
// treated as plain text.
func PlainText(raw string) string {
	doc, ok := Parse(raw)
	if !ok {
		return normalize(raw)
	}
	var b strings.Builder
	for _, n := range doc.Content {
		b.WriteString(extract(n))
		if block[n.Type] {
			b.WriteByte(' ')
		}
	}
	return normalize(b.String())
}

// Excerpt returns at most maxRunes runes of PlainText(raw), followed by
// Ellipsis when truncated. maxRunes <= 0 means DefaultExcerptRunes.
func Excerpt(raw string, maxRunes int) string {
	return Truncate(PlainText(raw), maxRunes)
}

// Truncate clips s to maxRunes runes and appends Ellipsis if it did.
func Truncate(s string, maxRunes int) string {
	if maxRunes <= 0 {
		maxRunes = DefaultExcerptRunes
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:maxRunes])) + Ellipsis
}

func extract(n Node) string {
	switch {
	case skipped[n.Type]:
		return ""
	case n.Type == "hardBreak":
		return " "
	case n.Text != "":
		return n.Text
	}
	var b strings.Builder
	for _, c := range n.Content {
		b.WriteString(extract(c))
	}
	return b.String()
}

func normalize(s string) string {
	s = tagRE.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.TrimSpace(spaceRE.ReplaceAllString(s, " "))
}
