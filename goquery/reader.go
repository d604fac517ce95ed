// Package goquery reads the text of HTML documents.
package goquery

import (
	"bytes"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/harborline/shipdesk"
)

// Ensure Reader implements shipdesk.DocumentReader at compile time.
var _ shipdesk.DocumentReader = (*Reader)(nil)

// skipped elements never contribute text.
var skipped = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"head":     true,
	"svg":      true,
}

// blocks start and end on their own line.
var blocks = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "caption": true, "dd": true, "div": true, "dl": true,
	"dt": true, "fieldset": true, "figcaption": true, "figure": true,
	"footer": true, "form": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "header": true, "hr": true,
	"li": true, "main": true, "nav": true, "ol": true, "p": true,
	"pre": true, "section": true, "table": true, "tbody": true,
	"thead": true, "tfoot": true, "tr": true, "ul": true,
}

// cells are separated from their neighbours by a space.
var cells = map[string]bool{"td": true, "th": true}

// Reader reads HTML documents such as exported berth schedules.
type Reader struct{}

// NewReader creates a new HTML reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadDocument returns the visible text of the document, one block per line.
// The character set is taken from a byte order mark or meta tag, falling
// back to UTF-8 detection.
func (r *Reader) ReadDocument(ctx context.Context, name string, data []byte) (*shipdesk.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return &shipdesk.Document{Name: name, Format: shipdesk.FormatHTML}, nil
	}

	utf8Reader, err := charset.NewReader(bytes.NewReader(data), "text/html")
	if err != nil {
		return nil, shipdesk.Errorf(shipdesk.EINVALID, "Error reading HTML: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(utf8Reader)
	if err != nil {
		return nil, shipdesk.Errorf(shipdesk.EINVALID, "Error reading HTML: %v", err)
	}

	var b strings.Builder
	for _, n := range doc.Nodes {
		writeText(&b, n)
	}

	return &shipdesk.Document{
		Name:   name,
		Format: shipdesk.FormatHTML,
		Text:   tidyLines(b.String()),
	}, nil
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if skipped[n.Data] {
			return
		}
	}

	block := n.Type == html.ElementNode && blocks[n.Data]
	cell := n.Type == html.ElementNode && cells[n.Data]
	if block {
		b.WriteByte('\n')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
	switch {
	case block:
		b.WriteByte('\n')
	case cell:
		b.WriteByte(' ')
	}
}

// tidyLines collapses runs of blanks within each line and drops empty lines.
func tidyLines(s string) string {
	var lines []string
	for line := range strings.SplitSeq(s, "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
