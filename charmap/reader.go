// Package charmap reads plain text and CSV documents in legacy encodings.
package charmap

import (
	"bytes"
	"context"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	xcharmap "golang.org/x/text/encoding/charmap"

	"github.com/harborline/shipdesk"
)

// Ensure Reader implements shipdesk.DocumentReader at compile time.
var _ shipdesk.DocumentReader = (*Reader)(nil)

// Charset is one step of the decoding fallback chain.
type Charset struct {
	Name string

	// Accepts reports whether data is plausibly in this charset.
	Accepts func(data []byte) bool

	// Encoding decodes data. Nil means data is used as is.
	Encoding encoding.Encoding
}

// DefaultCharsets is the fallback chain tried in order. ISO-8859-1 declines
// C1 control bytes so that text with Windows-1252 punctuation falls through.
var DefaultCharsets = []Charset{
	{Name: "utf-8", Accepts: utf8.Valid},
	{Name: "iso-8859-1", Accepts: noC1Controls, Encoding: xcharmap.ISO8859_1},
	{Name: "windows-1252", Accepts: func([]byte) bool { return true }, Encoding: xcharmap.Windows1252},
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader reads TXT and CSV documents.
type Reader struct {
	charsets []Charset
}

// NewReader creates a reader that decodes with charsets, or DefaultCharsets if none are given.
func NewReader(charsets ...Charset) *Reader {
	if len(charsets) == 0 {
		charsets = DefaultCharsets
	}
	return &Reader{charsets: charsets}
}

// ReadDocument decodes data with the first charset that accepts it.
// Returns EINVALID if no charset accepts the data.
func (r *Reader) ReadDocument(ctx context.Context, name string, data []byte) (*shipdesk.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text, _, err := r.Decode(data)
	if err != nil {
		return nil, err
	}

	format, err := shipdesk.FormatFromName(name)
	if err != nil {
		format = shipdesk.FormatTXT
	}

	return &shipdesk.Document{
		Name:   name,
		Format: format,
		Text:   text,
	}, nil
}

// Decode returns data as text along with the name of the charset that decoded it.
func (r *Reader) Decode(data []byte) (string, string, error) {
	for _, cs := range r.charsets {
		if !cs.Accepts(data) {
			continue
		}
		if cs.Encoding == nil {
			return string(bytes.TrimPrefix(data, utf8BOM)), cs.Name, nil
		}
		text, err := cs.Encoding.NewDecoder().Bytes(data)
		if err != nil {
			continue
		}
		return string(text), cs.Name, nil
	}
	return "", "", shipdesk.Errorf(shipdesk.EINVALID, "Could not decode file: unknown text encoding")
}

func noC1Controls(data []byte) bool {
	for _, c := range data {
		if c >= 0x80 && c <= 0x9F {
			return false
		}
	}
	return true
}
