package shipdesk

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Format is a supported source document format.
type Format string

// Supported document formats. The value is the lower-case file extension.
const (
	FormatPDF  Format = "pdf"
	FormatCSV  Format = "csv"
	FormatTXT  Format = "txt"
	FormatHTML Format = "html"
)

// FormatFromName returns the document format implied by a file name's extension.
// Returns EINVALID for anything that is not a supported format.
func FormatFromName(name string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	switch ext {
	case "pdf":
		return FormatPDF, nil
	case "csv":
		return FormatCSV, nil
	case "txt":
		return FormatTXT, nil
	case "html", "htm":
		return FormatHTML, nil
	}
	return "", Errorf(EINVALID, "Unsupported file type. Please use PDF, CSV, TXT or HTML files.")
}

// Document is the plain text read out of an uploaded file.
type Document struct {
	Name   string `json:"name"`
	Format Format `json:"format"`
	Text   string `json:"text"`

	// Number of pages for paged formats, zero otherwise.
	Pages int `json:"pages"`
}

// DocumentReader turns the bytes of a file into plain text.
type DocumentReader interface {
	// ReadDocument reads the text of the file called name.
	// Returns EINVALID if data cannot be read as the expected format.
	ReadDocument(ctx context.Context, name string, data []byte) (*Document, error)
}

// DocumentReaders dispatches to a reader by the format of the file name.
type DocumentReaders map[Format]DocumentReader

// ReadDocument implements DocumentReader.
func (r DocumentReaders) ReadDocument(ctx context.Context, name string, data []byte) (*Document, error) {
	format, err := FormatFromName(name)
	if err != nil {
		return nil, err
	}
	reader, ok := r[format]
	if !ok {
		return nil, Errorf(EINVALID, "Unsupported file type. Please use PDF, CSV, TXT or HTML files.")
	}
	return reader.ReadDocument(ctx, name, data)
}

// PageHeader returns the marker written before page n of total.
func PageHeader(n, total int) string {
	return fmt.Sprintf("\n=== PAGE %d OF %d ===\n", n, total)
}

// PageFooter returns the marker written after page n.
func PageFooter(n int) string {
	return fmt.Sprintf("\n=== END PAGE %d ===\n", n)
}

// WritePage appends a page of text wrapped in its markers.
func WritePage(b *strings.Builder, n, total int, text string) {
	b.WriteString(PageHeader(n, total))
	b.WriteString(text)
	b.WriteString(PageFooter(n))
}
