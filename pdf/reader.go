// Package pdf reads the text of PDF documents.
//
// pdfcpu validates the file and counts its pages. Page text is decoded with
// ledongthuc/pdf, which tolerates the loosely encoded fonts found in
// generated stowage and discharge plans.
package pdf

import (
	"bytes"
	"context"
	"strings"

	lpdf "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/harborline/shipdesk"
)

// Ensure Reader implements shipdesk.DocumentReader at compile time.
var _ shipdesk.DocumentReader = (*Reader)(nil)

// Reader reads PDF documents.
type Reader struct {
	strict bool
}

// Option configures a Reader.
type Option func(*Reader)

// WithStrictValidation rejects files that only pass pdfcpu's relaxed validation.
func WithStrictValidation() Option {
	return func(r *Reader) {
		r.strict = true
	}
}

// NewReader creates a new PDF reader.
func NewReader(opts ...Option) *Reader {
	r := &Reader{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReadDocument returns the text of every page wrapped in page markers.
// Pages whose content cannot be decoded contribute empty text.
func (r *Reader) ReadDocument(ctx context.Context, name string, data []byte) (*shipdesk.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total, err := r.pageCount(data)
	if err != nil {
		return nil, shipdesk.Errorf(shipdesk.EINVALID, "Error reading PDF: %v", err)
	}

	// pdfcpu accepted the file, so a failure here only costs the page text.
	doc, _ := lpdf.NewReader(bytes.NewReader(data), int64(len(data)))

	var b strings.Builder
	for n := 1; n <= total; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		shipdesk.WritePage(&b, n, total, pageText(doc, n))
	}

	return &shipdesk.Document{
		Name:   name,
		Format: shipdesk.FormatPDF,
		Text:   b.String(),
		Pages:  total,
	}, nil
}

func (r *Reader) pageCount(data []byte) (int, error) {
	conf := model.NewDefaultConfiguration()
	if !r.strict {
		conf.ValidationMode = model.ValidationRelaxed
	}
	pctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return 0, err
	}
	return pctx.PageCount, nil
}

// pageText returns the plain text of page n, or "" if it cannot be decoded.
func pageText(doc *lpdf.Reader, n int) (text string) {
	if doc == nil || n > doc.NumPage() {
		return ""
	}
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()
	page := doc.Page(n)
	if page.V.IsNull() {
		return ""
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}
