// Package slog provides logging decorators for shipdesk services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/harborline/shipdesk"
)

// Ensure LoggingDocumentReader implements shipdesk.DocumentReader.
var _ shipdesk.DocumentReader = (*LoggingDocumentReader)(nil)

// LoggingDocumentReader wraps a DocumentReader with logging.
type LoggingDocumentReader struct {
	next   shipdesk.DocumentReader
	logger *slog.Logger
}

// NewLoggingDocumentReader creates a new LoggingDocumentReader.
func NewLoggingDocumentReader(next shipdesk.DocumentReader, logger *slog.Logger) *LoggingDocumentReader {
	return &LoggingDocumentReader{next: next, logger: logger}
}

// ReadDocument delegates to the wrapped reader and logs the size of the result.
func (r *LoggingDocumentReader) ReadDocument(ctx context.Context, name string, data []byte) (doc *shipdesk.Document, err error) {
	defer func(begin time.Time) {
		var chars, pages int
		if doc != nil {
			chars, pages = len(doc.Text), doc.Pages
		}
		r.logger.Info("read document",
			"name", name,
			"bytes", len(data),
			"chars", chars,
			"pages", pages,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.ReadDocument(ctx, name, data)
}
