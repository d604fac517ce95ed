package slog

import (
	"log/slog"
	"time"

	"github.com/harborline/shipdesk"
)

// Ensure LoggingFieldExtractor implements shipdesk.FieldExtractor.
var _ shipdesk.FieldExtractor = (*LoggingFieldExtractor)(nil)

// LoggingFieldExtractor wraps a FieldExtractor with debug logging.
type LoggingFieldExtractor struct {
	next   shipdesk.FieldExtractor
	logger *slog.Logger
}

// NewLoggingFieldExtractor creates a new LoggingFieldExtractor.
func NewLoggingFieldExtractor(next shipdesk.FieldExtractor, logger *slog.Logger) *LoggingFieldExtractor {
	return &LoggingFieldExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs how many fields were found.
func (e *LoggingFieldExtractor) Extract(text string) (fields shipdesk.Fields) {
	defer func(begin time.Time) {
		e.logger.Debug("field extraction",
			"chars", len(text),
			"fields", len(fields),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.Extract(text)
}
