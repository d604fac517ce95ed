package slog

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/harborline/shipdesk"
)

// Ensure LoggingUploadStore implements shipdesk.UploadStore.
var _ shipdesk.UploadStore = (*LoggingUploadStore)(nil)

// LoggingUploadStore wraps an UploadStore with logging.
type LoggingUploadStore struct {
	next   shipdesk.UploadStore
	logger *slog.Logger
}

// NewLoggingUploadStore creates a new LoggingUploadStore.
func NewLoggingUploadStore(next shipdesk.UploadStore, logger *slog.Logger) *LoggingUploadStore {
	return &LoggingUploadStore{next: next, logger: logger}
}

// SaveUpload delegates to the wrapped store and logs where the file went.
func (s *LoggingUploadStore) SaveUpload(ctx context.Context, filename string, r io.Reader) (upload *shipdesk.Upload, err error) {
	defer func(begin time.Time) {
		attrs := []any{"filename", filename}
		if upload != nil {
			attrs = append(attrs, "path", upload.Path, "size", upload.Size, "hash", upload.ContentHash)
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		s.logger.Info("save upload", attrs...)
	}(time.Now())
	return s.next.SaveUpload(ctx, filename, r)
}

// OpenUpload delegates to the wrapped store.
func (s *LoggingUploadStore) OpenUpload(ctx context.Context, path string) (data []byte, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("open upload",
			"path", path,
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.OpenUpload(ctx, path)
}

// RemoveUpload delegates to the wrapped store.
func (s *LoggingUploadStore) RemoveUpload(ctx context.Context, path string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("remove upload",
			"path", path,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.RemoveUpload(ctx, path)
}
