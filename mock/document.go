package mock

import (
	"context"

	"github.com/harborline/shipdesk"
)

var _ shipdesk.DocumentReader = (*DocumentReader)(nil)

// DocumentReader is a mock implementation of shipdesk.DocumentReader.
type DocumentReader struct {
	ReadDocumentFn func(ctx context.Context, name string, data []byte) (*shipdesk.Document, error)
}

func (r *DocumentReader) ReadDocument(ctx context.Context, name string, data []byte) (*shipdesk.Document, error) {
	return r.ReadDocumentFn(ctx, name, data)
}
