package mock

import (
	"context"
	"io"

	"github.com/harborline/shipdesk"
)

var _ shipdesk.UploadStore = (*UploadStore)(nil)

// UploadStore is a mock implementation of shipdesk.UploadStore.
type UploadStore struct {
	SaveUploadFn   func(ctx context.Context, filename string, r io.Reader) (*shipdesk.Upload, error)
	OpenUploadFn   func(ctx context.Context, path string) ([]byte, error)
	RemoveUploadFn func(ctx context.Context, path string) error
}

func (s *UploadStore) SaveUpload(ctx context.Context, filename string, r io.Reader) (*shipdesk.Upload, error) {
	return s.SaveUploadFn(ctx, filename, r)
}

func (s *UploadStore) OpenUpload(ctx context.Context, path string) ([]byte, error) {
	return s.OpenUploadFn(ctx, path)
}

func (s *UploadStore) RemoveUpload(ctx context.Context, path string) error {
	return s.RemoveUploadFn(ctx, path)
}
