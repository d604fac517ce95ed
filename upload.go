package shipdesk

import (
	"context"
	"io"
)

// MaxUploadSize is the largest accepted upload in bytes.
const MaxUploadSize = 16 << 20

// Upload is a file stored for later extraction.
type Upload struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	Path        string `json:"file_path"`
	Size        int64  `json:"file_size"`
	ContentHash string `json:"content_hash"`
}

// UploadStore keeps uploaded files until they are extracted.
type UploadStore interface {
	// SaveUpload stores the contents of r under a sanitised version of filename.
	// Returns EINVALID for unsupported file types and ETOOLARGE when r exceeds
	// MaxUploadSize.
	SaveUpload(ctx context.Context, filename string, r io.Reader) (*Upload, error)

	// OpenUpload returns the contents of a stored upload.
	// Returns ENOTFOUND if path does not name a stored upload.
	OpenUpload(ctx context.Context, path string) ([]byte, error)

	// RemoveUpload deletes a stored upload.
	// Returns ENOTFOUND if path does not name a stored upload.
	RemoveUpload(ctx context.Context, path string) error
}
