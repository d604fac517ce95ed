// Package fs provides file-based storage for uploaded documents.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/harborline/shipdesk"
)

// Ensure UploadStore implements shipdesk.UploadStore at compile time.
var _ shipdesk.UploadStore = (*UploadStore)(nil)

// UploadStore keeps uploads as files in a single directory.
// Files are written to a temporary name and renamed into place once complete.
type UploadStore struct {
	dir string

	// MaxSize is the largest accepted upload in bytes.
	MaxSize int64
}

// NewUploadStore creates an UploadStore rooted at dir.
func NewUploadStore(dir string) *UploadStore {
	return &UploadStore{dir: dir, MaxSize: shipdesk.MaxUploadSize}
}

// SaveUpload stores r as <uuid>_<sanitised filename>.
func (s *UploadStore) SaveUpload(ctx context.Context, filename string, r io.Reader) (*shipdesk.Upload, error) {
	if filename == "" {
		return nil, shipdesk.Errorf(shipdesk.EINVALID, "No file selected")
	}
	format, err := shipdesk.FormatFromName(filename)
	if err != nil {
		return nil, err
	}

	name := SecureFilename(filename)
	if f, err := shipdesk.FormatFromName(name); err != nil || f != format {
		name = "upload." + string(format)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())

	h := xxhash.New()
	n, err := io.Copy(io.MultiWriter(tmp, h), io.LimitReader(&ctxReader{ctx: ctx, r: r}, s.MaxSize+1))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, err
	}
	if n > s.MaxSize {
		return nil, shipdesk.Errorf(shipdesk.ETOOLARGE, "File size exceeds %dMB limit", s.MaxSize>>20)
	}

	upload := &shipdesk.Upload{
		ID:          uuid.New().String(),
		Filename:    name,
		Size:        n,
		ContentHash: fmt.Sprintf("%x", h.Sum64()),
	}
	upload.Path = filepath.Join(s.dir, upload.ID+"_"+name)

	if err := os.Rename(tmp.Name(), upload.Path); err != nil {
		return nil, err
	}
	return upload, nil
}

// OpenUpload returns the contents of the upload at path.
func (s *UploadStore) OpenUpload(ctx context.Context, path string) ([]byte, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if errors.Is(err, os.ErrNotExist) {
		return nil, shipdesk.Errorf(shipdesk.ENOTFOUND, "File not found")
	}
	return data, err
}

// RemoveUpload deletes the upload at path.
func (s *UploadStore) RemoveUpload(ctx context.Context, path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	err = os.Remove(full)
	if errors.Is(err, os.ErrNotExist) {
		return shipdesk.Errorf(shipdesk.ENOTFOUND, "File not found")
	}
	return err
}

// resolve returns the absolute path of an upload, which must sit directly in
// the upload directory. Relative paths are taken relative to that directory.
func (s *UploadStore) resolve(path string) (string, error) {
	notFound := shipdesk.Errorf(shipdesk.ENOTFOUND, "File not found")
	if path == "" {
		return "", notFound
	}

	dir, err := filepath.Abs(s.dir)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	full, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if filepath.Dir(full) != dir || strings.HasPrefix(filepath.Base(full), ".") {
		return "", notFound
	}
	return full, nil
}

// SecureFilename reduces name to a safe ASCII file name made of letters,
// digits, underscores, dots and dashes. Path separators and whitespace
// become underscores and leading or trailing dots and underscores are
// dropped. The result may be empty.
func SecureFilename(name string) string {
	name = norm.NFKD.String(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r > unicode.MaxASCII:
			return -1
		case r == '/' || r == '\\':
			return ' '
		}
		return r
	}, name)
	name = strings.Join(strings.Fields(name), "_")
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '_' || r == '.' || r == '-':
			return r
		}
		return -1
	}, name)
	return strings.Trim(name, "._")
}

// ctxReader stops reading once its context is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *ctxReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}
