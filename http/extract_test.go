package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/harborline/shipdesk"
	shiphttp "github.com/harborline/shipdesk/http"
	"github.com/harborline/shipdesk/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_Upload(t *testing.T) {
	t.Parallel()

	t.Run("stores file", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t)
		s.UploadStore.(*mock.UploadStore).SaveUploadFn = func(_ context.Context, filename string, r io.Reader) (*shipdesk.Upload, error) {
			data, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, "Berth 2", string(data))
			assert.Equal(t, "plan.txt", filename)
			return &shipdesk.Upload{ID: "abc", Filename: filename, Path: "/uploads/abc_plan.txt", Size: 7, ContentHash: "ff"}, nil
		}

		body, contentType := multipartBody(t, "file", "plan.txt", "Berth 2")
		req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		got := decode[map[string]any](t, rec)
		assert.Equal(t, true, got["success"])
		assert.Equal(t, "plan.txt", got["filename"])
		assert.Equal(t, "/uploads/abc_plan.txt", got["file_path"])
		assert.Equal(t, float64(7), got["file_size"])
	})

	t.Run("requires file field", func(t *testing.T) {
		t.Parallel()

		body, contentType := multipartBody(t, "document", "plan.txt", "Berth 2")
		req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		newTestServer(t).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "No file provided", errorMessage(t, rec))
	})

	t.Run("reports store errors", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t)
		s.UploadStore.(*mock.UploadStore).SaveUploadFn = func(context.Context, string, io.Reader) (*shipdesk.Upload, error) {
			return nil, shipdesk.Errorf(shipdesk.EINVALID, "Unsupported file type. Please use PDF, CSV, TXT or HTML files.")
		}

		body, contentType := multipartBody(t, "file", "plan.docx", "x")
		req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, errorMessage(t, rec), "Unsupported file type")
	})

	t.Run("rejects oversized request", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader(""))
		req.ContentLength = shipdesk.MaxUploadSize * 2
		req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
		rec := httptest.NewRecorder()
		newTestServer(t).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "File size exceeds 16MB limit", errorMessage(t, rec))
	})
}

func TestServer_Extract(t *testing.T) {
	t.Parallel()

	t.Run("reads, extracts and removes upload", func(t *testing.T) {
		t.Parallel()

		var removed string
		s := newTestServer(t)
		store := s.UploadStore.(*mock.UploadStore)
		store.OpenUploadFn = func(_ context.Context, path string) ([]byte, error) {
			return []byte("raw"), nil
		}
		store.RemoveUploadFn = func(_ context.Context, path string) error {
			removed = path
			return nil
		}
		s.DocumentReader.(*mock.DocumentReader).ReadDocumentFn = func(_ context.Context, name string, data []byte) (*shipdesk.Document, error) {
			assert.Equal(t, "/uploads/abc_plan.txt", name)
			assert.Equal(t, "raw", string(data))
			return &shipdesk.Document{Name: name, Text: "Vessel Name: Ocean Star\nBerth 2"}, nil
		}
		s.FieldExtractor.(*mock.FieldExtractor).ExtractFn = func(text string) shipdesk.Fields {
			return shipdesk.Fields{"vesselName": "Ocean Star", "berthLocation": "Berth 2"}
		}

		rec := serve(s, http.MethodPost, "/api/extract", `{"file_path":"/uploads/abc_plan.txt"}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		report := decode[shipdesk.ExtractionReport](t, rec)
		assert.True(t, report.Success)
		assert.Equal(t, "Vessel Name: Ocean Star\nBerth 2", report.ExtractedText)
		assert.Equal(t, "Ocean Star", report.ParsedData["vesselName"])
		assert.Equal(t, 2, report.Debug.PatternsFound)
		assert.Equal(t, "/uploads/abc_plan.txt", removed)
	})

	t.Run("missing file path", func(t *testing.T) {
		t.Parallel()

		rec := serve(newTestServer(t), http.MethodPost, "/api/extract", `{}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "File not found", errorMessage(t, rec))
	})

	t.Run("unreadable document keeps upload", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t)
		s.UploadStore.(*mock.UploadStore).OpenUploadFn = func(context.Context, string) ([]byte, error) {
			return []byte("junk"), nil
		}
		s.DocumentReader.(*mock.DocumentReader).ReadDocumentFn = func(context.Context, string, []byte) (*shipdesk.Document, error) {
			return nil, shipdesk.Errorf(shipdesk.EINVALID, "Error reading PDF: no header")
		}

		rec := serve(s, http.MethodPost, "/api/extract", `{"file_path":"abc_plan.pdf"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Error reading PDF: no header", errorMessage(t, rec))
	})
}

func TestServer_RateLimit(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	s.Limiter = shiphttp.NewClientLimiter(0.001, 1)

	first := serve(s, http.MethodPost, "/api/extract", `{}`)
	second := serve(s, http.MethodPost, "/api/extract", `{}`)
	health := serve(s, http.MethodGet, "/api/health", "")

	assert.Equal(t, http.StatusNotFound, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, http.StatusOK, health.Code, "other routes are not limited")
}
