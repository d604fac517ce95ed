package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	main "github.com/harborline/shipdesk/cmd/shipdesk"
	"github.com/harborline/shipdesk/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for a concurrent writer and reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestServeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("shuts down when context is cancelled", func(t *testing.T) {
		t.Parallel()

		cfg := main.DefaultConfig()
		cfg.Addr = "127.0.0.1:0"
		cfg.DBPath = "shipdesk.db"
		cfg.ShutdownTimeout = time.Second

		logs := &syncBuffer{}
		ctx, cancel := context.WithCancel(context.Background())
		deps := &main.Dependencies{
			Ctx:       ctx,
			Stdout:    &bytes.Buffer{},
			Stderr:    &bytes.Buffer{},
			Config:    cfg,
			Logger:    slog.New(slog.NewTextHandler(logs, nil)),
			Ships:     &mock.ShipService{},
			Users:     &mock.UserService{},
			Uploads:   &mock.UploadStore{},
			Reader:    &mock.DocumentReader{},
			Extractor: &mock.FieldExtractor{},
		}

		done := make(chan error, 1)
		go func() { done <- (&main.ServeCmd{}).Run(deps) }()

		require.Eventually(t, func() bool {
			return strings.Contains(logs.String(), "listening")
		}, 2*time.Second, 10*time.Millisecond)
		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("serve did not stop")
		}
		assert.Contains(t, logs.String(), "shutting down")
	})

	t.Run("fails when address is unusable", func(t *testing.T) {
		t.Parallel()

		cfg := main.DefaultConfig()
		cfg.Addr = "256.0.0.1:0"
		cfg.DBPath = "shipdesk.db"

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Config: cfg,
			Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		}

		err := (&main.ServeCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to listen")
	})
}

var listenURL = regexp.MustCompile(`url=(http://\S+)`)

func TestMain_Serve(t *testing.T) {
	t.Parallel()

	t.Run("global flags before serve still wire uploads", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		uploads := filepath.Join(dir, "uploads")
		stderr := &syncBuffer{}

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- main.NewMain().Run(ctx, []string{
				"--db", filepath.Join(dir, "shipdesk.db"),
				"--log-level", "info",
				"serve", "--addr", "127.0.0.1:0", "--uploads", uploads,
			}, &bytes.Buffer{}, stderr)
		}()
		t.Cleanup(func() {
			cancel()
			select {
			case <-done:
			case <-time.After(2 * time.Second):
				t.Error("serve did not stop")
			}
		})

		var baseURL string
		require.Eventually(t, func() bool {
			m := listenURL.FindStringSubmatch(stderr.String())
			if m == nil {
				return false
			}
			baseURL = m[1]
			return true
		}, 5*time.Second, 10*time.Millisecond)

		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		fw, err := mw.CreateFormFile("file", "plan.txt")
		require.NoError(t, err)
		_, err = io.WriteString(fw, "Vessel Name: Ocean Star")
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		resp, err := http.Post(baseURL+"/api/upload", mw.FormDataContentType(), &body)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var upload struct {
			Path string `json:"file_path"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&upload))
		assert.Equal(t, uploads, filepath.Dir(upload.Path))

		extractBody := strings.NewReader(`{"file_path":` + jsonString(t, upload.Path) + `}`)
		resp2, err := http.Post(baseURL+"/api/extract", "application/json", extractBody)
		require.NoError(t, err)
		defer resp2.Body.Close()
		require.Equal(t, http.StatusOK, resp2.StatusCode)

		var report struct {
			ParsedData map[string]any `json:"parsed_data"`
		}
		require.NoError(t, json.NewDecoder(resp2.Body).Decode(&report))
		assert.Equal(t, "Ocean Star", report.ParsedData["vesselName"])

		_, err = os.Stat(upload.Path)
		assert.True(t, os.IsNotExist(err), "extracted upload is removed")
	})
}

func jsonString(t *testing.T, s string) string {
	t.Helper()
	b, err := json.Marshal(s)
	require.NoError(t, err)
	return string(b)
}
