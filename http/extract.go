package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harborline/shipdesk"
)

// multipartOverhead is the allowance for multipart framing on top of the file.
const multipartOverhead = 1 << 20

func (s *Server) registerExtractRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Post("/api/upload", s.handleUpload)
		r.Post("/api/extract", s.handleExtract)
	})
}

// UploadResponse is the body returned after a successful upload.
type UploadResponse struct {
	Success bool `json:"success"`
	*shipdesk.Upload
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	tooLarge := shipdesk.Errorf(shipdesk.ETOOLARGE, "File size exceeds %dMB limit", s.MaxUploadSize>>20)

	limit := s.MaxUploadSize + multipartOverhead
	if r.ContentLength > limit {
		s.Error(w, r, tooLarge)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.Error(w, r, tooLarge)
			return
		}
		s.Error(w, r, shipdesk.Errorf(shipdesk.EINVALID, "No file provided"))
		return
	}
	defer file.Close()

	upload, err := s.UploadStore.SaveUpload(r.Context(), header.Filename, file)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, UploadResponse{Success: true, Upload: upload})
}

// ExtractRequest is the body of an extraction request.
type ExtractRequest struct {
	FilePath string `json:"file_path"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FilePath == "" {
		s.Error(w, r, shipdesk.Errorf(shipdesk.ENOTFOUND, "File not found"))
		return
	}

	data, err := s.UploadStore.OpenUpload(r.Context(), req.FilePath)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	doc, err := s.DocumentReader.ReadDocument(r.Context(), req.FilePath, data)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	fields := s.FieldExtractor.Extract(doc.Text)

	if err := s.UploadStore.RemoveUpload(r.Context(), req.FilePath); err != nil {
		s.Logger.Warn("remove extracted upload", "path", req.FilePath, "err", err)
	}

	writeJSON(w, http.StatusOK, shipdesk.NewExtractionReport(doc.Text, fields))
}
