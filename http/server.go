// Package http serves the shipdesk JSON API.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/harborline/shipdesk"
)

// DefaultShutdownTimeout bounds how long Close waits for in-flight requests.
const DefaultShutdownTimeout = 10 * time.Second

// Server is the HTTP API server. Services must be set before Open.
type Server struct {
	ln     net.Listener
	server *http.Server
	router chi.Router

	// Addr is the address to listen on, e.g. ":5000".
	Addr string

	Logger *slog.Logger

	// Now returns the current time. Overridable for tests.
	Now func() time.Time

	// MaxUploadSize bounds the file accepted by the upload endpoint.
	MaxUploadSize int64

	// Limiter throttles uploads and extractions per client. Nil disables it.
	Limiter *ClientLimiter

	ShipService    shipdesk.ShipService
	UserService    shipdesk.UserService
	UploadStore    shipdesk.UploadStore
	DocumentReader shipdesk.DocumentReader
	FieldExtractor shipdesk.FieldExtractor
}

// NewServer creates a server with all routes registered.
func NewServer() *Server {
	s := &Server{
		Logger:        slog.Default(),
		Now:           time.Now,
		MaxUploadSize: shipdesk.MaxUploadSize,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.Error(w, r, shipdesk.Errorf(shipdesk.ENOTFOUND, "Not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed"})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "maritime-dashboard"})
	})
	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "ships-management"})
	})

	s.registerShipRoutes(r)
	s.registerUserRoutes(r)
	s.registerExtractRoutes(r)

	s.router = r
	s.server = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Open begins listening on Addr and serving requests in the background.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go func() {
		if err := s.server.Serve(s.ln); err != nil && err != http.ErrServerClosed {
			s.Logger.Error("http server stopped", "err", err)
		}
	}()
	return nil
}

// Close gracefully shuts down the server, waiting for in-flight requests
// until ctx is done.
func (s *Server) Close(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// ServeHTTP routes a request.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// logRequests writes one access log line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		defer func(begin time.Time) {
			s.Logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(begin),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}(time.Now())
		next.ServeHTTP(ww, r)
	})
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of successful writes that return no resource.
type MessageResponse struct {
	Message string `json:"message"`
}

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	shipdesk.ECONFLICT: http.StatusBadRequest,
	shipdesk.EINVALID:  http.StatusBadRequest,
	shipdesk.ETOOLARGE: http.StatusBadRequest,
	shipdesk.ENOTFOUND: http.StatusNotFound,
	shipdesk.EINTERNAL: http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// Error writes err as a JSON error reply. Internal errors are logged and
// reported without detail.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code := shipdesk.ErrorCode(err)
	if code == shipdesk.EINTERNAL {
		s.Logger.Error("http error",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"err", err,
		)
	}
	writeJSON(w, ErrorStatusCode(code), ErrorResponse{Error: shipdesk.ErrorMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeObject decodes a non-empty JSON object body into its raw members.
// Returns EINVALID with msg when the body is missing, malformed or empty.
func decodeObject(r *http.Request, msg string) (map[string]json.RawMessage, error) {
	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body) == 0 {
		return nil, shipdesk.Errorf(shipdesk.EINVALID, "%s", msg)
	}
	return body, nil
}

// idParam parses a positive integer URL parameter. Anything else is reported
// as a missing resource of kind.
func idParam(r *http.Request, name, kind string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, shipdesk.Errorf(shipdesk.ENOTFOUND, "%s not found", kind)
	}
	return id, nil
}
