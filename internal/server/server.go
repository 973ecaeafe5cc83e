package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/nao1215/webdetect/internal/model"
	"github.com/nao1215/webdetect/internal/pipeline"
	"github.com/nao1215/webdetect/internal/report"
)

// RequestIDHeader is the response header carrying the request id.
const RequestIDHeader = "X-Request-Id"

var (
	// errNotJSONObject is returned when the request body is valid JSON but not an object.
	errNotJSONObject = errors.New("request body must be a JSON object")
	// errImagePathNotString is returned when image_path is set to a non-empty value that is not a string.
	errImagePathNotString = errors.New("image_path must be a string")
)

// Runner turns an image reference into a web detection result.
// *pipeline.Pipeline satisfies it.
type Runner interface {
	Run(ctx context.Context, ref string) (*model.Result, error)
}

// annotateRequest is the body of POST /annotate.
type annotateRequest struct {
	ImagePath any `json:"image_path"`
}

// errorResponse is the body of every non-200 response.
type errorResponse struct {
	Error string `json:"error"`
}

// Server handles web detection requests.
type Server struct {
	runner Runner
	logger *slog.Logger
	newID  func() string
	mux    *http.ServeMux
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for the server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRequestIDFunc replaces the request id generator.
func WithRequestIDFunc(fn func() string) Option {
	return func(s *Server) {
		s.newID = fn
	}
}

// New creates a Server that answers requests with runner.
func New(runner Runner, opts ...Option) *Server {
	s := &Server{
		runner: runner,
		logger: slog.Default(),
		newID:  uuid.NewString,
		mux:    http.NewServeMux(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.mux.HandleFunc("POST /annotate", s.handleAnnotate)
	s.mux.HandleFunc("/annotate", s.handleMethodNotAllowed)
	s.mux.HandleFunc("/", s.handleNotFound)

	return s
}

// Handler returns the HTTP handler with request id and logging middleware applied.
func (s *Server) Handler() http.Handler {
	return s.withRequestLogging(s.mux)
}

// HTTPServer returns an http.Server serving Handler on addr.
func (s *Server) HTTPServer(addr string, readHeaderTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully, giving in-flight requests up to shutdownTimeout to finish.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readHeaderTimeout, shutdownTimeout time.Duration) error {
	srv := s.HTTPServer(addr, readHeaderTimeout)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to listen on %s: %w", addr, err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server", "timeout", shutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// handleAnnotate serves POST /annotate.
func (s *Server) handleAnnotate(w http.ResponseWriter, r *http.Request) {
	ref, err := decodeImagePath(r)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	if ref == "" {
		s.writeError(w, http.StatusBadRequest, pipeline.ErrImagePathRequired)
		return
	}

	result, err := s.runner.Run(r.Context(), ref)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	s.writeJSON(w, http.StatusOK, report.NewPayload(result))
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Allow", http.MethodPost)
	s.writeError(w, http.StatusMethodNotAllowed, errors.New(http.StatusText(http.StatusMethodNotAllowed)))
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	s.writeError(w, http.StatusNotFound, errors.New(http.StatusText(http.StatusNotFound)))
}

// decodeImagePath reads the image_path field from the request body.
// A missing field, null, or any empty value (false, 0, "", [], {}) decodes
// to the empty string. A string is returned as is, whitespace included.
func decodeImagePath(r *http.Request) (string, error) {
	var req *annotateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", fmt.Errorf("invalid request body: %w", err)
	}
	if req == nil {
		return "", errNotJSONObject
	}

	switch v := req.ImagePath.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		if !v {
			return "", nil
		}
	case float64:
		if v == 0 {
			return "", nil
		}
	case []any:
		if len(v) == 0 {
			return "", nil
		}
	case map[string]any:
		if len(v) == 0 {
			return "", nil
		}
	}
	return "", errImagePathNotString
}

// statusFor maps a pipeline error to an HTTP status code.
func statusFor(err error) int {
	if kind, ok := pipeline.KindOf(err); ok && kind == pipeline.KindValidation {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		kind, _ := pipeline.KindOf(err)
		s.logger.Error("request failed",
			"request_id", w.Header().Get(RequestIDHeader),
			"kind", kind.String(),
			"error", err,
		)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := report.NewJSONWriter(w).WriteValue(v); err != nil {
		s.logger.Warn("failed to write response",
			"request_id", w.Header().Get(RequestIDHeader),
			"error", err,
		)
	}
}
