// Package server exposes the extraction pipeline as a single synchronous
// HTTP operation: upload a document, receive the grouped citation list.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/coolbeans/attex/pkg/convert"
	"github.com/coolbeans/attex/pkg/dialect"
	"github.com/coolbeans/attex/pkg/pipeline"
	"github.com/coolbeans/attex/pkg/render"
)

// errorResponse is the structured error body for both fault classes.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Server handles document uploads and runs the extraction pipeline.
// Extractors hold no per-call state, so one Server serves concurrent
// requests without locking.
type Server struct {
	cfg        Config
	logger     zerolog.Logger
	extractors map[dialect.Dialect]*pipeline.Extractor
}

// New creates a server with one extractor per dialect.
func New(cfg Config, logger zerolog.Logger) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger,
		extractors: map[dialect.Dialect]*pipeline.Extractor{
			dialect.FreeText: pipeline.New(dialect.FreeText),
			dialect.Outline:  pipeline.New(dialect.Outline),
		},
	}
}

// Handler returns the HTTP handler with request logging attached.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/extract", s.handleExtract)
	mux.HandleFunc("/healthz", s.handleHealth)
	return s.logRequests(mux)
}

// ListenAndServe runs the server until the context is canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// handleExtract accepts a multipart upload plus a dialect form value, runs
// the converter and the pipeline, and returns the grouped result. Input
// faults answer 4xx with no partial extraction; internal faults answer 5xx.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "input_error", "use POST")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "input_error", "malformed or oversized upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "input_error", "missing file upload")
		return
	}
	defer file.Close()

	if !convert.Supported(header.Filename) {
		writeError(w, http.StatusBadRequest, "input_error", "unsupported file extension")
		return
	}

	dialectName := r.FormValue("dialect")
	if dialectName == "" {
		dialectName = s.cfg.DefaultDialect
	}
	d, err := dialect.Parse(dialectName)
	if err != nil {
		writeError(w, http.StatusBadRequest, "input_error", err.Error())
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "input_error", "failed to read upload")
		return
	}

	text, err := convert.Bytes(header.Filename, data)
	if err != nil {
		writeError(w, http.StatusBadRequest, "input_error", err.Error())
		return
	}

	result, err := s.extractors[d].Extract(text)
	if errors.Is(err, pipeline.ErrEmptyDocument) {
		writeError(w, http.StatusBadRequest, "input_error", "document contains no text")
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Str("file", header.Filename).Msg("extraction failed")
		writeError(w, http.StatusInternalServerError, "extraction_failure", "extraction failed")
		return
	}

	body, err := render.JSON(result)
	if err != nil {
		s.logger.Error().Err(err).Msg("result encoding failed")
		writeError(w, http.StatusInternalServerError, "extraction_failure", "result encoding failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// logRequests tags each request with an ID and logs method, path, status,
// and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		s.logger.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Code: code, Message: message})
}
