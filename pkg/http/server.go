package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.temporal.io/sdk/client"

	"github.com/leowmjw/go-sea-norm/pkg/hcl"
	"github.com/leowmjw/go-sea-norm/pkg/sea"
	"github.com/leowmjw/go-sea-norm/pkg/temporal"
)

// Server represents the HTTP server for the analysis service
type Server struct {
	logger         *slog.Logger
	temporalClient client.Client
	addr           string
}

// NewServer creates a new HTTP server
func NewServer(logger *slog.Logger, temporalClient client.Client, addr string) *Server {
	return &Server{
		logger:         logger,
		temporalClient: temporalClient,
		addr:           addr,
	}
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()

	// Register routes
	mux.HandleFunc("POST /datasets/{id}/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /datasets/{id}/profile", s.handleProfile)
	mux.HandleFunc("GET /health", s.handleHealth)

	// Add middleware
	handler := s.loggingMiddleware(mux)

	server := &http.Server{
		Addr:    s.addr,
		Handler: handler,
	}

	s.logger.Info("Starting HTTP server", "addr", s.addr)

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	// Wait for context cancellation or server error
	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}
}

// Analysis endpoint. Accepts JSON or HCL request bodies, detected from the
// Content-Type header with a fallback to content sniffing.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	datasetID := r.PathValue("id")
	if datasetID == "" {
		s.respondError(w, http.StatusBadRequest, "dataset ID is required")
		return
	}

	request, err := s.decodeAnalysisRequest(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// The path segment is authoritative
	request.DatasetID = datasetID

	if len(request.Events) == 0 {
		s.respondError(w, http.StatusBadRequest, "at least one event is required")
		return
	}

	s.logger.Info("Processing analysis request",
		"datasetID", datasetID,
		"events", len(request.Events),
		"mode", request.ProcessingMode,
	)

	workflowID := temporal.GenerateAnalysisWorkflowID(datasetID)

	workflowRun, err := s.temporalClient.ExecuteWorkflow(
		r.Context(),
		client.StartWorkflowOptions{
			ID:        workflowID,
			TaskQueue: temporal.TaskQueue,
		},
		temporal.AnalysisWorkflow,
		*request,
	)

	if err != nil {
		s.logger.Error("Failed to start analysis workflow", "error", err)
		s.respondError(w, http.StatusInternalServerError, "failed to start analysis")
		return
	}

	var result *temporal.AnalysisResult
	if err := workflowRun.Get(r.Context(), &result); err != nil {
		s.logger.Error("Analysis workflow failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "analysis execution failed")
		return
	}

	s.logger.Info("Analysis completed", "datasetID", datasetID, "rows", result.Table.Len())
	w.Header().Set("X-Run-Id", workflowID)
	s.respondJSON(w, http.StatusOK, result)
}

// decodeAnalysisRequest decodes the request body as JSON or HCL
func (s *Server) decodeAnalysisRequest(r *http.Request) (*temporal.AnalysisRequest, error) {
	contentType, err := hcl.DetectContentType(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body")
	}

	if contentType == hcl.ContentTypeHCL {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read request body")
		}
		request, err := hcl.ParseAnalysisRequest(string(body))
		if err != nil {
			return nil, fmt.Errorf("invalid HCL body: %w", err)
		}
		return request, nil
	}

	var request temporal.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		return nil, fmt.Errorf("invalid JSON body")
	}
	return &request, nil
}

// Profile endpoint returning descriptive column summaries
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	datasetID := r.PathValue("id")
	if datasetID == "" {
		s.respondError(w, http.StatusBadRequest, "dataset ID is required")
		return
	}

	request, err := s.decodeProfileRequest(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	request.DatasetID = datasetID

	s.logger.Info("Processing profile request", "datasetID", datasetID)

	workflowID := temporal.GenerateProfileWorkflowID(datasetID)

	workflowRun, err := s.temporalClient.ExecuteWorkflow(
		r.Context(),
		client.StartWorkflowOptions{
			ID:        workflowID,
			TaskQueue: temporal.TaskQueue,
		},
		temporal.ProfileWorkflow,
		*request,
	)

	if err != nil {
		s.logger.Error("Failed to start profile workflow", "error", err)
		s.respondError(w, http.StatusInternalServerError, "failed to start profile")
		return
	}

	var profiles []sea.ColumnProfile
	if err := workflowRun.Get(r.Context(), &profiles); err != nil {
		s.logger.Error("Profile workflow failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "profile execution failed")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"dataset_id": datasetID,
		"profiles":   profiles,
	})
}

// decodeProfileRequest decodes the request body as JSON or HCL. An empty
// body profiles every column.
func (s *Server) decodeProfileRequest(r *http.Request) (*temporal.ProfileRequest, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body")
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return &temporal.ProfileRequest{}, nil
	}

	if body[0] != '{' && hcl.IsHCL(body) {
		request, err := hcl.ParseProfileRequest(string(body))
		if err != nil {
			return nil, fmt.Errorf("invalid HCL body: %w", err)
		}
		return request, nil
	}

	var request temporal.ProfileRequest
	if err := json.Unmarshal(body, &request); err != nil {
		return nil, fmt.Errorf("invalid JSON body")
	}
	return &request, nil
}

// Health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// Middleware for request logging
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap ResponseWriter to capture status code
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		duration := time.Since(start)

		s.logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapper.statusCode,
			"duration", duration,
			"user_agent", r.UserAgent(),
		)
	})
}

// Response helpers
func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Failed to encode JSON response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.logger.Warn("HTTP error response", "status", status, "message", message)
	s.respondJSON(w, status, map[string]string{"error": message})
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
