// Package httpapi exposes the question-answering pipeline over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ersonp/dex-core/internal/application/handlers"
	"github.com/ersonp/dex-core/internal/domain/entities"
)

// askRequest is the body of POST /api/v1/ask.
type askRequest struct {
	Question string `json:"question"`
}

// Server serves the HTTP API.
type Server struct {
	addr   string
	ask    *handlers.AskHandler
	logger *zap.Logger
	mux    *http.ServeMux
}

// New creates a Server wired with its dependencies.
func New(addr string, ask *handlers.AskHandler, logger *zap.Logger) *Server {
	s := &Server{
		addr:   addr,
		ask:    ask,
		logger: logger,
		mux:    http.NewServeMux(),
	}
	s.mux.HandleFunc("/api/v1/ask", s.handleAsk)
	s.mux.HandleFunc("/healthz", s.handleHealth)
	return s
}

// ServeHTTP implements http.Handler with request-ID logging around the mux.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()
	start := time.Now()

	s.mux.ServeHTTP(w, r)

	s.logger.Info("request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Duration("duration", time.Since(start)))
}

// ListenAndServe starts the server and shuts down gracefully when the
// context is canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	case err := <-errCh:
		return err
	}
}

// handleAsk answers one question.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		var body errorBody
		body.Error.Kind = entities.KindValidation
		body.Error.Message = "method not allowed, use POST"
		body.Path = r.URL.Path
		s.writeJSON(w, http.StatusMethodNotAllowed, body)
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, &entities.ValidationError{Message: "invalid JSON body"})
		return
	}

	answer, err := s.ask.Handle(r.Context(), req.Question)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, answer)
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("writing response", zap.Error(err))
	}
}
