package httpapi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ersonp/dex-core/internal/domain/entities"
)

// errorBody is the uniform error response envelope. Kind is stable and
// machine-readable; Message is for humans.
type errorBody struct {
	Error struct {
		Kind    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
	Path    string `json:"path"`
	Success bool   `json:"success"`
}

// classify maps a pipeline error to an HTTP status and stable kind.
func classify(err error) (int, string) {
	var (
		validation *entities.ValidationError
		notFound   *entities.NotFoundError
		upstream   *entities.UpstreamError
		parse      *entities.IntentParseError
		storage    *entities.StorageError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, validation.Kind()
	case errors.As(err, &parse):
		return http.StatusBadRequest, parse.Kind()
	case errors.As(err, &notFound):
		return http.StatusNotFound, notFound.Kind()
	case errors.As(err, &upstream):
		return http.StatusServiceUnavailable, upstream.Kind()
	case errors.As(err, &storage):
		return http.StatusInternalServerError, storage.Kind()
	default:
		return http.StatusInternalServerError, entities.KindInternal
	}
}

// writeError maps a domain error to its status and writes the envelope.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, kind := classify(err)

	s.logger.Error("request failed",
		zap.String("path", r.URL.Path),
		zap.String("kind", kind),
		zap.Int("status", status),
		zap.Error(err))

	var body errorBody
	body.Error.Kind = kind
	body.Error.Message = err.Error()
	body.Path = r.URL.Path
	s.writeJSON(w, status, body)
}
