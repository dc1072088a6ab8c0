package server

import (
	"errors"
	"net/http"

	"github.com/rogeecn/nchc-wrapper/internal/translate"
	"github.com/rogeecn/nchc-wrapper/internal/upstream"
	"github.com/rogeecn/nchc-wrapper/pkg/types"
	"github.com/rs/zerolog/log"
)

const (
	upstreamErrorPrefix   = "upstream error: "
	upstreamTimeoutDetail = "upstream request timed out"
	transportErrorPrefix  = "upstream request failed: "
	unexpectedErrorPrefix = "unexpected error: "
)

// classifyError maps a failure from the upstream client or a translator to
// the status code and detail returned to the caller. Anything unrecognised
// becomes a 500.
func classifyError(err error) (int, string) {
	var statusErr *upstream.StatusError
	var transportErr *upstream.TransportError
	var shapeErr *translate.ShapeError

	switch {
	case errors.As(err, &statusErr):
		return relayableStatus(statusErr.StatusCode), upstreamErrorPrefix + statusErr.Body
	case errors.Is(err, upstream.ErrTimeout):
		return http.StatusRequestTimeout, upstreamTimeoutDetail
	case errors.As(err, &transportErr):
		return http.StatusInternalServerError, transportErrorPrefix + transportErr.Err.Error()
	case errors.As(err, &shapeErr):
		return http.StatusInternalServerError, unexpectedErrorPrefix + shapeErr.Error()
	default:
		return http.StatusInternalServerError, unexpectedErrorPrefix + err.Error()
	}
}

// relayableStatus passes the upstream status through unless it cannot carry
// an error body.
func relayableStatus(code int) int {
	switch {
	case code < http.StatusOK, code > 599:
		return http.StatusBadGateway
	case code == http.StatusNoContent, code == http.StatusNotModified:
		return http.StatusBadGateway
	default:
		return code
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	statusCode, detail := classifyError(err)

	event := log.Error()
	if statusCode < http.StatusInternalServerError {
		event = log.Warn()
	}
	event.
		Err(err).
		Str("request_id", requestIDFromContext(r.Context())).
		Str("path", r.URL.Path).
		Int("status", statusCode).
		Str("detail", upstream.TruncateForLog(detail)).
		Msg("chat request failed")

	writeDetail(w, statusCode, detail)
}

func writeDetail(w http.ResponseWriter, statusCode int, detail string) {
	writeJSON(w, statusCode, types.ErrorResponse{Detail: detail})
}

func writeValidationError(w http.ResponseWriter, issues []types.ValidationIssue) {
	writeJSON(w, http.StatusUnprocessableEntity, types.ErrorResponse{Detail: issues})
}

func handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeDetail(w, http.StatusNotFound, "Not Found")
}
