package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/rogeecn/nchc-wrapper/internal/translate"
	"github.com/rogeecn/nchc-wrapper/internal/upstream"
	"github.com/rogeecn/nchc-wrapper/pkg/types"
	"github.com/rs/zerolog/log"
)

const (
	serviceName = "NCHC LLM Wrapper API"
	apiVersion  = "1.0.0"
)

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, types.RootResponse{
		Message: serviceName,
		Version: apiVersion,
		Docs:    "/docs",
	})
}

func (s *Server) handleDocs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"title":   serviceName,
		"version": apiVersion,
		"routes":  routeCatalog,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, types.HealthResponse{
		Status:           "healthy",
		APIKeyConfigured: s.config.APIKeyConfigured(),
	})
}

func (s *Server) handleModels(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, types.ModelsResponse{Models: upstream.ListModels()})
}

func (s *Server) handleChatCompletions(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	req, issues := decodeCompletionRequest(body)
	if len(issues) > 0 {
		writeValidationError(w, issues)
		return
	}

	payload := translate.CompletionPayload(req)
	raw, err := s.upstream.Send(r.Context(), payload, s.config.APIKey)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp, err := translate.CompletionResponse(raw)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeRawJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSimpleChat(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	req, issues := decodeSimpleRequest(body)
	if len(issues) > 0 {
		writeValidationError(w, issues)
		return
	}

	payload := translate.SimplePayload(req)
	raw, err := s.upstream.Send(r.Context(), payload, s.config.APIKey)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp, err := translate.SimpleResponse(raw, payload.Model)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(r.Body)
	if err == nil {
		return body, true
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		writeDetail(w, http.StatusRequestEntityTooLarge, "request body too large")
		return nil, false
	}

	log.Warn().
		Err(err).
		Str("request_id", requestIDFromContext(r.Context())).
		Str("path", r.URL.Path).
		Msg("read request body failed")
	writeDetail(w, http.StatusBadRequest, "invalid request body")
	return nil, false
}
