package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type routeInfo struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

var routeCatalog = []routeInfo{
	{Method: http.MethodGet, Path: "/", Description: "service descriptor"},
	{Method: http.MethodGet, Path: "/docs", Description: "this route listing"},
	{Method: http.MethodGet, Path: "/health", Description: "local configuration check"},
	{Method: http.MethodGet, Path: "/models", Description: "static model catalog"},
	{Method: http.MethodGet, Path: "/metrics", Description: "prometheus metrics"},
	{Method: http.MethodPost, Path: "/chat/completions", Description: "forward a chat completion request unchanged"},
	{Method: http.MethodPost, Path: "/chat/simple", Description: "send one message with an optional system prompt"},
}

func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/{$}", s.route("/", http.MethodGet, http.HandlerFunc(s.handleRoot)))
	mux.Handle("/docs", s.route("/docs", http.MethodGet, http.HandlerFunc(s.handleDocs)))
	mux.Handle("/health", s.route("/health", http.MethodGet, http.HandlerFunc(s.handleHealth)))
	mux.Handle("/models", s.route("/models", http.MethodGet, http.HandlerFunc(s.handleModels)))
	mux.Handle("/metrics", s.route("/metrics", http.MethodGet, promhttp.Handler()))

	mux.Handle("/chat/completions", s.route("/chat/completions", http.MethodPost,
		http.HandlerFunc(s.handleChatCompletions),
		APIKeyMiddleware(s.config),
		RequestSizeLimitMiddleware(s.config.MaxBodyBytes),
	))
	mux.Handle("/chat/simple", s.route("/chat/simple", http.MethodPost,
		http.HandlerFunc(s.handleSimpleChat),
		APIKeyMiddleware(s.config),
		RequestSizeLimitMiddleware(s.config.MaxBodyBytes),
	))

	mux.Handle("/", chain(
		http.HandlerFunc(handleNotFound),
		MetricsMiddleware("unmatched"),
		LoggingMiddleware,
	))

	return chain(mux,
		RequestIDMiddleware,
		CORSMiddleware(s.config.CORSOrigins),
	)
}

// route wraps a handler with the middleware every route shares. The method
// check runs before any route-specific middleware, so a wrong method is a 405
// even when the API key is missing.
func (s *Server) route(name, method string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	common := []func(http.Handler) http.Handler{
		MetricsMiddleware(name),
		LoggingMiddleware,
		MethodMiddleware(method),
	}
	return chain(handler, append(common, middlewares...)...)
}

func chain(handler http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	wrapped := handler
	for i := len(middlewares) - 1; i >= 0; i-- {
		wrapped = middlewares[i](wrapped)
	}
	return wrapped
}
