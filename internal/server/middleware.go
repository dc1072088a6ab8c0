package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rogeecn/nchc-wrapper/internal/config"
	"github.com/rogeecn/nchc-wrapper/internal/metrics"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contextKey string

const (
	requestIDContextKey contextKey = "request_id"
	requestIDHeader                = "X-Request-ID"
	defaultMaxBodySize             = 4 << 20
	corsMaxAge                     = 600
	apiKeyMissingDetail            = "API key not configured: set NCHC_API_KEY"
)

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *statusRecorder) Flush() {
	if flusher, ok := r.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// RequestIDMiddleware propagates X-Request-ID, minting a UUID when the caller
// did not send one.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, requestID)
		ctx := context.WithValue(r.Context(), requestIDContextKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		start := time.Now()
		next.ServeHTTP(rec, r)

		event := accessLogEvent(r.URL.Path, rec.statusCode)
		event.
			Str("request_id", requestIDFromContext(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.statusCode).
			Str("remote_addr", r.RemoteAddr).
			Str("user_agent", r.UserAgent()).
			Dur("duration", time.Since(start)).
			Msg("http request completed")
	})
}

// MetricsMiddleware records request count and latency under a fixed route
// label so that arbitrary paths cannot blow up label cardinality.
func MetricsMiddleware(route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			start := time.Now()
			next.ServeHTTP(rec, r)

			metrics.RequestsTotal.WithLabelValues(r.Method, route, metrics.StatusClass(rec.statusCode)).Inc()
			metrics.RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}

func MethodMiddleware(method string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != method {
				w.Header().Set("Allow", method)
				writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// APIKeyMiddleware rejects chat requests while no upstream key is configured.
// The check is against local configuration only; callers do not authenticate.
func APIKeyMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.APIKeyConfigured() {
				log.Error().
					Str("request_id", requestIDFromContext(r.Context())).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("request rejected: upstream api key not configured")
				writeDetail(w, http.StatusInternalServerError, apiKeyMissingDetail)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func RequestSizeLimitMiddleware(max int64) func(http.Handler) http.Handler {
	if max <= 0 {
		max = defaultMaxBodySize
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, max)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CORSMiddleware allows cross-origin calls from the configured origins with
// credentials. A "*" entry echoes back whatever origin asked, since browsers
// refuse a literal wildcard on credentialed requests.
func CORSMiddleware(origins []string) func(http.Handler) http.Handler {
	allowAll := false
	allowed := make(map[string]struct{}, len(origins))
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			allowAll = true
			continue
		}
		if origin != "" {
			allowed[origin] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add("Vary", "Origin")
			_, listed := allowed[origin]
			if !allowAll && !listed {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			requestedMethod := r.Header.Get("Access-Control-Request-Method")
			if r.Method != http.MethodOptions || requestedMethod == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Methods", requestedMethod)
			if headers := r.Header.Get("Access-Control-Request-Headers"); headers != "" {
				w.Header().Set("Access-Control-Allow-Headers", headers)
			}
			w.Header().Set("Access-Control-Max-Age", strconv.Itoa(corsMaxAge))
			w.WriteHeader(http.StatusOK)
		})
	}
}

func requestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDContextKey).(string)
	return requestID
}

func accessLogEvent(path string, statusCode int) *zerolog.Event {
	switch {
	case statusCode >= http.StatusInternalServerError:
		return log.Error()
	case statusCode >= http.StatusBadRequest:
		return log.Warn()
	case path == "/health" || path == "/metrics":
		return log.Debug()
	default:
		return log.Info()
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeRawJSON(w http.ResponseWriter, statusCode int, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(payload)
}
