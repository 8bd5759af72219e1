// Package middleware contains the HTTP middleware the router runs around every handler.
//
// Each middleware has the shape func(http.Handler) http.Handler: it wraps the
// next handler, does its work before and/or after calling it, and never looks
// at paste or user data itself.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// responseWriter records the status code and body size a handler produced.
// http.ResponseWriter does not expose either after the fact.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// Logger writes one structured line per request.
//
// The level follows the outcome: Info for 2xx/3xx, Warn for 4xx (a client sent
// something we rejected), Error for 5xx. Scrapes of skipPath (usually
// "/metrics") are logged at Debug so they do not drown out API traffic.
//
// The request id comes from chi's RequestID middleware, which must run first.
func Logger(logger *slog.Logger, skipPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			level := slog.LevelInfo
			switch {
			case r.URL.Path == skipPath:
				level = slog.LevelDebug
			case wrapped.statusCode >= http.StatusInternalServerError:
				level = slog.LevelError
			case wrapped.statusCode >= http.StatusBadRequest:
				level = slog.LevelWarn
			}

			logger.LogAttrs(r.Context(), level, "request completed",
				slog.String("request_id", chimiddleware.GetReqID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", wrapped.statusCode),
				slog.Duration("duration", time.Since(start)),
				slog.Int64("bytes", wrapped.written),
			)
		})
	}
}
