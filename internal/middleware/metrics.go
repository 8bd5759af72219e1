package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/pastebin/internal/metrics"
)

// Metrics records the duration of every request in m.RequestDuration.
//
// ROUTE LABEL:
// We label by chi's route pattern ("/pastes/{pasteId}"), never by the raw path
// ("/pastes/17"). Raw paths would create one time series per paste id and
// eventually exhaust Prometheus. Requests that matched no route are labelled
// "unmatched".
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}
			m.RequestDuration.
				WithLabelValues(r.Method, route, strconv.Itoa(wrapped.statusCode)).
				Observe(time.Since(start).Seconds())
		})
	}
}
