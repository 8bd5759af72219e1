package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/xid"
)

// Recoverer turns a panic in any handler into the standard 500 response,
// {"error": message}, and logs the panic with its stack trace.
//
// chi ships its own Recoverer, but it answers with a plain-text body. Clients
// of this API expect every error to be JSON, so we use our own.
//
// http.ErrAbortHandler is re-panicked: net/http uses it to abort a response
// on purpose, and swallowing it would hide that.
func Recoverer(logger *slog.Logger, message string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				logger.Error("panic recovered",
					slog.String("incident", xid.New().String()),
					slog.String("request_id", chimiddleware.GetReqID(r.Context())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("panic", fmt.Sprint(rvr)),
					slog.String("stack", string(debug.Stack())),
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
			}()

			next.ServeHTTP(w, r)
		})
	}
}
