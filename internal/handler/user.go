package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/pastebin/internal/service"
	"github.com/sakif/pastebin/internal/validate"
)

// UserHandler serves the read-only /users endpoints.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// HandleList returns every user.
//
// HTTP: GET /users
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, users)
}

// HandleGet returns one user.
//
// HTTP: GET /users/{userId}
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	req := &validate.Request{Params: map[string]string{"userId": chi.URLParam(r, "userId")}}

	user, err := h.users.Get(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, user)
}
