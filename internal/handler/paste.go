// Package handler contains the HTTP handlers for pastes and users.
//
// Handlers are deliberately thin: pull the path parameters and the body out
// of the request, hand them to the service as a validate.Request, and turn
// the result into JSON. Every rule about what is valid lives in the service
// and validate packages.
package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/pastebin/internal/apperror"
	"github.com/sakif/pastebin/internal/service"
	"github.com/sakif/pastebin/internal/validate"
)

// PasteHandler serves /pastes and /users/{userId}/pastes.
type PasteHandler struct {
	pastes       *service.PasteService
	users        *service.UserService
	maxBodyBytes int64
	logger       *slog.Logger
}

// NewPasteHandler creates a new PasteHandler.
// users is needed for the nested listing, which 404s on an unknown user.
func NewPasteHandler(pastes *service.PasteService, users *service.UserService, maxBodyBytes int64, logger *slog.Logger) *PasteHandler {
	return &PasteHandler{
		pastes:       pastes,
		users:        users,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// HandleList returns pastes, optionally for one user.
//
// HTTP: GET /pastes
//       GET /pastes?user_id=5
//       GET /users/{userId}/pastes
func (h *PasteHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID != "" {
		// Nested route: the user must exist before we list their pastes.
		req := &validate.Request{Params: map[string]string{"userId": userID}}
		if _, err := h.users.Get(r.Context(), req); err != nil {
			writeError(w, r, h.logger, err)
			return
		}
	} else {
		userID = r.URL.Query().Get("user_id")
	}

	pastes, err := h.pastes.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, pastes)
}

// HandleCreate stores a new paste.
//
// HTTP: POST /pastes
// REQUEST BODY: {"data": {"name": ..., "syntax": ..., "exposure": ...,
//                         "expiration": ..., "text": ..., "user_id": ...}}
func (h *PasteHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, err := h.request(w, r, true)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	paste, err := h.pastes.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusCreated, paste)
}

// HandleGet returns one paste.
//
// HTTP: GET /pastes/{pasteId}
func (h *PasteHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	req, _ := h.request(w, r, false)

	paste, err := h.pastes.Get(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, paste)
}

// HandleUpdate replaces the mutable fields of a paste.
//
// HTTP: PUT /pastes/{pasteId}
func (h *PasteHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	req, err := h.request(w, r, true)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	paste, err := h.pastes.Update(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, paste)
}

// HandleDelete removes a paste.
//
// HTTP: DELETE /pastes/{pasteId}
// RESPONSE: 204 No Content, empty body.
func (h *PasteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	req, _ := h.request(w, r, false)

	if err := h.pastes.Delete(r.Context(), req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// request builds the validate.Request for r. With withBody set it also reads
// and decodes the JSON body, capped at maxBodyBytes.
func (h *PasteHandler) request(w http.ResponseWriter, r *http.Request, withBody bool) (*validate.Request, error) {
	req := &validate.Request{
		Data:   map[string]any{},
		Params: map[string]string{"pasteId": chi.URLParam(r, "pasteId")},
	}
	if !withBody {
		return req, nil
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}

	data, err := validate.DecodeBody(raw)
	if err != nil {
		return nil, apperror.ValidationFailed("", "Request body must be valid JSON")
	}
	req.Data = data
	return req, nil
}
