// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → runs the validation chain, applies the operation
//	Repository (Data layer)  → owns the records and the id sequence
//
// Services never see an *http.Request. The handler turns the body and path
// parameters into a validate.Request, and the service decides which checks
// gate which operation. That keeps every rule about pastes in one file and
// lets tests drive it with plain function calls.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/sakif/pastebin/internal/apperror"
	"github.com/sakif/pastebin/internal/metrics"
	"github.com/sakif/pastebin/internal/model"
	"github.com/sakif/pastebin/internal/repository"
	"github.com/sakif/pastebin/internal/validate"
)

// PasteService handles business logic for pastes.
type PasteService struct {
	pastes  repository.PasteRepository
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewPasteService creates a new PasteService.
func NewPasteService(pastes repository.PasteRepository, m *metrics.Metrics, logger *slog.Logger) *PasteService {
	return &PasteService{
		pastes:  pastes,
		metrics: m,
		logger:  logger,
	}
}

// bodyChecks are the checks a create or update body must pass, in order.
// Presence first, then the closed sets, then the number, then Go typing.
func bodyChecks(requireUser bool) []validate.Check {
	fields := []string{"name", "syntax", "exposure", "expiration", "text"}
	if requireUser {
		fields = append(fields, "user_id")
	}

	checks := make([]validate.Check, 0, len(fields)+6)
	for _, f := range fields {
		checks = append(checks, validate.BodyHas(f))
	}
	checks = append(checks,
		validate.ExposureIsValid,
		validate.SyntaxIsValid,
		validate.ExpirationIsValid,
		validate.StringField("name"),
		validate.StringField("text"),
	)
	if requireUser {
		checks = append(checks, validate.IntegerField("user_id"))
	}
	return checks
}

// List returns every paste, or only those owned by userID when it is set.
//
// userID arrives as text (path or query parameter) and is compared by numeric
// value, so "5", " 5" and "5.0" all select user 5. Text that is not a whole
// number matches nothing.
func (s *PasteService) List(ctx context.Context, userID string) ([]model.Paste, error) {
	var opts repository.ListOptions
	if userID != "" {
		id, ok := parseLooseID(userID)
		if !ok {
			return []model.Paste{}, nil
		}
		opts.UserID = &id
	}

	pastes, err := s.pastes.List(ctx, opts)
	if err != nil {
		s.logger.Error("failed to list pastes", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing pastes: %w", err)
	}
	return pastes, nil
}

// Create validates req.Data and stores a new paste.
// Nothing is written unless every check passes.
func (s *PasteService) Create(ctx context.Context, req *validate.Request) (*model.Paste, error) {
	if err := validate.Run(ctx, req, bodyChecks(true)...); err != nil {
		return nil, s.rejected(err)
	}

	paste, err := s.pastes.Create(ctx, req.PasteFields())
	if err != nil {
		s.logger.Error("failed to create paste", slog.String("error", err.Error()))
		return nil, fmt.Errorf("creating paste: %w", err)
	}

	s.metrics.PastesCreated.Inc()
	s.logger.Info("paste created",
		slog.Int("id", paste.ID),
		slog.Int("user_id", paste.UserID),
	)
	return paste, nil
}

// Get returns the paste named by req.Params["pasteId"].
func (s *PasteService) Get(ctx context.Context, req *validate.Request) (*model.Paste, error) {
	if err := validate.Run(ctx, req, validate.PasteExists(s.pastes)); err != nil {
		return nil, s.rejected(err)
	}
	return req.Paste, nil
}

// Update replaces name, syntax, exposure, expiration and text of an existing paste.
//
// The existence check runs before the body checks, so an unknown id is a 404
// even when the body is also invalid. id and user_id never change; a user_id
// in the body is ignored.
func (s *PasteService) Update(ctx context.Context, req *validate.Request) (*model.Paste, error) {
	checks := append([]validate.Check{validate.PasteExists(s.pastes)}, bodyChecks(false)...)
	if err := validate.Run(ctx, req, checks...); err != nil {
		return nil, s.rejected(err)
	}

	// The store re-checks existence under its write lock, so a delete that
	// slipped in after PasteExists still surfaces as a 404 here.
	paste, err := s.pastes.Update(ctx, req.Paste.ID, req.PasteFields())
	if err != nil {
		return nil, s.rejected(err)
	}

	s.metrics.PastesUpdated.Inc()
	s.logger.Info("paste updated", slog.Int("id", paste.ID))
	return paste, nil
}

// Delete removes the paste named by req.Params["pasteId"].
func (s *PasteService) Delete(ctx context.Context, req *validate.Request) error {
	if err := validate.Run(ctx, req, validate.PasteExists(s.pastes)); err != nil {
		return s.rejected(err)
	}

	if err := s.pastes.Delete(ctx, req.Paste.ID); err != nil {
		return s.rejected(err)
	}

	s.metrics.PastesDeleted.Inc()
	s.logger.Info("paste deleted", slog.Int("id", req.Paste.ID))
	return nil
}

// rejected records validation failures and passes every error through unchanged.
// Unexpected errors are logged here; AppErrors are the client's problem, not ours.
func (s *PasteService) rejected(err error) error {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		s.logger.Error("paste operation failed", slog.String("error", err.Error()))
		return err
	}
	if errors.Is(err, apperror.ErrValidation) {
		s.metrics.ValidationFailures.WithLabelValues(appErr.Field).Inc()
	}
	return err
}

// parseLooseID reads a whole number out of a path or query parameter.
func parseLooseID(raw string) (int, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f >= math.MaxInt || f < math.MinInt {
		return 0, false
	}
	return int(f), true
}
