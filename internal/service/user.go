package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/pastebin/internal/model"
	"github.com/sakif/pastebin/internal/repository"
	"github.com/sakif/pastebin/internal/validate"
)

// UserService is the read-only counterpart of PasteService.
type UserService struct {
	users  repository.UserRepository
	logger *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(users repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		s.logger.Error("failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// Get returns the user named by req.Params["userId"].
func (s *UserService) Get(ctx context.Context, req *validate.Request) (*model.User, error) {
	if err := validate.Run(ctx, req, validate.UserExists(s.users)); err != nil {
		return nil, err
	}
	return req.User, nil
}
