// Package repository declares the storage interfaces the service layer depends on.
// Implementations live in sub-packages (see repository/memory).
package repository

import (
	"context"

	"github.com/sakif/pastebin/internal/model"
)

// ListOptions narrows a paste listing.
// A nil UserID means "every paste".
type ListOptions struct {
	UserID *int
}

// PasteRepository stores pastes and owns their id sequence.
//
// Update and Delete return an apperror.ErrNotFound error when the id is not
// present at the moment the write is applied, even if an earlier GetByID saw it.
type PasteRepository interface {
	List(ctx context.Context, opts ListOptions) ([]model.Paste, error)
	GetByID(ctx context.Context, id int) (*model.Paste, error)
	Create(ctx context.Context, fields model.PasteFields) (*model.Paste, error)
	Update(ctx context.Context, id int, fields model.PasteFields) (*model.Paste, error)
	Delete(ctx context.Context, id int) error
}

// UserRepository is the read-only view of the seeded users.
type UserRepository interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUserByID(ctx context.Context, id int) (*model.User, error)
}
