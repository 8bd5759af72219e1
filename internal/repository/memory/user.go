package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/sakif/pastebin/internal/apperror"
	"github.com/sakif/pastebin/internal/model"
	"github.com/sakif/pastebin/internal/repository"
)

var _ repository.UserRepository = (*UserStore)(nil)

// UserStore holds the seeded users. Nothing writes to it after NewUserStore,
// but it still takes a read lock so a future writer can be added safely.
type UserStore struct {
	mu    sync.RWMutex
	users []model.User
}

// NewUserStore creates a store holding a copy of seed.
func NewUserStore(seed []model.User) *UserStore {
	s := &UserStore{users: make([]model.User, len(seed))}
	copy(s.users, seed)
	return s
}

// ListUsers returns every user in seed order.
func (s *UserStore) ListUsers(ctx context.Context) ([]model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.User, len(s.users))
	copy(result, s.users)
	return result, nil
}

// GetUserByID returns a copy of the user with the given id.
func (s *UserStore) GetUserByID(ctx context.Context, id int) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, apperror.NotFound("User", strconv.Itoa(id))
}
