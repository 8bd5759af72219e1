package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/sakif/pastebin/internal/apperror"
	"github.com/sakif/pastebin/internal/model"
	"github.com/sakif/pastebin/internal/repository"
)

// COMPILE-TIME INTERFACE CHECK:
// If *PasteStore stops satisfying repository.PasteRepository, the build fails here
// instead of at some distant call site.
var _ repository.PasteRepository = (*PasteStore)(nil)

// PasteStore is an ordered, mutex-guarded collection of pastes.
//
// ID SEQUENCE:
// lastID starts at the highest id found in the seed (0 for an empty seed) and
// is pre-incremented on every successful Create. It never goes backwards, so an
// id freed by Delete is never handed out again.
type PasteStore struct {
	mu     sync.RWMutex
	pastes []model.Paste
	lastID int
}

// NewPasteStore creates a store holding a copy of seed.
func NewPasteStore(seed []model.Paste) *PasteStore {
	s := &PasteStore{
		pastes: make([]model.Paste, len(seed)),
	}
	copy(s.pastes, seed)
	for _, p := range s.pastes {
		s.lastID = max(s.lastID, p.ID)
	}
	return s
}

// List returns pastes in insertion order, optionally only those owned by opts.UserID.
// The result is always non-nil so it encodes as [] rather than null.
func (s *PasteStore) List(ctx context.Context, opts repository.ListOptions) ([]model.Paste, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Paste, 0, len(s.pastes))
	for _, p := range s.pastes {
		if opts.UserID != nil && p.UserID != *opts.UserID {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

// GetByID returns a copy of the paste with the given id.
func (s *PasteStore) GetByID(ctx context.Context, id int) (*model.Paste, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, apperror.NotFound("Paste", strconv.Itoa(id))
	}
	p := s.pastes[i]
	return &p, nil
}

// Create allocates the next id, appends the paste and returns a copy of it.
func (s *PasteStore) Create(ctx context.Context, fields model.PasteFields) (*model.Paste, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	p := model.Paste{
		ID:         s.lastID,
		Name:       fields.Name,
		Syntax:     fields.Syntax,
		Exposure:   fields.Exposure,
		Expiration: fields.Expiration,
		Text:       fields.Text,
		UserID:     fields.UserID,
	}
	s.pastes = append(s.pastes, p)
	return &p, nil
}

// Update overwrites name, syntax, exposure, expiration and text in place.
// ID and UserID are left untouched; fields.UserID is ignored.
func (s *PasteStore) Update(ctx context.Context, id int, fields model.PasteFields) (*model.Paste, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, apperror.NotFound("Paste", strconv.Itoa(id))
	}
	p := &s.pastes[i]
	p.Name = fields.Name
	p.Syntax = fields.Syntax
	p.Expiration = fields.Expiration
	p.Exposure = fields.Exposure
	p.Text = fields.Text

	updated := *p
	return &updated, nil
}

// Delete removes exactly one paste, keeping the order of the rest.
func (s *PasteStore) Delete(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return apperror.NotFound("Paste", strconv.Itoa(id))
	}
	s.pastes = append(s.pastes[:i], s.pastes[i+1:]...)
	return nil
}

// Len reports how many pastes are stored.
func (s *PasteStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pastes)
}

// indexOf must be called with s.mu held.
func (s *PasteStore) indexOf(id int) int {
	for i := range s.pastes {
		if s.pastes[i].ID == id {
			return i
		}
	}
	return -1
}
