package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/pastebin/internal/apperror"
	"github.com/sakif/pastebin/internal/metrics"
	"github.com/sakif/pastebin/internal/model"
	"github.com/sakif/pastebin/internal/repository"
	"github.com/sakif/pastebin/internal/repository/memory"
	"github.com/sakif/pastebin/internal/validate"
)

// =========================================================================
// TEST HELPERS
// =========================================================================

// newTestService wires a PasteService to a real in-memory store seeded with
// one paste {id: 1, user_id: 5}. The store is cheap enough that a mock would
// only hide bugs.
func newTestService(t *testing.T) (*PasteService, *memory.PasteStore, *metrics.Metrics) {
	t.Helper()
	store := memory.NewPasteStore([]model.Paste{
		{
			ID:         1,
			Name:       "Hello",
			Syntax:     model.SyntaxNone,
			Exposure:   model.ExposurePublic,
			Expiration: 10,
			Text:       "Hello World!",
			UserID:     5,
		},
	})
	m := metrics.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewPasteService(store, m, logger), store, m
}

// validData returns a body that passes the create chain.
// Each call returns a fresh map so tests can mutate it freely.
func validData(t *testing.T) map[string]any {
	t.Helper()
	data, err := validate.DecodeBody([]byte(`{"data":{
		"name":"Greeting","syntax":"Python","exposure":"private",
		"expiration":24,"text":"print('hi')","user_id":5}}`))
	require.NoError(t, err)
	return data
}

func byID(id string) *validate.Request {
	return &validate.Request{Params: map[string]string{"pasteId": id}}
}

// =========================================================================
// CREATE TESTS
// =========================================================================

func TestCreate_Success(t *testing.T) {
	svc, store, m := newTestService(t)

	paste, err := svc.Create(context.Background(), &validate.Request{Data: validData(t)})
	require.NoError(t, err)

	assert.Equal(t, 2, paste.ID)
	assert.Equal(t, 5, paste.UserID)
	assert.Equal(t, "Greeting", paste.Name)
	assert.Equal(t, model.SyntaxPython, paste.Syntax)
	assert.Equal(t, model.ExposurePrivate, paste.Exposure)
	assert.Equal(t, 24, paste.Expiration)
	assert.Equal(t, "print('hi')", paste.Text)
	assert.Equal(t, 2, store.Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PastesCreated))
}

func TestCreate_MissingField(t *testing.T) {
	for _, field := range []string{"name", "syntax", "exposure", "expiration", "text", "user_id"} {
		t.Run(field, func(t *testing.T) {
			svc, store, m := newTestService(t)
			data := validData(t)
			delete(data, field)

			_, err := svc.Create(context.Background(), &validate.Request{Data: data})
			require.ErrorIs(t, err, apperror.ErrValidation)
			assert.Equal(t, "Must include a "+field, err.Error())
			assert.Equal(t, 1, store.Len(), "store must be unchanged")
			assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationFailures.WithLabelValues(field)))
		})
	}
}

func TestCreate_ReportsFirstMissingField(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), &validate.Request{Data: map[string]any{}})
	require.ErrorIs(t, err, apperror.ErrValidation)
	assert.Equal(t, "Must include a name", err.Error())
}

func TestCreate_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   any
		message string
	}{
		{
			name:    "unknown syntax",
			field:   "syntax",
			value:   "Lua",
			message: "Value of the 'syntax' property must be one of None,Javascript,Python,Ruby,Perl,C,Scheme. Received: Lua",
		},
		{
			name:    "unknown exposure",
			field:   "exposure",
			value:   "unlisted",
			message: "Value of the 'exposure' property must be one of private,public. Received: unlisted",
		},
		{
			name:    "negative expiration",
			field:   "expiration",
			value:   mustNumber(t, "-5"),
			message: "Expiration requires a valid number",
		},
		{
			name:    "fractional expiration",
			field:   "expiration",
			value:   mustNumber(t, "3.5"),
			message: "Expiration requires a valid number",
		},
		{
			name:    "non-integer user",
			field:   "user_id",
			value:   "someone",
			message: "Value of the 'user_id' property must be an integer. Received: someone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := newTestService(t)
			data := validData(t)
			data[tt.field] = tt.value

			_, err := svc.Create(context.Background(), &validate.Request{Data: data})
			require.ErrorIs(t, err, apperror.ErrValidation)
			assert.Equal(t, tt.message, err.Error())
			assert.Equal(t, 1, store.Len(), "store must be unchanged")
		})
	}
}

func TestCreate_ExposureCheckedBeforeSyntax(t *testing.T) {
	svc, _, _ := newTestService(t)
	data := validData(t)
	data["exposure"] = "nope"
	data["syntax"] = "nope"

	_, err := svc.Create(context.Background(), &validate.Request{Data: data})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'exposure'")
}

func TestCreate_IDsIncreaseAcrossDeletes(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, &validate.Request{Data: validData(t)})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, byID("2")))

	second, err := svc.Create(ctx, &validate.Request{Data: validData(t)})
	require.NoError(t, err)

	assert.Equal(t, 2, first.ID)
	assert.Equal(t, 3, second.ID)
}

// =========================================================================
// READ TESTS
// =========================================================================

func TestGet(t *testing.T) {
	svc, _, _ := newTestService(t)

	paste, err := svc.Get(context.Background(), byID("1"))
	require.NoError(t, err)
	assert.Equal(t, "Hello", paste.Name)
}

func TestGet_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Get(context.Background(), byID("999999"))
	require.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, "Paste id not found: 999999", err.Error())
}

// =========================================================================
// LIST TESTS
// =========================================================================

func TestList(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &validate.Request{Data: validData(t)})
	require.NoError(t, err)

	other := validData(t)
	other["user_id"] = mustNumber(t, "6")
	_, err = svc.Create(ctx, &validate.Request{Data: other})
	require.NoError(t, err)

	tests := []struct {
		name    string
		userID  string
		wantIDs []int
	}{
		{"no filter", "", []int{1, 2, 3}},
		{"user 5", "5", []int{1, 2}},
		{"loose match", "5.0", []int{1, 2}},
		{"user 6", "6", []int{3}},
		{"unknown user", "7", []int{}},
		{"not a number", "five", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pastes, err := svc.List(ctx, tt.userID)
			require.NoError(t, err)

			ids := make([]int, 0, len(pastes))
			for _, p := range pastes {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

// =========================================================================
// UPDATE TESTS
// =========================================================================

func TestUpdate_Success(t *testing.T) {
	svc, _, m := newTestService(t)

	data := validData(t)
	data["name"] = "Renamed"
	data["syntax"] = "Ruby"
	data["exposure"] = "public"
	data["expiration"] = mustNumber(t, "48")
	data["text"] = "puts 'hi'"
	data["user_id"] = mustNumber(t, "99") // ignored on update

	req := byID("1")
	req.Data = data
	updated, err := svc.Update(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, model.Paste{
		ID:         1,
		Name:       "Renamed",
		Syntax:     model.SyntaxRuby,
		Exposure:   model.ExposurePublic,
		Expiration: 48,
		Text:       "puts 'hi'",
		UserID:     5,
	}, *updated)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PastesUpdated))

	stored, err := svc.Get(context.Background(), byID("1"))
	require.NoError(t, err)
	assert.Equal(t, *updated, *stored)
}

func TestUpdate_UserIDNotRequired(t *testing.T) {
	svc, _, _ := newTestService(t)

	data := validData(t)
	delete(data, "user_id")
	req := byID("1")
	req.Data = data

	_, err := svc.Update(context.Background(), req)
	assert.NoError(t, err)
}

func TestUpdate_NotFoundBeatsInvalidBody(t *testing.T) {
	svc, _, _ := newTestService(t)

	req := byID("999999")
	req.Data = map[string]any{}

	_, err := svc.Update(context.Background(), req)
	require.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, "Paste id not found: 999999", err.Error())
}

func TestUpdate_InvalidBodyLeavesPasteUntouched(t *testing.T) {
	svc, _, _ := newTestService(t)

	data := validData(t)
	data["syntax"] = "Lua"
	req := byID("1")
	req.Data = data

	_, err := svc.Update(context.Background(), req)
	require.ErrorIs(t, err, apperror.ErrValidation)

	stored, err := svc.Get(context.Background(), byID("1"))
	require.NoError(t, err)
	assert.Equal(t, "Hello", stored.Name)
	assert.Equal(t, model.SyntaxNone, stored.Syntax)
}

// =========================================================================
// DELETE TESTS
// =========================================================================

func TestDelete_Success(t *testing.T) {
	svc, store, m := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, byID("1")))
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PastesDeleted))

	_, err := svc.Get(ctx, byID("1"))
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	svc, store, _ := newTestService(t)

	err := svc.Delete(context.Background(), byID("999999"))
	require.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, 1, store.Len())
}

// =========================================================================
// STORE FAILURES
// =========================================================================

// failingRepo simulates a storage error that is neither a validation failure
// nor a missing record. The service must pass it through untouched.
type failingRepo struct {
	repository.PasteRepository
	err error
}

func (f failingRepo) List(context.Context, repository.ListOptions) ([]model.Paste, error) {
	return nil, f.err
}

func TestList_StoreFailure(t *testing.T) {
	boom := errors.New("boom")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1}))
	svc := NewPasteService(failingRepo{err: boom}, metrics.New(), logger)

	_, err := svc.List(context.Background(), "")
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, apperror.ErrNotFound)
}
