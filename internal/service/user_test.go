package service

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/pastebin/internal/apperror"
	"github.com/sakif/pastebin/internal/model"
	"github.com/sakif/pastebin/internal/repository/memory"
	"github.com/sakif/pastebin/internal/validate"
)

func TestUserService(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	svc := NewUserService(memory.NewUserStore([]model.User{
		{ID: 1, Username: "ada"},
		{ID: 5, Username: "linus"},
	}), logger)
	ctx := context.Background()

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	u, err := svc.Get(ctx, &validate.Request{Params: map[string]string{"userId": "5"}})
	require.NoError(t, err)
	assert.Equal(t, "linus", u.Username)

	_, err = svc.Get(ctx, &validate.Request{Params: map[string]string{"userId": "42"}})
	require.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, "User id not found: 42", err.Error())
}
