package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/repository/storage/sqlite"
)

func newUserRepo(t *testing.T) (context.Context, UserRepository) {
	t.Helper()

	ctx := context.Background()

	st, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Logf("could not close sqlite storage: %v", err)
		}
	})

	require.NoError(t, st.Init(ctx))

	return ctx, NewUserRepository(st.Connection)
}

func TestUserRepository_SaveAndFind(t *testing.T) {
	t.Run("Saved user is found by email", func(t *testing.T) {
		ctx, userRepo := newUserRepo(t)

		// Given: a stored user
		user := &entity.User{
			ID:             "user-1",
			Email:          "player@example.com",
			HashedPassword: "hashed",
			CreatedAt:      time.Now().UTC(),
		}
		require.NoError(t, userRepo.Save(ctx, user))

		// When: looking the user up
		found, err := userRepo.FindByEmail(ctx, "player@example.com")

		// Then: all fields survive the round trip
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
		assert.Equal(t, user.Email, found.Email)
		assert.Equal(t, user.HashedPassword, found.HashedPassword)
	})

	t.Run("Unknown email is not found", func(t *testing.T) {
		ctx, userRepo := newUserRepo(t)

		_, err := userRepo.FindByEmail(ctx, "nobody@example.com")

		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("Duplicate email is rejected", func(t *testing.T) {
		ctx, userRepo := newUserRepo(t)

		user := &entity.User{ID: "user-1", Email: "player@example.com", HashedPassword: "hashed", CreatedAt: time.Now().UTC()}
		require.NoError(t, userRepo.Save(ctx, user))

		dup := &entity.User{ID: "user-2", Email: "player@example.com", HashedPassword: "other", CreatedAt: time.Now().UTC()}
		err := userRepo.Save(ctx, dup)

		assert.ErrorIs(t, err, apperror.ErrUserAlreadyExists)
	})
}
