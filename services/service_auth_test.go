package services

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qna_workspace/internal/middleware"
	"qna_workspace/internal/repository"
	"qna_workspace/model"
)

type memCredentialStore struct {
	byEmail map[string]model.User
}

func (m *memCredentialStore) Insert(_ context.Context, u model.User) (bool, error) {
	if m.byEmail == nil {
		m.byEmail = map[string]model.User{}
	}
	if _, exists := m.byEmail[u.Email]; exists {
		return true, nil
	}
	m.byEmail[u.Email] = u
	return false, nil
}

func (m *memCredentialStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func TestSignupAndLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-for-auth")
	ctx := context.Background()
	store := &memCredentialStore{}
	svc := &AuthService{Users: store}

	t.Run("signup mints a parseable token", func(t *testing.T) {
		res, err := svc.Signup(ctx, "alice", "Alice@Example.com", "hunter2hunter2")
		require.NoError(t, err)
		require.NotEmpty(t, res.Token)
		assert.Equal(t, "alice@example.com", res.User.Email, "email is normalized")
		assert.NotEqual(t, "hunter2hunter2", res.User.PasswordHash)

		var claims middleware.UserClaims
		_, err = jwt.ParseWithClaims(res.Token, &claims, func(t *jwt.Token) (any, error) {
			return []byte("test-secret-for-auth"), nil
		})
		require.NoError(t, err)
		assert.Equal(t, res.User.UID, claims.UID)
		assert.Equal(t, "alice", claims.Username)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Signup(ctx, "alice2", "alice@example.com", "hunter2hunter2")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("login round-trips", func(t *testing.T) {
		res, err := svc.Login(ctx, "alice@example.com", "hunter2hunter2")
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice@example.com", "wrong")
		assert.ErrorIs(t, err, ErrBadCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "whatever")
		assert.ErrorIs(t, err, ErrBadCredentials)
	})

	t.Run("weak signup rejected before any backend call", func(t *testing.T) {
		_, err := svc.Signup(ctx, "bob", "bob@example.com", "short")
		assert.ErrorIs(t, err, ErrValidation)
	})
}
