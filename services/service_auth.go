package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"qna_workspace/internal/middleware"
	"qna_workspace/internal/repository"
	"qna_workspace/model"
)

type credentialStore interface {
	Insert(ctx context.Context, u model.User) (dup bool, err error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
}

// AuthService issues HS256 bearer tokens for password credentials.
type AuthService struct {
	Users    credentialStore
	TokenTTL time.Duration
}

// AuthResult is what signup/login hand back to the client.
type AuthResult struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

func (s *AuthService) Signup(ctx context.Context, username, email, password string) (AuthResult, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || len(password) < 8 {
		return AuthResult{}, fmt.Errorf("%w: username, email and a password of 8+ chars are required", ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, err
	}

	u := model.User{
		ID:           bson.NewObjectID(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Bookmarks:    []string{},
		CreatedAt:    time.Now().UTC(),
	}
	u.UID = u.ID.Hex()

	dup, err := s.Users.Insert(ctx, u)
	if err != nil {
		return AuthResult{}, err
	}
	if dup {
		return AuthResult{}, ErrEmailTaken
	}

	token, err := s.mintToken(u)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: token, User: u}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return AuthResult{}, ErrBadCredentials
	}
	if err != nil {
		return AuthResult{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return AuthResult{}, ErrBadCredentials
	}

	token, err := s.mintToken(u)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: token, User: u}, nil
}

func (s *AuthService) mintToken(u model.User) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET is not set")
	}
	ttl := s.TokenTTL
	if ttl == 0 {
		ttl = 7 * 24 * time.Hour
	}

	now := time.Now().UTC()
	claims := middleware.UserClaims{
		UID:      u.UID,
		Username: u.Username,
		Email:    u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.UID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
