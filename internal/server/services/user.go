// This file implements UserService, which handles registration, credential
// verification, and issuing JWT access tokens.
package services

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/shastore/shastore/internal/common"
	"github.com/shastore/shastore/internal/server/auth"
	"github.com/shastore/shastore/internal/server/config"
	"github.com/shastore/shastore/internal/server/models"
	"github.com/shastore/shastore/internal/server/repositories/users"
)

// UserService provides authentication-related operations:
// - Register: create users
// - Login: verify credentials and mint an access token
type UserService struct {
	repo           users.Repository
	secretKey      []byte
	accessTokenTTL time.Duration
}

// NewUserService constructs a UserService using the repository and server config.
func NewUserService(repo users.Repository, cfg *config.Config) *UserService {
	return &UserService{
		repo:           repo,
		secretKey:      []byte(cfg.SecretKey),
		accessTokenTTL: cfg.AccessTokenTTL,
	}
}

// Register validates the credentials, derives a bcrypt hash, and creates the
// user. An existing username yields common.ErrDuplicateUsername.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if n := utf8.RuneCountInString(username); n < models.UsernameMinLen || n > models.UsernameMaxLen {
		return nil, common.ErrInvalidUsername
	}
	if utf8.RuneCountInString(password) < models.PasswordMinLen {
		return nil, common.ErrPasswordTooShort
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrInternal
	}

	user := &models.User{Username: username, HashedPassword: hashed}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrDuplicateUsername) {
			return nil, common.ErrDuplicateUsername
		}
		return nil, common.ErrInternal
	}

	return user, nil
}

// Login verifies the password against the stored hash and, on success,
// returns a signed access token with subject=username. An unknown username
// and a wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrInvalidCredentials
		}
		return "", common.ErrInternal
	}

	if !auth.VerifyPassword(password, user.HashedPassword) {
		return "", common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.Username, s.secretKey, s.accessTokenTTL)
	if err != nil {
		return "", common.ErrInternal
	}

	return token, nil
}
