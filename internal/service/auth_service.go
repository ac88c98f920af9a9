package service

import (
	"context"
	"errors"
	"fmt"

	"auth_service/internal/models"
	"auth_service/internal/repository"
)

// Domain errors for auth flows.
var (
	// ErrInvalidCredentials covers both unknown username and wrong
	// password. A single variant keeps the two cases indistinguishable and
	// prevents username enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidRole rejects registration with a role outside the known
	// literals.
	ErrInvalidRole = errors.New("unknown role")
)

// AuthService orchestrates registration and sign-in over the user store,
// password hasher and token codec.
type AuthService struct {
	users  repository.UserStore
	hasher *PasswordHasher
	tokens *TokenCodec
}

func NewAuthService(users repository.UserStore, hasher *PasswordHasher, tokens *TokenCodec) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// Register hashes the password and creates the user. The plaintext and the
// hash are never logged or echoed; uniqueness is left entirely to the
// store's atomic insert.
func (s *AuthService) Register(ctx context.Context, username, password, role string) error {
	if !models.ValidRole(role) {
		return fmt.Errorf("register %q: %w", username, ErrInvalidRole)
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("register %q: %w", username, err)
	}
	if _, err := s.users.CreateIfAbsent(ctx, username, hash, role); err != nil {
		return err
	}
	return nil
}

// SignIn verifies credentials and issues a token carrying the stored role.
// Unknown username and wrong password return the same error.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (string, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if u == nil || !s.hasher.Verify(password, u.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Issue(u.Username, u.Role)
}

// VerifyToken exposes token verification to the access guard.
func (s *AuthService) VerifyToken(raw string) (TokenClaims, error) {
	return s.tokens.Verify(raw)
}
