package service

import (
	"context"

	"auth_service/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Authorization covers the three auth operations the HTTP layer needs:
// account creation, credential exchange for a token, and token checking for
// the guard.
type Authorization interface {
	Register(ctx context.Context, username, password, role string) error
	SignIn(ctx context.Context, username, password string) (string, error)
	VerifyToken(raw string) (TokenClaims, error)
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
}

// NewService wires the repository layer into concrete services. The token
// codec is built by the caller so the signing key stays a startup-time
// injection rather than ambient state.
func NewService(repos *repository.Repository, tokens *TokenCodec) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, NewPasswordHasher(bcrypt.DefaultCost), tokens),
	}
}
