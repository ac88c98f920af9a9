package repository

import (
	"context"
	"database/sql"
	"errors"

	"auth_service/internal/models"
)

// ErrDuplicateUser is returned by UserStore.CreateIfAbsent when the username
// is already taken. The unique constraint on the users table is what makes
// the check race-free.
var ErrDuplicateUser = errors.New("username already exists")

// UserStore is the durable, uniquely-keyed user record store.
type UserStore interface {
	// CreateIfAbsent atomically inserts a new user. Under concurrent calls
	// with the same username exactly one succeeds; the rest observe
	// ErrDuplicateUser.
	CreateIfAbsent(ctx context.Context, username, passwordHash, role string) (*models.User, error)
	// GetByUsername returns (nil, nil) when no such user exists.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type Repository struct {
	Users UserStore
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users: NewUserRepository(db),
	}
}
