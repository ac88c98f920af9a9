package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"auth_service/internal/models"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of UserStore interface at compile time.
var _ UserStore = (*UserRepository)(nil)

const (
	insertUserSQL           = `INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)`
	selectUserByUsernameSQL = `SELECT id, username, password_hash, role FROM users WHERE username = ?`
)

// CreateIfAbsent inserts a new user in a single statement. The UNIQUE
// constraint on username is the serialization point: there is no
// check-then-insert window, so concurrent registrations for the same name
// cannot both succeed.
func (r *UserRepository) CreateIfAbsent(ctx context.Context, username, passwordHash, role string) (*models.User, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL, username, passwordHash, role)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("insert user %q: %w", username, ErrDuplicateUser)
		}
		return nil, fmt.Errorf("insert user %q: %w", username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id for user %q: %w", username, err)
	}
	return &models.User{
		ID:           int(lastID),
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
	}, nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, selectUserByUsernameSQL, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return &u, nil
}

// isUniqueViolation reports whether err is a sqlite UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	code := serr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}
