// ABOUTME: User account persistence operations
// ABOUTME: Create and lookup by username over the users table
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carelens/reportqa/internal/models"
)

// ErrUserExists is returned when creating a username that is already taken.
var ErrUserExists = errors.New("username already exists")

// UserStore handles user account persistence
type UserStore struct {
	db *DB
}

// NewUserStore creates a new UserStore
func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user. The username is the primary key; a duplicate
// insert returns ErrUserExists.
func (s *UserStore) Create(ctx context.Context, user models.User) error {
	if user.Username == "" {
		return fmt.Errorf("username is required")
	}
	if !user.Role.IsValid() {
		return fmt.Errorf("invalid role %q", user.Role)
	}

	var exists int
	err := s.db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE username = ?`, user.Username).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if exists > 0 {
		return ErrUserExists
	}

	_, err = s.db.conn.ExecContext(ctx, `
		INSERT INTO users (username, password_hash, role)
		VALUES (?, ?, ?)
	`, user.Username, user.PasswordHash, string(user.Role))
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByUsername returns the user, or nil if no such user exists.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var (
		user models.User
		role string
	)
	err := s.db.conn.QueryRowContext(ctx, `
		SELECT username, password_hash, role, created_at
		FROM users
		WHERE username = ?
	`, username).Scan(&user.Username, &user.PasswordHash, &role, &user.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	user.Role = models.Role(role)
	return &user, nil
}
