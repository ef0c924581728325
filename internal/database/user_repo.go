package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"fittrack-backend/internal/models"
)

// UserRepo handles user database operations
type UserRepo struct {
	store *Store
}

// NewUserRepo creates a new user repository
func NewUserRepo(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

// Create inserts a new user. A username or email conflict surfaces as
// ErrDuplicate so registration can report it as a distinct outcome.
func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	err := r.store.pool.QueryRow(ctx, `
		INSERT INTO users (username, first_name, last_name, email, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, user.Username, user.FirstName, user.LastName, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetByUsername retrieves a user by username
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	err := r.store.pool.QueryRow(ctx, `
		SELECT id, username, first_name, last_name, email, password_hash, created_at
		FROM users WHERE username = $1
	`, username).Scan(
		&user.ID, &user.Username, &user.FirstName, &user.LastName,
		&user.Email, &user.PasswordHash, &user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// ListPublic returns the directory view of all users, without credentials
func (r *UserRepo) ListPublic(ctx context.Context) ([]models.PublicUser, error) {
	rows, err := r.store.pool.Query(ctx, `
		SELECT username, first_name, last_name, email, created_at
		FROM users ORDER BY username
	`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.PublicUser
	for rows.Next() {
		var u models.PublicUser
		if err := rows.Scan(&u.Username, &u.FirstName, &u.LastName, &u.Email, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
