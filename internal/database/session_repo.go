package database

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"fittrack-backend/internal/models"
)

var (
	// ErrSessionNotFound is returned for an unknown session token
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired is returned when the token's TTL has elapsed
	ErrSessionExpired = errors.New("session expired")
)

// SessionRepo handles session database operations
type SessionRepo struct {
	store *Store
}

// NewSessionRepo creates a new session repository
func NewSessionRepo(store *Store) *SessionRepo {
	return &SessionRepo{store: store}
}

// Create issues a session bound to username and returns the plain token.
// Only the SHA-256 hash of the token is stored.
func (r *SessionRepo) Create(ctx context.Context, username string, ttl time.Duration) (string, *models.Session, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", nil, err
	}
	token := hex.EncodeToString(tokenBytes)

	session := &models.Session{
		Username:  username,
		TokenHash: hashToken(token),
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(ttl),
	}

	err := r.store.pool.QueryRow(ctx, `
		INSERT INTO sessions (username, token_hash, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, session.Username, session.TokenHash, session.CreatedAt, session.ExpiresAt).Scan(&session.ID)
	if err != nil {
		return "", nil, fmt.Errorf("create session: %w", err)
	}

	return token, session, nil
}

// GetByToken retrieves a live session by its plain token. Expired rows are
// deleted on sight.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	session := &models.Session{}
	err := r.store.pool.QueryRow(ctx, `
		SELECT id, username, token_hash, created_at, expires_at
		FROM sessions WHERE token_hash = $1
	`, hashToken(token)).Scan(
		&session.ID, &session.Username, &session.TokenHash,
		&session.CreatedAt, &session.ExpiresAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		r.Delete(ctx, session.ID)
		return nil, ErrSessionExpired
	}

	return session, nil
}

// Delete removes a session by id
func (r *SessionRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.store.pool.Exec(ctx, "DELETE FROM sessions WHERE id = $1", id)
	return err
}

// DeleteByToken invalidates a session by its plain token
func (r *SessionRepo) DeleteByToken(ctx context.Context, token string) error {
	tag, err := r.store.pool.Exec(ctx, "DELETE FROM sessions WHERE token_hash = $1", hashToken(token))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteExpired removes every session past its expiry
func (r *SessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.store.pool.Exec(ctx, "DELETE FROM sessions WHERE expires_at < $1", time.Now())
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// hashToken creates a SHA-256 hash of the token
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
