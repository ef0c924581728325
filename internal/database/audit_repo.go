package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"fittrack-backend/internal/models"
)

// auditDB is the slice of the pool the audit logger issues statements
// through. *pgxpool.Pool satisfies it.
type auditDB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// AuditRepo is the append-only sink for authentication attempts. Nothing
// in this type updates or deletes a row.
type AuditRepo struct {
	db auditDB
}

// NewAuditRepo creates a new audit repository
func NewAuditRepo(store *Store) *AuditRepo {
	return &AuditRepo{db: store.pool}
}

// EnsureSchema lazily creates the audit_log table. It runs before every
// write and is idempotent, so the table never has to be pre-provisioned.
func (r *AuditRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS audit_log (
			id SERIAL PRIMARY KEY,
			username VARCHAR(50),
			status VARCHAR(20),
			details VARCHAR(255),
			created_at TIMESTAMPTZ DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure audit schema: %w", err)
	}
	return nil
}

// Record appends one entry. The username is written exactly as submitted;
// the timestamp is assigned by the store.
func (r *AuditRepo) Record(ctx context.Context, username string, status models.AuditStatus, details string) error {
	if err := r.EnsureSchema(ctx); err != nil {
		return err
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO audit_log (username, status, details)
		VALUES ($1, $2, $3)
	`, username, status, details)
	if err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}
	return nil
}

// List returns the audit history, newest first
func (r *AuditRepo) List(ctx context.Context) ([]models.AuditEntry, error) {
	if err := r.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, username, status, details, created_at
		FROM audit_log ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []models.AuditEntry
	for rows.Next() {
		var e models.AuditEntry
		if err := rows.Scan(&e.ID, &e.Username, &e.Status, &e.Details, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
