package database

import (
	"context"
	"fmt"
)

// Migrate applies every pending migration, recording each by name so the
// set is safe to run on every startup. The audit_log table is deliberately
// absent here: the audit logger creates it lazily before each write.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			applied_at TIMESTAMPTZ DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	for _, m := range migrations {
		if err := s.runMigration(ctx, m); err != nil {
			return fmt.Errorf("migration %s failed: %w", m.name, err)
		}
	}

	return nil
}

type migration struct {
	name string
	up   string
}

func (s *Store) runMigration(ctx context.Context, m migration) error {
	var count int
	err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM migrations WHERE name = $1", m.name).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil // Already applied
	}

	if _, err := s.pool.Exec(ctx, m.up); err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, "INSERT INTO migrations (name) VALUES ($1)", m.name)
	return err
}

var migrations = []migration{
	{
		name: "001_create_users",
		up: `
			CREATE TABLE users (
				id SERIAL PRIMARY KEY,
				username VARCHAR(20) NOT NULL UNIQUE,
				first_name TEXT NOT NULL,
				last_name TEXT NOT NULL,
				email TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				created_at TIMESTAMPTZ DEFAULT now()
			);
			CREATE INDEX idx_users_username ON users(username);
		`,
	},
	{
		name: "002_create_workout_types",
		up: `
			CREATE TABLE workout_types (
				id SERIAL PRIMARY KEY,
				name TEXT NOT NULL UNIQUE
			);
			INSERT INTO workout_types (name) VALUES
				('Running'),
				('Cycling'),
				('Swimming'),
				('Weight Training'),
				('Yoga'),
				('Walking');
		`,
	},
	{
		name: "003_create_workouts",
		up: `
			CREATE TABLE workouts (
				id SERIAL PRIMARY KEY,
				user_id INTEGER NOT NULL REFERENCES users(id),
				workout_type_id INTEGER NOT NULL REFERENCES workout_types(id),
				name TEXT NOT NULL,
				duration_minutes INTEGER CHECK (duration_minutes >= 0),
				calories_burned INTEGER CHECK (calories_burned >= 0),
				distance_km DOUBLE PRECISION CHECK (distance_km >= 0),
				notes TEXT,
				workout_date DATE NOT NULL
			);
			CREATE INDEX idx_workouts_user_id ON workouts(user_id);
			CREATE INDEX idx_workouts_workout_date ON workouts(workout_date);
			CREATE INDEX idx_workouts_workout_type_id ON workouts(workout_type_id);
		`,
	},
	{
		name: "004_create_sessions",
		up: `
			CREATE TABLE sessions (
				id SERIAL PRIMARY KEY,
				username VARCHAR(20) NOT NULL,
				token_hash TEXT NOT NULL UNIQUE,
				created_at TIMESTAMPTZ DEFAULT now(),
				expires_at TIMESTAMPTZ NOT NULL
			);
			CREATE INDEX idx_sessions_token_hash ON sessions(token_hash);
			CREATE INDEX idx_sessions_expires_at ON sessions(expires_at);
		`,
	},
}
