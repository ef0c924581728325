package database

import (
	"context"
	"fmt"

	"fittrack-backend/internal/models"
)

// TypeRepo reads the workout_types reference data
type TypeRepo struct {
	store *Store
}

// NewTypeRepo creates a new workout type repository
func NewTypeRepo(store *Store) *TypeRepo {
	return &TypeRepo{store: store}
}

// List returns every workout type
func (r *TypeRepo) List(ctx context.Context) ([]models.WorkoutType, error) {
	rows, err := r.store.pool.Query(ctx, "SELECT id, name FROM workout_types ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list workout types: %w", err)
	}
	defer rows.Close()

	var types []models.WorkoutType
	for rows.Next() {
		var t models.WorkoutType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scan workout type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}
