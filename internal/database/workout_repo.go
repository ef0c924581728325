package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"fittrack-backend/internal/models"
)

// workoutColumns is the joined projection shared by every listing query
const workoutColumns = `
	SELECT w.id, w.workout_type_id, w.name, w.duration_minutes, w.calories_burned,
	       w.distance_km, w.notes, w.workout_date, wt.name AS workout_type
	FROM workouts w
	JOIN workout_types wt ON w.workout_type_id = wt.id`

// WorkoutRepo handles workout database operations
type WorkoutRepo struct {
	store *Store
}

// NewWorkoutRepo creates a new workout repository
func NewWorkoutRepo(store *Store) *WorkoutRepo {
	return &WorkoutRepo{store: store}
}

// List returns every workout matching the conjunction of the filters
// actually present, in whitelist order (or default order for an
// unrecognised sort key).
func (r *WorkoutRepo) List(ctx context.Context, filter models.WorkoutFilter) ([]models.Workout, error) {
	where, args := renderWhere(conditionsFor(filter), 1)
	query := workoutColumns + where + orderClause(filter.Sort)

	rows, err := r.store.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	return scanWorkouts(rows)
}

// ListByUsername scopes the listing to one owner, newest first
func (r *WorkoutRepo) ListByUsername(ctx context.Context, username string) ([]models.Workout, error) {
	query := workoutColumns + `
	JOIN users u ON w.user_id = u.id
	WHERE u.username = $1
	ORDER BY w.workout_date DESC`

	rows, err := r.store.pool.Query(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("list workouts for user: %w", err)
	}
	defer rows.Close()

	return scanWorkouts(rows)
}

// Recent returns the owner's n most recent workouts for the dashboard
func (r *WorkoutRepo) Recent(ctx context.Context, username string, n int) ([]models.Workout, error) {
	query := workoutColumns + `
	JOIN users u ON w.user_id = u.id
	WHERE u.username = $1
	ORDER BY w.workout_date DESC
	LIMIT $2`

	rows, err := r.store.pool.Query(ctx, query, username, n)
	if err != nil {
		return nil, fmt.Errorf("recent workouts: %w", err)
	}
	defer rows.Close()

	return scanWorkouts(rows)
}

// GetByID resolves a single workout, joined with its type name and the
// owner's username for the detail view.
func (r *WorkoutRepo) GetByID(ctx context.Context, id int64) (*models.Workout, error) {
	row := r.store.pool.QueryRow(ctx, `
		SELECT w.id, w.workout_type_id, w.name, w.duration_minutes, w.calories_burned,
		       w.distance_km, w.notes, w.workout_date, wt.name AS workout_type, u.username
		FROM workouts w
		JOIN workout_types wt ON w.workout_type_id = wt.id
		JOIN users u ON w.user_id = u.id
		WHERE w.id = $1`, id)

	w := &models.Workout{}
	err := row.Scan(&w.ID, &w.WorkoutTypeID, &w.Name, &w.DurationMinutes,
		&w.CaloriesBurned, &w.DistanceKm, &w.Notes, &w.WorkoutDate, &w.TypeName, &w.Username)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get workout: %w", err)
	}

	return w, nil
}

// Create resolves the owner's user id and inserts the workout. The two
// statements run back to back without a transaction; if the user row is
// removed in between, the insert fails on the foreign key and the error
// propagates.
func (r *WorkoutRepo) Create(ctx context.Context, username string, req models.CreateWorkoutRequest) (int64, error) {
	var userID int64
	err := r.store.pool.QueryRow(ctx, "SELECT id FROM users WHERE username = $1", username).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("resolve user: %w", err)
	}

	var notes *string
	if req.Notes != "" {
		notes = &req.Notes
	}

	var id int64
	err = r.store.pool.QueryRow(ctx, `
		INSERT INTO workouts (user_id, workout_type_id, name, duration_minutes, calories_burned, distance_km, notes, workout_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, userID, req.WorkoutTypeID, req.Name, req.Duration, req.Calories, req.Distance, notes, req.WorkoutDate).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert workout: %w", err)
	}

	return id, nil
}

// OwnedBy reports whether the workout exists and belongs to username
func (r *WorkoutRepo) OwnedBy(ctx context.Context, id int64, username string) (bool, error) {
	var found int64
	err := r.store.pool.QueryRow(ctx, `
		SELECT w.id FROM workouts w
		JOIN users u ON w.user_id = u.id
		WHERE w.id = $1 AND u.username = $2
	`, id, username).Scan(&found)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("verify workout owner: %w", err)
	}
	return true, nil
}

// Delete removes a workout by id. Ownership is checked by the caller.
func (r *WorkoutRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.store.pool.Exec(ctx, "DELETE FROM workouts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanWorkouts(rows pgx.Rows) ([]models.Workout, error) {
	var workouts []models.Workout
	for rows.Next() {
		var w models.Workout
		err := rows.Scan(&w.ID, &w.WorkoutTypeID, &w.Name, &w.DurationMinutes,
			&w.CaloriesBurned, &w.DistanceKm, &w.Notes, &w.WorkoutDate, &w.TypeName)
		if err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}
