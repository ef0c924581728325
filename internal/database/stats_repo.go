package database

import (
	"context"
	"fmt"

	"fittrack-backend/internal/models"
)

// StatsRepo computes the aggregate analytics views. Every time window is
// anchored on the store's clock (CURRENT_DATE), not the process clock, and
// spans N units back inclusive of today. Sums are null-coalesced so a user
// with no workouts always gets a zero-valued response.
type StatsRepo struct {
	store *Store
}

// NewStatsRepo creates a new stats repository
func NewStatsRepo(store *Store) *StatsRepo {
	return &StatsRepo{store: store}
}

// Lifetime returns the all-time totals for one user
func (r *StatsRepo) Lifetime(ctx context.Context, username string) (*models.LifetimeStats, error) {
	stats := &models.LifetimeStats{}
	err := r.store.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(w.duration_minutes), 0),
		       COALESCE(SUM(w.calories_burned), 0),
		       COALESCE(SUM(w.distance_km), 0)
		FROM workouts w
		JOIN users u ON w.user_id = u.id
		WHERE u.username = $1
	`, username).Scan(&stats.TotalWorkouts, &stats.TotalMinutes, &stats.TotalCalories, &stats.TotalDistance)
	if err != nil {
		return nil, fmt.Errorf("lifetime stats: %w", err)
	}
	return stats, nil
}

// PerType returns per-workout-type totals, most frequent type first
func (r *StatsRepo) PerType(ctx context.Context, username string) ([]models.TypeStats, error) {
	rows, err := r.store.pool.Query(ctx, `
		SELECT wt.name,
		       COUNT(*),
		       COALESCE(SUM(w.duration_minutes), 0),
		       COALESCE(SUM(w.calories_burned), 0),
		       COALESCE(SUM(w.distance_km), 0)
		FROM workouts w
		JOIN workout_types wt ON w.workout_type_id = wt.id
		JOIN users u ON w.user_id = u.id
		WHERE u.username = $1
		GROUP BY wt.name
		ORDER BY COUNT(*) DESC
	`, username)
	if err != nil {
		return nil, fmt.Errorf("per-type stats: %w", err)
	}
	defer rows.Close()

	var out []models.TypeStats
	for rows.Next() {
		var t models.TypeStats
		if err := rows.Scan(&t.TypeName, &t.Count, &t.TotalMinutes, &t.TotalCalories, &t.TotalDistance); err != nil {
			return nil, fmt.Errorf("scan per-type stats: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Weekly buckets the trailing 8 weeks by (ISO year, ISO week)
func (r *StatsRepo) Weekly(ctx context.Context, username string) ([]models.WeeklyBucket, error) {
	rows, err := r.store.pool.Query(ctx, `
		SELECT EXTRACT(ISOYEAR FROM w.workout_date)::int,
		       EXTRACT(WEEK FROM w.workout_date)::int,
		       to_char(MIN(w.workout_date), 'YYYY-MM-DD'),
		       COUNT(*),
		       COALESCE(SUM(w.calories_burned), 0),
		       COALESCE(SUM(w.duration_minutes), 0)
		FROM workouts w
		JOIN users u ON w.user_id = u.id
		WHERE u.username = $1
		  AND w.workout_date >= CURRENT_DATE - INTERVAL '8 weeks'
		  AND w.workout_date <= CURRENT_DATE
		GROUP BY 1, 2
		ORDER BY 1, 2
	`, username)
	if err != nil {
		return nil, fmt.Errorf("weekly trend: %w", err)
	}
	defer rows.Close()

	var out []models.WeeklyBucket
	for rows.Next() {
		var b models.WeeklyBucket
		if err := rows.Scan(&b.Year, &b.Week, &b.WeekStart, &b.Count, &b.TotalCalories, &b.TotalMinutes); err != nil {
			return nil, fmt.Errorf("scan weekly bucket: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Monthly buckets the trailing 6 months by calendar month
func (r *StatsRepo) Monthly(ctx context.Context, username string) ([]models.MonthlyBucket, error) {
	rows, err := r.store.pool.Query(ctx, `
		SELECT to_char(w.workout_date, 'YYYY-MM'),
		       COUNT(*),
		       COALESCE(SUM(w.calories_burned), 0),
		       COALESCE(SUM(w.duration_minutes), 0),
		       COALESCE(SUM(w.distance_km), 0)
		FROM workouts w
		JOIN users u ON w.user_id = u.id
		WHERE u.username = $1
		  AND w.workout_date >= CURRENT_DATE - INTERVAL '6 months'
		  AND w.workout_date <= CURRENT_DATE
		GROUP BY 1
		ORDER BY 1
	`, username)
	if err != nil {
		return nil, fmt.Errorf("monthly trend: %w", err)
	}
	defer rows.Close()

	var out []models.MonthlyBucket
	for rows.Next() {
		var b models.MonthlyBucket
		if err := rows.Scan(&b.Month, &b.Count, &b.TotalCalories, &b.TotalMinutes, &b.TotalDistance); err != nil {
			return nil, fmt.Errorf("scan monthly bucket: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Daily buckets the trailing 30 days by calendar date
func (r *StatsRepo) Daily(ctx context.Context, username string) ([]models.DailyBucket, error) {
	rows, err := r.store.pool.Query(ctx, `
		SELECT to_char(w.workout_date, 'YYYY-MM-DD'),
		       COUNT(*),
		       COALESCE(SUM(w.calories_burned), 0),
		       COALESCE(SUM(w.duration_minutes), 0)
		FROM workouts w
		JOIN users u ON w.user_id = u.id
		WHERE u.username = $1
		  AND w.workout_date >= CURRENT_DATE - INTERVAL '30 days'
		  AND w.workout_date <= CURRENT_DATE
		GROUP BY 1
		ORDER BY 1
	`, username)
	if err != nil {
		return nil, fmt.Errorf("daily trend: %w", err)
	}
	defer rows.Close()

	var out []models.DailyBucket
	for rows.Next() {
		var b models.DailyBucket
		if err := rows.Scan(&b.Date, &b.Count, &b.TotalCalories, &b.TotalMinutes); err != nil {
			return nil, fmt.Errorf("scan daily bucket: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
