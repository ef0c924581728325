package models

// LifetimeStats are the all-time totals for one user. Sums are
// null-coalesced in SQL so a user with no workouts gets zeros.
type LifetimeStats struct {
	TotalWorkouts int     `json:"total_workouts"`
	TotalMinutes  int     `json:"total_minutes"`
	TotalCalories int     `json:"total_calories"`
	TotalDistance float64 `json:"total_distance"`
}

// TypeStats aggregates one user's workouts for a single workout type
type TypeStats struct {
	TypeName      string  `json:"workout_type"`
	Count         int     `json:"count"`
	TotalMinutes  int     `json:"total_minutes"`
	TotalCalories int     `json:"total_calories"`
	TotalDistance float64 `json:"total_distance"`
}

// WeeklyBucket is one (ISO year, ISO week) aggregate bucket
type WeeklyBucket struct {
	Year          int    `json:"year"`
	Week          int    `json:"week"`
	WeekStart     string `json:"week_start"` // earliest workout date in the bucket
	Count         int    `json:"count"`
	TotalCalories int    `json:"total_calories"`
	TotalMinutes  int    `json:"total_minutes"`
}

// MonthlyBucket is one calendar-month aggregate bucket
type MonthlyBucket struct {
	Month         string  `json:"month"` // YYYY-MM
	Count         int     `json:"count"`
	TotalCalories int     `json:"total_calories"`
	TotalMinutes  int     `json:"total_minutes"`
	TotalDistance float64 `json:"total_distance"`
}

// DailyBucket is one calendar-date aggregate bucket
type DailyBucket struct {
	Date          string `json:"date"` // YYYY-MM-DD
	Count         int    `json:"count"`
	TotalCalories int    `json:"total_calories"`
	TotalMinutes  int    `json:"total_minutes"`
}
