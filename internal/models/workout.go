package models

import "time"

// WorkoutType is a fixed categorical label referenced by workouts
type WorkoutType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Workout represents one recorded exercise session, joined with its type name
type Workout struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"-"`
	WorkoutTypeID   int64     `json:"workout_type_id"`
	Name            string    `json:"name"`
	DurationMinutes *int      `json:"duration_minutes"`
	CaloriesBurned  *int      `json:"calories_burned"`
	DistanceKm      *float64  `json:"distance_km"`
	Notes           *string   `json:"notes"`
	WorkoutDate     time.Time `json:"workout_date"`
	TypeName        string    `json:"workout_type"`
	Username        string    `json:"username,omitempty"` // owner, populated on the detail view
}

// WorkoutFilter carries the optional narrowing conditions for a listing.
// Zero values mean "no constraint".
type WorkoutFilter struct {
	Search  string // substring match on workout name
	TypeID  int64  // exact match on workout type
	MinDate string // inclusive lower bound, YYYY-MM-DD
	MaxDate string // inclusive upper bound, YYYY-MM-DD
	Sort    string // one of name, date, calories, duration
}

// CreateWorkoutRequest represents the request body for adding a workout
type CreateWorkoutRequest struct {
	Name          string   `json:"name" form:"name"`
	WorkoutTypeID int64    `json:"workout_type" form:"workout_type"`
	Duration      *int     `json:"duration" form:"duration"`
	Calories      *int     `json:"calories" form:"calories"`
	Distance      *float64 `json:"distance" form:"distance"`
	Notes         string   `json:"notes" form:"notes"`
	WorkoutDate   string   `json:"workout_date" form:"workout_date"`
}
