package auth

import (
	"fmt"
	"html"
	"net/mail"
	"sort"
	"strings"

	"fittrack-backend/internal/models"
)

// ValidationErrors carries field-level messages for rejected input.
// Nothing is written to the store while one of these is in flight.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, v[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// validateRegistration checks every registration field and normalises the
// request in place: names are trimmed and HTML-escaped before they can
// reach storage.
func validateRegistration(req *models.RegisterRequest) ValidationErrors {
	errs := ValidationErrors{}

	if l := len(req.Username); l < 5 || l > 20 {
		errs["username"] = "Username must be 5-20 characters"
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		errs["email"] = "Invalid email format"
	}
	if len(req.Password) < 8 {
		errs["password"] = "Password must be at least 8 characters"
	}

	req.FirstName = html.EscapeString(strings.TrimSpace(req.FirstName))
	if req.FirstName == "" {
		errs["first"] = "First name is required"
	}
	req.LastName = html.EscapeString(strings.TrimSpace(req.LastName))
	if req.LastName == "" {
		errs["last"] = "Last name is required"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateWorkout checks an add-workout submission and escapes the
// free-text fields before storage.
func ValidateWorkout(req *models.CreateWorkoutRequest) ValidationErrors {
	errs := ValidationErrors{}

	req.Name = html.EscapeString(strings.TrimSpace(req.Name))
	if req.Name == "" {
		errs["name"] = "Workout name is required"
	}
	if req.WorkoutTypeID == 0 {
		errs["workout_type"] = "Workout type is required"
	}
	if req.Duration != nil && *req.Duration < 0 {
		errs["duration"] = "Duration must be a positive number"
	}
	if req.Calories != nil && *req.Calories < 0 {
		errs["calories"] = "Calories must be a positive number"
	}
	if req.Distance != nil && *req.Distance < 0 {
		errs["distance"] = "Distance must be a positive number"
	}
	if req.WorkoutDate == "" {
		errs["workout_date"] = "Workout date is required"
	}
	req.Notes = html.EscapeString(req.Notes)

	if len(errs) == 0 {
		return nil
	}
	return errs
}
