package api

import (
	"strconv"
	"strings"

	"fittrack-backend/internal/models"
)

// exportWorkoutsCSV renders the CSV body for a user's workouts. Textual
// fields are double-quoted with embedded quotes doubled and newlines
// flattened to a single space; absent numerics render empty; dates are
// calendar dates.
func exportWorkoutsCSV(workouts []models.Workout) string {
	var b strings.Builder
	b.WriteString("Name,Type,Duration (mins),Calories,Distance (km),Notes,Date\n")

	for _, w := range workouts {
		notes := ""
		if w.Notes != nil {
			notes = *w.Notes
		}
		row := []string{
			csvQuote(w.Name),
			csvQuote(w.TypeName),
			csvInt(w.DurationMinutes),
			csvInt(w.CaloriesBurned),
			csvFloat(w.DistanceKm),
			csvQuote(notes),
			w.WorkoutDate.Format("2006-01-02"),
		}
		b.WriteString(strings.Join(row, ","))
		b.WriteByte('\n')
	}

	return b.String()
}

func csvQuote(s string) string {
	s = strings.ReplaceAll(s, `"`, `""`)
	for _, nl := range []string{"\r\n", "\n", "\r"} {
		s = strings.ReplaceAll(s, nl, " ")
	}
	return `"` + s + `"`
}

func csvInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func csvFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
