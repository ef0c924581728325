package database

import (
	"fmt"
	"strings"

	"fittrack-backend/internal/models"
)

// Op is the fixed filter vocabulary for workout listings
type Op int

const (
	// OpContains matches a substring anywhere in the column
	OpContains Op = iota
	// OpEquals matches the column exactly
	OpEquals
	// OpAtLeast is an inclusive lower bound
	OpAtLeast
	// OpAtMost is an inclusive upper bound
	OpAtMost
)

// Condition is one conjunctive constraint on a listing. Values are always
// bound as parameters; they never touch the query text.
type Condition struct {
	Column string
	Op     Op
	Value  any
}

// conditionsFor translates the optional filter fields into typed
// conditions. Absent fields contribute nothing.
func conditionsFor(f models.WorkoutFilter) []Condition {
	var conds []Condition
	if f.Search != "" {
		conds = append(conds, Condition{Column: "w.name", Op: OpContains, Value: f.Search})
	}
	if f.TypeID != 0 {
		conds = append(conds, Condition{Column: "w.workout_type_id", Op: OpEquals, Value: f.TypeID})
	}
	if f.MinDate != "" {
		conds = append(conds, Condition{Column: "w.workout_date", Op: OpAtLeast, Value: f.MinDate})
	}
	if f.MaxDate != "" {
		conds = append(conds, Condition{Column: "w.workout_date", Op: OpAtMost, Value: f.MaxDate})
	}
	return conds
}

// renderWhere reduces the condition list to a single "WHERE a AND b" clause
// with $N placeholders numbered from next. An empty list renders no clause,
// leaving the base query unconstrained. Substring values are wrapped in
// wildcard markers here, before binding.
func renderWhere(conds []Condition, next int) (string, []any) {
	if len(conds) == 0 {
		return "", nil
	}

	parts := make([]string, 0, len(conds))
	args := make([]any, 0, len(conds))
	for _, c := range conds {
		switch c.Op {
		case OpContains:
			parts = append(parts, fmt.Sprintf("%s ILIKE $%d", c.Column, next))
			args = append(args, "%"+fmt.Sprint(c.Value)+"%")
		case OpEquals:
			parts = append(parts, fmt.Sprintf("%s = $%d", c.Column, next))
			args = append(args, c.Value)
		case OpAtLeast:
			parts = append(parts, fmt.Sprintf("%s >= $%d", c.Column, next))
			args = append(args, c.Value)
		case OpAtMost:
			parts = append(parts, fmt.Sprintf("%s <= $%d", c.Column, next))
			args = append(args, c.Value)
		}
		next++
	}

	return " WHERE " + strings.Join(parts, " AND "), args
}

// sortOrder is the whitelist of recognised sort keys. Anything else,
// including the empty string, appends no ORDER BY at all.
var sortOrder = map[string]string{
	"name":     "w.name ASC",
	"date":     "w.workout_date DESC",
	"calories": "w.calories_burned DESC",
	"duration": "w.duration_minutes DESC",
}

// orderClause resolves a sort key against the whitelist. Unrecognised
// input degrades silently to default ordering.
func orderClause(sort string) string {
	order, ok := sortOrder[sort]
	if !ok {
		return ""
	}
	return " ORDER BY " + order
}
