package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/waynenilsen/safeworkout/internal/domain/plan"
)

// SavedWorkoutRepository persists user-saved copies of a generated workout,
// independent of the plan's lifecycle (spec.md §3's "saved workout" entity
// survives plan regeneration).
type SavedWorkoutRepository struct {
	db *sql.DB
}

// NewSavedWorkoutRepository creates a new SavedWorkoutRepository.
func NewSavedWorkoutRepository(db *sql.DB) *SavedWorkoutRepository {
	return &SavedWorkoutRepository{db: db}
}

// SavedWorkout is a saved copy of one day's workout, detached from its plan.
type SavedWorkout struct {
	ID        int64
	UserID    string
	PlanID    string
	DayNumber int
	Workout   plan.Workout
	SavedAt   time.Time
}

// Save inserts a new saved workout copy.
func (r *SavedWorkoutRepository) Save(ctx context.Context, userID, planID string, dayNumber int, w plan.Workout) (int64, error) {
	data, err := marshalJSON(w)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal saved workout: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO saved_workouts (user_id, plan_id, day_number, workout_data, saved_at)
		VALUES (?, ?, ?, ?, ?)
	`, userID, planID, dayNumber, data, time.Now().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("failed to save workout: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read saved workout id: %w", err)
	}
	return id, nil
}

// ListForUser returns every saved workout for a user, most recent first.
func (r *SavedWorkoutRepository) ListForUser(ctx context.Context, userID string) ([]SavedWorkout, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, plan_id, day_number, workout_data, saved_at
		FROM saved_workouts WHERE user_id = ? ORDER BY saved_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved workouts: %w", err)
	}
	defer rows.Close()

	var out []SavedWorkout
	for rows.Next() {
		var sw SavedWorkout
		var data, savedAt string
		if err := rows.Scan(&sw.ID, &sw.UserID, &sw.PlanID, &sw.DayNumber, &data, &savedAt); err != nil {
			return nil, fmt.Errorf("failed to scan saved workout: %w", err)
		}
		if err := json.Unmarshal([]byte(data), &sw.Workout); err != nil {
			return nil, fmt.Errorf("failed to unmarshal saved workout: %w", err)
		}
		sw.SavedAt, err = time.Parse(time.RFC3339, savedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse saved workout timestamp: %w", err)
		}
		out = append(out, sw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate saved workouts: %w", err)
	}
	return out, nil
}

// Delete removes a saved workout owned by the given user.
func (r *SavedWorkoutRepository) Delete(ctx context.Context, userID string, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM saved_workouts WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete saved workout: %w", err)
	}
	return nil
}
