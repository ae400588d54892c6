package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/waynenilsen/safeworkout/internal/domain/plan"
)

// PlanRepository persists the generated Plan aggregate. A Plan's nested Day
// and Workout structures vary in shape per duration variant, so they are
// stored as a single JSON column rather than decomposed into rows, the same
// way the teacher stores a prescription's LoadStrategy/SetScheme payloads.
type PlanRepository struct {
	db *sql.DB
}

// NewPlanRepository creates a new PlanRepository.
func NewPlanRepository(db *sql.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// Save persists a plan, replacing any existing row with the same ID, making
// up to three attempts with exponential backoff.
func (r *PlanRepository) Save(ctx context.Context, p *plan.Plan) error {
	data, err := marshalJSON(p)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	b, err := retry.NewExponential(100 * time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to build plan save backoff: %w", err)
	}
	// WithMaxRetries counts retries after the first attempt.
	b = retry.WithMaxRetries(2, b)

	err = retry.Do(ctx, b, func(ctx context.Context) error {
		_, execErr := r.db.ExecContext(ctx, `
		INSERT INTO plans (id, user_id, start_date, plan_data, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			start_date = excluded.start_date,
			plan_data = excluded.plan_data
	`, p.ID, p.UserID, p.StartDate.Format(time.RFC3339), data, time.Now().Format(time.RFC3339))
		if execErr != nil {
			return retry.RetryableError(execErr)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}
	return nil
}

// GetByID retrieves a plan by ID. Returns (nil, nil) if not found.
func (r *PlanRepository) GetByID(ctx context.Context, id string) (*plan.Plan, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT plan_data FROM plans WHERE id = ?`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	var p plan.Plan
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
	}
	return &p, nil
}

// GetCurrentForUser retrieves the most recently created plan for a user.
// Returns (nil, nil) if the user has no plan.
func (r *PlanRepository) GetCurrentForUser(ctx context.Context, userID string) (*plan.Plan, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `
		SELECT plan_data FROM plans WHERE user_id = ? ORDER BY created_at DESC LIMIT 1
	`, userID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get current plan: %w", err)
	}

	var p plan.Plan
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
	}
	return &p, nil
}

// Delete removes a plan.
func (r *PlanRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	return nil
}
