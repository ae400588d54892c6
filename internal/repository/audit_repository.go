package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// AuditRepository appends rule-firing audit records. It is intentionally
// insert-only: the audit trail is never edited or deleted by the
// application, only by retention jobs outside this package's scope.
type AuditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// AuditRecord is one persisted rule-firing event.
type AuditRecord struct {
	UserID      string
	PlanID      string
	RuleID      string
	Category    string
	ActionType  string
	UserMessage string
	OccurredAt  time.Time
}

// Insert appends a single audit record.
func (r *AuditRepository) Insert(ctx context.Context, rec AuditRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_records (user_id, plan_id, rule_id, category, action_type, user_message, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.UserID, rec.PlanID, rec.RuleID, rec.Category, rec.ActionType, rec.UserMessage, rec.OccurredAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert audit record: %w", err)
	}
	return nil
}

// ListForPlan returns every audit record for a plan, in insertion order.
func (r *AuditRepository) ListForPlan(ctx context.Context, planID string) ([]AuditRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, plan_id, rule_id, category, action_type, user_message, occurred_at
		FROM audit_records WHERE plan_id = ? ORDER BY id
	`, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit records: %w", err)
	}
	defer rows.Close()

	var out []AuditRecord
	for rows.Next() {
		var rec AuditRecord
		var occurredAt string
		if err := rows.Scan(&rec.UserID, &rec.PlanID, &rec.RuleID, &rec.Category, &rec.ActionType, &rec.UserMessage, &occurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit record: %w", err)
		}
		rec.OccurredAt, err = time.Parse(time.RFC3339, occurredAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse audit record timestamp: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit records: %w", err)
	}
	return out, nil
}
