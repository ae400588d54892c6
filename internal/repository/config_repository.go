// Package repository provides database repository implementations.
//
// No sqlc-generated query layer was available for this schema, so these
// repositories hand-write database/sql queries directly instead of calling
// generated db.Queries methods. They keep the surrounding conventions:
// constructor-over-*sql.DB, sql.ErrNoRows -> nil, nil, and
// fmt.Errorf("...: %w", err) wrapping.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/waynenilsen/safeworkout/internal/configstore"
)

// ConfigRepository reads rule configuration rows out of the rule_configs
// table. It implements configstore.Source.
type ConfigRepository struct {
	db *sql.DB
}

// NewConfigRepository creates a new ConfigRepository.
func NewConfigRepository(db *sql.DB) *ConfigRepository {
	return &ConfigRepository{db: db}
}

// FetchRows returns every active config row, for the loader to normalize
// and cache. Inactive rows are excluded at the query level rather than
// filtered in Go, so a disabled row never reaches the loader.
func (r *ConfigRepository) FetchRows(ctx context.Context) ([]configstore.Row, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT rule_category, rule_id, config, is_active
		FROM rule_configs
		WHERE is_active = 1
		ORDER BY rule_category, rule_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rule configs: %w", err)
	}
	defer rows.Close()

	var out []configstore.Row
	for rows.Next() {
		var category, subKey, config string
		var isActive int64
		if err := rows.Scan(&category, &subKey, &config, &isActive); err != nil {
			return nil, fmt.Errorf("failed to scan rule config row: %w", err)
		}
		out = append(out, configstore.Row{
			Category: category,
			SubKey:   subKey,
			Config:   json.RawMessage(config),
			IsActive: isActive == 1,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rule configs: %w", err)
	}
	return out, nil
}

// Upsert writes or replaces a single config row, keyed on (rule_category, rule_id).
func (r *ConfigRepository) Upsert(ctx context.Context, category, ruleID string, config json.RawMessage, isActive bool, updatedAt string) error {
	existingID, err := r.findID(ctx, category, ruleID)
	if err != nil {
		return err
	}

	activeFlag := boolToInt64(isActive)
	if existingID == 0 {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO rule_configs (rule_category, rule_id, config, is_active, updated_at)
			VALUES (?, ?, ?, ?, ?)
		`, category, ruleID, string(config), activeFlag, updatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert rule config: %w", err)
		}
		return nil
	}

	_, err = r.db.ExecContext(ctx, `
		UPDATE rule_configs SET config = ?, is_active = ?, updated_at = ? WHERE id = ?
	`, string(config), activeFlag, updatedAt, existingID)
	if err != nil {
		return fmt.Errorf("failed to update rule config: %w", err)
	}
	return nil
}

func (r *ConfigRepository) findID(ctx context.Context, category, ruleID string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		SELECT id FROM rule_configs WHERE rule_category = ? AND rule_id = ?
	`, category, ruleID).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up rule config: %w", err)
	}
	return id, nil
}
