package storage

import (
	"context"
	"fmt"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
)

// ReplaceSplitSetting stores a split setting as delete-then-insert. The
// natural key contains nullable columns, so an upsert's conflict target
// cannot express it reliably across SQLite versions.
func (s *SQLiteStorage) ReplaceSplitSetting(ctx context.Context, setting model.SplitSetting) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM split_settings
		WHERE scope = ?
		  AND IFNULL(category_name, '') = ?
		  AND IFNULL(expense_definition_id, '') = ?`,
		string(setting.Scope), setting.CategoryName, setting.ExpenseDefinitionID); err != nil {
		return fmt.Errorf("failed to delete old split setting: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO split_settings (scope, category_name, expense_definition_id, split_type, owner_percentage)
		VALUES (?, ?, ?, ?, ?)`,
		string(setting.Scope), nullString(setting.CategoryName),
		nullString(setting.ExpenseDefinitionID), string(setting.Type), setting.OwnerPercentage); err != nil {
		return fmt.Errorf("failed to insert split setting: %w", err)
	}

	return tx.Commit()
}

// GetSplitSettings returns all split settings.
func (s *SQLiteStorage) GetSplitSettings(ctx context.Context) ([]model.SplitSetting, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT scope, IFNULL(category_name, ''), IFNULL(expense_definition_id, ''),
		       split_type, IFNULL(owner_percentage, 0)
		FROM split_settings
		ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to query split settings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.SplitSetting
	for rows.Next() {
		var setting model.SplitSetting
		var scope, splitType string
		if err := rows.Scan(&scope, &setting.CategoryName, &setting.ExpenseDefinitionID, &splitType, &setting.OwnerPercentage); err != nil {
			return nil, fmt.Errorf("failed to scan split setting: %w", err)
		}
		setting.Scope = model.SplitScope(scope)
		setting.Type = model.SplitType(splitType)
		out = append(out, setting)
	}
	return out, rows.Err()
}
