package storage

import (
	"context"
	"fmt"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
)

// SaveCategoryMappings replaces the taxonomy wholesale. The mapping table is
// administrator-maintained and small, so a full replace keeps it consistent.
func (s *SQLiteStorage) SaveCategoryMappings(ctx context.Context, mappings []model.CategoryMapping) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM category_mappings`); err != nil {
		return fmt.Errorf("failed to clear category mappings: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO category_mappings (raw_category_id, parent_name, child_name, icon, display_order)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, m := range mappings {
		if _, err := stmt.ExecContext(ctx, m.RawCategoryID, m.ParentName, m.ChildName, m.Icon, m.DisplayOrder); err != nil {
			return fmt.Errorf("failed to insert mapping %s: %w", m.RawCategoryID, err)
		}
	}

	return tx.Commit()
}

// GetCategoryMappings returns the full taxonomy in display order.
func (s *SQLiteStorage) GetCategoryMappings(ctx context.Context) ([]model.CategoryMapping, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT raw_category_id, parent_name, child_name, IFNULL(icon, ''), display_order
		FROM category_mappings
		ORDER BY display_order, raw_category_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query category mappings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.CategoryMapping
	for rows.Next() {
		var m model.CategoryMapping
		if err := rows.Scan(&m.RawCategoryID, &m.ParentName, &m.ChildName, &m.Icon, &m.DisplayOrder); err != nil {
			return nil, fmt.Errorf("failed to scan category mapping: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
