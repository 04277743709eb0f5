package storage

import (
	"context"
	"fmt"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
)

// UpsertAssignment writes one assignment row for a budget and month. Writes
// are atomic single-row upserts; the engine is re-invoked afterwards and
// never sees an in-flight write.
func (s *SQLiteStorage) UpsertAssignment(ctx context.Context, assignment *model.Assignment) error {
	if assignment == nil {
		return fmt.Errorf("assignment cannot be nil")
	}
	if assignment.ID == "" {
		return fmt.Errorf("assignment ID cannot be empty")
	}
	if assignment.MonthKey == "" {
		return fmt.Errorf("assignment month key cannot be empty")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO assignments
			(id, budget_id, month_key, category_name, subcategory_name,
			 assignment_type, goal_id, asset_id, assigned_cents)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(budget_id, month_key, assignment_type,
			category_name, subcategory_name, goal_id, asset_id)
		DO UPDATE SET
			assigned_cents = excluded.assigned_cents,
			updated_at = CURRENT_TIMESTAMP`,
		assignment.ID, assignment.BudgetID, assignment.MonthKey,
		assignment.CategoryName, assignment.SubcategoryName,
		string(assignment.Type), assignment.GoalID, assignment.AssetID,
		assignment.AssignedCents)
	if err != nil {
		return fmt.Errorf("failed to upsert assignment: %w", err)
	}
	return nil
}

// GetAssignmentsForMonth returns the assignment set for one budget and month
// key. The current month's set is the only one a summary reads.
func (s *SQLiteStorage) GetAssignmentsForMonth(ctx context.Context, budgetID, monthKey string) ([]model.Assignment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, budget_id, month_key, IFNULL(category_name, ''),
		       IFNULL(subcategory_name, ''), assignment_type,
		       IFNULL(goal_id, ''), IFNULL(asset_id, ''), assigned_cents
		FROM assignments
		WHERE budget_id = ? AND month_key = ?
		ORDER BY created_at, id`, budgetID, monthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Assignment
	for rows.Next() {
		var a model.Assignment
		var assignmentType string
		if err := rows.Scan(
			&a.ID, &a.BudgetID, &a.MonthKey, &a.CategoryName, &a.SubcategoryName,
			&assignmentType, &a.GoalID, &a.AssetID, &a.AssignedCents,
		); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		a.Type = model.AssignmentType(assignmentType)
		out = append(out, a)
	}
	return out, rows.Err()
}
