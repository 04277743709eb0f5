package storage

import (
	"context"
	"fmt"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
)

// SaveExpenseDefinition inserts or updates a recurring expense definition.
// Matched transactions live on the transactions table, not here.
func (s *SQLiteStorage) SaveExpenseDefinition(ctx context.Context, def *model.ExpenseDefinition) error {
	if def == nil {
		return fmt.Errorf("expense definition cannot be nil")
	}
	if def.ID == "" {
		return fmt.Errorf("expense definition ID cannot be empty")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO expense_definitions (id, name, expected_amount_cents, recurrence_type, is_active)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			expected_amount_cents = excluded.expected_amount_cents,
			recurrence_type = excluded.recurrence_type,
			is_active = excluded.is_active`,
		def.ID, def.Name, def.ExpectedAmountCents, string(def.RecurrenceType), def.IsActive)
	if err != nil {
		return fmt.Errorf("failed to save expense definition: %w", err)
	}
	return nil
}

// GetActiveExpenseDefinitions returns active definitions with their matched
// transactions attached, ordered by settlement date so majority-vote
// inference sees a stable input order.
func (s *SQLiteStorage) GetActiveExpenseDefinitions(ctx context.Context) ([]model.ExpenseDefinition, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, expected_amount_cents, recurrence_type, is_active
		FROM expense_definitions
		WHERE is_active = 1
		ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense definitions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var defs []model.ExpenseDefinition
	for rows.Next() {
		var def model.ExpenseDefinition
		var recurrence string
		if err := rows.Scan(&def.ID, &def.Name, &def.ExpectedAmountCents, &recurrence, &def.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan expense definition: %w", err)
		}
		def.RecurrenceType = model.RecurrenceType(recurrence)
		defs = append(defs, def)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range defs {
		matched, err := s.matchedTransactions(ctx, defs[i].ID)
		if err != nil {
			return nil, err
		}
		defs[i].MatchedTransactions = matched
	}

	return defs, nil
}

func (s *SQLiteStorage) matchedTransactions(ctx context.Context, definitionID string) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hash, settled_at, description, amount_cents,
		       IFNULL(raw_category_id, ''), IFNULL(account_id, ''),
		       IFNULL(transfer_account_id, ''), is_internal_transfer,
		       IFNULL(matched_expense_definition_id, '')
		FROM transactions
		WHERE matched_expense_definition_id = ?
		ORDER BY settled_at, id`, definitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matched transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanTransactions(rows)
}
