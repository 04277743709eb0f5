package storage

import (
	"context"
	"fmt"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
)

// SaveIncomeSource inserts or updates an income source.
func (s *SQLiteStorage) SaveIncomeSource(ctx context.Context, source *model.IncomeSource) error {
	if source == nil {
		return fmt.Errorf("income source cannot be nil")
	}
	if source.ID == "" {
		return fmt.Errorf("income source ID cannot be empty")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO income_sources
			(id, name, owner_user_id, amount_cents, frequency, source_type,
			 is_manual_partner_income, is_received, received_date, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			owner_user_id = excluded.owner_user_id,
			amount_cents = excluded.amount_cents,
			frequency = excluded.frequency,
			source_type = excluded.source_type,
			is_manual_partner_income = excluded.is_manual_partner_income,
			is_received = excluded.is_received,
			received_date = excluded.received_date,
			is_active = excluded.is_active`,
		source.ID, source.Name, source.OwnerUserID, source.AmountCents,
		string(source.Frequency), string(source.SourceType),
		source.IsManualPartnerIncome, source.IsReceived, source.ReceivedDate, source.IsActive)
	if err != nil {
		return fmt.Errorf("failed to save income source: %w", err)
	}
	return nil
}

// GetActiveIncomeSources returns all active income sources.
func (s *SQLiteStorage) GetActiveIncomeSources(ctx context.Context) ([]model.IncomeSource, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, owner_user_id, amount_cents, IFNULL(frequency, ''),
		       source_type, is_manual_partner_income, is_received, received_date, is_active
		FROM income_sources
		WHERE is_active = 1
		ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query income sources: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.IncomeSource
	for rows.Next() {
		var src model.IncomeSource
		var frequency, sourceType string
		if err := rows.Scan(
			&src.ID, &src.Name, &src.OwnerUserID, &src.AmountCents, &frequency,
			&sourceType, &src.IsManualPartnerIncome, &src.IsReceived,
			&src.ReceivedDate, &src.IsActive,
		); err != nil {
			return nil, fmt.Errorf("failed to scan income source: %w", err)
		}
		src.Frequency = model.PayFrequency(frequency)
		src.SourceType = model.IncomeSourceType(sourceType)
		out = append(out, src)
	}
	return out, rows.Err()
}

// DeactivateIncomeSource soft-deletes an income source. Sources are never
// hard-deleted while referenced.
func (s *SQLiteStorage) DeactivateIncomeSource(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE income_sources SET is_active = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate income source: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deactivate result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("income source %s not found", id)
	}
	return nil
}
