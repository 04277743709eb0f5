package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
)

// SaveGoal inserts or updates a savings goal.
func (s *SQLiteStorage) SaveGoal(ctx context.Context, goal *model.Goal) error {
	if goal == nil || goal.ID == "" {
		return fmt.Errorf("goal with an ID is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO goals (id, name, icon, linked_account_id, target_cents, current_cents)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			icon = excluded.icon,
			linked_account_id = excluded.linked_account_id,
			target_cents = excluded.target_cents,
			current_cents = excluded.current_cents`,
		goal.ID, goal.Name, goal.Icon, nullString(goal.LinkedAccountID), goal.TargetCents, goal.CurrentCents)
	if err != nil {
		return fmt.Errorf("failed to save goal: %w", err)
	}
	return nil
}

// GetGoals returns all goals.
func (s *SQLiteStorage) GetGoals(ctx context.Context) ([]model.Goal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, IFNULL(icon, ''), IFNULL(linked_account_id, ''), target_cents, current_cents
		FROM goals ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Goal
	for rows.Next() {
		var g model.Goal
		if err := rows.Scan(&g.ID, &g.Name, &g.Icon, &g.LinkedAccountID, &g.TargetCents, &g.CurrentCents); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// SaveAsset inserts or updates an investment asset.
func (s *SQLiteStorage) SaveAsset(ctx context.Context, asset *model.Asset) error {
	if asset == nil || asset.ID == "" {
		return fmt.Errorf("asset with an ID is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO assets (id, name, icon, current_value_cents)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			icon = excluded.icon,
			current_value_cents = excluded.current_value_cents`,
		asset.ID, asset.Name, asset.Icon, asset.CurrentValueCents)
	if err != nil {
		return fmt.Errorf("failed to save asset: %w", err)
	}
	return nil
}

// GetAssets returns all assets.
func (s *SQLiteStorage) GetAssets(ctx context.Context) ([]model.Asset, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, IFNULL(icon, ''), current_value_cents FROM assets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Asset
	for rows.Next() {
		var a model.Asset
		if err := rows.Scan(&a.ID, &a.Name, &a.Icon, &a.CurrentValueCents); err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// SaveAssetContribution records money moved into an asset.
func (s *SQLiteStorage) SaveAssetContribution(ctx context.Context, contribution model.AssetContribution) error {
	if contribution.AssetID == "" {
		return fmt.Errorf("asset contribution requires an asset ID")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO asset_contributions (asset_id, amount_cents, occurred_at)
		VALUES (?, ?, ?)`,
		contribution.AssetID, contribution.AmountCents, contribution.OccurredAt)
	if err != nil {
		return fmt.Errorf("failed to save asset contribution: %w", err)
	}
	return nil
}

// GetAssetContributions returns contributions inside [start, end].
func (s *SQLiteStorage) GetAssetContributions(ctx context.Context, start, end time.Time) ([]model.AssetContribution, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT asset_id, amount_cents, occurred_at
		FROM asset_contributions
		WHERE occurred_at >= ? AND occurred_at <= ?
		ORDER BY occurred_at`, start, end.Add(24*time.Hour-time.Nanosecond))
	if err != nil {
		return nil, fmt.Errorf("failed to query asset contributions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.AssetContribution
	for rows.Next() {
		var c model.AssetContribution
		if err := rows.Scan(&c.AssetID, &c.AmountCents, &c.OccurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan asset contribution: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SaveCarryover stores the leftover balance for a budget month, read back as
// the following month's carryover.
func (s *SQLiteStorage) SaveCarryover(ctx context.Context, budgetID, monthKey string, cents int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO carryovers (budget_id, month_key, leftover_cents)
		VALUES (?, ?, ?)
		ON CONFLICT(budget_id, month_key) DO UPDATE SET leftover_cents = excluded.leftover_cents`,
		budgetID, monthKey, cents)
	if err != nil {
		return fmt.Errorf("failed to save carryover: %w", err)
	}
	return nil
}

// GetCarryover returns the stored leftover for a budget month, zero when none
// was recorded. Negative leftovers come back as-is so overspend rolls forward.
func (s *SQLiteStorage) GetCarryover(ctx context.Context, budgetID, monthKey string) (int64, error) {
	var cents int64
	err := s.db.QueryRowContext(ctx, `
		SELECT IFNULL(SUM(leftover_cents), 0) FROM carryovers
		WHERE budget_id = ? AND month_key = ?`, budgetID, monthKey).Scan(&cents)
	if err != nil {
		return 0, fmt.Errorf("failed to query carryover: %w", err)
	}
	return cents, nil
}
