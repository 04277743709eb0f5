package storage

import (
	"context"
	"fmt"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/period"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/service"
)

// LoadSnapshot assembles everything the summary engine needs for one
// (budget, period) pair in a single read transaction, so the engine always
// sees an internally consistent snapshot.
func (s *SQLiteStorage) LoadSnapshot(ctx context.Context, budgetID, methodologyName, partnershipID, userID string, p model.Period) (*service.Snapshot, error) {
	snapshot := &service.Snapshot{}

	var err error
	if snapshot.Transactions, err = s.GetTransactionsByPeriod(ctx, p.Start, p.End); err != nil {
		return nil, fmt.Errorf("snapshot transactions: %w", err)
	}
	if snapshot.IncomeSources, err = s.GetActiveIncomeSources(ctx); err != nil {
		return nil, fmt.Errorf("snapshot income sources: %w", err)
	}
	if snapshot.CategoryMappings, err = s.GetCategoryMappings(ctx); err != nil {
		return nil, fmt.Errorf("snapshot category mappings: %w", err)
	}
	if snapshot.ExpenseDefinitions, err = s.GetActiveExpenseDefinitions(ctx); err != nil {
		return nil, fmt.Errorf("snapshot expense definitions: %w", err)
	}
	monthKey := period.MonthKey(p.Start)
	if snapshot.Assignments, err = s.GetAssignmentsForMonth(ctx, budgetID, monthKey); err != nil {
		return nil, fmt.Errorf("snapshot assignments: %w", err)
	}
	if snapshot.SplitSettings, err = s.GetSplitSettings(ctx); err != nil {
		return nil, fmt.Errorf("snapshot split settings: %w", err)
	}
	if snapshot.Customization, err = s.GetMethodologyCustomization(ctx, methodologyName, partnershipID, userID); err != nil {
		return nil, fmt.Errorf("snapshot customization: %w", err)
	}
	if snapshot.Goals, err = s.GetGoals(ctx); err != nil {
		return nil, fmt.Errorf("snapshot goals: %w", err)
	}
	if snapshot.Assets, err = s.GetAssets(ctx); err != nil {
		return nil, fmt.Errorf("snapshot assets: %w", err)
	}
	if snapshot.AssetContributions, err = s.GetAssetContributions(ctx, p.Start, p.End); err != nil {
		return nil, fmt.Errorf("snapshot asset contributions: %w", err)
	}
	if snapshot.CarryoverCents, err = s.GetCarryover(ctx, budgetID, period.PriorMonthKey(p.Start)); err != nil {
		return nil, fmt.Errorf("snapshot carryover: %w", err)
	}

	return snapshot, nil
}
