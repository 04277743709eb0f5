// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// Snapshot is one internally-consistent read of every record the summary
// engine needs for a (budget, period) pair. The engine requires snapshot
// consistency per call; it never caches across calls.
type Snapshot struct {
	Customization      *model.MethodologyCustomization
	IncomeSources      []model.IncomeSource
	Assignments        []model.Assignment
	Transactions       []model.Transaction
	ExpenseDefinitions []model.ExpenseDefinition
	SplitSettings      []model.SplitSetting
	CategoryMappings   []model.CategoryMapping
	Goals              []model.Goal
	Assets             []model.Asset
	AssetContributions []model.AssetContribution
	CarryoverCents     int64
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Transaction operations
	SaveTransactions(ctx context.Context, transactions []model.Transaction) error
	GetTransactionsByPeriod(ctx context.Context, start, end time.Time) ([]model.Transaction, error)
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	MatchTransactionToExpense(ctx context.Context, transactionID, expenseDefinitionID string) error

	// Income source operations
	SaveIncomeSource(ctx context.Context, source *model.IncomeSource) error
	GetActiveIncomeSources(ctx context.Context) ([]model.IncomeSource, error)
	DeactivateIncomeSource(ctx context.Context, id string) error

	// Category mapping operations
	SaveCategoryMappings(ctx context.Context, mappings []model.CategoryMapping) error
	GetCategoryMappings(ctx context.Context) ([]model.CategoryMapping, error)

	// Expense definition operations
	SaveExpenseDefinition(ctx context.Context, def *model.ExpenseDefinition) error
	GetActiveExpenseDefinitions(ctx context.Context) ([]model.ExpenseDefinition, error)

	// Assignment operations
	UpsertAssignment(ctx context.Context, assignment *model.Assignment) error
	GetAssignmentsForMonth(ctx context.Context, budgetID, monthKey string) ([]model.Assignment, error)

	// Split setting operations. Replace is delete-then-insert because the
	// natural key contains nullable columns.
	ReplaceSplitSetting(ctx context.Context, setting model.SplitSetting) error
	GetSplitSettings(ctx context.Context) ([]model.SplitSetting, error)

	// Methodology customization operations
	SaveMethodologyCustomization(ctx context.Context, methodologyName string, c *model.MethodologyCustomization) error
	GetMethodologyCustomization(ctx context.Context, methodologyName, partnershipID, userID string) (*model.MethodologyCustomization, error)
	DeleteMethodologyCustomization(ctx context.Context, methodologyName, partnershipID, userID string) error

	// Goal and asset operations
	SaveGoal(ctx context.Context, goal *model.Goal) error
	GetGoals(ctx context.Context) ([]model.Goal, error)
	SaveAsset(ctx context.Context, asset *model.Asset) error
	GetAssets(ctx context.Context) ([]model.Asset, error)
	SaveAssetContribution(ctx context.Context, contribution model.AssetContribution) error
	GetAssetContributions(ctx context.Context, start, end time.Time) ([]model.AssetContribution, error)

	// Carryover bookkeeping
	SaveCarryover(ctx context.Context, budgetID, monthKey string, cents int64) error
	GetCarryover(ctx context.Context, budgetID, monthKey string) (int64, error)

	// Snapshot assembly for the summary engine
	LoadSnapshot(ctx context.Context, budgetID, methodologyName, partnershipID, userID string, p model.Period) (*Snapshot, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// TransactionFetcher pulls transactions from an external bank feed.
type TransactionFetcher interface {
	GetTransactions(ctx context.Context, startDate, endDate time.Time) ([]model.Transaction, error)
}

// SummaryWriter exports a computed summary to an external destination.
type SummaryWriter interface {
	Write(ctx context.Context, summary *model.BudgetSummary) error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
