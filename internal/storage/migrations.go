package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a fatal
// error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS transactions (
					id TEXT PRIMARY KEY,
					hash TEXT UNIQUE NOT NULL,
					settled_at DATETIME NOT NULL,
					description TEXT NOT NULL,
					amount_cents INTEGER NOT NULL,
					raw_category_id TEXT,
					account_id TEXT,
					transfer_account_id TEXT,
					is_internal_transfer INTEGER NOT NULL DEFAULT 0,
					matched_expense_definition_id TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_transactions_settled ON transactions(settled_at)`,
				`CREATE INDEX idx_transactions_hash ON transactions(hash)`,
				`CREATE INDEX idx_transactions_matched ON transactions(matched_expense_definition_id)`,

				`CREATE TABLE IF NOT EXISTS income_sources (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					owner_user_id TEXT NOT NULL,
					amount_cents INTEGER NOT NULL,
					frequency TEXT,
					source_type TEXT NOT NULL,
					is_manual_partner_income INTEGER NOT NULL DEFAULT 0,
					is_received INTEGER NOT NULL DEFAULT 0,
					received_date DATETIME,
					is_active INTEGER NOT NULL DEFAULT 1,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS category_mappings (
					raw_category_id TEXT PRIMARY KEY,
					parent_name TEXT NOT NULL,
					child_name TEXT NOT NULL,
					icon TEXT,
					display_order INTEGER NOT NULL DEFAULT 0
				)`,

				`CREATE TABLE IF NOT EXISTS expense_definitions (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					expected_amount_cents INTEGER NOT NULL,
					recurrence_type TEXT NOT NULL,
					is_active INTEGER NOT NULL DEFAULT 1,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
			}
			for _, q := range queries {
				if _, err := tx.Exec(q); err != nil {
					return fmt.Errorf("migration 1: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Assignments, split settings, methodology customizations",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS assignments (
					id TEXT PRIMARY KEY,
					budget_id TEXT NOT NULL,
					month_key TEXT NOT NULL,
					category_name TEXT NOT NULL DEFAULT '',
					subcategory_name TEXT NOT NULL DEFAULT '',
					assignment_type TEXT NOT NULL,
					goal_id TEXT NOT NULL DEFAULT '',
					asset_id TEXT NOT NULL DEFAULT '',
					assigned_cents INTEGER NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE UNIQUE INDEX idx_assignments_key ON assignments(
					budget_id, month_key, assignment_type,
					category_name, subcategory_name, goal_id, asset_id
				)`,

				`CREATE TABLE IF NOT EXISTS split_settings (
					scope TEXT NOT NULL,
					category_name TEXT,
					expense_definition_id TEXT,
					split_type TEXT NOT NULL,
					owner_percentage REAL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS methodology_customizations (
					methodology_name TEXT NOT NULL,
					partnership_id TEXT NOT NULL,
					user_id TEXT NOT NULL DEFAULT '',
					custom_categories TEXT NOT NULL,
					hidden_subcategories TEXT NOT NULL,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					PRIMARY KEY (methodology_name, partnership_id, user_id)
				)`,
			}
			for _, q := range queries {
				if _, err := tx.Exec(q); err != nil {
					return fmt.Errorf("migration 2: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Goals, assets, contributions, carryovers",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS goals (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					icon TEXT,
					linked_account_id TEXT,
					target_cents INTEGER NOT NULL DEFAULT 0,
					current_cents INTEGER NOT NULL DEFAULT 0
				)`,

				`CREATE TABLE IF NOT EXISTS assets (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					icon TEXT,
					current_value_cents INTEGER NOT NULL DEFAULT 0
				)`,

				`CREATE TABLE IF NOT EXISTS asset_contributions (
					asset_id TEXT NOT NULL,
					amount_cents INTEGER NOT NULL,
					occurred_at DATETIME NOT NULL
				)`,
				`CREATE INDEX idx_asset_contributions_asset ON asset_contributions(asset_id, occurred_at)`,

				`CREATE TABLE IF NOT EXISTS carryovers (
					budget_id TEXT NOT NULL,
					month_key TEXT NOT NULL,
					leftover_cents INTEGER NOT NULL,
					PRIMARY KEY (budget_id, month_key)
				)`,
			}
			for _, q := range queries {
				if _, err := tx.Exec(q); err != nil {
					return fmt.Errorf("migration 3: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate applies outstanding migrations in order.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var current int
	err := s.db.QueryRowContext(ctx, `SELECT IFNULL(MAX(version), 0) FROM schema_version`).Scan(&current)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		slog.Info("Applying migration", "version", m.Version, "description", m.Description)

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
		}

		if err := m.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", m.Version, err)
		}

		if _, err := tx.Exec(`INSERT INTO schema_version (version) VALUES (?)`, m.Version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}
