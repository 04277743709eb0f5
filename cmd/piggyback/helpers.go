package main

import (
	"context"
	"fmt"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/config"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/service"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/storage"
	"github.com/spf13/viper"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/piggyback/piggyback.db"
	}

	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// budgetID returns the configured budget identifier. A single-household
// install uses the default.
func budgetID() string {
	if id := viper.GetString("budget.id"); id != "" {
		return id
	}
	return "default"
}

// partnershipID returns the configured partnership identifier.
func partnershipID() string {
	if id := viper.GetString("budget.partnership_id"); id != "" {
		return id
	}
	return "default"
}

// ownerUserID returns the configured budget owner.
func ownerUserID() string {
	if id := viper.GetString("budget.owner_user_id"); id != "" {
		return id
	}
	return "owner"
}
