package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/config"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/engine"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/income"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/methodology"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/period"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a budget summary to Google Sheets",
		Long: `Compute a budget summary and export it to a Google Sheets spreadsheet.

Examples:
  # Export this month's shared summary
  piggyback export

  # Export a specific fortnight
  piggyback export --period fortnightly --date 2025-06-15`,
		RunE: runExport,
	}

	cmd.Flags().StringP("period", "p", "monthly", "period type (weekly, fortnightly, monthly)")
	cmd.Flags().StringP("date", "d", "", "anchor date inside the period (YYYY-MM-DD, default today)")
	cmd.Flags().StringP("methodology", "m", "zero-based", "budgeting methodology")

	cmd.AddCommand(exportAuthCmd())

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	periodFlag, _ := cmd.Flags().GetString("period")
	dateFlag, _ := cmd.Flags().GetString("date")
	methodologyFlag, _ := cmd.Flags().GetString("methodology")

	anchor := time.Now().UTC()
	if dateFlag != "" {
		parsed, err := time.Parse("2006-01-02", dateFlag)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", dateFlag, err)
		}
		anchor = parsed
	}

	p, err := period.Frame(anchor, model.PeriodType(periodFlag))
	if err != nil {
		return err
	}

	methodologyName := methodology.Name(methodologyFlag)
	if !methodologyName.Valid() {
		return fmt.Errorf("unknown methodology %q (known: %v)", methodologyFlag, methodology.Names())
	}

	sheetsConfig, err := config.LoadSheetsConfig()
	if err != nil {
		return fmt.Errorf("sheets not configured: %w (run 'piggyback export auth' first)", err)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	snapshot, err := store.LoadSnapshot(ctx, budgetID(), string(methodologyName), partnershipID(), ownerUserID(), p)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	resp, err := engine.Summarize(engine.SummaryInput{
		Customization:      snapshot.Customization,
		PeriodType:         p.Type,
		BudgetView:         model.ViewShared,
		CarryoverMode:      model.CarryoverRollover,
		Methodology:        methodologyName,
		OwnerUserID:        ownerUserID(),
		ViewerUserID:       ownerUserID(),
		IncomeScope:        income.ScopeCombined,
		Period:             p,
		IncomeSources:      snapshot.IncomeSources,
		Assignments:        snapshot.Assignments,
		Transactions:       snapshot.Transactions,
		ExpenseDefinitions: snapshot.ExpenseDefinitions,
		SplitSettings:      snapshot.SplitSettings,
		CategoryMappings:   snapshot.CategoryMappings,
		Goals:              snapshot.Goals,
		Assets:             snapshot.Assets,
		AssetContributions: snapshot.AssetContributions,
		CarryoverCents:     snapshot.CarryoverCents,
	})
	if err != nil {
		return err
	}

	idx := engine.BuildNameIndex(snapshot.Goals, snapshot.Assets, snapshot.CategoryMappings)
	summary := engine.Annotate(resp.Summary, idx)

	writer, err := sheets.NewWriter(ctx, *sheetsConfig, slog.Default().With("component", "sheets"))
	if err != nil {
		return fmt.Errorf("failed to create sheets writer: %w", err)
	}

	if err := writer.Write(ctx, &summary); err != nil {
		return fmt.Errorf("failed to export summary: %w", err)
	}

	slog.Info("📊 Exported summary", "period", p.Label)
	return nil
}

func exportAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with Google Sheets",
		Long: `Authenticate with Google Sheets using OAuth2.

This command opens your browser to authenticate with Google, then saves
the refresh token to your config file.`,
		RunE: runExportAuth,
	}

	cmd.Flags().String("client-id", "", "OAuth2 Client ID (overrides config)")
	cmd.Flags().String("client-secret", "", "OAuth2 Client Secret (overrides config)")

	return cmd
}

func runExportAuth(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	clientID := viper.GetString("sheets.client_id")
	clientSecret := viper.GetString("sheets.client_secret")

	if flagID, _ := cmd.Flags().GetString("client-id"); flagID != "" {
		clientID = flagID
	}
	if flagSecret, _ := cmd.Flags().GetString("client-secret"); flagSecret != "" {
		clientSecret = flagSecret
	}

	if clientID == "" {
		clientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	if clientSecret == "" {
		clientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}

	if clientID == "" || clientSecret == "" {
		return fmt.Errorf("OAuth2 credentials not found: set sheets.client_id and sheets.client_secret in config or use the flags")
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	tokenFile := filepath.Join(configDir, "piggyback", "sheets-token.json")

	slog.Info("Starting Google Sheets authentication", "token_file", tokenFile)

	token, err := sheets.AuthenticateOAuth2Interactive(ctx, sheets.OAuth2Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenFile:    tokenFile,
	})
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	viper.Set("sheets.refresh_token", token.RefreshToken)
	if err := saveConfig(); err != nil {
		slog.Warn("Failed to update config file with refresh token", "error", err)
		slog.Info("Please add this to your config.yaml manually:")
		slog.Info(fmt.Sprintf("sheets:\n  refresh_token: %q", token.RefreshToken))
		return nil
	}

	slog.Info("✅ Authentication successful!")
	slog.Info("Run 'piggyback export' to export summaries.")

	return nil
}
