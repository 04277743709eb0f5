package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/ofx"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func init() {
	importOFXCmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import settled transactions from OFX or QFX files exported from your bank.

Examples:
  # Import single file
  piggyback import-ofx ~/Downloads/statement_jun_2025.ofx

  # Import all QFX files in a directory
  piggyback import-ofx ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	importOFXCmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")

	rootCmd.AddCommand(importOFXCmd)
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	// Expand globs and collect all files
	var allFiles []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				allFiles = append(allFiles, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			allFiles = append(allFiles, matches...)
		}
	}

	if len(allFiles) == 0 {
		return fmt.Errorf("no files found to import")
	}

	slog.Info("🐷 Importing OFX files...",
		"file_count", len(allFiles),
		"dry_run", dryRun)

	var allTransactions []model.Transaction
	seen := make(map[string]bool)

	parser := ofx.NewParser()

	bar := progressbar.NewOptions(len(allFiles),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Parsing statements..."),
	)

	for _, filePath := range allFiles {
		f, err := os.Open(filePath) // #nosec G304
		if err != nil {
			slog.Error("Failed to open file", "file", filePath, "error", err)
			_ = bar.Add(1)
			continue
		}

		transactions, err := parser.ParseFile(ctx, f)
		_ = f.Close()

		if err != nil {
			slog.Error("Failed to parse OFX file", "file", filePath, "error", err)
			_ = bar.Add(1)
			continue
		}

		added := 0
		for _, tx := range transactions {
			if !seen[tx.Hash] {
				seen[tx.Hash] = true
				allTransactions = append(allTransactions, tx)
				added++
			}
		}

		slog.Debug("Processed file",
			"file", filepath.Base(filePath),
			"transactions_found", len(transactions),
			"added", added,
			"duplicates", len(transactions)-added)
		_ = bar.Add(1)
	}
	fmt.Fprintln(os.Stderr)

	if len(allTransactions) == 0 {
		slog.Warn("No transactions found in any file")
		return nil
	}

	if dryRun {
		slog.Info("🔍 Dry run complete - no data saved",
			"unique_transactions", len(allTransactions))
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.SaveTransactions(ctx, allTransactions); err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}

	slog.Info("💾 Saved transactions",
		"count", len(allTransactions),
		"files", len(allFiles))

	return nil
}
