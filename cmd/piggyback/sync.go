package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/config"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/plaid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync transactions from your bank via Plaid",
	}

	cmd.AddCommand(syncLinkCmd())
	cmd.AddCommand(syncPullCmd())

	return cmd
}

func syncLinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Connect a bank account via Plaid Link",
		Long: `Connect a bank account using Plaid Link.

This command will:
1. Start a local web server
2. Open Plaid Link in your browser
3. Exchange the resulting public token
4. Save the access token to your config file`,
		RunE: runSyncLink,
	}

	cmd.Flags().String("env", "", "Plaid environment (sandbox/production)")

	return cmd
}

func runSyncLink(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg := config.LoadPlaidConfig()
	if flagEnv, _ := cmd.Flags().GetString("env"); flagEnv != "" {
		cfg.Environment = flagEnv
	}
	if cfg.ClientID == "" || cfg.Secret == "" {
		return fmt.Errorf("plaid credentials missing: set plaid.client_id and plaid.secret in config or PLAID_CLIENT_ID and PLAID_SECRET environment variables")
	}

	slog.Info("Starting Plaid Link flow", "environment", cfg.Environment)

	plaidClient, err := plaid.NewClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to create Plaid client: %w", err)
	}

	linkToken, err := plaidClient.CreateLinkToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to create link token: %w", err)
	}

	type linkSuccess struct {
		AccessToken     string
		ItemID          string
		InstitutionName string
	}

	successChan := make(chan linkSuccess, 1)
	errorChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <title>Connect Your Bank Account - PiggyBack</title>
    <script src="https://cdn.plaid.com/link/v2/stable/link-initialize.js"></script>
</head>
<body>
    <h1>🐷 Connect Your Bank Account</h1>
    <button id="link-button">Connect Bank Account</button>
    <div id="message"></div>
    <script>
    const linkHandler = Plaid.create({
        token: '%s',
        onSuccess: (public_token, metadata) => {
            fetch('/exchange', {
                method: 'POST',
                headers: { 'Content-Type': 'application/json' },
                body: JSON.stringify({ public_token, metadata })
            })
            .then(response => response.json())
            .then(data => {
                document.getElementById('message').innerText =
                    data.success ? 'Account connected. You can close this tab.'
                                 : 'Connection failed: ' + (data.error || 'unknown error');
            });
        }
    });
    document.getElementById('link-button').onclick = () => linkHandler.open();
    </script>
</body>
</html>`, linkToken)

		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, html)
	})

	mux.HandleFunc("/exchange", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			PublicToken string `json:"public_token"`
			Metadata    struct {
				Institution struct {
					Name string `json:"name"`
				} `json:"institution"`
			} `json:"metadata"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "invalid request"})
			return
		}

		accessToken, itemID, exchangeErr := plaidClient.ExchangePublicToken(ctx, req.PublicToken)
		if exchangeErr != nil {
			errorChan <- fmt.Errorf("failed to exchange token: %w", exchangeErr)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "failed to exchange token"})
			return
		}

		successChan <- linkSuccess{
			AccessToken:     accessToken,
			ItemID:          itemID,
			InstitutionName: req.Metadata.Institution.Name,
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	})

	server := &http.Server{Addr: ":8080", Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			errorChan <- fmt.Errorf("failed to start server: %w", err)
		}
	}()

	browserURL := "http://localhost:8080"
	slog.Info("Opening your browser to connect a bank account...")
	slog.Info("If the browser doesn't open, visit:", "url", browserURL)
	openBrowser(browserURL)

	var result linkSuccess
	select {
	case result = <-successChan:
		slog.Info("Successfully linked account", "institution", result.InstitutionName)
	case err := <-errorChan:
		_ = server.Shutdown(ctx)
		return err
	case <-time.After(10 * time.Minute):
		_ = server.Shutdown(ctx)
		return fmt.Errorf("timeout waiting for account connection")
	}
	_ = server.Shutdown(ctx)

	viper.Set("plaid.access_token", result.AccessToken)
	viper.Set("plaid.item_id", result.ItemID)
	if err := saveConfig(); err != nil {
		return fmt.Errorf("failed to save access token to config: %w", err)
	}

	slog.Info("🎉 Your bank account is now connected!")
	slog.Info("Run 'piggyback sync pull' to import transactions")

	return nil
}

func syncPullCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Pull recent transactions from Plaid",
		RunE:  runSyncPull,
	}

	cmd.Flags().Int("days", 30, "how many days of history to pull")

	return cmd
}

func runSyncPull(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	days, _ := cmd.Flags().GetInt("days")

	if days < 1 {
		return fmt.Errorf("days must be at least 1")
	}

	cfg := config.LoadPlaidConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("plaid not configured: %w (run 'piggyback sync link' first)", err)
	}

	plaidClient, err := plaid.NewClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to create Plaid client: %w", err)
	}

	endDate := time.Now().UTC()
	startDate := endDate.AddDate(0, 0, -days)

	transactions, err := plaidClient.GetTransactions(ctx, startDate, endDate)
	if err != nil {
		return fmt.Errorf("failed to fetch transactions: %w", err)
	}

	if len(transactions) == 0 {
		slog.Info("No transactions to import")
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	bar := progressbar.NewOptions(len(transactions),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Saving transactions..."),
	)

	const batchSize = 100
	for i := 0; i < len(transactions); i += batchSize {
		end := i + batchSize
		if end > len(transactions) {
			end = len(transactions)
		}
		if err := store.SaveTransactions(ctx, transactions[i:end]); err != nil {
			return fmt.Errorf("failed to save transactions: %w", err)
		}
		_ = bar.Add(end - i)
	}
	fmt.Fprintln(os.Stderr)

	slog.Info("💾 Sync complete",
		"transactions", len(transactions),
		"from", startDate.Format("2006-01-02"),
		"to", endDate.Format("2006-01-02"))

	return nil
}

func saveConfig() error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		configFile = filepath.Join(home, ".config", "piggyback", "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0750); err != nil {
		return err
	}

	return viper.WriteConfigAs(configFile)
}

// openBrowser tries to open the URL in the default browser.
func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "linux":
		err = exec.Command("xdg-open", url).Start() //nolint:gosec
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start() //nolint:gosec
	case "darwin":
		err = exec.Command("open", url).Start() //nolint:gosec
	}
	if err != nil {
		slog.Debug("Failed to open browser", "error", err)
	}
}
