package config

import (
	"os"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/plaid"
	"github.com/spf13/viper"
)

// LoadPlaidConfig loads Plaid configuration from Viper and environment
// variables. Viper keys (plaid.*) win over direct PLAID_* variables.
func LoadPlaidConfig() plaid.Config {
	cfg := plaid.Config{
		ClientID:    viper.GetString("plaid.client_id"),
		Secret:      viper.GetString("plaid.secret"),
		Environment: viper.GetString("plaid.environment"),
		AccessToken: viper.GetString("plaid.access_token"),
	}

	if cfg.ClientID == "" {
		cfg.ClientID = os.Getenv("PLAID_CLIENT_ID")
	}
	if cfg.Secret == "" {
		cfg.Secret = os.Getenv("PLAID_SECRET")
	}
	if cfg.Environment == "" {
		cfg.Environment = os.Getenv("PLAID_ENVIRONMENT")
	}
	if cfg.AccessToken == "" {
		cfg.AccessToken = os.Getenv("PLAID_ACCESS_TOKEN")
	}

	if cfg.Environment == "" {
		cfg.Environment = "sandbox"
	}

	return cfg
}
