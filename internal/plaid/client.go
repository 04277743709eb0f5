// Package plaid provides a client for pulling settled transactions from the
// Plaid API into the local budget database.
package plaid

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/common"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/service"
	"github.com/plaid/plaid-go/v20/plaid"
)

// Config holds Plaid API configuration.
type Config struct {
	ClientID    string
	Secret      string
	Environment string // sandbox or production
	AccessToken string
}

// Validate ensures all required fields are present.
func (c *Config) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("plaid client ID is required: %w", common.ErrMissingConfig)
	}
	if c.Secret == "" {
		return fmt.Errorf("plaid secret is required: %w", common.ErrMissingConfig)
	}
	if c.AccessToken == "" {
		return fmt.Errorf("plaid access token is required: %w", common.ErrMissingConfig)
	}
	if c.Environment != "sandbox" && c.Environment != "production" {
		return fmt.Errorf("plaid environment must be sandbox or production: %w", common.ErrInvalidConfig)
	}
	return nil
}

// Client implements the service.TransactionFetcher interface on top of the
// Plaid transactions API.
type Client struct {
	client      *plaid.APIClient
	logger      *slog.Logger
	retryOpts   *service.RetryOptions
	accessToken string
	environment string
}

// NewClient creates a new Plaid client with the given configuration. The
// access token may be empty when the client is only used for the Link flow.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("plaid client ID is required: %w", common.ErrMissingConfig)
	}
	if cfg.Secret == "" {
		return nil, fmt.Errorf("plaid secret is required: %w", common.ErrMissingConfig)
	}
	if cfg.Environment != "sandbox" && cfg.Environment != "production" {
		return nil, fmt.Errorf("plaid environment must be sandbox or production: %w", common.ErrInvalidConfig)
	}

	configuration := plaid.NewConfiguration()
	configuration.AddDefaultHeader("PLAID-CLIENT-ID", cfg.ClientID)
	configuration.AddDefaultHeader("PLAID-SECRET", cfg.Secret)

	switch cfg.Environment {
	case "sandbox":
		configuration.UseEnvironment(plaid.Sandbox)
	case "production":
		configuration.UseEnvironment(plaid.Production)
	}

	return &Client{
		client:      plaid.NewAPIClient(configuration),
		accessToken: cfg.AccessToken,
		environment: cfg.Environment,
		logger:      slog.Default().With("component", "plaid"),
		retryOpts: &service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 1 * time.Second,
			MaxDelay:     30 * time.Second,
			Multiplier:   2.0,
		},
	}, nil
}

// GetTransactions fetches transactions from Plaid within the specified date range.
func (c *Client) GetTransactions(ctx context.Context, startDate, endDate time.Time) ([]model.Transaction, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}
	if startDate.After(endDate) {
		return nil, fmt.Errorf("start date must be before end date")
	}

	c.logger.Info("Fetching transactions from Plaid",
		"start_date", startDate.Format("2006-01-02"),
		"end_date", endDate.Format("2006-01-02"))

	var allTransactions []plaid.Transaction
	offset := int32(0)
	const pageSize = int32(500) // Plaid's max page size

	for {
		var page []plaid.Transaction

		retryErr := common.WithRetry(ctx, func() error {
			request := plaid.NewTransactionsGetRequest(
				c.accessToken,
				startDate.Format("2006-01-02"),
				endDate.Format("2006-01-02"),
			)
			options := plaid.TransactionsGetRequestOptions{
				Count:  plaid.PtrInt32(pageSize),
				Offset: plaid.PtrInt32(offset),
			}
			request.SetOptions(options)

			resp, _, err := c.client.PlaidApi.TransactionsGet(ctx).TransactionsGetRequest(*request).Execute()
			if err != nil {
				if plaidError := extractPlaidError(err); plaidError != nil {
					if plaidError.ErrorCode == "RATE_LIMIT_EXCEEDED" {
						c.logger.Warn("Rate limit hit, will retry", "error", plaidError.ErrorMessage)
						return &common.RetryableError{Err: err, Retryable: true}
					}
					return fmt.Errorf("plaid API error: %s - %s", plaidError.ErrorCode, plaidError.ErrorMessage)
				}
				return fmt.Errorf("failed to fetch transactions: %w", err)
			}

			page = resp.GetTransactions()

			c.logger.Debug("Fetched transaction batch",
				"count", len(page),
				"offset", offset,
				"total", resp.GetTotalTransactions())

			return nil
		}, *c.retryOpts)

		if retryErr != nil {
			return nil, retryErr
		}

		allTransactions = append(allTransactions, page...)

		if len(page) < int(pageSize) {
			break
		}
		offset += pageSize
	}

	c.logger.Info("Fetched all transactions", "count", len(allTransactions))

	transactions := make([]model.Transaction, 0, len(allTransactions))
	for _, pt := range allTransactions {
		transactions = append(transactions, c.mapPlaidTransaction(pt))
	}
	return transactions, nil
}

// GetAccounts fetches account IDs from Plaid.
func (c *Client) GetAccounts(ctx context.Context) ([]string, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}

	c.logger.Info("Fetching accounts from Plaid")

	var accounts []plaid.AccountBase
	retryErr := common.WithRetry(ctx, func() error {
		request := plaid.NewAccountsGetRequest(c.accessToken)
		resp, _, err := c.client.PlaidApi.AccountsGet(ctx).AccountsGetRequest(*request).Execute()
		if err != nil {
			if plaidError := extractPlaidError(err); plaidError != nil {
				if plaidError.ErrorCode == "RATE_LIMIT_EXCEEDED" {
					c.logger.Warn("Rate limit hit, will retry", "error", plaidError.ErrorMessage)
					return &common.RetryableError{Err: err, Retryable: true}
				}
				return fmt.Errorf("plaid API error: %s - %s", plaidError.ErrorCode, plaidError.ErrorMessage)
			}
			return fmt.Errorf("failed to fetch accounts: %w", err)
		}
		accounts = resp.GetAccounts()
		return nil
	}, *c.retryOpts)

	if retryErr != nil {
		return nil, retryErr
	}

	c.logger.Info("Fetched accounts", "count", len(accounts))

	accountIDs := make([]string, 0, len(accounts))
	for _, account := range accounts {
		accountIDs = append(accountIDs, account.GetAccountId())
	}
	return accountIDs, nil
}

// mapPlaidTransaction converts a Plaid transaction to the signed-cents model.
// Plaid reports positive amounts for money leaving the account; the budget
// model stores expenses as negative cents.
func (c *Client) mapPlaidTransaction(pt plaid.Transaction) model.Transaction {
	settledAt, err := time.Parse("2006-01-02", pt.GetDate())
	if err != nil {
		c.logger.Error("Failed to parse transaction date", "date", pt.GetDate(), "error", err)
		settledAt = time.Now().UTC()
	}

	description := pt.GetMerchantName()
	if description == "" {
		description = pt.GetName()
	}
	description = cleanDescription(description)

	rawCategoryID := ""
	isTransfer := false
	if categories := pt.GetCategory(); len(categories) > 0 {
		rawCategoryID = strings.Join(categories, " > ")
		if strings.EqualFold(categories[0], "Transfer") {
			isTransfer = true
		}
	}

	tx := model.Transaction{
		ID:                 pt.GetTransactionId(),
		SettledAt:          settledAt,
		Description:        description,
		AccountID:          pt.GetAccountId(),
		RawCategoryID:      rawCategoryID,
		AmountCents:        dollarsToCents(-pt.GetAmount()),
		IsInternalTransfer: isTransfer,
	}
	tx.Hash = tx.GenerateHash()
	return tx
}

// dollarsToCents converts a float dollar amount to integer cents, rounding
// half away from zero.
func dollarsToCents(amount float64) int64 {
	if amount < 0 {
		return -int64(math.Floor(-amount*100 + 0.5))
	}
	return int64(math.Floor(amount*100 + 0.5))
}

// cleanDescription standardizes payee names: title case, trailing reference
// numbers removed, common corporate suffixes stripped.
func cleanDescription(name string) string {
	words := strings.Fields(strings.ToLower(name))
	for i, word := range words {
		runes := []rune(word)
		for j := range runes {
			if j == 0 || !isLetter(runes[j-1]) {
				runes[j] = toUpper(runes[j])
			}
		}
		words[i] = string(runes)
	}

	// A trailing run of more than five digits is almost always a receipt or
	// terminal reference, not part of the payee name.
	if len(words) > 1 {
		last := words[len(words)-1]
		if len(last) > 5 && isAllDigits(last) {
			words = words[:len(words)-1]
		}
	}
	name = strings.Join(words, " ")

	suffixes := []string{" Pty", " Llc", " Inc", " Corp", " Company", " Co", " Ltd", " Limited"}
	changed := true
	for changed {
		changed = false
		for _, suffix := range suffixes {
			if strings.HasSuffix(name, suffix) {
				name = strings.TrimSuffix(name, suffix)
				changed = true
			}
		}
	}

	return strings.TrimSpace(name)
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 32
	}
	return r
}

// extractPlaidError attempts to extract a Plaid error from a generic error.
func extractPlaidError(err error) *plaid.PlaidError {
	plaidErr, convErr := plaid.ToPlaidError(err)
	if convErr != nil {
		return nil
	}
	return &plaidErr
}

// CreateLinkToken creates a Link token for Plaid Link initialization.
func (c *Client) CreateLinkToken(ctx context.Context) (string, error) {
	user := plaid.LinkTokenCreateRequestUser{
		ClientUserId: "piggyback-user-" + time.Now().Format("20060102150405"),
	}

	request := plaid.NewLinkTokenCreateRequest(
		"PiggyBack",
		"en",
		[]plaid.CountryCode{plaid.COUNTRYCODE_US},
		user,
	)
	request.SetProducts([]plaid.Products{plaid.PRODUCTS_TRANSACTIONS})

	// OAuth banks require a registered redirect URI in production.
	if c.environment == "production" {
		request.SetRedirectUri("https://localhost:8080/")
	}

	resp, _, err := c.client.PlaidApi.LinkTokenCreate(ctx).LinkTokenCreateRequest(*request).Execute()
	if err != nil {
		if plaidError := extractPlaidError(err); plaidError != nil {
			return "", fmt.Errorf("plaid API error: %s - %s", plaidError.ErrorCode, plaidError.ErrorMessage)
		}
		return "", fmt.Errorf("failed to create link token: %w", err)
	}
	return resp.GetLinkToken(), nil
}

// ExchangePublicToken exchanges a public token from Link for an access token.
func (c *Client) ExchangePublicToken(ctx context.Context, publicToken string) (string, string, error) {
	request := plaid.NewItemPublicTokenExchangeRequest(publicToken)
	resp, _, err := c.client.PlaidApi.ItemPublicTokenExchange(ctx).ItemPublicTokenExchangeRequest(*request).Execute()
	if err != nil {
		if plaidError := extractPlaidError(err); plaidError != nil {
			return "", "", fmt.Errorf("plaid API error: %s - %s", plaidError.ErrorCode, plaidError.ErrorMessage)
		}
		return "", "", fmt.Errorf("failed to exchange public token: %w", err)
	}
	return resp.GetAccessToken(), resp.GetItemId(), nil
}

// Ensure Client implements service.TransactionFetcher.
var _ service.TransactionFetcher = (*Client)(nil)
