package plaid

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		errMsg  string
		config  Config
		wantErr bool
	}{
		{
			name: "valid sandbox config",
			config: Config{
				ClientID:    "test-client-id",
				Secret:      "test-secret",
				Environment: "sandbox",
				AccessToken: "test-token",
			},
			wantErr: false,
		},
		{
			name: "missing client ID",
			config: Config{
				Secret:      "test-secret",
				Environment: "sandbox",
				AccessToken: "test-token",
			},
			wantErr: true,
			errMsg:  "plaid client ID is required",
		},
		{
			name: "missing secret",
			config: Config{
				ClientID:    "test-client-id",
				Environment: "sandbox",
				AccessToken: "test-token",
			},
			wantErr: true,
			errMsg:  "plaid secret is required",
		},
		{
			name: "missing access token",
			config: Config{
				ClientID:    "test-client-id",
				Secret:      "test-secret",
				Environment: "sandbox",
			},
			wantErr: true,
			errMsg:  "plaid access token is required",
		},
		{
			name: "invalid environment",
			config: Config{
				ClientID:    "test-client-id",
				Secret:      "test-secret",
				Environment: "development",
				AccessToken: "test-token",
			},
			wantErr: true,
			errMsg:  "plaid environment must be sandbox or production",
		},
		{
			name: "valid production config",
			config: Config{
				ClientID:    "test-client-id",
				Secret:      "test-secret",
				Environment: "production",
				AccessToken: "test-token",
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config creates client",
			config: Config{
				ClientID:    "test-client-id",
				Secret:      "test-secret",
				Environment: "sandbox",
				AccessToken: "test-token",
			},
			wantErr: false,
		},
		{
			name: "empty access token allowed for link flow",
			config: Config{
				ClientID:    "test-client-id",
				Secret:      "test-secret",
				Environment: "sandbox",
			},
			wantErr: false,
		},
		{
			name: "missing secret returns error",
			config: Config{
				ClientID:    "test-client-id",
				Environment: "sandbox",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.config)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, client)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, client)
				assert.NotNil(t, client.client)
				assert.Equal(t, tt.config.AccessToken, client.accessToken)
				assert.NotNil(t, client.logger)
				assert.NotNil(t, client.retryOpts)
			}
		})
	}
}

func TestClient_GetTransactions_Validation(t *testing.T) {
	client := &Client{
		accessToken: "test-token",
		logger:      slog.Default().With("component", "plaid-test"),
	}

	//nolint:staticcheck // passing a nil context intentionally
	_, err := client.GetTransactions(nil, time.Now().AddDate(0, -1, 0), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context cannot be nil")

	_, err = client.GetTransactions(context.Background(), time.Now(), time.Now().AddDate(0, -1, 0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start date must be before end date")
}

func TestDollarsToCents(t *testing.T) {
	tests := []struct {
		amount   float64
		expected int64
	}{
		{0, 0},
		{5.50, 550},
		{-5.50, -550},
		{0.005, 1},
		{-0.005, -1},
		{19.999, 2000},
		{-1234.56, -123456},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, dollarsToCents(tt.amount), "amount %v", tt.amount)
	}
}

func TestCleanDescription(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "basic name",
			input:    "Woolworths",
			expected: "Woolworths",
		},
		{
			name:     "lowercase to title case",
			input:    "woolworths metro",
			expected: "Woolworths Metro",
		},
		{
			name:     "remove Pty suffix",
			input:    "Bunnings Pty",
			expected: "Bunnings",
		},
		{
			name:     "remove Ltd suffix",
			input:    "Coles Ltd",
			expected: "Coles",
		},
		{
			name:     "remove trailing reference number",
			input:    "PAYPAL 123456789",
			expected: "Paypal",
		},
		{
			name:     "preserve short numbers",
			input:    "7-ELEVEN 2345",
			expected: "7-Eleven 2345",
		},
		{
			name:     "multiple cleanups",
			input:    "amazon.com pty ltd 987654321",
			expected: "Amazon.Com",
		},
		{
			name:     "extra spaces",
			input:    "  Uber   Eats   ",
			expected: "Uber Eats",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanDescription(tt.input))
		})
	}
}

func TestIsAllDigits(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"123456", true},
		{"000000", true},
		{"12a456", false},
		{"", true},
		{"ABC123", false},
		{"12.34", false},
		{"12 34", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, isAllDigits(tt.input))
		})
	}
}

func TestMockClient(t *testing.T) {
	mock := NewMockClient()

	startDate := time.Now().AddDate(0, -1, 0)
	endDate := time.Now()

	expectedTxs := []model.Transaction{
		{
			ID:          "tx1",
			Description: "Test Transaction",
			AmountCents: -1050,
		},
	}
	mock.GetTransactionsFn = func(_ context.Context, _, _ time.Time) ([]model.Transaction, error) {
		return expectedTxs, nil
	}

	txs, err := mock.GetTransactions(context.Background(), startDate, endDate)
	require.NoError(t, err)
	assert.Equal(t, expectedTxs, txs)

	assert.Len(t, mock.GetTransactionsCalls, 1)
	assert.Equal(t, startDate, mock.GetTransactionsCalls[0].StartDate)
	assert.Equal(t, endDate, mock.GetTransactionsCalls[0].EndDate)

	expectedAccounts := []string{"acc1", "acc2"}
	mock.GetAccountsFn = func(_ context.Context) ([]string, error) {
		return expectedAccounts, nil
	}

	accounts, err := mock.GetAccounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, expectedAccounts, accounts)
	assert.Equal(t, 1, mock.GetAccountsCalls)

	mock.Reset()
	assert.Empty(t, mock.GetTransactionsCalls)
	assert.Equal(t, 0, mock.GetAccountsCalls)
}
