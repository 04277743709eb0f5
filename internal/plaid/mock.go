package plaid

import (
	"context"
	"time"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/service"
)

// MockClient is a test double for the Plaid client.
type MockClient struct {
	GetTransactionsFn func(ctx context.Context, startDate, endDate time.Time) ([]model.Transaction, error)
	GetAccountsFn     func(ctx context.Context) ([]string, error)

	GetTransactionsCalls []GetTransactionsCall
	GetAccountsCalls     int
}

// GetTransactionsCall records the parameters of a GetTransactions call.
type GetTransactionsCall struct {
	StartDate time.Time
	EndDate   time.Time
}

// NewMockClient creates a new mock Plaid client.
func NewMockClient() *MockClient {
	return &MockClient{
		GetTransactionsCalls: []GetTransactionsCall{},
	}
}

// GetTransactions records the call and delegates to GetTransactionsFn when set.
func (m *MockClient) GetTransactions(ctx context.Context, startDate, endDate time.Time) ([]model.Transaction, error) {
	m.GetTransactionsCalls = append(m.GetTransactionsCalls, GetTransactionsCall{
		StartDate: startDate,
		EndDate:   endDate,
	})
	if m.GetTransactionsFn != nil {
		return m.GetTransactionsFn(ctx, startDate, endDate)
	}
	return []model.Transaction{}, nil
}

// GetAccounts records the call and delegates to GetAccountsFn when set.
func (m *MockClient) GetAccounts(ctx context.Context) ([]string, error) {
	m.GetAccountsCalls++
	if m.GetAccountsFn != nil {
		return m.GetAccountsFn(ctx)
	}
	return []string{}, nil
}

// Reset clears all call tracking.
func (m *MockClient) Reset() {
	m.GetTransactionsCalls = []GetTransactionsCall{}
	m.GetAccountsCalls = 0
}

var _ service.TransactionFetcher = (*MockClient)(nil)
