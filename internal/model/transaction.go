package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Transaction is a single settled bank transaction. Amounts are signed minor
// currency units; expenses are negative. Transactions are read-only inputs to
// the summary engine.
type Transaction struct {
	SettledAt                  time.Time
	ID                         string
	Description                string
	RawCategoryID              string
	AccountID                  string
	TransferAccountID          string
	MatchedExpenseDefinitionID string
	Hash                       string
	AmountCents                int64
	IsInternalTransfer         bool
}

// IsExpense reports whether the transaction counts toward spending: a
// negative, non-transfer amount.
func (t *Transaction) IsExpense() bool {
	return t.AmountCents < 0 && !t.IsInternalTransfer
}

// GenerateHash creates a unique hash for duplicate detection across imports.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%d:%s:%s",
		t.SettledAt.Format("2006-01-02"),
		t.AmountCents,
		t.Description,
		t.AccountID)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
