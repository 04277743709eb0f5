package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/service"
)

// SaveTransactions inserts transactions, skipping duplicates by hash.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions
			(id, hash, settled_at, description, amount_cents, raw_category_id,
			 account_id, transfer_account_id, is_internal_transfer, matched_expense_definition_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range transactions {
		txn := &transactions[i]
		if txn.Hash == "" {
			txn.Hash = txn.GenerateHash()
		}
		if _, err := stmt.ExecContext(ctx,
			txn.ID, txn.Hash, txn.SettledAt, txn.Description, txn.AmountCents,
			nullString(txn.RawCategoryID), nullString(txn.AccountID),
			nullString(txn.TransferAccountID), txn.IsInternalTransfer,
			nullString(txn.MatchedExpenseDefinitionID),
		); err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", txn.ID, err)
		}
	}

	return tx.Commit()
}

// GetTransactionsByPeriod returns transactions settled inside [start, end].
func (s *SQLiteStorage) GetTransactionsByPeriod(ctx context.Context, start, end time.Time) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hash, settled_at, description, amount_cents,
		       IFNULL(raw_category_id, ''), IFNULL(account_id, ''),
		       IFNULL(transfer_account_id, ''), is_internal_transfer,
		       IFNULL(matched_expense_definition_id, '')
		FROM transactions
		WHERE settled_at >= ? AND settled_at <= ?
		ORDER BY settled_at, id`, start, end.Add(24*time.Hour-time.Nanosecond))
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanTransactions(rows)
}

// GetTransactions returns transactions matching the filter, newest first.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	var conditions []string
	var args []any

	if filter.StartDate != nil {
		conditions = append(conditions, "settled_at >= ?")
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "settled_at <= ?")
		args = append(args, *filter.EndDate)
	}

	query := `SELECT id, hash, settled_at, description, amount_cents,
		IFNULL(raw_category_id, ''), IFNULL(account_id, ''),
		IFNULL(transfer_account_id, ''), is_internal_transfer,
		IFNULL(matched_expense_definition_id, '')
		FROM transactions`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY settled_at DESC, id"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanTransactions(rows)
}

// MatchTransactionToExpense links a transaction to a recurring expense
// definition so majority-vote category inference has something to vote over.
func (s *SQLiteStorage) MatchTransactionToExpense(ctx context.Context, transactionID, expenseDefinitionID string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET matched_expense_definition_id = ? WHERE id = ?`,
		expenseDefinitionID, transactionID)
	if err != nil {
		return fmt.Errorf("failed to match transaction: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check match result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction %s: %w", transactionID, sql.ErrNoRows)
	}
	return nil
}

func scanTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	var out []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		if err := rows.Scan(
			&txn.ID, &txn.Hash, &txn.SettledAt, &txn.Description, &txn.AmountCents,
			&txn.RawCategoryID, &txn.AccountID, &txn.TransferAccountID,
			&txn.IsInternalTransfer, &txn.MatchedExpenseDefinitionID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		out = append(out, txn)
	}
	return out, rows.Err()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
