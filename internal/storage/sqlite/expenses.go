package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/storage"
)

// CreateExpense persists an expense and its splits in one transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, description, amount, payer_id, split_policy, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.Description,
		expense.Amount.StringFixed(2), expense.PayerID, string(expense.Policy), expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, split := range expense.Splits {
		var pct any
		if split.Percentage != nil {
			pct = split.Percentage.String()
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO expense_splits (expense_id, member_id, share_amount, percentage, position)
			 VALUES (?, ?, ?, ?, ?)`,
			expense.ID, split.MemberID, split.ShareAmount.StringFixed(2), pct, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateExpense replaces an expense's description, amount, policy, and splits
// in one transaction. The group, payer, and creation time are immutable.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE expenses SET description = ?, amount = ?, split_policy = ? WHERE id = ?",
		expense.Description, expense.Amount.StringFixed(2), string(expense.Policy), expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense %s: %w", expense.ID, storage.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM expense_splits WHERE expense_id = ?", expense.ID); err != nil {
		return fmt.Errorf("failed to clear expense splits: %w", err)
	}
	for i, split := range expense.Splits {
		var pct any
		if split.Percentage != nil {
			pct = split.Percentage.String()
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO expense_splits (expense_id, member_id, share_amount, percentage, position)
			 VALUES (?, ?, ?, ?, ?)`,
			expense.ID, split.MemberID, split.ShareAmount.StringFixed(2), pct, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense with its splits.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	var amount, policy string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, group_id, description, amount, payer_id, split_policy, created_at
		 FROM expenses WHERE id = ?`, expenseID,
	).Scan(&expense.ID, &expense.GroupID, &expense.Description, &amount,
		&expense.PayerID, &policy, &expense.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	expense.Policy = models.SplitPolicy(policy)
	if expense.Amount, err = parseAmount("amount", amount); err != nil {
		return nil, err
	}

	splits, err := s.expenseSplits(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	expense.Splits = splits
	return expense, nil
}

func (s *SQLiteStore) expenseSplits(ctx context.Context, expenseID string) ([]models.Split, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT member_id, share_amount, percentage FROM expense_splits
		 WHERE expense_id = ? ORDER BY position`, expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense splits: %w", err)
	}
	defer rows.Close()

	var splits []models.Split
	for rows.Next() {
		var split models.Split
		var share string
		var pct sql.NullString
		if err := rows.Scan(&split.MemberID, &share, &pct); err != nil {
			return nil, fmt.Errorf("failed to scan expense split: %w", err)
		}
		if split.ShareAmount, err = parseAmount("share_amount", share); err != nil {
			return nil, err
		}
		if pct.Valid {
			p, err := parseAmount("percentage", pct.String)
			if err != nil {
				return nil, err
			}
			split.Percentage = &p
		}
		splits = append(splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense splits: %w", err)
	}
	return splits, nil
}

// ListExpensesByGroup retrieves all expenses of a group, newest first.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM expenses WHERE group_id = ? ORDER BY created_at DESC, id", groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan expense id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	expenses := make([]*models.Expense, 0, len(ids))
	for _, id := range ids {
		e, err := s.GetExpense(ctx, id)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

// DeleteExpense removes an expense; its splits cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return nil
}
