package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/calculator"
	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/storage"
)

// ExpenseService records and lists shared expenses. Split amounts are always
// derived through the calculator and validated before anything is persisted,
// so the stored ledger satisfies the split-sum invariant by construction.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates an ExpenseService backed by the given store.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// ExpenseInput is the caller-supplied description of a new expense.
// Participants lists the member IDs sharing the cost, in the order that
// determines which participant absorbs any rounding remainder. Shares and
// Percentages are read only under the Unequal and Percentage policies.
type ExpenseInput struct {
	Description  string
	Amount       decimal.Decimal
	PayerID      string
	Policy       models.SplitPolicy
	Participants []string
	Shares       map[string]decimal.Decimal
	Percentages  map[string]decimal.Decimal
}

// CreateExpense validates and persists a new expense for the group.
func (s *ExpenseService) CreateExpense(ctx context.Context, userID, groupID string, in ExpenseInput) (*models.Expense, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(userID) {
		return nil, ErrNotMember
	}
	if group.Closed {
		return nil, fmt.Errorf("%w: cannot add expenses to a closed group", ErrBadInput)
	}
	if !group.HasMember(in.PayerID) {
		return nil, fmt.Errorf("%w: payer %s is not a group member", ErrBadInput, in.PayerID)
	}

	splits, err := computeSplits(group, in)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		GroupID:     groupID,
		Description: in.Description,
		Amount:      in.Amount,
		PayerID:     in.PayerID,
		Policy:      in.Policy,
		Splits:      splits,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to persist expense: %w", err)
	}

	slog.Info("expense recorded",
		"group_id", groupID,
		"expense_id", expense.ID,
		"amount", expense.Amount.StringFixed(2),
		"policy", expense.Policy,
		"participants", len(expense.Splits),
	)
	return expense, nil
}

// computeSplits validates the participant list against the group and derives
// the validated split breakdown for the input.
func computeSplits(group *models.Group, in ExpenseInput) ([]models.Split, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrBadInput)
	}
	seen := make(map[string]bool, len(in.Participants))
	for _, id := range in.Participants {
		if !group.HasMember(id) {
			return nil, fmt.Errorf("%w: participant %s is not a group member", ErrBadInput, id)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: participant %s listed twice", ErrBadInput, id)
		}
		seen[id] = true
	}

	custom := make(map[string]calculator.CustomShare, len(in.Participants))
	for id, amount := range in.Shares {
		c := custom[id]
		c.Amount = amount
		custom[id] = c
	}
	for id, pct := range in.Percentages {
		c := custom[id]
		c.Percent = pct
		custom[id] = c
	}

	splits, err := calculator.ComputeSplits(in.Amount, in.Participants, in.Policy, custom)
	if err != nil {
		return nil, err
	}
	if err := calculator.ValidateSplits(in.Amount, splits, in.Policy); err != nil {
		return nil, err
	}
	return splits, nil
}

// UpdateExpense replaces an expense's description, amount, policy, and split
// breakdown. The payer cannot be changed; in.PayerID is ignored. Only the
// group creator or the payer may edit, mirroring the delete rule.
func (s *ExpenseService) UpdateExpense(ctx context.Context, userID, expenseID string, in ExpenseInput) (*models.Expense, error) {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	group, err := s.store.GetGroup(ctx, expense.GroupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(userID) {
		return nil, ErrNotMember
	}
	if userID != group.CreatedBy && userID != expense.PayerID {
		return nil, ErrForbidden
	}

	splits, err := computeSplits(group, in)
	if err != nil {
		return nil, err
	}

	expense.Description = in.Description
	expense.Amount = in.Amount
	expense.Policy = in.Policy
	expense.Splits = splits
	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	slog.Info("expense updated",
		"expense_id", expense.ID,
		"amount", expense.Amount.StringFixed(2),
		"policy", expense.Policy,
		"updated_by", userID,
	)
	return expense, nil
}

// ListExpenses retrieves a group's expenses, newest first.
func (s *ExpenseService) ListExpenses(ctx context.Context, userID, groupID string) ([]*models.Expense, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(userID) {
		return nil, ErrNotMember
	}
	return s.store.ListExpensesByGroup(ctx, groupID)
}

// DeleteExpense removes an expense. Only the group creator or the payer may
// delete; everything derived from it (balances, plans) self-corrects because
// it is recomputed on demand.
func (s *ExpenseService) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return err
	}

	group, err := s.store.GetGroup(ctx, expense.GroupID)
	if err != nil {
		return err
	}
	if !group.HasMember(userID) {
		return ErrNotMember
	}
	if userID != group.CreatedBy && userID != expense.PayerID {
		return ErrForbidden
	}

	if err := s.store.DeleteExpense(ctx, expenseID); err != nil {
		return err
	}
	slog.Info("expense deleted", "expense_id", expenseID, "deleted_by", userID)
	return nil
}
