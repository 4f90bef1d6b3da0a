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

// BalanceService answers balance and settlement queries. Balances and plans
// are never cached: every call reloads the group's records and recomputes,
// so a deleted expense or fresh settlement is reflected immediately.
type BalanceService struct {
	store storage.Store
}

// NewBalanceService creates a BalanceService backed by the given store.
func NewBalanceService(store storage.Store) *BalanceService {
	return &BalanceService{store: store}
}

// GroupBalances computes the current balance of every group member.
func (s *BalanceService) GroupBalances(ctx context.Context, userID, groupID string) ([]models.Balance, error) {
	group, expenses, settlements, err := s.loadGroupLedger(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}

	exps := make([]models.Expense, len(expenses))
	for i, e := range expenses {
		exps[i] = *e
	}
	setts := make([]models.Settlement, len(settlements))
	for i, st := range settlements {
		setts[i] = *st
	}

	return calculator.ComputeBalances(group.Members, exps, setts)
}

// SettlementPlan computes the recommended transfers that would zero out the
// group's current balances.
func (s *BalanceService) SettlementPlan(ctx context.Context, userID, groupID string) ([]models.SettlementInstruction, error) {
	balances, err := s.GroupBalances(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}
	return calculator.ComputeSettlementInstructions(balances)
}

// RecordSettlement persists a manually confirmed payment between two members.
// A user may record settlements they paid themselves; the group creator may
// record any.
func (s *BalanceService) RecordSettlement(ctx context.Context, userID, groupID, fromID, toID string, amount decimal.Decimal, note string) (*models.Settlement, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(userID) {
		return nil, ErrNotMember
	}
	if fromID != userID && userID != group.CreatedBy {
		return nil, fmt.Errorf("%w: you can only record settlements for yourself", ErrForbidden)
	}
	if !group.HasMember(fromID) || !group.HasMember(toID) {
		return nil, fmt.Errorf("%w: both parties must be group members", ErrBadInput)
	}
	if fromID == toID {
		return nil, fmt.Errorf("%w: cannot settle with yourself", ErrBadInput)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrBadInput)
	}

	settlement := &models.Settlement{
		GroupID:   groupID,
		FromID:    fromID,
		ToID:      toID,
		Amount:    amount.Round(2),
		Note:      note,
		CreatedBy: userID,
	}
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		return nil, fmt.Errorf("failed to persist settlement: %w", err)
	}

	slog.Info("settlement recorded",
		"group_id", groupID,
		"settlement_id", settlement.ID,
		"from", fromID,
		"to", toID,
		"amount", settlement.Amount.StringFixed(2),
	)
	return settlement, nil
}

// DeleteSettlement undoes a recorded settlement. Only whoever recorded it or
// the group creator may delete; balances self-correct on the next read.
func (s *BalanceService) DeleteSettlement(ctx context.Context, userID, groupID, settlementID string) error {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if !group.HasMember(userID) {
		return ErrNotMember
	}

	settlements, err := s.store.ListSettlementsByGroup(ctx, groupID)
	if err != nil {
		return err
	}
	var settlement *models.Settlement
	for _, st := range settlements {
		if st.ID == settlementID {
			settlement = st
			break
		}
	}
	if settlement == nil {
		return fmt.Errorf("settlement %s: %w", settlementID, storage.ErrNotFound)
	}
	if userID != settlement.CreatedBy && userID != group.CreatedBy {
		return ErrForbidden
	}

	if err := s.store.DeleteSettlement(ctx, settlementID); err != nil {
		return err
	}
	slog.Info("settlement deleted", "settlement_id", settlementID, "deleted_by", userID)
	return nil
}

// ListSettlements retrieves a group's recorded settlements, newest first.
func (s *BalanceService) ListSettlements(ctx context.Context, userID, groupID string) ([]*models.Settlement, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(userID) {
		return nil, ErrNotMember
	}
	return s.store.ListSettlementsByGroup(ctx, groupID)
}

func (s *BalanceService) loadGroupLedger(ctx context.Context, userID, groupID string) (*models.Group, []*models.Expense, []*models.Settlement, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, nil, nil, err
	}
	if !group.HasMember(userID) {
		return nil, nil, nil, ErrNotMember
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, nil, nil, err
	}
	settlements, err := s.store.ListSettlementsByGroup(ctx, groupID)
	if err != nil {
		return nil, nil, nil, err
	}
	return group, expenses, settlements, nil
}
