package calculator

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/money"
)

// party is a creditor or debtor with its remaining magnitude. The optimizer
// works on these snapshots so caller-supplied balances are never mutated.
type party struct {
	id        string
	remaining decimal.Decimal
}

// ComputeSettlementInstructions reduces a balance vector to a minimal list of
// transfers that zero it out, using greedy largest-creditor/largest-debtor
// matching: repeatedly pay min(creditor remainder, debtor remainder) from the
// biggest debtor to the biggest creditor, dropping a party once its remainder
// falls below 0.01.
//
// For n non-zero balances the plan has at most n-1 instructions. The greedy
// scheme is not guaranteed globally minimal in every tie configuration (true
// minimum-transfer settlement is NP-hard); it is the accepted practical
// approximation. Ties in magnitude keep the input order via stable sorting,
// so identical input always yields an identical plan.
//
// The nets must sum to zero within 0.01. A vector that does not is a caller
// error (a missing expense or settlement upstream) and returns ErrUnbalanced
// rather than being "fixed" here.
func ComputeSettlementInstructions(balances []models.Balance) ([]models.SettlementInstruction, error) {
	total := decimal.Zero
	for _, b := range balances {
		total = total.Add(b.Net)
	}
	if !money.IsZero(total) {
		return nil, fmt.Errorf("%w: nets sum to %s", ErrUnbalanced, total.StringFixed(2))
	}

	var creditors, debtors []party
	for _, b := range balances {
		switch {
		case b.Net.GreaterThanOrEqual(money.Epsilon):
			creditors = append(creditors, party{id: b.MemberID, remaining: b.Net})
		case b.Net.Neg().GreaterThanOrEqual(money.Epsilon):
			debtors = append(debtors, party{id: b.MemberID, remaining: b.Net.Neg()})
		}
	}

	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].remaining.GreaterThan(creditors[j].remaining)
	})
	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].remaining.GreaterThan(debtors[j].remaining)
	})

	var instructions []models.SettlementInstruction
	ci, di := 0, 0
	for ci < len(creditors) && di < len(debtors) {
		c, d := &creditors[ci], &debtors[di]

		amount := money.Round(money.Min(c.remaining, d.remaining))
		instructions = append(instructions, models.SettlementInstruction{
			FromID: d.id,
			ToID:   c.id,
			Amount: amount,
		})

		c.remaining = c.remaining.Sub(amount)
		d.remaining = d.remaining.Sub(amount)

		// A creditor and debtor with equal remainders retire in the same step.
		if c.remaining.LessThan(money.Epsilon) {
			ci++
		}
		if d.remaining.LessThan(money.Epsilon) {
			di++
		}
	}

	return instructions, nil
}
