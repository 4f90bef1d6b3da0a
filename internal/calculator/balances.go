package calculator

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/models"
)

// ComputeBalances folds a group's expenses and recorded settlements into one
// balance per member.
//
// The fold is a commutative sum keyed by member ID, so the result does not
// depend on the iteration order of expenses, splits, or settlements. For each
// member: totalPaid is the sum of expense amounts they paid, totalShare the
// sum of shares they owe, net = totalPaid - totalShare. A settlement from A
// to B of X is a cash transfer outside the expense ledger and adjusts the
// nets directly: net(A) += X, net(B) -= X. Members with no activity have
// zero balances.
//
// Any payer, split participant, or settlement party absent from members is a
// data-consistency bug upstream and returns ErrUnknownParticipant; the
// offending record is never silently dropped.
//
// The returned slice is sorted net-descending (largest creditor first), with
// equal nets keeping the member input order. The order is a presentation
// convenience only, but it is deterministic: identical input yields identical
// output.
func ComputeBalances(members []models.Member, expenses []models.Expense, settlements []models.Settlement) ([]models.Balance, error) {
	type accum struct {
		paid  decimal.Decimal
		share decimal.Decimal
		adj   decimal.Decimal
	}

	acc := make(map[string]*accum, len(members))
	for _, m := range members {
		acc[m.ID] = &accum{}
	}

	for _, e := range expenses {
		payer, ok := acc[e.PayerID]
		if !ok {
			return nil, fmt.Errorf("%w: expense %s paid by non-member %s", ErrUnknownParticipant, e.ID, e.PayerID)
		}
		payer.paid = payer.paid.Add(e.Amount)

		for _, s := range e.Splits {
			a, ok := acc[s.MemberID]
			if !ok {
				return nil, fmt.Errorf("%w: expense %s split references non-member %s", ErrUnknownParticipant, e.ID, s.MemberID)
			}
			a.share = a.share.Add(s.ShareAmount)
		}
	}

	for _, s := range settlements {
		from, ok := acc[s.FromID]
		if !ok {
			return nil, fmt.Errorf("%w: settlement %s from non-member %s", ErrUnknownParticipant, s.ID, s.FromID)
		}
		to, ok := acc[s.ToID]
		if !ok {
			return nil, fmt.Errorf("%w: settlement %s to non-member %s", ErrUnknownParticipant, s.ID, s.ToID)
		}
		from.adj = from.adj.Add(s.Amount)
		to.adj = to.adj.Sub(s.Amount)
	}

	balances := make([]models.Balance, len(members))
	for i, m := range members {
		a := acc[m.ID]
		balances[i] = models.Balance{
			MemberID:   m.ID,
			MemberName: m.Name,
			TotalPaid:  a.paid,
			TotalShare: a.share,
			Net:        a.paid.Sub(a.share).Add(a.adj),
		}
	}

	sort.SliceStable(balances, func(i, j int) bool {
		return balances[i].Net.GreaterThan(balances[j].Net)
	})

	return balances, nil
}
