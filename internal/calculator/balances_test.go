package calculator

import (
	"errors"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/models"
)

func members(ids ...string) []models.Member {
	ms := make([]models.Member, len(ids))
	for i, id := range ids {
		ms[i] = models.Member{ID: id, Name: id}
	}
	return ms
}

func expense(id, payer, amount string, shares map[string]string) models.Expense {
	e := models.Expense{
		ID:      id,
		Amount:  dec(amount),
		PayerID: payer,
		Policy:  models.SplitUnequal,
	}
	for member, share := range shares {
		e.Splits = append(e.Splits, models.Split{MemberID: member, ShareAmount: dec(share)})
	}
	return e
}

func netOf(t *testing.T, balances []models.Balance, memberID string) decimal.Decimal {
	t.Helper()
	for _, b := range balances {
		if b.MemberID == memberID {
			return b.Net
		}
	}
	t.Fatalf("no balance for member %s", memberID)
	return decimal.Zero
}

func TestComputeBalances(t *testing.T) {
	// A pays 100 split equally three ways, B pays 30 for C.
	expenses := []models.Expense{
		expense("e1", "A", "100.00", map[string]string{"A": "33.34", "B": "33.33", "C": "33.33"}),
		expense("e2", "B", "30.00", map[string]string{"C": "30.00"}),
	}

	balances, err := ComputeBalances(members("A", "B", "C"), expenses, nil)
	if err != nil {
		t.Fatalf("ComputeBalances() failed: %v", err)
	}

	if got := netOf(t, balances, "A"); !got.Equal(dec("66.66")) {
		t.Errorf("A net = %s, want 66.66", got)
	}
	if got := netOf(t, balances, "B"); !got.Equal(dec("-3.33")) {
		t.Errorf("B net = %s, want -3.33", got)
	}
	if got := netOf(t, balances, "C"); !got.Equal(dec("-63.33")) {
		t.Errorf("C net = %s, want -63.33", got)
	}

	// Largest creditor first.
	if balances[0].MemberID != "A" || balances[2].MemberID != "C" {
		t.Errorf("expected order A..C, got %s..%s", balances[0].MemberID, balances[2].MemberID)
	}
}

func TestComputeBalancesConservation(t *testing.T) {
	scenarios := [][]models.Expense{
		{
			expense("e1", "A", "100.00", map[string]string{"A": "33.34", "B": "33.33", "C": "33.33"}),
		},
		{
			expense("e1", "A", "47.50", map[string]string{"B": "20.00", "C": "27.50"}),
			expense("e2", "B", "12.99", map[string]string{"A": "6.49", "B": "6.50"}),
			expense("e3", "C", "250.00", map[string]string{"A": "83.34", "B": "83.33", "C": "83.33"}),
		},
		{}, // no expenses at all
	}

	for i, expenses := range scenarios {
		balances, err := ComputeBalances(members("A", "B", "C"), expenses, nil)
		if err != nil {
			t.Fatalf("scenario %d: ComputeBalances() failed: %v", i, err)
		}
		sum := decimal.Zero
		for _, b := range balances {
			sum = sum.Add(b.Net)
		}
		if !sum.IsZero() {
			t.Errorf("scenario %d: nets sum to %s, want 0", i, sum)
		}
	}
}

func TestComputeBalancesSettlementAdjustment(t *testing.T) {
	// B owes A 40; B then settles 25 in cash.
	expenses := []models.Expense{
		expense("e1", "A", "40.00", map[string]string{"B": "40.00"}),
	}
	settlements := []models.Settlement{
		{ID: "s1", FromID: "B", ToID: "A", Amount: dec("25.00")},
	}

	balances, err := ComputeBalances(members("A", "B"), expenses, settlements)
	if err != nil {
		t.Fatalf("ComputeBalances() failed: %v", err)
	}

	if got := netOf(t, balances, "B"); !got.Equal(dec("-15.00")) {
		t.Errorf("B net = %s, want -15.00 (settlement moves debtor toward zero)", got)
	}
	if got := netOf(t, balances, "A"); !got.Equal(dec("15.00")) {
		t.Errorf("A net = %s, want 15.00", got)
	}

	// TotalPaid/TotalShare are untouched by settlements.
	for _, b := range balances {
		if b.MemberID == "A" && !b.TotalPaid.Equal(dec("40.00")) {
			t.Errorf("A TotalPaid = %s, want 40.00", b.TotalPaid)
		}
		if b.MemberID == "B" && !b.TotalShare.Equal(dec("40.00")) {
			t.Errorf("B TotalShare = %s, want 40.00", b.TotalShare)
		}
	}
}

func TestComputeBalancesFullySettledGroup(t *testing.T) {
	expenses := []models.Expense{
		expense("e1", "A", "40.00", map[string]string{"B": "40.00"}),
	}
	settlements := []models.Settlement{
		{ID: "s1", FromID: "B", ToID: "A", Amount: dec("40.00")},
	}

	balances, err := ComputeBalances(members("A", "B"), expenses, settlements)
	if err != nil {
		t.Fatalf("ComputeBalances() failed: %v", err)
	}
	for _, b := range balances {
		if !b.Net.IsZero() {
			t.Errorf("%s net = %s, want 0 after full settlement", b.MemberID, b.Net)
		}
	}
}

func TestComputeBalancesIdleMembers(t *testing.T) {
	balances, err := ComputeBalances(members("A", "B"), nil, nil)
	if err != nil {
		t.Fatalf("ComputeBalances() failed: %v", err)
	}
	if len(balances) != 2 {
		t.Fatalf("got %d balances, want 2", len(balances))
	}
	for _, b := range balances {
		if !b.Net.IsZero() || !b.TotalPaid.IsZero() || !b.TotalShare.IsZero() {
			t.Errorf("idle member %s has non-zero balance: %+v", b.MemberID, b)
		}
	}
	// Equal nets keep member input order.
	if balances[0].MemberID != "A" || balances[1].MemberID != "B" {
		t.Errorf("expected input order A,B for tied nets, got %s,%s", balances[0].MemberID, balances[1].MemberID)
	}
}

func TestComputeBalancesUnknownParticipant(t *testing.T) {
	tests := []struct {
		name        string
		expenses    []models.Expense
		settlements []models.Settlement
	}{
		{
			name:     "unknown payer",
			expenses: []models.Expense{expense("e1", "ghost", "10.00", map[string]string{"A": "10.00"})},
		},
		{
			name:     "unknown split participant",
			expenses: []models.Expense{expense("e1", "A", "10.00", map[string]string{"ghost": "10.00"})},
		},
		{
			name:        "unknown settlement party",
			settlements: []models.Settlement{{ID: "s1", FromID: "A", ToID: "ghost", Amount: dec("5.00")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeBalances(members("A", "B"), tt.expenses, tt.settlements)
			if !errors.Is(err, ErrUnknownParticipant) {
				t.Fatalf("expected ErrUnknownParticipant, got %v", err)
			}
		})
	}
}

func TestComputeBalancesDeterministic(t *testing.T) {
	expenses := []models.Expense{
		expense("e1", "A", "47.50", map[string]string{"B": "20.00", "C": "27.50"}),
		expense("e2", "B", "12.99", map[string]string{"A": "6.49", "B": "6.50"}),
	}
	settlements := []models.Settlement{
		{ID: "s1", FromID: "C", ToID: "A", Amount: dec("10.00")},
	}

	first, err := ComputeBalances(members("A", "B", "C"), expenses, settlements)
	if err != nil {
		t.Fatalf("ComputeBalances() failed: %v", err)
	}
	second, err := ComputeBalances(members("A", "B", "C"), expenses, settlements)
	if err != nil {
		t.Fatalf("ComputeBalances() failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls differ:\n%+v\n%+v", first, second)
	}
}
