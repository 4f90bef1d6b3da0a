package calculator

import (
	"errors"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/models"
)

func balance(id, net string) models.Balance {
	return models.Balance{MemberID: id, MemberName: id, Net: dec(net)}
}

// applyInstructions replays a plan against the balances and returns the
// resulting nets keyed by member.
func applyInstructions(balances []models.Balance, plan []models.SettlementInstruction) map[string]decimal.Decimal {
	nets := make(map[string]decimal.Decimal, len(balances))
	for _, b := range balances {
		nets[b.MemberID] = b.Net
	}
	for _, in := range plan {
		nets[in.FromID] = nets[in.FromID].Add(in.Amount)
		nets[in.ToID] = nets[in.ToID].Sub(in.Amount)
	}
	return nets
}

func TestComputeSettlementInstructions(t *testing.T) {
	balances := []models.Balance{
		balance("A", "60.00"),
		balance("B", "-20.00"),
		balance("C", "-40.00"),
	}

	plan, err := ComputeSettlementInstructions(balances)
	if err != nil {
		t.Fatalf("ComputeSettlementInstructions() failed: %v", err)
	}

	want := []models.SettlementInstruction{
		{FromID: "C", ToID: "A", Amount: dec("40.00")},
		{FromID: "B", ToID: "A", Amount: dec("20.00")},
	}
	if len(plan) != len(want) {
		t.Fatalf("got %d instructions, want %d: %+v", len(plan), len(want), plan)
	}
	for i := range want {
		if plan[i].FromID != want[i].FromID || plan[i].ToID != want[i].ToID || !plan[i].Amount.Equal(want[i].Amount) {
			t.Errorf("instruction %d = %+v, want %+v", i, plan[i], want[i])
		}
	}
}

func TestComputeSettlementInstructionsUnbalanced(t *testing.T) {
	balances := []models.Balance{
		balance("A", "50.00"),
		balance("B", "-40.00"),
	}
	_, err := ComputeSettlementInstructions(balances)
	if !errors.Is(err, ErrUnbalanced) {
		t.Fatalf("expected ErrUnbalanced, got %v", err)
	}
}

func TestComputeSettlementInstructionsEpsilonResidueAccepted(t *testing.T) {
	// Nets summing to exactly one cent are inside the tolerance; only a sum
	// strictly beyond it is an error.
	balances := []models.Balance{
		balance("A", "30.00"),
		balance("B", "-29.99"),
	}
	plan, err := ComputeSettlementInstructions(balances)
	if err != nil {
		t.Fatalf("ComputeSettlementInstructions() failed: %v", err)
	}
	if len(plan) != 1 || plan[0].FromID != "B" || plan[0].ToID != "A" || !plan[0].Amount.Equal(dec("29.99")) {
		t.Errorf("plan = %+v, want single B->A 29.99", plan)
	}

	balances[1] = balance("B", "-29.98")
	if _, err := ComputeSettlementInstructions(balances); !errors.Is(err, ErrUnbalanced) {
		t.Fatalf("expected ErrUnbalanced for 0.02 residue, got %v", err)
	}
}

func TestComputeSettlementInstructionsZeroesAllNets(t *testing.T) {
	scenarios := [][]models.Balance{
		{
			balance("A", "60.00"), balance("B", "-20.00"), balance("C", "-40.00"),
		},
		{
			balance("A", "33.34"), balance("B", "33.33"), balance("C", "-66.67"),
		},
		{
			balance("A", "10.00"), balance("B", "-10.00"),
			balance("C", "0.00"), balance("D", "25.50"), balance("E", "-25.50"),
		},
		{
			// residue below the epsilon absorbed without an instruction
			balance("A", "0.005"), balance("B", "-0.005"),
		},
	}

	for i, balances := range scenarios {
		plan, err := ComputeSettlementInstructions(balances)
		if err != nil {
			t.Fatalf("scenario %d: ComputeSettlementInstructions() failed: %v", i, err)
		}

		nets := applyInstructions(balances, plan)
		for member, net := range nets {
			if net.Abs().GreaterThanOrEqual(dec("0.01")) {
				t.Errorf("scenario %d: %s net %s after executing plan, want ~0", i, member, net)
			}
		}

		// Upper bound: at most n-1 instructions for n non-zero balances.
		nonZero := 0
		for _, b := range balances {
			if b.Net.Abs().GreaterThanOrEqual(dec("0.01")) {
				nonZero++
			}
		}
		if nonZero > 0 && len(plan) > nonZero-1 {
			t.Errorf("scenario %d: %d instructions for %d non-zero balances, want <= %d", i, len(plan), nonZero, nonZero-1)
		}
	}
}

func TestComputeSettlementInstructionsTies(t *testing.T) {
	// Creditor and debtor with equal magnitude retire in one step each.
	balances := []models.Balance{
		balance("A", "30.00"),
		balance("B", "30.00"),
		balance("C", "-30.00"),
		balance("D", "-30.00"),
	}

	plan, err := ComputeSettlementInstructions(balances)
	if err != nil {
		t.Fatalf("ComputeSettlementInstructions() failed: %v", err)
	}
	if len(plan) != 2 {
		t.Fatalf("got %d instructions, want 2: %+v", len(plan), plan)
	}
	// Ties resolve in input order.
	if plan[0].FromID != "C" || plan[0].ToID != "A" {
		t.Errorf("first instruction = %+v, want C->A", plan[0])
	}
	if plan[1].FromID != "D" || plan[1].ToID != "B" {
		t.Errorf("second instruction = %+v, want D->B", plan[1])
	}
}

func TestComputeSettlementInstructionsDeterministic(t *testing.T) {
	balances := []models.Balance{
		balance("A", "15.25"), balance("B", "15.25"),
		balance("C", "-10.50"), balance("D", "-20.00"),
	}

	first, err := ComputeSettlementInstructions(balances)
	if err != nil {
		t.Fatalf("ComputeSettlementInstructions() failed: %v", err)
	}
	second, err := ComputeSettlementInstructions(balances)
	if err != nil {
		t.Fatalf("ComputeSettlementInstructions() failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls differ:\n%+v\n%+v", first, second)
	}
}

func TestComputeSettlementInstructionsDoesNotMutateInput(t *testing.T) {
	balances := []models.Balance{
		balance("A", "60.00"), balance("B", "-60.00"),
	}
	if _, err := ComputeSettlementInstructions(balances); err != nil {
		t.Fatalf("ComputeSettlementInstructions() failed: %v", err)
	}
	if !balances[0].Net.Equal(dec("60.00")) || !balances[1].Net.Equal(dec("-60.00")) {
		t.Errorf("input balances were mutated: %+v", balances)
	}
}

func TestComputeSettlementInstructionsEmpty(t *testing.T) {
	plan, err := ComputeSettlementInstructions(nil)
	if err != nil {
		t.Fatalf("ComputeSettlementInstructions() failed: %v", err)
	}
	if len(plan) != 0 {
		t.Errorf("expected empty plan, got %+v", plan)
	}
}
