package models

import "github.com/shopspring/decimal"

// Balance is one member's derived position in a group. It is always
// recomputed from the expense and settlement history, never stored.
type Balance struct {
	// MemberID identifies the member.
	MemberID string `json:"member_id"`

	// MemberName is the display name, carried for presentation.
	MemberName string `json:"member_name"`

	// TotalPaid is the sum of expense amounts this member paid for.
	TotalPaid decimal.Decimal `json:"total_paid"`

	// TotalShare is the sum of shares owed by this member across all expenses.
	TotalShare decimal.Decimal `json:"total_share"`

	// Net is TotalPaid - TotalShare, adjusted by recorded settlements.
	// Positive = owed money (creditor), negative = owes money (debtor).
	Net decimal.Decimal `json:"net"`
}

// SettlementInstruction is a recommended, unexecuted transfer. It is
// output-only: the optimizer recomputes the plan from current balances on
// every request.
type SettlementInstruction struct {
	// FromID is the debtor who should pay.
	FromID string `json:"from_id"`

	// ToID is the creditor who should be paid.
	ToID string `json:"to_id"`

	// Amount is the recommended transfer amount.
	Amount decimal.Decimal `json:"amount"`
}
