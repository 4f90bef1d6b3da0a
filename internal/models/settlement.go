package models

import "github.com/shopspring/decimal"

// Settlement is a manually confirmed cash payment between two group members.
// It lives outside the expense ledger: balance computation applies it as a
// direct adjustment to both parties' nets.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string `json:"id"`

	// GroupID is the group this settlement belongs to.
	GroupID string `json:"group_id"`

	// FromID is the member who paid (debtor settling up).
	FromID string `json:"from_id"`

	// ToID is the member who received the payment (creditor being paid).
	ToID string `json:"to_id"`

	// Amount is the payment amount.
	Amount decimal.Decimal `json:"amount"`

	// Note is an optional free-form description.
	Note string `json:"note,omitempty"`

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64 `json:"created_at"`

	// CreatedBy is the user ID who recorded this settlement.
	CreatedBy string `json:"created_by"`
}
