package models

import "github.com/shopspring/decimal"

// SplitPolicy determines how an expense is divided among its participants.
type SplitPolicy string

const (
	// SplitEqual divides the amount evenly; shares are derived, not supplied.
	SplitEqual SplitPolicy = "Equal"

	// SplitUnequal takes each participant's share verbatim from caller input.
	SplitUnequal SplitPolicy = "Unequal"

	// SplitPercentage derives each share from a supplied percentage of the total.
	SplitPercentage SplitPolicy = "Percentage"
)

// Valid reports whether the policy is one of the recognized values.
func (p SplitPolicy) Valid() bool {
	switch p {
	case SplitEqual, SplitUnequal, SplitPercentage:
		return true
	}
	return false
}

// Split is one member's portion of one expense.
// Invariant: across an expense, the share amounts sum to the expense amount
// within 0.01.
type Split struct {
	// MemberID identifies the participant this share belongs to.
	MemberID string `json:"member_id"`

	// ShareAmount is this participant's portion of the expense.
	ShareAmount decimal.Decimal `json:"share_amount"`

	// Percentage is set only under the Percentage policy; nil otherwise.
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
}

// Expense is a single shared cost paid by one member and split among several.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// GroupID is the group this expense belongs to.
	GroupID string `json:"group_id"`

	// Description is the human-readable label (e.g., "Dinner", "Fuel").
	Description string `json:"description"`

	// Amount is the full expense amount paid by the payer.
	Amount decimal.Decimal `json:"amount"`

	// PayerID is the member who paid the full amount.
	PayerID string `json:"payer_id"`

	// Policy is how the amount was divided among participants.
	Policy SplitPolicy `json:"split_policy"`

	// Splits is the recorded per-participant breakdown. Non-empty; every
	// participant appears at most once.
	Splits []Split `json:"splits"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"created_at"`
}
