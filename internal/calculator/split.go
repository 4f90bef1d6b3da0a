// Package calculator implements the ledger and settlement engine: split
// computation and validation, per-member balance aggregation, and greedy
// debt minimization. Every function is pure: it reads its arguments, never
// mutates them, and performs no I/O.
package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/money"
)

var hundred = decimal.NewFromInt(100)

// CustomShare carries the per-participant input for the Unequal and
// Percentage policies. Amount is read under Unequal, Percent under Percentage.
type CustomShare struct {
	Amount  decimal.Decimal
	Percent decimal.Decimal
}

// ComputeSplits derives the per-participant share breakdown for one expense.
//
// Under Equal, each share is amount/count rounded to 2 decimals; the rounding
// remainder (amount minus the sum of rounded shares) is assigned to the first
// participant in input order so the shares always sum to the amount exactly.
// The same correction is applied under Percentage, where per-share rounding
// can also drift. Under Unequal, shares are taken verbatim from custom.
func ComputeSplits(amount decimal.Decimal, participants []string, policy models.SplitPolicy, custom map[string]CustomShare) ([]models.Split, error) {
	if len(participants) == 0 {
		return nil, &ValidationError{Reason: ReasonEmptyParticipants, Detail: "at least one participant is required"}
	}

	switch policy {
	case models.SplitEqual:
		return equalSplits(amount, participants), nil
	case models.SplitUnequal:
		return unequalSplits(participants, custom)
	case models.SplitPercentage:
		return percentageSplits(amount, participants, custom)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidPolicy, policy)
	}
}

func equalSplits(amount decimal.Decimal, participants []string) []models.Split {
	count := decimal.NewFromInt(int64(len(participants)))
	share := money.Round(amount.Div(count))

	splits := make([]models.Split, len(participants))
	for i, id := range participants {
		splits[i] = models.Split{MemberID: id, ShareAmount: share}
	}
	distributeRemainder(amount, splits)
	return splits
}

func unequalSplits(participants []string, custom map[string]CustomShare) ([]models.Split, error) {
	splits := make([]models.Split, len(participants))
	for i, id := range participants {
		in, ok := custom[id]
		if !ok {
			return nil, fmt.Errorf("%w: no share amount for participant %s", ErrMissingInput, id)
		}
		splits[i] = models.Split{MemberID: id, ShareAmount: money.Round(in.Amount)}
	}
	return splits, nil
}

func percentageSplits(amount decimal.Decimal, participants []string, custom map[string]CustomShare) ([]models.Split, error) {
	splits := make([]models.Split, len(participants))
	for i, id := range participants {
		in, ok := custom[id]
		if !ok {
			return nil, fmt.Errorf("%w: no percentage for participant %s", ErrMissingInput, id)
		}
		pct := in.Percent
		splits[i] = models.Split{
			MemberID:    id,
			ShareAmount: money.Round(amount.Mul(pct).Div(hundred)),
			Percentage:  &pct,
		}
	}
	distributeRemainder(amount, splits)
	return splits, nil
}

// distributeRemainder closes the gap between the rounded share sum and the
// expense amount by adding the difference to the first split. The remainder
// is at most a few cents, so no share can change sign.
func distributeRemainder(amount decimal.Decimal, splits []models.Split) {
	sum := decimal.Zero
	for _, s := range splits {
		sum = sum.Add(s.ShareAmount)
	}
	if rem := amount.Sub(sum); !rem.IsZero() {
		splits[0].ShareAmount = splits[0].ShareAmount.Add(rem)
	}
}

// ValidateSplits checks that a (possibly externally supplied) split list is
// consistent with the policy and total. Equal splits are derived rather than
// supplied and are always valid when non-empty.
func ValidateSplits(amount decimal.Decimal, splits []models.Split, policy models.SplitPolicy) error {
	if len(splits) == 0 {
		return &ValidationError{Reason: ReasonEmptyParticipants, Detail: "at least one participant is required"}
	}
	if !policy.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPolicy, policy)
	}

	switch policy {
	case models.SplitUnequal:
		sum := decimal.Zero
		for _, s := range splits {
			sum = sum.Add(s.ShareAmount)
		}
		if !money.Equal(sum, amount) {
			return &ValidationError{
				Reason: ReasonSumMismatch,
				Detail: fmt.Sprintf("shares sum to %s, expense amount is %s", sum.StringFixed(2), amount.StringFixed(2)),
			}
		}
	case models.SplitPercentage:
		sum := decimal.Zero
		for _, s := range splits {
			if s.Percentage != nil {
				sum = sum.Add(*s.Percentage)
			}
		}
		if !money.Equal(sum, hundred) {
			return &ValidationError{
				Reason: ReasonPercentageMismatch,
				Detail: fmt.Sprintf("percentages sum to %s, want 100", sum.String()),
			}
		}
	}
	return nil
}
