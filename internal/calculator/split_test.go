package calculator

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func shareSum(splits []models.Split) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range splits {
		sum = sum.Add(s.ShareAmount)
	}
	return sum
}

func TestComputeSplits(t *testing.T) {
	tests := []struct {
		name         string
		amount       string
		participants []string
		policy       models.SplitPolicy
		custom       map[string]CustomShare
		wantErr      error
		wantShares   []string // in participant order
	}{
		{
			name:         "equal split divides evenly",
			amount:       "90.00",
			participants: []string{"x", "y", "z"},
			policy:       models.SplitEqual,
			wantShares:   []string{"30.00", "30.00", "30.00"},
		},
		{
			name:         "equal split assigns remainder to first participant",
			amount:       "100.00",
			participants: []string{"x", "y", "z"},
			policy:       models.SplitEqual,
			wantShares:   []string{"33.34", "33.33", "33.33"},
		},
		{
			name:         "equal split negative remainder",
			amount:       "100.00",
			participants: []string{"a", "b", "c", "d", "e", "f"},
			policy:       models.SplitEqual,
			wantShares:   []string{"16.65", "16.67", "16.67", "16.67", "16.67", "16.67"},
		},
		{
			name:         "equal split single participant",
			amount:       "12.34",
			participants: []string{"solo"},
			policy:       models.SplitEqual,
			wantShares:   []string{"12.34"},
		},
		{
			name:         "unequal split takes shares verbatim",
			amount:       "50.00",
			participants: []string{"x", "y"},
			policy:       models.SplitUnequal,
			custom: map[string]CustomShare{
				"x": {Amount: dec("35.50")},
				"y": {Amount: dec("14.50")},
			},
			wantShares: []string{"35.50", "14.50"},
		},
		{
			name:         "unequal split missing input",
			amount:       "50.00",
			participants: []string{"x", "y"},
			policy:       models.SplitUnequal,
			custom: map[string]CustomShare{
				"x": {Amount: dec("50.00")},
			},
			wantErr: ErrMissingInput,
		},
		{
			name:         "percentage split derives shares",
			amount:       "200.00",
			participants: []string{"x", "y"},
			policy:       models.SplitPercentage,
			custom: map[string]CustomShare{
				"x": {Percent: dec("75")},
				"y": {Percent: dec("25")},
			},
			wantShares: []string{"150.00", "50.00"},
		},
		{
			name:         "percentage split rounding still sums to amount",
			amount:       "100.00",
			participants: []string{"x", "y", "z"},
			policy:       models.SplitPercentage,
			custom: map[string]CustomShare{
				"x": {Percent: dec("33.33")},
				"y": {Percent: dec("33.33")},
				"z": {Percent: dec("33.34")},
			},
			wantShares: []string{"33.33", "33.33", "33.34"},
		},
		{
			name:         "percentage split missing input",
			amount:       "100.00",
			participants: []string{"x", "y"},
			policy:       models.SplitPercentage,
			custom: map[string]CustomShare{
				"y": {Percent: dec("100")},
			},
			wantErr: ErrMissingInput,
		},
		{
			name:         "unknown policy",
			amount:       "10.00",
			participants: []string{"x"},
			policy:       models.SplitPolicy("Weighted"),
			wantErr:      ErrInvalidPolicy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits, err := ComputeSplits(dec(tt.amount), tt.participants, tt.policy, tt.custom)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ComputeSplits() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ComputeSplits() unexpected error: %v", err)
			}
			if len(splits) != len(tt.participants) {
				t.Fatalf("got %d splits, want %d", len(splits), len(tt.participants))
			}

			// The split-sum invariant holds regardless of policy.
			if !shareSum(splits).Equal(dec(tt.amount)) {
				t.Errorf("shares sum to %s, want %s", shareSum(splits), tt.amount)
			}

			for i, s := range splits {
				if s.MemberID != tt.participants[i] {
					t.Errorf("split %d member = %s, want %s", i, s.MemberID, tt.participants[i])
				}
				if !s.ShareAmount.Equal(dec(tt.wantShares[i])) {
					t.Errorf("split %d share = %s, want %s", i, s.ShareAmount, tt.wantShares[i])
				}
			}
		})
	}
}

func TestComputeSplitsEmptyParticipants(t *testing.T) {
	_, err := ComputeSplits(dec("10.00"), nil, models.SplitEqual, nil)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Reason != ReasonEmptyParticipants {
		t.Errorf("reason = %s, want %s", ve.Reason, ReasonEmptyParticipants)
	}
}

func TestComputeSplitsPreservesPercentage(t *testing.T) {
	splits, err := ComputeSplits(dec("80.00"), []string{"x", "y"}, models.SplitPercentage, map[string]CustomShare{
		"x": {Percent: dec("60")},
		"y": {Percent: dec("40")},
	})
	if err != nil {
		t.Fatalf("ComputeSplits() failed: %v", err)
	}
	if splits[0].Percentage == nil || !splits[0].Percentage.Equal(dec("60")) {
		t.Errorf("expected percentage 60 preserved on first split, got %v", splits[0].Percentage)
	}

	equal, err := ComputeSplits(dec("80.00"), []string{"x", "y"}, models.SplitEqual, nil)
	if err != nil {
		t.Fatalf("ComputeSplits() failed: %v", err)
	}
	if equal[0].Percentage != nil {
		t.Errorf("equal split should not carry a percentage, got %v", *equal[0].Percentage)
	}
}

func TestValidateSplits(t *testing.T) {
	tests := []struct {
		name       string
		amount     string
		splits     []models.Split
		policy     models.SplitPolicy
		wantReason string // empty = valid
	}{
		{
			name:       "empty splits",
			amount:     "10.00",
			splits:     nil,
			policy:     models.SplitEqual,
			wantReason: ReasonEmptyParticipants,
		},
		{
			name:   "equal always valid when non-empty",
			amount: "10.00",
			splits: []models.Split{{MemberID: "x", ShareAmount: dec("3.00")}},
			policy: models.SplitEqual,
		},
		{
			name:   "unequal exact sum",
			amount: "50.00",
			splits: []models.Split{
				{MemberID: "x", ShareAmount: dec("20.00")},
				{MemberID: "y", ShareAmount: dec("30.00")},
			},
			policy: models.SplitUnequal,
		},
		{
			name:   "unequal within epsilon",
			amount: "50.00",
			splits: []models.Split{
				{MemberID: "x", ShareAmount: dec("20.00")},
				{MemberID: "y", ShareAmount: dec("30.01")},
			},
			policy: models.SplitUnequal,
		},
		{
			name:   "unequal sum mismatch",
			amount: "50.00",
			splits: []models.Split{
				{MemberID: "x", ShareAmount: dec("20.00")},
				{MemberID: "y", ShareAmount: dec("25.00")},
			},
			policy:     models.SplitUnequal,
			wantReason: ReasonSumMismatch,
		},
		{
			name:   "percentage exact 100",
			amount: "50.00",
			splits: []models.Split{
				{MemberID: "x", ShareAmount: dec("25.00"), Percentage: decPtr("50")},
				{MemberID: "y", ShareAmount: dec("25.00"), Percentage: decPtr("50")},
			},
			policy: models.SplitPercentage,
		},
		{
			name:   "percentage 99.99 accepted under epsilon",
			amount: "50.00",
			splits: []models.Split{
				{MemberID: "x", ShareAmount: dec("25.00"), Percentage: decPtr("49.99")},
				{MemberID: "y", ShareAmount: dec("25.00"), Percentage: decPtr("50")},
			},
			policy: models.SplitPercentage,
		},
		{
			name:   "percentage 100.01 accepted under epsilon",
			amount: "50.00",
			splits: []models.Split{
				{MemberID: "x", ShareAmount: dec("25.00"), Percentage: decPtr("50.01")},
				{MemberID: "y", ShareAmount: dec("25.00"), Percentage: decPtr("50")},
			},
			policy: models.SplitPercentage,
		},
		{
			name:   "percentage 99.5 rejected",
			amount: "50.00",
			splits: []models.Split{
				{MemberID: "x", ShareAmount: dec("25.00"), Percentage: decPtr("49.5")},
				{MemberID: "y", ShareAmount: dec("25.00"), Percentage: decPtr("50")},
			},
			policy:     models.SplitPercentage,
			wantReason: ReasonPercentageMismatch,
		},
		{
			name:   "percentage 100.5 rejected",
			amount: "50.00",
			splits: []models.Split{
				{MemberID: "x", ShareAmount: dec("25.00"), Percentage: decPtr("50.5")},
				{MemberID: "y", ShareAmount: dec("25.00"), Percentage: decPtr("50")},
			},
			policy:     models.SplitPercentage,
			wantReason: ReasonPercentageMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSplits(dec(tt.amount), tt.splits, tt.policy)
			if tt.wantReason == "" {
				if err != nil {
					t.Fatalf("ValidateSplits() unexpected error: %v", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Reason != tt.wantReason {
				t.Errorf("reason = %s, want %s", ve.Reason, tt.wantReason)
			}
		})
	}
}

func TestValidateSplitsUnknownPolicy(t *testing.T) {
	splits := []models.Split{{MemberID: "x", ShareAmount: dec("10.00")}}
	err := ValidateSplits(dec("10.00"), splits, models.SplitPolicy("Shares"))
	if !errors.Is(err, ErrInvalidPolicy) {
		t.Fatalf("expected ErrInvalidPolicy, got %v", err)
	}
}
