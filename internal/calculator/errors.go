package calculator

import (
	"errors"
	"fmt"
)

// Data-consistency errors. These signal an upstream bug (a split referencing
// a removed member, balances that do not sum to zero); the engine surfaces
// them instead of clamping or dropping the offending record, which would
// corrupt the ledger's auditability.
var (
	// ErrUnknownParticipant is returned when a payer, split, or settlement
	// references a member that is not in the supplied member list.
	ErrUnknownParticipant = errors.New("unknown participant")

	// ErrUnbalanced is returned when a balance vector handed to the
	// settlement optimizer does not sum to zero within the epsilon.
	ErrUnbalanced = errors.New("balances do not sum to zero")
)

// Split-input errors, recoverable by the caller correcting its input.
var (
	// ErrInvalidPolicy is returned for an unrecognized split policy.
	ErrInvalidPolicy = errors.New("invalid split policy")

	// ErrMissingInput is returned when a custom-split policy lacks an entry
	// for one of the listed participants.
	ErrMissingInput = errors.New("missing split input")
)

// Machine-readable reasons carried by ValidationError.
const (
	ReasonEmptyParticipants  = "empty-participants"
	ReasonSumMismatch        = "sum-mismatch"
	ReasonPercentageMismatch = "percentage-mismatch"
)

// ValidationError reports a split list that is inconsistent with its policy
// and total. Reason is stable and machine-readable; Detail is for humans.
type ValidationError struct {
	Reason string
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("invalid splits: %s", e.Reason)
	}
	return fmt.Sprintf("invalid splits: %s: %s", e.Reason, e.Detail)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
