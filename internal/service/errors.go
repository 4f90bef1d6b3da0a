// Package service implements the application services that sit between the
// HTTP API and the store: account registration, group membership, expense
// recording, and balance/settlement queries. The pure ledger math lives in
// the calculator package; services only orchestrate it against stored data.
package service

import "errors"

var (
	// ErrNotMember is returned when the acting user is not a member of the
	// group they are operating on.
	ErrNotMember = errors.New("you are not a member of this group")

	// ErrForbidden is returned when the acting user lacks permission for the
	// operation (e.g., deleting another member's expense).
	ErrForbidden = errors.New("operation not permitted")

	// ErrBadInput is returned for malformed caller input that is not covered
	// by a calculator validation error.
	ErrBadInput = errors.New("invalid input")
)
