// Package models defines the core domain models for Splitledger.
//
// The engine-facing types (Member, Expense, Split, Settlement, Balance,
// SettlementInstruction) are plain values: the calculator package treats them
// as immutable inputs and never mutates or persists them. Monetary fields use
// shopspring decimals at 2-decimal scale; see the money package for the
// comparison conventions.
//
// User and Group belong to the surrounding application (accounts, membership)
// and are consumed by the service layer, not by the calculator.
package models
