// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/splitledger/splitledger/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the persistence operations the service layer depends on.
// The abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the services. The engine itself never touches a Store:
// balances and settlement plans are recomputed from the records read here.
type Store interface {
	// CreateUser persists a new user account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email. Returns ErrNotFound if absent.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID. Returns ErrNotFound if absent.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// CreateGroup persists a new group with its initial members.
	// Populates group.ID and group.CreatedAt.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with its members. Returns ErrNotFound if absent.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroupsForMember retrieves every group the member belongs to.
	ListGroupsForMember(ctx context.Context, memberID string) ([]*models.Group, error)

	// AddGroupMembers adds members to a group, ignoring IDs already present.
	AddGroupMembers(ctx context.Context, groupID string, members []models.Member) error

	// RemoveGroupMember removes one member from a group. Returns ErrNotFound
	// if the member is not in the group.
	RemoveGroupMember(ctx context.Context, groupID, memberID string) error

	// CloseGroup marks a group closed. Returns ErrNotFound if absent.
	CloseGroup(ctx context.Context, groupID string) error

	// CreateExpense persists an expense with its splits in one transaction.
	// Populates expense.ID and expense.CreatedAt.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// UpdateExpense replaces an expense's description, amount, policy, and
	// splits in one transaction. Returns ErrNotFound if absent.
	UpdateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense with its splits. Returns ErrNotFound if absent.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesByGroup retrieves all expenses of a group, newest first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// DeleteExpense removes an expense and its splits. Returns ErrNotFound if absent.
	DeleteExpense(ctx context.Context, expenseID string) error

	// CreateSettlement persists a recorded settlement.
	// Populates settlement.ID and settlement.CreatedAt.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// ListSettlementsByGroup retrieves all settlements of a group, newest first.
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error)

	// DeleteSettlement removes a settlement. Returns ErrNotFound if absent.
	DeleteSettlement(ctx context.Context, settlementID string) error

	// Close releases any resources held by the store.
	Close() error
}
