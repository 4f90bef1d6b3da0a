package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/storage"
)

// GroupService manages groups and their membership.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a GroupService backed by the given store.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a group with the creator as its first member.
func (s *GroupService) CreateGroup(ctx context.Context, creatorID, name string) (*models.Group, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", ErrBadInput)
	}

	creator, err := s.store.GetUserByID(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load creator: %w", err)
	}

	group := &models.Group{
		Name:      name,
		CreatedBy: creatorID,
		Members:   []models.Member{{ID: creator.ID, Name: creator.DisplayName}},
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	slog.Info("group created", "group_id", group.ID, "created_by", creatorID)
	return group, nil
}

// GetGroup retrieves a group. The acting user must be a member.
func (s *GroupService) GetGroup(ctx context.Context, userID, groupID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(userID) {
		return nil, ErrNotMember
	}
	return group, nil
}

// ListGroups retrieves every group the user belongs to.
func (s *GroupService) ListGroups(ctx context.Context, userID string) ([]*models.Group, error) {
	return s.store.ListGroupsForMember(ctx, userID)
}

// AddMemberByEmail adds a registered user to the group by email address.
// Only existing members may add new ones; adding an existing member is a no-op.
func (s *GroupService) AddMemberByEmail(ctx context.Context, actorID, groupID, email string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(actorID) {
		return nil, ErrNotMember
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	member := models.Member{ID: user.ID, Name: user.DisplayName}
	if err := s.store.AddGroupMembers(ctx, groupID, []models.Member{member}); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	slog.Info("member added", "group_id", groupID, "member_id", user.ID, "added_by", actorID)
	return s.store.GetGroup(ctx, groupID)
}

// RemoveMember removes a member from the group. Members may remove themselves;
// the group creator may remove anyone but themselves. A member referenced by
// any expense or settlement cannot be removed, since balances are recomputed
// from those records and every record must resolve to a current member.
func (s *GroupService) RemoveMember(ctx context.Context, actorID, groupID, memberID string) error {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if !group.HasMember(actorID) {
		return ErrNotMember
	}
	if !group.HasMember(memberID) {
		return fmt.Errorf("member %s: %w", memberID, storage.ErrNotFound)
	}
	if actorID != memberID && actorID != group.CreatedBy {
		return fmt.Errorf("%w: only the group creator can remove other members", ErrForbidden)
	}
	if memberID == group.CreatedBy {
		return fmt.Errorf("%w: the group creator cannot be removed", ErrBadInput)
	}

	referenced, err := s.memberHasRecords(ctx, groupID, memberID)
	if err != nil {
		return err
	}
	if referenced {
		return fmt.Errorf("%w: member has recorded expenses or settlements", ErrBadInput)
	}

	if err := s.store.RemoveGroupMember(ctx, groupID, memberID); err != nil {
		return err
	}
	slog.Info("member removed", "group_id", groupID, "member_id", memberID, "removed_by", actorID)
	return nil
}

func (s *GroupService) memberHasRecords(ctx context.Context, groupID, memberID string) (bool, error) {
	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return false, err
	}
	for _, e := range expenses {
		if e.PayerID == memberID {
			return true, nil
		}
		for _, split := range e.Splits {
			if split.MemberID == memberID {
				return true, nil
			}
		}
	}

	settlements, err := s.store.ListSettlementsByGroup(ctx, groupID)
	if err != nil {
		return false, err
	}
	for _, st := range settlements {
		if st.FromID == memberID || st.ToID == memberID {
			return true, nil
		}
	}
	return false, nil
}

// CloseGroup marks the group closed. Only the creator may close. Closed
// groups reject new expenses but still serve balances and accept settlements,
// so members can pay off what remains.
func (s *GroupService) CloseGroup(ctx context.Context, actorID, groupID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(actorID) {
		return nil, ErrNotMember
	}
	if actorID != group.CreatedBy {
		return nil, fmt.Errorf("%w: only the group creator can close the group", ErrForbidden)
	}

	if err := s.store.CloseGroup(ctx, groupID); err != nil {
		return nil, err
	}
	group.Closed = true
	slog.Info("group closed", "group_id", groupID, "closed_by", actorID)
	return group, nil
}
