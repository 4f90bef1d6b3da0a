package models

// Member is one participant of a group: an opaque identifier plus a display
// name. Members are unique within a group.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string `json:"id"`

	// Name is the display name shown in balances and settlement plans.
	Name string `json:"name"`
}

// Group represents a set of people who share expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Roommates", "Goa Trip").
	Name string `json:"name"`

	// CreatedBy is the user ID of the group creator (its first admin).
	CreatedBy string `json:"created_by"`

	// Members is the current membership of the group.
	Members []Member `json:"members"`

	// Closed marks a group that no longer accepts new expenses. Balances,
	// settlement recording, and reads keep working so members can settle up.
	Closed bool `json:"closed"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"created_at"`
}

// HasMember reports whether the given member ID belongs to the group.
func (g *Group) HasMember(id string) bool {
	for _, m := range g.Members {
		if m.ID == id {
			return true
		}
	}
	return false
}
