package entity

import "time"

const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
	InviteStatusRejected = "rejected"
)

// GameInvite is a proposal to start a session. Exactly one of GuestID and
// GroupID is set; a terminal invite never changes again.
type GameInvite struct {
	ID            string    `json:"id"`
	Kind          Kind      `json:"kind"`
	HostID        string    `json:"host_id"`
	GuestID       string    `json:"guest_id,omitempty"`
	GroupID       string    `json:"group_id,omitempty"`
	StartingState string    `json:"starting_state,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func (that *GameInvite) IsPending() bool {
	return that.Status == InviteStatusPending
}

// CanBeResolvedBy reports whether the principal is the designated guest or,
// for group-scoped invites, a member of the target group. The host cannot
// resolve their own invite.
func (that *GameInvite) CanBeResolvedBy(principal *Principal) bool {
	if principal.UserID == that.HostID {
		return false
	}

	if that.GuestID != "" {
		return that.GuestID == principal.UserID
	}

	return that.GroupID != "" && principal.InGroup(that.GroupID)
}
