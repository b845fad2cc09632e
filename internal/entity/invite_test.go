package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvite_CanBeResolvedBy(t *testing.T) {
	t.Run("Only the designated guest can resolve a direct invite", func(t *testing.T) {
		// Given: a direct invite from alice to bob
		invite := &GameInvite{HostID: "alice", GuestID: "bob", Status: InviteStatusPending}

		// When/Then: bob may resolve it, alice and strangers may not
		assert.True(t, invite.CanBeResolvedBy(&Principal{UserID: "bob"}))
		assert.False(t, invite.CanBeResolvedBy(&Principal{UserID: "alice"}))
		assert.False(t, invite.CanBeResolvedBy(&Principal{UserID: "mallory"}))
	})

	t.Run("Any group member except the host can resolve a group invite", func(t *testing.T) {
		// Given: a group-scoped invite from alice
		invite := &GameInvite{HostID: "alice", GroupID: "g1", Status: InviteStatusPending}

		// When/Then: a member may resolve it, a non-member and the host may not
		assert.True(t, invite.CanBeResolvedBy(&Principal{UserID: "bob", Groups: []string{"g1"}}))
		assert.False(t, invite.CanBeResolvedBy(&Principal{UserID: "bob", Groups: []string{"g2"}}))
		assert.False(t, invite.CanBeResolvedBy(&Principal{UserID: "alice", Groups: []string{"g1"}}))
	})
}
