package repository

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/gamehub-backend/internal/apperror"
	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
	"github.com/rocketscienceinc/gamehub-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInvite(id, guestID, groupID string) *entity.GameInvite {
	return &entity.GameInvite{
		ID:        id,
		Kind:      entity.KindGridThree,
		HostID:    "alice",
		GuestID:   guestID,
		GroupID:   groupID,
		Status:    entity.InviteStatusPending,
		CreatedAt: time.Now().UTC(),
	}
}

func TestInviteRepository_CreateAndGet(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		inviteRepo := NewInviteRepository(st.Storage)

		// Given: a stored invite
		invite := newTestInvite("i1", "bob", "")
		require.NoError(t, inviteRepo.Create(ctx, invite))

		// When: GetByID is called with the existing ID
		retrieved, err := inviteRepo.GetByID(ctx, invite.ID)

		// Then: the retrieved invite matches the saved one
		require.NoError(t, err)
		assert.Equal(t, invite.ID, retrieved.ID)
		assert.Equal(t, invite.HostID, retrieved.HostID)
		assert.Equal(t, invite.GuestID, retrieved.GuestID)
		assert.True(t, retrieved.IsPending())
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		inviteRepo := NewInviteRepository(st.Storage)

		// When: GetByID is called with a non-existent ID
		_, err := inviteRepo.GetByID(ctx, "missing")

		// Then: ErrInviteNotFound is returned
		assert.ErrorIs(t, err, apperror.ErrInviteNotFound)
	})
}

func TestInviteRepository_ListPending(t *testing.T) {
	ctx, st := suite.New(t)

	inviteRepo := NewInviteRepository(st.Storage)

	// Given: a direct invite for bob, a group invite for g1 and an invite for
	// someone else
	require.NoError(t, inviteRepo.Create(ctx, newTestInvite("direct", "bob", "")))
	require.NoError(t, inviteRepo.Create(ctx, newTestInvite("group", "", "g1")))
	require.NoError(t, inviteRepo.Create(ctx, newTestInvite("other", "carol", "")))

	// When: listing pending invites for bob with membership in g1
	principal := &entity.Principal{UserID: "bob", Groups: []string{"g1"}}
	invites, err := inviteRepo.ListPending(ctx, principal)

	// Then: the direct and group invites come back, carol's does not
	require.NoError(t, err)
	require.Len(t, invites, 2)

	ids := []string{invites[0].ID, invites[1].ID}
	assert.ElementsMatch(t, []string{"direct", "group"}, ids)
}

func TestInviteRepository_Resolve(t *testing.T) {
	t.Run("Moves a pending invite to a terminal status", func(t *testing.T) {
		ctx, st := suite.New(t)

		inviteRepo := NewInviteRepository(st.Storage)

		// Given: a pending invite
		invite := newTestInvite("i1", "bob", "")
		require.NoError(t, inviteRepo.Create(ctx, invite))

		// When: resolving it as accepted
		resolved, err := inviteRepo.Resolve(ctx, invite.ID, entity.InviteStatusAccepted)

		// Then: the invite is terminal and gone from bob's pending list
		require.NoError(t, err)
		assert.Equal(t, entity.InviteStatusAccepted, resolved.Status)

		invites, err := inviteRepo.ListPending(ctx, &entity.Principal{UserID: "bob"})
		require.NoError(t, err)
		assert.Empty(t, invites)
	})

	t.Run("Resolving a terminal invite behaves as not found", func(t *testing.T) {
		ctx, st := suite.New(t)

		inviteRepo := NewInviteRepository(st.Storage)

		// Given: an already-rejected invite
		invite := newTestInvite("i1", "bob", "")
		require.NoError(t, inviteRepo.Create(ctx, invite))

		_, err := inviteRepo.Resolve(ctx, invite.ID, entity.InviteStatusRejected)
		require.NoError(t, err)

		// When: resolving it again
		_, err = inviteRepo.Resolve(ctx, invite.ID, entity.InviteStatusAccepted)

		// Then: ErrInviteNotFound is returned
		assert.ErrorIs(t, err, apperror.ErrInviteNotFound)
	})

	t.Run("Resolving a missing invite fails", func(t *testing.T) {
		ctx, st := suite.New(t)

		inviteRepo := NewInviteRepository(st.Storage)

		_, err := inviteRepo.Resolve(ctx, "missing", entity.InviteStatusAccepted)

		assert.ErrorIs(t, err, apperror.ErrInviteNotFound)
	})
}
