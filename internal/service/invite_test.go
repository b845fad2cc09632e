package service

import (
	"context"
	"sync"
	"testing"

	"github.com/rocketscienceinc/gamehub-backend/internal/apperror"
	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
	"github.com/rocketscienceinc/gamehub-backend/internal/repository"
	"github.com/rocketscienceinc/gamehub-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// archiveStub keeps archived sessions in memory; SQLite is exercised by the
// repository tests.
type archiveStub struct {
	mu    sync.Mutex
	saved []*entity.GameSession
}

func (that *archiveStub) Save(_ context.Context, session *entity.GameSession) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.saved = append(that.saved, session)

	return nil
}

func (that *archiveStub) ListByUser(_ context.Context, userID string) ([]*entity.GameSession, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	var sessions []*entity.GameSession
	for _, session := range that.saved {
		if session.Player1ID == userID || session.Player2ID == userID {
			sessions = append(sessions, session)
		}
	}

	return sessions, nil
}

var (
	host  = &entity.Principal{UserID: "alice"}
	guest = &entity.Principal{UserID: "bob"}
)

func TestInviteService_CreateInvite(t *testing.T) {
	t.Run("Creates a pending direct invite", func(t *testing.T) {
		ctx, st := suite.New(t)

		inviteService := NewInviteService(repository.NewInviteRepository(st.Storage), repository.NewSessionRepository(st.Storage))

		// When: alice invites bob to tic-tac-toe
		invite, err := inviteService.CreateInvite(ctx, host, "bob", "", entity.KindGridThree, "")

		// Then: a pending invite exists and shows up for bob
		require.NoError(t, err)
		assert.True(t, invite.IsPending())

		invites, err := inviteService.ListPendingInvites(ctx, guest)
		require.NoError(t, err)
		require.Len(t, invites, 1)
		assert.Equal(t, invite.ID, invites[0].ID)
	})

	t.Run("Rejects an invite with both guest and group", func(t *testing.T) {
		ctx, st := suite.New(t)

		inviteService := NewInviteService(repository.NewInviteRepository(st.Storage), repository.NewSessionRepository(st.Storage))

		_, err := inviteService.CreateInvite(ctx, host, "bob", "g1", entity.KindGridThree, "")

		assert.ErrorIs(t, err, apperror.ErrInvalidInvite)
	})

	t.Run("Rejects an invite with neither guest nor group", func(t *testing.T) {
		ctx, st := suite.New(t)

		inviteService := NewInviteService(repository.NewInviteRepository(st.Storage), repository.NewSessionRepository(st.Storage))

		_, err := inviteService.CreateInvite(ctx, host, "", "", entity.KindGridThree, "")

		assert.ErrorIs(t, err, apperror.ErrInvalidInvite)
	})

	t.Run("Rejects a self-invite", func(t *testing.T) {
		ctx, st := suite.New(t)

		inviteService := NewInviteService(repository.NewInviteRepository(st.Storage), repository.NewSessionRepository(st.Storage))

		_, err := inviteService.CreateInvite(ctx, host, "alice", "", entity.KindGridThree, "")

		assert.ErrorIs(t, err, apperror.ErrInvalidInvite)
	})

	t.Run("Rejects an unknown game kind", func(t *testing.T) {
		ctx, st := suite.New(t)

		inviteService := NewInviteService(repository.NewInviteRepository(st.Storage), repository.NewSessionRepository(st.Storage))

		_, err := inviteService.CreateInvite(ctx, host, "bob", "", entity.Kind("checkers"), "")

		assert.ErrorIs(t, err, apperror.ErrUnknownGameKind)
	})

	t.Run("Rejects a group invite from a non-member", func(t *testing.T) {
		ctx, st := suite.New(t)

		inviteService := NewInviteService(repository.NewInviteRepository(st.Storage), repository.NewSessionRepository(st.Storage))

		_, err := inviteService.CreateInvite(ctx, host, "", "g1", entity.KindGridThree, "")

		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})
}

func TestInviteService_ResolveInvite(t *testing.T) {
	t.Run("Accepting spawns one session with the host to move", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := repository.NewSessionRepository(st.Storage)
		inviteService := NewInviteService(repository.NewInviteRepository(st.Storage), sessionRepo)

		// Given: a pending invite for bob
		invite, err := inviteService.CreateInvite(ctx, host, "bob", "", entity.KindGridThree, "")
		require.NoError(t, err)

		// When: bob accepts
		session, err := inviteService.ResolveInvite(ctx, invite.ID, guest, true)

		// Then: a session exists, host is player1 and moves first
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, "alice", session.Player1ID)
		assert.Equal(t, "bob", session.Player2ID)
		assert.Equal(t, entity.FixedTurn("alice"), session.Turn)
		assert.Equal(t, int64(1), session.Version)
		assert.True(t, session.IsActive())

		stored, err := sessionRepo.GetByID(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, session.ID, stored.ID)
	})

	t.Run("Simultaneous kinds start with either player to move", func(t *testing.T) {
		ctx, st := suite.New(t)

		inviteService := NewInviteService(repository.NewInviteRepository(st.Storage), repository.NewSessionRepository(st.Storage))

		invite, err := inviteService.CreateInvite(ctx, host, "bob", "", entity.KindSimultaneousChoice, "")
		require.NoError(t, err)

		session, err := inviteService.ResolveInvite(ctx, invite.ID, guest, true)
		require.NoError(t, err)

		assert.Equal(t, entity.EitherTurn(), session.Turn)
	})

	t.Run("Rejecting creates no session and leaves the invite unresolvable", func(t *testing.T) {
		ctx, st := suite.New(t)

		inviteService := NewInviteService(repository.NewInviteRepository(st.Storage), repository.NewSessionRepository(st.Storage))

		// Given: a pending invite for bob
		invite, err := inviteService.CreateInvite(ctx, host, "bob", "", entity.KindGridThree, "")
		require.NoError(t, err)

		// When: bob rejects
		session, err := inviteService.ResolveInvite(ctx, invite.ID, guest, false)

		// Then: no session is created
		require.NoError(t, err)
		assert.Nil(t, session)

		// And: resolving the same invite again fails as not found
		_, err = inviteService.ResolveInvite(ctx, invite.ID, guest, true)
		assert.ErrorIs(t, err, apperror.ErrInviteNotFound)
	})

	t.Run("A stranger cannot resolve someone else's invite", func(t *testing.T) {
		ctx, st := suite.New(t)

		inviteService := NewInviteService(repository.NewInviteRepository(st.Storage), repository.NewSessionRepository(st.Storage))

		invite, err := inviteService.CreateInvite(ctx, host, "bob", "", entity.KindGridThree, "")
		require.NoError(t, err)

		_, err = inviteService.ResolveInvite(ctx, invite.ID, &entity.Principal{UserID: "mallory"}, true)

		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("A group member accepts a group invite and becomes player2", func(t *testing.T) {
		ctx, st := suite.New(t)

		inviteService := NewInviteService(repository.NewInviteRepository(st.Storage), repository.NewSessionRepository(st.Storage))

		// Given: alice, a member of g1, invites the group
		member := &entity.Principal{UserID: "alice", Groups: []string{"g1"}}
		invite, err := inviteService.CreateInvite(ctx, member, "", "g1", entity.KindGridFour, "")
		require.NoError(t, err)

		// When: carol, also a member, accepts
		carol := &entity.Principal{UserID: "carol", Groups: []string{"g1"}}
		session, err := inviteService.ResolveInvite(ctx, invite.ID, carol, true)

		// Then: carol is seated as player2 and the session keeps the group scope
		require.NoError(t, err)
		assert.Equal(t, "alice", session.Player1ID)
		assert.Equal(t, "carol", session.Player2ID)
		assert.Equal(t, "g1", session.GroupID)
	})
}
