package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rocketscienceinc/gamehub-backend/internal/apperror"
	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
	"github.com/rocketscienceinc/gamehub-backend/internal/gamekind"
	"github.com/rocketscienceinc/gamehub-backend/internal/pkg"
)

type InviteService interface {
	CreateInvite(ctx context.Context, host *entity.Principal, guestID, groupID string, kind entity.Kind, startingState string) (*entity.GameInvite, error)
	ListPendingInvites(ctx context.Context, principal *entity.Principal) ([]*entity.GameInvite, error)
	ResolveInvite(ctx context.Context, inviteID string, principal *entity.Principal, accept bool) (*entity.GameSession, error)
}

type inviteRepo interface {
	Create(ctx context.Context, invite *entity.GameInvite) error
	GetByID(ctx context.Context, id string) (*entity.GameInvite, error)
	ListPending(ctx context.Context, principal *entity.Principal) ([]*entity.GameInvite, error)
	Resolve(ctx context.Context, id, status string) (*entity.GameInvite, error)
}

type sessionCreator interface {
	Create(ctx context.Context, session *entity.GameSession) error
}

type inviteService struct {
	inviteRepo  inviteRepo
	sessionRepo sessionCreator
}

func NewInviteService(inviteRepo inviteRepo, sessionRepo sessionCreator) InviteService {
	return &inviteService{
		inviteRepo:  inviteRepo,
		sessionRepo: sessionRepo,
	}
}

func (that *inviteService) CreateInvite(ctx context.Context, host *entity.Principal, guestID, groupID string, kind entity.Kind, startingState string) (*entity.GameInvite, error) {
	if (guestID == "") == (groupID == "") {
		return nil, fmt.Errorf("%w: exactly one of guest and group must be set", apperror.ErrInvalidInvite)
	}

	if guestID == host.UserID {
		return nil, fmt.Errorf("%w: cannot invite yourself", apperror.ErrInvalidInvite)
	}

	if groupID != "" && !host.InGroup(groupID) {
		return nil, apperror.ErrForbidden
	}

	if _, err := gamekind.For(kind); err != nil {
		return nil, err
	}

	invite := &entity.GameInvite{
		ID:            pkg.GenerateInviteID(),
		Kind:          kind,
		HostID:        host.UserID,
		GuestID:       guestID,
		GroupID:       groupID,
		StartingState: startingState,
		Status:        entity.InviteStatusPending,
		CreatedAt:     time.Now().UTC(),
	}

	if err := that.inviteRepo.Create(ctx, invite); err != nil {
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}

	return invite, nil
}

func (that *inviteService) ListPendingInvites(ctx context.Context, principal *entity.Principal) ([]*entity.GameInvite, error) {
	invites, err := that.inviteRepo.ListPending(ctx, principal)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending invites: %w", err)
	}

	return invites, nil
}

// ResolveInvite moves a pending invite to a terminal status. Accepting spawns
// exactly one session: the terminal transition is a conditional write in the
// store, so a second resolver loses the race before any session is created.
func (that *inviteService) ResolveInvite(ctx context.Context, inviteID string, principal *entity.Principal, accept bool) (*entity.GameSession, error) {
	invite, err := that.inviteRepo.GetByID(ctx, inviteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invite: %w", err)
	}

	if !invite.CanBeResolvedBy(principal) {
		return nil, apperror.ErrForbidden
	}

	status := entity.InviteStatusRejected
	if accept {
		status = entity.InviteStatusAccepted
	}

	invite, err = that.inviteRepo.Resolve(ctx, inviteID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve invite: %w", err)
	}

	if !accept {
		return nil, nil
	}

	session, err := that.spawnSession(ctx, invite, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to spawn session: %w", err)
	}

	return session, nil
}

func (that *inviteService) spawnSession(ctx context.Context, invite *entity.GameInvite, guestID string) (*entity.GameSession, error) {
	rules, err := gamekind.For(invite.Kind)
	if err != nil {
		return nil, err
	}

	setup := gamekind.Setup{
		Players: gamekind.Players{
			Player1ID: invite.HostID,
			Player2ID: guestID,
		},
		StartingState: invite.StartingState,
	}

	state, err := rules.InitialState(setup)
	if err != nil {
		return nil, fmt.Errorf("failed to build initial state: %w", err)
	}

	now := time.Now().UTC()

	session := &entity.GameSession{
		ID:        pkg.GenerateSessionID(),
		Kind:      invite.Kind,
		Player1ID: invite.HostID,
		Player2ID: guestID,
		GroupID:   invite.GroupID,
		State:     state,
		Status:    entity.StatusActive,
		Turn:      rules.InitialTurn(setup),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err = that.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}
