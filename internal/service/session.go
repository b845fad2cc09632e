package service

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/gamehub-backend/internal/apperror"
	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
)

type SessionService interface {
	GetSession(ctx context.Context, sessionID string, principal *entity.Principal) (*entity.GameSession, error)
	ListActiveSessions(ctx context.Context, principal *entity.Principal) ([]*entity.GameSession, error)
	ListFinishedSessions(ctx context.Context, principal *entity.Principal) ([]*entity.GameSession, error)
}

type sessionReader interface {
	GetByID(ctx context.Context, id string) (*entity.GameSession, error)
	ListActive(ctx context.Context, principal *entity.Principal) ([]*entity.GameSession, error)
}

type archiveReader interface {
	ListByUser(ctx context.Context, userID string) ([]*entity.GameSession, error)
}

type sessionService struct {
	sessionRepo sessionReader
	archiveRepo archiveReader
}

func NewSessionService(sessionRepo sessionReader, archiveRepo archiveReader) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		archiveRepo: archiveRepo,
	}
}

func (that *sessionService) GetSession(ctx context.Context, sessionID string, principal *entity.Principal) (*entity.GameSession, error) {
	session, err := that.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if !session.CanBeSeenBy(principal) {
		return nil, apperror.ErrForbidden
	}

	return session, nil
}

func (that *sessionService) ListActiveSessions(ctx context.Context, principal *entity.Principal) ([]*entity.GameSession, error) {
	sessions, err := that.sessionRepo.ListActive(ctx, principal)
	if err != nil {
		return nil, fmt.Errorf("failed to list active sessions: %w", err)
	}

	return sessions, nil
}

func (that *sessionService) ListFinishedSessions(ctx context.Context, principal *entity.Principal) ([]*entity.GameSession, error) {
	sessions, err := that.archiveRepo.ListByUser(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list finished sessions: %w", err)
	}

	return sessions, nil
}
