package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/gamehub-backend/internal/apperror"
	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
	"github.com/rocketscienceinc/gamehub-backend/internal/gamekind"
)

type MoveService interface {
	SubmitMove(ctx context.Context, sessionID string, principal *entity.Principal, expectedVersion int64, input entity.MoveInput) (*entity.GameSession, error)
}

type sessionStore interface {
	GetByID(ctx context.Context, id string) (*entity.GameSession, error)
	UpdateWithVersion(ctx context.Context, session *entity.GameSession, expectedVersion int64) error
}

type archiveWriter interface {
	Save(ctx context.Context, session *entity.GameSession) error
}

type moveService struct {
	logger      *slog.Logger
	sessionRepo sessionStore
	archiveRepo archiveWriter
}

func NewMoveService(logger *slog.Logger, sessionRepo sessionStore, archiveRepo archiveWriter) MoveService {
	return &moveService{
		logger:      logger,
		sessionRepo: sessionRepo,
		archiveRepo: archiveRepo,
	}
}

// SubmitMove runs one full read-validate-apply-persist cycle. Every failure
// before the final write leaves stored state untouched; the final write is
// conditional on the version the caller read, so concurrent submissions are
// serialized by the store and the loser gets ErrVersionConflict.
func (that *moveService) SubmitMove(ctx context.Context, sessionID string, principal *entity.Principal, expectedVersion int64, input entity.MoveInput) (*entity.GameSession, error) {
	session, err := that.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if !session.HasPlayer(principal.UserID) {
		return nil, apperror.ErrForbidden
	}

	if err = session.ConfirmActiveState(); err != nil {
		return nil, err
	}

	if session.Version != expectedVersion {
		return nil, apperror.ErrVersionConflict
	}

	if !session.Turn.Allows(principal.UserID) {
		return nil, apperror.ErrNotYourTurn
	}

	rules, err := gamekind.For(session.Kind)
	if err != nil {
		return nil, err
	}

	players := gamekind.Players{
		Player1ID: session.Player1ID,
		Player2ID: session.Player2ID,
	}

	if err = rules.ValidateMove(session.State, principal.UserID, players, input); err != nil {
		return nil, err
	}

	newState, err := rules.ApplyMove(session.State, principal.UserID, players, input)
	if err != nil {
		return nil, fmt.Errorf("failed to apply move: %w", err)
	}

	outcome, err := rules.CheckTerminal(newState, players)
	if err != nil {
		return nil, fmt.Errorf("failed to check terminal state: %w", err)
	}

	session.State = newState

	switch outcome.Result {
	case gamekind.OutcomeWinner:
		session.Status = entity.StatusCompleted
		session.WinnerID = outcome.WinnerID
		session.Turn = entity.NoTurn()
	case gamekind.OutcomeDraw:
		session.Status = entity.StatusDraw
		session.Turn = entity.NoTurn()
	default:
		session.Turn = rules.NextTurn(principal.UserID, players)
	}

	session.Version++
	session.UpdatedAt = time.Now().UTC()

	if err = that.sessionRepo.UpdateWithVersion(ctx, session, expectedVersion); err != nil {
		return nil, err
	}

	if !session.IsActive() {
		that.archiveSession(ctx, session)
	}

	return session, nil
}

// archiveSession is best-effort: the session is already persisted with its
// terminal status, the archive only feeds history queries.
func (that *moveService) archiveSession(ctx context.Context, session *entity.GameSession) {
	log := that.logger.With("method", "archiveSession", "sessionID", session.ID)

	if err := that.archiveRepo.Save(ctx, session); err != nil {
		log.Error("failed to archive session", "error", err)
		return
	}

	log.Info("session archived", "status", session.Status)
}
