package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/gamehub-backend/internal/apperror"
	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.GameSession) error
	GetByID(ctx context.Context, id string) (*entity.GameSession, error)
	UpdateWithVersion(ctx context.Context, session *entity.GameSession, expectedVersion int64) error
	ListActive(ctx context.Context, principal *entity.Principal) ([]*entity.GameSession, error)
}

type dbSession struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) SessionRepository {
	return &dbSession{
		client: client,
	}
}

func sessionKey(id string) string {
	return "session:" + id
}

func userSessionsKey(userID string) string {
	return "sessions:user:" + userID
}

func groupSessionsKey(groupID string) string {
	return "sessions:group:" + groupID
}

func (that *dbSession) Create(ctx context.Context, session *entity.GameSession) error {
	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionKey(session.ID), sessionJSON, 0)
		pipe.SAdd(ctx, userSessionsKey(session.Player1ID), session.ID)
		if session.Player2ID != "" {
			pipe.SAdd(ctx, userSessionsKey(session.Player2ID), session.ID)
		}
		if session.GroupID != "" {
			pipe.SAdd(ctx, groupSessionsKey(session.GroupID), session.ID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}

	return nil
}

func (that *dbSession) GetByID(ctx context.Context, id string) (*entity.GameSession, error) {
	response, err := that.client.Get(ctx, sessionKey(id)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrSessionNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get session by ID: %w", err)
	}

	var existingSession entity.GameSession
	if err = json.Unmarshal([]byte(response), &existingSession); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &existingSession, nil
}

// UpdateWithVersion writes the session only if the stored version still
// equals expectedVersion. The check and the write run inside one WATCH/MULTI
// transaction on the session key, so of two racing writers exactly one
// succeeds; the other gets ErrVersionConflict and must re-read.
func (that *dbSession) UpdateWithVersion(ctx context.Context, session *entity.GameSession, expectedVersion int64) error {
	key := sessionKey(session.ID)

	err := that.client.Watch(ctx, func(tx *redis.Tx) error {
		response, err := tx.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return apperror.ErrSessionNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get session by ID: %w", err)
		}

		var stored entity.GameSession
		if err = json.Unmarshal([]byte(response), &stored); err != nil {
			return fmt.Errorf("failed to unmarshal session: %w", err)
		}

		if stored.Version != expectedVersion {
			return apperror.ErrVersionConflict
		}

		sessionJSON, err := json.Marshal(session)
		if err != nil {
			return fmt.Errorf("could not marshal session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, sessionJSON, 0)
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to set session: %w", err)
		}

		return nil
	}, key)

	// Another writer touched the key between WATCH and EXEC.
	if errors.Is(err, redis.TxFailedErr) {
		return apperror.ErrVersionConflict
	}

	return err
}

func (that *dbSession) ListActive(ctx context.Context, principal *entity.Principal) ([]*entity.GameSession, error) {
	keys := []string{userSessionsKey(principal.UserID)}
	for _, groupID := range principal.Groups {
		keys = append(keys, groupSessionsKey(groupID))
	}

	ids, err := that.client.SUnion(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list session IDs: %w", err)
	}

	sessions := make([]*entity.GameSession, 0, len(ids))
	for _, id := range ids {
		session, err := that.GetByID(ctx, id)
		if errors.Is(err, apperror.ErrSessionNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get session %s: %w", id, err)
		}

		if session.IsActive() {
			sessions = append(sessions, session)
		}
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})

	return sessions, nil
}
