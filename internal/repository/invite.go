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

type InviteRepository interface {
	Create(ctx context.Context, invite *entity.GameInvite) error
	GetByID(ctx context.Context, id string) (*entity.GameInvite, error)
	ListPending(ctx context.Context, principal *entity.Principal) ([]*entity.GameInvite, error)
	Resolve(ctx context.Context, id, status string) (*entity.GameInvite, error)
}

type dbInvite struct {
	client *redis.Client
}

func NewInviteRepository(client *redis.Client) InviteRepository {
	return &dbInvite{
		client: client,
	}
}

func inviteKey(id string) string {
	return "invite:" + id
}

func guestInvitesKey(guestID string) string {
	return "invites:guest:" + guestID
}

func groupInvitesKey(groupID string) string {
	return "invites:group:" + groupID
}

func (that *dbInvite) indexKey(invite *entity.GameInvite) string {
	if invite.GuestID != "" {
		return guestInvitesKey(invite.GuestID)
	}

	return groupInvitesKey(invite.GroupID)
}

func (that *dbInvite) Create(ctx context.Context, invite *entity.GameInvite) error {
	inviteJSON, err := json.Marshal(invite)
	if err != nil {
		return fmt.Errorf("could not marshal invite: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, inviteKey(invite.ID), inviteJSON, 0)
		pipe.SAdd(ctx, that.indexKey(invite), invite.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set invite: %w", err)
	}

	return nil
}

func (that *dbInvite) GetByID(ctx context.Context, id string) (*entity.GameInvite, error) {
	response, err := that.client.Get(ctx, inviteKey(id)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrInviteNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get invite by ID: %w", err)
	}

	var existingInvite entity.GameInvite
	if err = json.Unmarshal([]byte(response), &existingInvite); err != nil {
		return nil, fmt.Errorf("failed to unmarshal invite: %w", err)
	}

	return &existingInvite, nil
}

func (that *dbInvite) ListPending(ctx context.Context, principal *entity.Principal) ([]*entity.GameInvite, error) {
	keys := []string{guestInvitesKey(principal.UserID)}
	for _, groupID := range principal.Groups {
		keys = append(keys, groupInvitesKey(groupID))
	}

	ids, err := that.client.SUnion(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list invite IDs: %w", err)
	}

	invites := make([]*entity.GameInvite, 0, len(ids))
	for _, id := range ids {
		invite, err := that.GetByID(ctx, id)
		if errors.Is(err, apperror.ErrInviteNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get invite %s: %w", id, err)
		}

		if invite.IsPending() {
			invites = append(invites, invite)
		}
	}

	sort.Slice(invites, func(i, j int) bool {
		return invites[i].CreatedAt.After(invites[j].CreatedAt)
	})

	return invites, nil
}

// Resolve moves a pending invite to a terminal status. The transition runs
// inside a WATCH/MULTI transaction, so when two resolvers race exactly one
// wins; the loser, like any caller hitting an already-terminal invite, gets
// ErrInviteNotFound. Terminal invites are deliberately indistinguishable from
// absent ones so callers do not retry blindly.
func (that *dbInvite) Resolve(ctx context.Context, id, status string) (*entity.GameInvite, error) {
	key := inviteKey(id)

	var resolved *entity.GameInvite

	err := that.client.Watch(ctx, func(tx *redis.Tx) error {
		response, err := tx.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return apperror.ErrInviteNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get invite by ID: %w", err)
		}

		var invite entity.GameInvite
		if err = json.Unmarshal([]byte(response), &invite); err != nil {
			return fmt.Errorf("failed to unmarshal invite: %w", err)
		}

		if !invite.IsPending() {
			return apperror.ErrInviteNotFound
		}

		invite.Status = status

		inviteJSON, err := json.Marshal(&invite)
		if err != nil {
			return fmt.Errorf("could not marshal invite: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, inviteJSON, 0)
			pipe.SRem(ctx, that.indexKey(&invite), invite.ID)
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to set invite: %w", err)
		}

		resolved = &invite

		return nil
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return nil, apperror.ErrInviteNotFound
	}
	if err != nil {
		return nil, err
	}

	return resolved, nil
}
