package entity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rocketscienceinc/gamehub-backend/internal/apperror"
)

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusDraw      = "draw"
)

// GameSession is a single in-progress or finished game between two players
// (or a player and a group slot). State is opaque everywhere except inside
// the gamekind package for the matching kind.
type GameSession struct {
	ID        string          `json:"id"`
	Kind      Kind            `json:"kind"`
	Player1ID string          `json:"player1_id"`
	Player2ID string          `json:"player2_id,omitempty"`
	GroupID   string          `json:"group_id,omitempty"`
	State     json.RawMessage `json:"state"`
	Status    string          `json:"status"`
	Turn      TurnPolicy      `json:"turn"`
	WinnerID  string          `json:"winner_id,omitempty"`
	Version   int64           `json:"version"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (that *GameSession) IsActive() bool {
	return that.Status == StatusActive
}

func (that *GameSession) IsCompleted() bool {
	return that.Status == StatusCompleted
}

func (that *GameSession) IsDraw() bool {
	return that.Status == StatusDraw
}

// ConfirmActiveState returns ErrGameOver for any terminal status.
func (that *GameSession) ConfirmActiveState() error {
	switch that.Status {
	case StatusActive:
		return nil
	case StatusCompleted, StatusDraw:
		return apperror.ErrGameOver
	default:
		return fmt.Errorf("unknown session status: %s", that.Status)
	}
}

// HasPlayer reports whether the user is one of the two seated players.
func (that *GameSession) HasPlayer(userID string) bool {
	return userID != "" && (that.Player1ID == userID || that.Player2ID == userID)
}

// CanBeSeenBy reports whether the principal may read this session: seated
// player, or member of the session's group when one is set.
func (that *GameSession) CanBeSeenBy(principal *Principal) bool {
	if that.HasPlayer(principal.UserID) {
		return true
	}

	return that.GroupID != "" && principal.InGroup(that.GroupID)
}

// Opponent returns the other seated player's id, or "" if there is none.
func (that *GameSession) Opponent(userID string) string {
	switch userID {
	case that.Player1ID:
		return that.Player2ID
	case that.Player2ID:
		return that.Player1ID
	default:
		return ""
	}
}
