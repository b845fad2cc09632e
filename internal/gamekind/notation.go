package gamekind

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/gamehub-backend/internal/apperror"
	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
)

type notationState struct {
	Notation string `json:"notation"`
}

func parseNotationState(raw json.RawMessage) (notationState, error) {
	var state notationState
	if err := json.Unmarshal(raw, &state); err != nil {
		return notationState{}, fmt.Errorf("failed to unmarshal notation state: %w", err)
	}

	return state, nil
}

// notationRules stores externally validated notation (e.g. a chess FEN)
// verbatim. It checks neither legality nor termination: the session stays
// active until a higher layer ends it. This is a documented limitation.
type notationRules struct{}

func (notationRules) InitialState(setup Setup) (json.RawMessage, error) {
	return json.Marshal(notationState{Notation: setup.StartingState})
}

func (notationRules) InitialTurn(setup Setup) entity.TurnPolicy {
	return entity.FixedTurn(setup.Players.Player1ID)
}

func (notationRules) ValidateMove(_ json.RawMessage, _ string, _ Players, input entity.MoveInput) error {
	if input.Notation == "" {
		return fmt.Errorf("%w: notation is required", apperror.ErrIllegalMove)
	}

	return nil
}

func (notationRules) ApplyMove(_ json.RawMessage, _ string, _ Players, input entity.MoveInput) (json.RawMessage, error) {
	return json.Marshal(notationState{Notation: input.Notation})
}

func (notationRules) CheckTerminal(_ json.RawMessage, _ Players) (Outcome, error) {
	return StillActive(), nil
}

func (notationRules) NextTurn(actor string, players Players) entity.TurnPolicy {
	return entity.FixedTurn(players.Opponent(actor))
}
