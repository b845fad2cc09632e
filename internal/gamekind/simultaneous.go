package gamekind

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/gamehub-backend/internal/apperror"
	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
)

const (
	ChoiceRock     = "rock"
	ChoicePaper    = "paper"
	ChoiceScissors = "scissors"
)

var beats = map[string]string{
	ChoiceRock:     ChoiceScissors,
	ChoiceScissors: ChoicePaper,
	ChoicePaper:    ChoiceRock,
}

type choiceState struct {
	Choice1 string `json:"choice1,omitempty"`
	Choice2 string `json:"choice2,omitempty"`
}

func parseChoiceState(raw json.RawMessage) (choiceState, error) {
	var state choiceState
	if err := json.Unmarshal(raw, &state); err != nil {
		return choiceState{}, fmt.Errorf("failed to unmarshal choice state: %w", err)
	}

	return state, nil
}

func (that choiceState) choiceOf(actor string, players Players) string {
	if actor == players.Player1ID {
		return that.Choice1
	}

	return that.Choice2
}

type simultaneousRules struct{}

func (simultaneousRules) InitialState(_ Setup) (json.RawMessage, error) {
	return json.Marshal(choiceState{})
}

// Both players may move at any time until the round resolves.
func (simultaneousRules) InitialTurn(_ Setup) entity.TurnPolicy {
	return entity.EitherTurn()
}

func (simultaneousRules) ValidateMove(raw json.RawMessage, actor string, players Players, input entity.MoveInput) error {
	state, err := parseChoiceState(raw)
	if err != nil {
		return err
	}

	if state.choiceOf(actor, players) != "" {
		return apperror.ErrAlreadyMoved
	}

	if _, ok := beats[input.Choice]; !ok {
		return fmt.Errorf("%w: unknown choice %q", apperror.ErrIllegalMove, input.Choice)
	}

	return nil
}

func (simultaneousRules) ApplyMove(raw json.RawMessage, actor string, players Players, input entity.MoveInput) (json.RawMessage, error) {
	state, err := parseChoiceState(raw)
	if err != nil {
		return nil, err
	}

	if actor == players.Player1ID {
		state.Choice1 = input.Choice
	} else {
		state.Choice2 = input.Choice
	}

	return json.Marshal(state)
}

func (simultaneousRules) CheckTerminal(raw json.RawMessage, players Players) (Outcome, error) {
	state, err := parseChoiceState(raw)
	if err != nil {
		return Outcome{}, err
	}

	// The round only resolves once both choices are in.
	if state.Choice1 == "" || state.Choice2 == "" {
		return StillActive(), nil
	}

	if state.Choice1 == state.Choice2 {
		return Drawn(), nil
	}

	if beats[state.Choice1] == state.Choice2 {
		return WonBy(players.Player1ID), nil
	}

	return WonBy(players.Player2ID), nil
}

func (simultaneousRules) NextTurn(_ string, _ Players) entity.TurnPolicy {
	return entity.EitherTurn()
}
