package gamekind

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"

	"github.com/rocketscienceinc/gamehub-backend/internal/apperror"
	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
)

const arithmeticMaxOperand = 50

type arithmeticState struct {
	Problem  string `json:"problem"`
	Expected int    `json:"expected"`
	SolvedBy string `json:"solved_by,omitempty"`
}

func parseArithmeticState(raw json.RawMessage) (arithmeticState, error) {
	var state arithmeticState
	if err := json.Unmarshal(raw, &state); err != nil {
		return arithmeticState{}, fmt.Errorf("failed to unmarshal arithmetic state: %w", err)
	}

	return state, nil
}

type arithmeticRules struct{}

func (arithmeticRules) InitialState(_ Setup) (json.RawMessage, error) {
	a := rand.Intn(arithmeticMaxOperand) + 1 //nolint: gosec // not a secret
	b := rand.Intn(arithmeticMaxOperand) + 1 //nolint: gosec // not a secret

	state := arithmeticState{
		Problem:  fmt.Sprintf("%d + %d", a, b),
		Expected: a + b,
	}

	return json.Marshal(state)
}

func (arithmeticRules) InitialTurn(_ Setup) entity.TurnPolicy {
	return entity.EitherTurn()
}

// A wrong or malformed answer is rejected outright: it mutates nothing and
// consumes no turn, so the race stays open for both players.
func (arithmeticRules) ValidateMove(raw json.RawMessage, _ string, _ Players, input entity.MoveInput) error {
	state, err := parseArithmeticState(raw)
	if err != nil {
		return err
	}

	answer, err := strconv.Atoi(input.Answer)
	if err != nil {
		return fmt.Errorf("%w: answer %q is not a number", apperror.ErrIllegalMove, input.Answer)
	}

	if answer != state.Expected {
		return fmt.Errorf("%w: wrong answer", apperror.ErrIllegalMove)
	}

	return nil
}

func (arithmeticRules) ApplyMove(raw json.RawMessage, actor string, _ Players, _ entity.MoveInput) (json.RawMessage, error) {
	state, err := parseArithmeticState(raw)
	if err != nil {
		return nil, err
	}

	state.SolvedBy = actor

	return json.Marshal(state)
}

func (arithmeticRules) CheckTerminal(raw json.RawMessage, _ Players) (Outcome, error) {
	state, err := parseArithmeticState(raw)
	if err != nil {
		return Outcome{}, err
	}

	if state.SolvedBy != "" {
		return WonBy(state.SolvedBy), nil
	}

	return StillActive(), nil
}

func (arithmeticRules) NextTurn(_ string, _ Players) entity.TurnPolicy {
	return entity.EitherTurn()
}
