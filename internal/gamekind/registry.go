// Package gamekind holds the rules for every supported game kind: initial
// state, move legality, state mutation and terminal detection. It is the only
// package that looks inside a session's state payload.
package gamekind

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/gamehub-backend/internal/apperror"
	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
)

const (
	MarkX = "X"
	MarkO = "O"

	emptyCell = ""
)

const (
	OutcomeActive = "active"
	OutcomeWinner = "winner"
	OutcomeDraw   = "draw"
)

// Outcome is the terminal determination after a move: the session continues,
// is won by a player, or is drawn.
type Outcome struct {
	Result   string
	WinnerID string
}

func StillActive() Outcome {
	return Outcome{Result: OutcomeActive}
}

func WonBy(playerID string) Outcome {
	return Outcome{Result: OutcomeWinner, WinnerID: playerID}
}

func Drawn() Outcome {
	return Outcome{Result: OutcomeDraw}
}

// Players are the two seated players of a session. Player1 always plays X.
type Players struct {
	Player1ID string
	Player2ID string
}

func (that Players) Opponent(userID string) string {
	if userID == that.Player1ID {
		return that.Player2ID
	}

	return that.Player1ID
}

func (that Players) markFor(userID string) string {
	if userID == that.Player1ID {
		return MarkX
	}

	return MarkO
}

func (that Players) ownerOf(mark string) string {
	if mark == MarkX {
		return that.Player1ID
	}

	return that.Player2ID
}

// Setup carries everything a kind needs to build its initial state.
type Setup struct {
	Players       Players
	StartingState string
}

// Rules is implemented once per kind. ApplyMove must only be called after
// ValidateMove succeeds; both are pure with respect to stored state.
type Rules interface {
	InitialState(setup Setup) (json.RawMessage, error)
	InitialTurn(setup Setup) entity.TurnPolicy

	ValidateMove(state json.RawMessage, actor string, players Players, input entity.MoveInput) error
	ApplyMove(state json.RawMessage, actor string, players Players, input entity.MoveInput) (json.RawMessage, error)

	CheckTerminal(state json.RawMessage, players Players) (Outcome, error)
	NextTurn(actor string, players Players) entity.TurnPolicy
}

// Adding a kind means adding one entry here; nothing outside this package
// branches on kind.
var registry = map[entity.Kind]Rules{
	entity.KindGridThree:           gridThreeRules{},
	entity.KindGridFour:            gridFourRules{},
	entity.KindSimultaneousChoice:  simultaneousRules{},
	entity.KindArithmeticRace:      arithmeticRules{},
	entity.KindNotationPassthrough: notationRules{},
}

// For returns the rules for a kind.
func For(kind entity.Kind) (Rules, error) {
	rules, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrUnknownGameKind, kind)
	}

	return rules, nil
}
