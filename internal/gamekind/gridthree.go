package gamekind

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/gamehub-backend/internal/apperror"
	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
)

const gridThreeCells = 9

// Scan order is fixed so the first satisfied line decides the winner.
var gridThreeLines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

type gridState struct {
	Board []string `json:"board"`
}

func newGridState(cells int) gridState {
	return gridState{Board: make([]string, cells)}
}

func parseGridState(raw json.RawMessage) (gridState, error) {
	var state gridState
	if err := json.Unmarshal(raw, &state); err != nil {
		return gridState{}, fmt.Errorf("failed to unmarshal grid state: %w", err)
	}

	return state, nil
}

func (that gridState) isFull() bool {
	for _, cell := range that.Board {
		if cell == emptyCell {
			return false
		}
	}

	return true
}

type gridThreeRules struct{}

func (gridThreeRules) InitialState(_ Setup) (json.RawMessage, error) {
	return json.Marshal(newGridState(gridThreeCells))
}

func (gridThreeRules) InitialTurn(setup Setup) entity.TurnPolicy {
	return entity.FixedTurn(setup.Players.Player1ID)
}

func (gridThreeRules) ValidateMove(raw json.RawMessage, _ string, _ Players, input entity.MoveInput) error {
	state, err := parseGridState(raw)
	if err != nil {
		return err
	}

	if input.Cell == nil {
		return fmt.Errorf("%w: cell is required", apperror.ErrIllegalMove)
	}

	cell := *input.Cell
	if cell < 0 || cell >= gridThreeCells {
		return fmt.Errorf("%w: cell %d out of range", apperror.ErrIllegalMove, cell)
	}

	if state.Board[cell] != emptyCell {
		return fmt.Errorf("%w: cell %d is occupied", apperror.ErrIllegalMove, cell)
	}

	return nil
}

func (gridThreeRules) ApplyMove(raw json.RawMessage, actor string, players Players, input entity.MoveInput) (json.RawMessage, error) {
	state, err := parseGridState(raw)
	if err != nil {
		return nil, err
	}

	state.Board[*input.Cell] = players.markFor(actor)

	return json.Marshal(state)
}

func (gridThreeRules) CheckTerminal(raw json.RawMessage, players Players) (Outcome, error) {
	state, err := parseGridState(raw)
	if err != nil {
		return Outcome{}, err
	}

	for _, line := range gridThreeLines {
		a, b, c := state.Board[line[0]], state.Board[line[1]], state.Board[line[2]]
		if a != emptyCell && a == b && b == c {
			return WonBy(players.ownerOf(a)), nil
		}
	}

	if state.isFull() {
		return Drawn(), nil
	}

	return StillActive(), nil
}

func (gridThreeRules) NextTurn(actor string, players Players) entity.TurnPolicy {
	return entity.FixedTurn(players.Opponent(actor))
}
