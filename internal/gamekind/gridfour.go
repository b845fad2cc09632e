package gamekind

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/gamehub-backend/internal/apperror"
	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
)

const (
	gridFourCols  = 7
	gridFourRows  = 6
	gridFourCells = gridFourCols * gridFourRows
	gridFourRun   = 4
)

// Run directions: east, south, south-east, south-west. Combined with the
// row-major cell scan this fixes which run is reported first.
var gridFourDirections = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

type gridFourRules struct{}

func (gridFourRules) InitialState(_ Setup) (json.RawMessage, error) {
	return json.Marshal(newGridState(gridFourCells))
}

func (gridFourRules) InitialTurn(setup Setup) entity.TurnPolicy {
	return entity.FixedTurn(setup.Players.Player1ID)
}

func (gridFourRules) ValidateMove(raw json.RawMessage, _ string, _ Players, input entity.MoveInput) error {
	state, err := parseGridState(raw)
	if err != nil {
		return err
	}

	if input.Column == nil {
		return fmt.Errorf("%w: column is required", apperror.ErrIllegalMove)
	}

	col := *input.Column
	if col < 0 || col >= gridFourCols {
		return fmt.Errorf("%w: column %d out of range", apperror.ErrIllegalMove, col)
	}

	if dropRow(state, col) < 0 {
		return fmt.Errorf("%w: column %d is full", apperror.ErrIllegalMove, col)
	}

	return nil
}

func (gridFourRules) ApplyMove(raw json.RawMessage, actor string, players Players, input entity.MoveInput) (json.RawMessage, error) {
	state, err := parseGridState(raw)
	if err != nil {
		return nil, err
	}

	col := *input.Column

	row := dropRow(state, col)
	if row < 0 {
		return nil, fmt.Errorf("%w: column %d is full", apperror.ErrIllegalMove, col)
	}

	state.Board[row*gridFourCols+col] = players.markFor(actor)

	return json.Marshal(state)
}

func (gridFourRules) CheckTerminal(raw json.RawMessage, players Players) (Outcome, error) {
	state, err := parseGridState(raw)
	if err != nil {
		return Outcome{}, err
	}

	for row := 0; row < gridFourRows; row++ {
		for col := 0; col < gridFourCols; col++ {
			mark := state.Board[row*gridFourCols+col]
			if mark == emptyCell {
				continue
			}

			for _, dir := range gridFourDirections {
				if hasRun(state, row, col, dir[0], dir[1], mark) {
					return WonBy(players.ownerOf(mark)), nil
				}
			}
		}
	}

	if state.isFull() {
		return Drawn(), nil
	}

	return StillActive(), nil
}

func (gridFourRules) NextTurn(actor string, players Players) entity.TurnPolicy {
	return entity.FixedTurn(players.Opponent(actor))
}

// dropRow returns the lowest empty row of a column, or -1 if the column is full.
func dropRow(state gridState, col int) int {
	for row := gridFourRows - 1; row >= 0; row-- {
		if state.Board[row*gridFourCols+col] == emptyCell {
			return row
		}
	}

	return -1
}

func hasRun(state gridState, row, col, dRow, dCol int, mark string) bool {
	for i := 0; i < gridFourRun; i++ {
		r, c := row+i*dRow, col+i*dCol
		if r < 0 || r >= gridFourRows || c < 0 || c >= gridFourCols {
			return false
		}

		if state.Board[r*gridFourCols+c] != mark {
			return false
		}
	}

	return true
}
