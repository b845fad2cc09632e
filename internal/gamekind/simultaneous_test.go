package gamekind

import (
	"testing"

	"github.com/rocketscienceinc/gamehub-backend/internal/apperror"
	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func choiceInput(choice string) entity.MoveInput {
	return entity.MoveInput{Choice: choice}
}

func TestSimultaneous_InitialState(t *testing.T) {
	rules := simultaneousRules{}

	// Given: a fresh setup
	state, err := rules.InitialState(Setup{Players: testPlayers})
	require.NoError(t, err)

	// When: checking terminal state with no choices recorded
	outcome, err := rules.CheckTerminal(state, testPlayers)
	require.NoError(t, err)

	// Then: the round is still open and either player may move
	assert.Equal(t, OutcomeActive, outcome.Result)
	assert.Equal(t, entity.EitherTurn(), rules.InitialTurn(Setup{Players: testPlayers}))
}

func TestSimultaneous_MoveValidation(t *testing.T) {
	rules := simultaneousRules{}

	t.Run("Rejects an unknown choice", func(t *testing.T) {
		// Given: a fresh round
		state, err := rules.InitialState(Setup{Players: testPlayers})
		require.NoError(t, err)

		// When: submitting something that is not rock, paper or scissors
		err = rules.ValidateMove(state, "alice", testPlayers, choiceInput("lizard"))

		// Then: it should be an illegal move
		assert.ErrorIs(t, err, apperror.ErrIllegalMove)
	})

	t.Run("Rejects a second choice from the same player", func(t *testing.T) {
		// Given: alice has already chosen
		state, err := rules.InitialState(Setup{Players: testPlayers})
		require.NoError(t, err)

		state, err = rules.ApplyMove(state, "alice", testPlayers, choiceInput(ChoiceRock))
		require.NoError(t, err)

		// When: alice submits again before the round resolves
		err = rules.ValidateMove(state, "alice", testPlayers, choiceInput(ChoicePaper))

		// Then: it should be ErrAlreadyMoved
		assert.ErrorIs(t, err, apperror.ErrAlreadyMoved)

		// And: the round has not resolved on one choice
		outcome, err := rules.CheckTerminal(state, testPlayers)
		require.NoError(t, err)
		assert.Equal(t, OutcomeActive, outcome.Result)
	})
}

func TestSimultaneous_Resolution(t *testing.T) {
	rules := simultaneousRules{}

	tests := []struct {
		name    string
		choice1 string
		choice2 string
		result  string
		winner  string
	}{
		{"Rock beats scissors", ChoiceRock, ChoiceScissors, OutcomeWinner, "alice"},
		{"Scissors beats paper", ChoicePaper, ChoiceScissors, OutcomeWinner, "bob"},
		{"Paper beats rock", ChoicePaper, ChoiceRock, OutcomeWinner, "alice"},
		{"Equal choices draw", ChoiceRock, ChoiceRock, OutcomeDraw, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given: both players have chosen
			state, err := rules.InitialState(Setup{Players: testPlayers})
			require.NoError(t, err)

			state, err = rules.ApplyMove(state, "alice", testPlayers, choiceInput(tt.choice1))
			require.NoError(t, err)

			state, err = rules.ApplyMove(state, "bob", testPlayers, choiceInput(tt.choice2))
			require.NoError(t, err)

			// When: checking terminal state
			outcome, err := rules.CheckTerminal(state, testPlayers)
			require.NoError(t, err)

			// Then: the round resolves with the expected result
			assert.Equal(t, tt.result, outcome.Result)
			assert.Equal(t, tt.winner, outcome.WinnerID)
		})
	}
}
