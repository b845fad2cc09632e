package entity

const (
	TurnModePlayer = "player"
	TurnModeEither = "either"
	TurnModeNone   = "none"
)

// TurnPolicy says who may submit the next move. It replaces the old
// "nullable current_turn_id" convention that overloaded null to mean both
// "any participant may move" and "no more moves".
type TurnPolicy struct {
	Mode     string `json:"mode"`
	PlayerID string `json:"player_id,omitempty"`
}

func FixedTurn(playerID string) TurnPolicy {
	return TurnPolicy{Mode: TurnModePlayer, PlayerID: playerID}
}

func EitherTurn() TurnPolicy {
	return TurnPolicy{Mode: TurnModeEither}
}

func NoTurn() TurnPolicy {
	return TurnPolicy{Mode: TurnModeNone}
}

// Allows reports whether the given player may submit the next move.
func (that TurnPolicy) Allows(playerID string) bool {
	switch that.Mode {
	case TurnModeEither:
		return true
	case TurnModePlayer:
		return that.PlayerID == playerID
	default:
		return false
	}
}
