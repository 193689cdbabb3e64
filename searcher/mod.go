package searcher

import (
	"reversi/game"
	"reversi/utils"
)

type Outcome int

const (
	Lose Outcome = iota
	Win
	Draw
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "WIN"
	case Lose:
		return "LOSE"
	default:
		return "DRAW"
	}
}

// Classify turns the top stones of a finished game into an outcome for player.
// More than one top stone is a draw, whether or not player is among them.
func Classify(top []game.Stone, player game.Stone) Outcome {
	if len(top) != 1 {
		return Draw
	}
	if utils.FindIndex(top, player) == 0 {
		return Win
	}
	return Lose
}
