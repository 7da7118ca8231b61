package battleship

import "context"

const (
	PlayerMatchStatusLost      = -1
	PlayerMatchStatusUndefined = 0
	PlayerMatchStatusWon       = 1

	GameResultVictory = "Victory"
	GameResultDefeat  = "Defeat"
)

// GameResult is the one-line record emitted when a game concludes.
type GameResult struct {
	GameUuid   string
	PlayerName string
	// Machine ships the player sank.
	ShipsSunk int
	Result    string
	Shots     int
}

// ResultNotifier receives the result of every concluded game. Errors are
// logged by the game and otherwise ignored.
type ResultNotifier interface {
	RecordResult(ctx context.Context, result GameResult) error
}

// MatchStatus is the human player's standing in the game.
func (g *Game) MatchStatus() int {
	switch g.state {
	case GameStateVictory:
		return PlayerMatchStatusWon
	case GameStateDefeat:
		return PlayerMatchStatusLost
	default:
		return PlayerMatchStatusUndefined
	}
}

func (g *Game) Result() GameResult {
	result := GameResult{
		GameUuid:   g.uuid,
		PlayerName: g.playerName,
		ShipsSunk:  SunkShips(g.machine),
		Shots:      g.shots,
	}

	switch g.state {
	case GameStateVictory:
		result.Result = GameResultVictory
	case GameStateDefeat:
		result.Result = GameResultDefeat
	}
	return result
}
