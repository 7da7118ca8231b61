package connection

const (
	CodeSessionID uint8 = iota
	CodeReceivedInvalidSessionID
	// Another client already holds the game
	CodeSessionBusy

	CodeNewGame
	CodeResumeGame
	CodePlaceShip
	CodePlaceFleetRandomly
	CodeStartGame
	CodeAttack
	CodeBoardState
	CodeEndGame
	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent
)
