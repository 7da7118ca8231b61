package error

import (
	"errors"
	"fmt"
)

const (
	ConstErrAttackFailed    = "attack operation failed"
	ConstErrPlacementFailed = "ship placement failed"
)

// Kinds callers check with errors.Is. The constructor funcs below wrap
// them with the coordinates or ids involved.
var (
	ErrOutOfBounds   = errors.New("out of grid bound")
	ErrOverlap       = errors.New("position already occupied by a ship")
	ErrFleetQuota    = errors.New("no ship of this size left to place")
	ErrAlreadyShot   = errors.New("position already shot")
	ErrNoTargetsLeft = errors.New("no unfired position left")

	ErrWrongPhase    = errors.New("operation not allowed in current game state")
	ErrNotPlayerTurn = errors.New("not the player's turn")
	ErrGameOver      = errors.New("game is over")
	ErrNoActiveGame  = errors.New("no active game")

	ErrIoFailure   = errors.New("snapshot io failure")
	ErrCorruptData = errors.New("snapshot data is corrupt")

	ErrSessionNotFound = errors.New("session not found")
	ErrSessionBusy     = errors.New("another session is holding the game")
	ErrSignalAbsent    = errors.New("incoming message has no 'code' field")
)

func ErrXorYOutOfGridBound(row, col int) error {
	return fmt.Errorf("%w\trow: %d\tcol: %d", ErrOutOfBounds, row, col)
}

func ErrShipOutOfGridBound(row, col, size int, horizontal bool) error {
	return fmt.Errorf("%w: ship does not fit\trow: %d\tcol: %d\tsize: %d\thorizontal: %t", ErrOutOfBounds, row, col, size, horizontal)
}

func ErrInvalidShipSize(size int) error {
	return fmt.Errorf("%w: invalid ship size %d", ErrOutOfBounds, size)
}

func ErrPositionOccupied(row, col int) error {
	return fmt.Errorf("%w\trow: %d\tcol: %d", ErrOverlap, row, col)
}

func ErrNoShipOfSizeLeft(size int) error {
	return fmt.Errorf("%w\tsize: %d", ErrFleetQuota, size)
}

func ErrAttackPositionAlreadyShot(row, col int) error {
	return fmt.Errorf("%w in previous rounds\trow: %d\tcol: %d", ErrAlreadyShot, row, col)
}

func ErrFleetPlacementFailed(size int) error {
	return fmt.Errorf("%w: could not find a slot for ship of size %d", ErrOverlap, size)
}

func ErrGameNotInState(state string) error {
	return fmt.Errorf("%w\tstate: %s", ErrWrongPhase, state)
}

func ErrGameFinished(gameUuid string) error {
	return fmt.Errorf("%w\tgame: %s", ErrGameOver, gameUuid)
}

func ErrSnapshotIo(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrIoFailure, op, err)
}

func ErrSnapshotCorrupt(reason string) error {
	return fmt.Errorf("%w: %s", ErrCorruptData, reason)
}

func ErrSessionNotExist(sessionId string) error {
	return fmt.Errorf("%w, id: %s", ErrSessionNotFound, sessionId)
}
