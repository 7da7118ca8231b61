package error

import (
	"errors"
	"testing"
)

func TestConstructorsWrapKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{name: "cell out of grid", err: ErrXorYOutOfGridBound(10, 3), kind: ErrOutOfBounds},
		{name: "ship out of grid", err: ErrShipOutOfGridBound(9, 8, 3, true), kind: ErrOutOfBounds},
		{name: "invalid size", err: ErrInvalidShipSize(7), kind: ErrOutOfBounds},
		{name: "occupied", err: ErrPositionOccupied(1, 1), kind: ErrOverlap},
		{name: "quota", err: ErrNoShipOfSizeLeft(4), kind: ErrFleetQuota},
		{name: "already shot", err: ErrAttackPositionAlreadyShot(2, 2), kind: ErrAlreadyShot},
		{name: "wrong phase", err: ErrGameNotInState("setup"), kind: ErrWrongPhase},
		{name: "game over", err: ErrGameFinished("abc123"), kind: ErrGameOver},
		{name: "snapshot io", err: ErrSnapshotIo("save", errors.New("disk full")), kind: ErrIoFailure},
		{name: "snapshot corrupt", err: ErrSnapshotCorrupt("bad cell"), kind: ErrCorruptData},
		{name: "session", err: ErrSessionNotExist("xyz"), kind: ErrSessionNotFound},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if !errors.Is(test.err, test.kind) {
				t.Fatalf("%q does not wrap %q", test.err, test.kind)
			}
		})
	}

	if errors.Is(ErrPositionOccupied(1, 1), ErrOutOfBounds) {
		t.Fatal("overlap must not match out of bounds")
	}
}
