package battleship

import (
	"errors"
	"testing"

	cerr "github.com/saeidalz13/naval-battle/internal/error"
)

func TestReceiveShotSinkPropagation(t *testing.T) {
	b := NewBoard()
	id, err := PlaceShip(b, NewCoordinates(3, 0), 4, "Carrier", true)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		col      int
		expected ShotResult
	}{
		{name: "first hit", col: 0, expected: ShotHit},
		{name: "second hit", col: 1, expected: ShotHit},
		{name: "third hit", col: 2, expected: ShotHit},
		{name: "last cell sinks", col: 3, expected: ShotSunk},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			outcome, err := ReceiveShot(b, 3, test.col)
			if err != nil {
				t.Fatal(err)
			}
			if outcome.Result != test.expected {
				t.Fatalf("expected %s, got %s", test.expected, outcome.Result)
			}
			if outcome.Ship != id {
				t.Fatalf("expected ship %d, got %d", id, outcome.Ship)
			}
		})
	}

	for col := 0; col < 4; col++ {
		cell, _ := b.CellAt(3, col)
		if cell.State != CellStateSunk {
			t.Errorf("cell 3,%d: expected sunk, got %s", col, cell.State)
		}
	}
	if sh, _ := b.Ship(id); !sh.IsSunk() || sh.Hits() != 4 {
		t.Fatalf("expected sunk ship with 4 hits, got %+v", sh)
	}
}

func TestReceiveShotMiss(t *testing.T) {
	b := NewBoard()

	outcome, err := ReceiveShot(b, 9, 9)
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Result != ShotMiss || outcome.Ship != NoShip {
		t.Fatalf("expected a miss, got %+v", outcome)
	}

	cell, _ := b.CellAt(9, 9)
	if cell.State != CellStateMiss {
		t.Fatalf("expected miss state, got %s", cell.State)
	}
}

func TestReceiveShotIsIdempotent(t *testing.T) {
	tests := []struct {
		name     string
		row, col int
	}{
		{name: "water cell", row: 7, col: 7},
		{name: "ship cell", row: 0, col: 1},
		{name: "sunk cell", row: 8, col: 0},
	}

	b := NewBoard()
	placeTestLayout(t, b)

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := ReceiveShot(b, test.row, test.col); err != nil {
				t.Fatal(err)
			}
			before := snapshotBoard(b)

			_, err := ReceiveShot(b, test.row, test.col)
			if !errors.Is(err, cerr.ErrAlreadyShot) {
				t.Fatalf("expected already shot error, got %v", err)
			}

			after := snapshotBoard(b)
			if before.Cells != after.Cells {
				t.Fatal("second shot changed the cells")
			}
			for i := range before.Ships {
				if before.Ships[i] != after.Ships[i] {
					t.Fatalf("second shot changed ship %d", i)
				}
			}
		})
	}
}

func TestReceiveShotOutOfBounds(t *testing.T) {
	b := NewBoard()
	if _, err := ReceiveShot(b, -1, 4); !errors.Is(err, cerr.ErrOutOfBounds) {
		t.Fatalf("expected out of bounds error, got %v", err)
	}
	if b.CountState(CellStateWater) != GridSize*GridSize {
		t.Fatal("out of bounds shot mutated the board")
	}
}

func TestSunkShipsDedupesByShip(t *testing.T) {
	b := NewBoard()
	placeTestLayout(t, b)

	// carrier spans four cells but counts once
	for col := 0; col < 4; col++ {
		if _, err := ReceiveShot(b, 0, col); err != nil {
			t.Fatal(err)
		}
	}
	if sunk := SunkShips(b); sunk != 1 {
		t.Fatalf("expected 1 sunk ship, got %d", sunk)
	}
}

func TestAllSunk(t *testing.T) {
	b := NewBoard()
	placeTestLayout(t, b)

	ships := b.Ships()
	for i, sh := range ships {
		if AllSunk(b) {
			t.Fatalf("all sunk reported with %d of %d ships sunk", i, len(ships))
		}
		for _, c := range b.ShipCells(sh.Id) {
			if _, err := ReceiveShot(b, c.Row, c.Col); err != nil {
				t.Fatal(err)
			}
		}
		if sunk := SunkShips(b); sunk != i+1 {
			t.Fatalf("expected %d sunk ships, got %d", i+1, sunk)
		}
	}

	if !AllSunk(b) {
		t.Fatal("expected all ships sunk")
	}
}

func TestAllSunkNeedsFullFleet(t *testing.T) {
	b := NewBoard()
	if _, err := PlaceShip(b, NewCoordinates(0, 0), 1, "Frigate", true); err != nil {
		t.Fatal(err)
	}
	if _, err := ReceiveShot(b, 0, 0); err != nil {
		t.Fatal(err)
	}
	if AllSunk(b) {
		t.Fatal("a partial fleet cannot be all sunk")
	}
}
