package battleship

import (
	cerr "github.com/saeidalz13/naval-battle/internal/error"
)

type ShotResult uint8

const (
	ShotMiss ShotResult = iota
	ShotHit
	ShotSunk
)

func (r ShotResult) String() string {
	switch r {
	case ShotMiss:
		return "miss"
	case ShotHit:
		return "hit"
	case ShotSunk:
		return "sunk"
	default:
		return "unknown"
	}
}

// ShotOutcome is the result of one shot. Ship is set for hits and sinks.
type ShotOutcome struct {
	Result ShotResult
	Ship   ShipID
}

// ReceiveShot resolves a shot fired at the board. Firing at a cell that was
// already shot returns an error and changes nothing.
func ReceiveShot(b *Board, row, col int) (ShotOutcome, error) {
	if !inBounds(row, col) {
		return ShotOutcome{Ship: NoShip}, cerr.ErrXorYOutOfGridBound(row, col)
	}

	cell := b.cell(row, col)
	if cell.State.IsFired() {
		return ShotOutcome{Ship: NoShip}, cerr.ErrAttackPositionAlreadyShot(row, col)
	}

	if cell.State == CellStateWater {
		cell.State = CellStateMiss
		return ShotOutcome{Result: ShotMiss, Ship: NoShip}, nil
	}

	cell.State = CellStateHit
	sh := b.ship(cell.Ship)
	sh.GotHit()

	if !sh.IsSunk() {
		return ShotOutcome{Result: ShotHit, Ship: sh.Id}, nil
	}

	for _, c := range b.ShipCells(sh.Id) {
		b.cell(c.Row, c.Col).State = CellStateSunk
	}
	return ShotOutcome{Result: ShotSunk, Ship: sh.Id}, nil
}

// SunkShips counts the distinct sunk ships found by scanning the cells.
func SunkShips(b *Board) int {
	sunk, _ := scanShips(b)
	return sunk
}

// AllSunk reports whether the board holds a full fleet and every ship of it
// is sunk.
func AllSunk(b *Board) bool {
	sunk, total := scanShips(b)
	return total == FleetSize && sunk == total
}

func scanShips(b *Board) (sunk, total int) {
	seen := make(map[ShipID]struct{}, FleetSize)
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			id := b.cells[row][col].Ship
			if id == NoShip {
				continue
			}
			if _, prs := seen[id]; prs {
				continue
			}
			seen[id] = struct{}{}

			total++
			if sh := b.ship(id); sh != nil && sh.IsSunk() {
				sunk++
			}
		}
	}
	return sunk, total
}
