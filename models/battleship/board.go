package battleship

import (
	cerr "github.com/saeidalz13/naval-battle/internal/error"
)

// Board is one side's grid plus the ships placed on it. It has no exported
// mutators: ships are added by the placement funcs and cells change only
// through ReceiveShot.
type Board struct {
	cells [GridSize][GridSize]Cell
	ships []*Ship
}

func NewBoard() *Board {
	b := &Board{
		ships: make([]*Ship, 0, FleetSize),
	}

	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			b.cells[row][col] = Cell{
				Coordinates: NewCoordinates(row, col),
				State:       CellStateWater,
				Ship:        NoShip,
			}
		}
	}
	return b
}

func (b *Board) CellAt(row, col int) (Cell, error) {
	if !inBounds(row, col) {
		return Cell{}, cerr.ErrXorYOutOfGridBound(row, col)
	}
	return b.cells[row][col], nil
}

// cell assumes the coordinates were bound checked by the caller.
func (b *Board) cell(row, col int) *Cell {
	return &b.cells[row][col]
}

func (b *Board) Ship(id ShipID) (Ship, bool) {
	sh := b.ship(id)
	if sh == nil {
		return Ship{}, false
	}
	return *sh, true
}

func (b *Board) ship(id ShipID) *Ship {
	if id < 0 || int(id) >= len(b.ships) {
		return nil
	}
	return b.ships[id]
}

func (b *Board) Ships() []Ship {
	ships := make([]Ship, 0, len(b.ships))
	for _, sh := range b.ships {
		ships = append(ships, *sh)
	}
	return ships
}

func (b *Board) ShipCount() int {
	return len(b.ships)
}

// ShipCells lists, in row-major order, every cell that references the ship.
func (b *Board) ShipCells(id ShipID) []Coordinates {
	coords := make([]Coordinates, 0, MaxShipSize)
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if b.cells[row][col].Ship == id {
				coords = append(coords, NewCoordinates(row, col))
			}
		}
	}
	return coords
}

func (b *Board) CountState(state CellState) int {
	count := 0
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if b.cells[row][col].State == state {
				count++
			}
		}
	}
	return count
}

func (b *Board) Grid() Grid {
	var grid Grid
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			grid[row][col] = b.cells[row][col].State
		}
	}
	return grid
}

// sizeCounts maps ship size to the number of placed ships of that size.
func (b *Board) sizeCounts() map[int]int {
	counts := make(map[int]int, MaxShipSize)
	for _, sh := range b.ships {
		counts[sh.Size]++
	}
	return counts
}

// IsFleetComplete reports whether the placed ships are exactly the catalog.
func (b *Board) IsFleetComplete() bool {
	if len(b.ships) != FleetSize {
		return false
	}

	counts := b.sizeCounts()
	for size, want := range FleetQuota() {
		if counts[size] != want {
			return false
		}
	}
	return true
}
