package battleship

import (
	"math/rand"

	cerr "github.com/saeidalz13/naval-battle/internal/error"
)

const maxRandomPlacementAttempts = 100

// PlacementRules decides which placements are legal. The zero value only
// forbids overlap; NoTouching also forbids ships touching each other
// orthogonally or diagonally.
type PlacementRules struct {
	NoTouching bool
}

func IsValidPlacement(b *Board, origin Coordinates, size int, horizontal bool) bool {
	return PlacementRules{}.IsValidPlacement(b, origin, size, horizontal)
}

func PlaceShip(b *Board, origin Coordinates, size int, name string, horizontal bool) (ShipID, error) {
	return PlacementRules{}.PlaceShip(b, origin, size, name, horizontal)
}

func PlaceFleetRandomly(b *Board, rng *rand.Rand) error {
	return PlacementRules{}.PlaceFleetRandomly(b, rng)
}

func (r PlacementRules) IsValidPlacement(b *Board, origin Coordinates, size int, horizontal bool) bool {
	return r.validate(b, origin, size, horizontal) == nil
}

func (r PlacementRules) validate(b *Board, origin Coordinates, size int, horizontal bool) error {
	if size < MinShipSize || size > MaxShipSize {
		return cerr.ErrInvalidShipSize(size)
	}
	if !origin.InBounds() {
		return cerr.ErrXorYOutOfGridBound(origin.Row, origin.Col)
	}

	end := shipEnd(origin, size, horizontal)
	if !end.InBounds() {
		return cerr.ErrShipOutOfGridBound(origin.Row, origin.Col, size, horizontal)
	}

	for _, c := range shipSpan(origin, size, horizontal) {
		if b.cell(c.Row, c.Col).State != CellStateWater {
			return cerr.ErrPositionOccupied(c.Row, c.Col)
		}
		if r.NoTouching && b.touchesShip(c) {
			return cerr.ErrPositionOccupied(c.Row, c.Col)
		}
	}
	return nil
}

// PlaceShip validates and then commits the ship. On error the board is left
// untouched.
func (r PlacementRules) PlaceShip(b *Board, origin Coordinates, size int, name string, horizontal bool) (ShipID, error) {
	if err := r.validate(b, origin, size, horizontal); err != nil {
		return NoShip, err
	}

	id := ShipID(len(b.ships))
	b.ships = append(b.ships, newShip(id, size, name))

	for _, c := range shipSpan(origin, size, horizontal) {
		cell := b.cell(c.Row, c.Col)
		cell.State = CellStateShip
		cell.Ship = id
	}
	return id, nil
}

// PlaceFleetRandomly fills an empty board with the whole catalog. Each ship
// gets a bounded number of random tries, then the first valid slot of a
// row-major scan.
func (r PlacementRules) PlaceFleetRandomly(b *Board, rng *rand.Rand) error {
	for _, entry := range fleetCatalog {
		if _, err := r.placeRandomly(b, rng, entry); err != nil {
			return err
		}
	}
	return nil
}

func (r PlacementRules) placeRandomly(b *Board, rng *rand.Rand, entry FleetEntry) (ShipID, error) {
	for attempt := 0; attempt < maxRandomPlacementAttempts; attempt++ {
		origin := NewCoordinates(rng.Intn(GridSize), rng.Intn(GridSize))
		horizontal := rng.Intn(2) == 0

		if id, err := r.PlaceShip(b, origin, entry.Size, entry.Name, horizontal); err == nil {
			return id, nil
		}
	}

	origin, horizontal, found := r.firstValidSlot(b, entry.Size)
	if !found {
		return NoShip, cerr.ErrFleetPlacementFailed(entry.Size)
	}
	return r.PlaceShip(b, origin, entry.Size, entry.Name, horizontal)
}

func (r PlacementRules) firstValidSlot(b *Board, size int) (Coordinates, bool, bool) {
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			origin := NewCoordinates(row, col)
			for _, horizontal := range []bool{true, false} {
				if r.IsValidPlacement(b, origin, size, horizontal) {
					return origin, horizontal, true
				}
			}
		}
	}
	return Coordinates{}, false, false
}

func (b *Board) touchesShip(c Coordinates) bool {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			row, col := c.Row+dr, c.Col+dc
			if !inBounds(row, col) {
				continue
			}
			if b.cell(row, col).Ship != NoShip {
				return true
			}
		}
	}
	return false
}

func shipEnd(origin Coordinates, size int, horizontal bool) Coordinates {
	if horizontal {
		return NewCoordinates(origin.Row, origin.Col+size-1)
	}
	return NewCoordinates(origin.Row+size-1, origin.Col)
}

func shipSpan(origin Coordinates, size int, horizontal bool) []Coordinates {
	span := make([]Coordinates, 0, size)
	for i := 0; i < size; i++ {
		if horizontal {
			span = append(span, NewCoordinates(origin.Row, origin.Col+i))
		} else {
			span = append(span, NewCoordinates(origin.Row+i, origin.Col))
		}
	}
	return span
}
