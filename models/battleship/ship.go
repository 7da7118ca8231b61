package battleship

// ShipID addresses a ship inside the board that owns it. Cells store the id,
// never the ship itself.
type ShipID int

const NoShip ShipID = -1

type Ship struct {
	Id   ShipID
	Name string
	Size int
	hits int
}

func newShip(id ShipID, size int, name string) *Ship {
	return &Ship{
		Id:   id,
		Name: name,
		Size: size,
	}
}

func (sh *Ship) GotHit() {
	sh.hits++
}

func (sh *Ship) Hits() int {
	return sh.hits
}

func (sh *Ship) IsSunk() bool {
	return sh.hits >= sh.Size
}
