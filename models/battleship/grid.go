package battleship

const GridSize = 10

type CellState uint8

const (
	CellStateWater CellState = iota
	CellStateShip
	CellStateHit
	CellStateMiss
	CellStateSunk
)

func (s CellState) String() string {
	switch s {
	case CellStateWater:
		return "water"
	case CellStateShip:
		return "ship"
	case CellStateHit:
		return "hit"
	case CellStateMiss:
		return "miss"
	case CellStateSunk:
		return "sunk"
	default:
		return "unknown"
	}
}

// IsFired reports whether a shot has already landed on a cell in this state.
func (s CellState) IsFired() bool {
	return s == CellStateHit || s == CellStateMiss || s == CellStateSunk
}

func (s CellState) holdsShip() bool {
	return s == CellStateShip || s == CellStateHit || s == CellStateSunk
}

type Coordinates struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewCoordinates(row, col int) Coordinates {
	return Coordinates{Row: row, Col: col}
}

func (c Coordinates) InBounds() bool {
	return inBounds(c.Row, c.Col)
}

func inBounds(row, col int) bool {
	return row >= 0 && row < GridSize && col >= 0 && col < GridSize
}

// Cell is one grid position. Ship is NoShip unless State is
// ship, hit or sunk.
type Cell struct {
	Coordinates
	State CellState
	Ship  ShipID
}

// Grid is a read-only view of cell states, indexed [row][col].
type Grid [GridSize][GridSize]CellState
