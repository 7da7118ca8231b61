package battleship

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	cerr "github.com/saeidalz13/naval-battle/internal/error"
)

const SnapshotVersion = 1

type CellSnapshot struct {
	State CellState `json:"state"`
	Ship  ShipID    `json:"ship"`
}

type ShipSnapshot struct {
	Name string `json:"name"`
	Size int    `json:"size"`
	Hits int    `json:"hits"`
}

// BoardSnapshot stores ships in board order, so a cell's Ship is an index
// into Ships.
type BoardSnapshot struct {
	Cells [GridSize][GridSize]CellSnapshot `json:"cells"`
	Ships []ShipSnapshot                   `json:"ships"`
}

// GameSnapshot is everything needed to resume a game. The sunk counts are
// informational; a restore recounts them from the boards.
type GameSnapshot struct {
	Version      int           `json:"version"`
	GameUuid     string        `json:"game_uuid"`
	Human        BoardSnapshot `json:"human"`
	Machine      BoardSnapshot `json:"machine"`
	PlayerName   string        `json:"player_name"`
	Shots        int           `json:"shots"`
	IsPlayerTurn bool          `json:"is_player_turn"`
	HumanSunk    int           `json:"human_sunk"`
	MachineSunk  int           `json:"machine_sunk"`
	Started      bool          `json:"started"`
}

func (g *Game) Snapshot() GameSnapshot {
	humanSunk, machineSunk := g.SunkCounts()

	return GameSnapshot{
		Version:      SnapshotVersion,
		GameUuid:     g.uuid,
		Human:        snapshotBoard(g.human),
		Machine:      snapshotBoard(g.machine),
		PlayerName:   g.playerName,
		Shots:        g.shots,
		IsPlayerTurn: g.isPlayerTurn,
		HumanSunk:    humanSunk,
		MachineSunk:  machineSunk,
		Started:      g.state != GameStateSetup,
	}
}

func snapshotBoard(b *Board) BoardSnapshot {
	var bs BoardSnapshot
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			cell := b.cells[row][col]
			bs.Cells[row][col] = CellSnapshot{State: cell.State, Ship: cell.Ship}
		}
	}

	bs.Ships = make([]ShipSnapshot, 0, len(b.ships))
	for _, sh := range b.ships {
		bs.Ships = append(bs.Ships, ShipSnapshot{Name: sh.Name, Size: sh.Size, Hits: sh.hits})
	}
	return bs
}

// RestoreGame rebuilds a game from a snapshot. Snapshots that break a board
// invariant, or that belong to a concluded game, are rejected as corrupt.
func RestoreGame(s GameSnapshot, opts ...Option) (*Game, error) {
	if s.Version != SnapshotVersion {
		return nil, cerr.ErrSnapshotCorrupt(fmt.Sprintf("unsupported version %d", s.Version))
	}

	human, err := restoreBoard(s.Human)
	if err != nil {
		return nil, fmt.Errorf("human board: %w", err)
	}
	machine, err := restoreBoard(s.Machine)
	if err != nil {
		return nil, fmt.Errorf("machine board: %w", err)
	}

	if !machine.IsFleetComplete() {
		return nil, cerr.ErrSnapshotCorrupt("machine fleet incomplete")
	}
	if s.Shots < 0 {
		return nil, cerr.ErrSnapshotCorrupt("negative shot count")
	}

	gameUuid := s.GameUuid
	if gameUuid == "" {
		gameUuid = uuid.NewString()[:6]
	}

	g := newGame(gameUuid, s.PlayerName, opts...)
	g.human = human
	g.machine = machine
	g.shots = s.Shots
	g.isPlayerTurn = s.IsPlayerTurn

	if s.Started {
		if !human.IsFleetComplete() {
			return nil, cerr.ErrSnapshotCorrupt("started game with incomplete human fleet")
		}
		g.state = GameStateActive
	} else {
		if human.IsFleetComplete() {
			return nil, cerr.ErrSnapshotCorrupt("complete human fleet in setup")
		}
		if hasFiredCells(human) || hasFiredCells(machine) || s.Shots != 0 {
			return nil, cerr.ErrSnapshotCorrupt("shots recorded during setup")
		}
		g.isPlayerTurn = true
	}

	if AllSunk(human) || AllSunk(machine) {
		return nil, cerr.ErrSnapshotCorrupt("game already concluded")
	}

	humanSunk, machineSunk := g.SunkCounts()
	if humanSunk != s.HumanSunk || machineSunk != s.MachineSunk {
		log.Printf("snapshot sunk counts %d/%d differ from boards %d/%d; using boards\n",
			s.HumanSunk, s.MachineSunk, humanSunk, machineSunk)
	}

	return g, nil
}

func restoreBoard(bs BoardSnapshot) (*Board, error) {
	b := NewBoard()
	quota := FleetQuota()

	for i, ss := range bs.Ships {
		if ss.Size < MinShipSize || ss.Size > MaxShipSize {
			return nil, cerr.ErrSnapshotCorrupt(fmt.Sprintf("ship %d has size %d", i, ss.Size))
		}
		if ss.Hits < 0 || ss.Hits > ss.Size {
			return nil, cerr.ErrSnapshotCorrupt(fmt.Sprintf("ship %d has %d hits", i, ss.Hits))
		}
		quota[ss.Size]--
		if quota[ss.Size] < 0 {
			return nil, cerr.ErrSnapshotCorrupt(fmt.Sprintf("too many ships of size %d", ss.Size))
		}

		sh := newShip(ShipID(i), ss.Size, ss.Name)
		sh.hits = ss.Hits
		b.ships = append(b.ships, sh)
	}

	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			cs := bs.Cells[row][col]
			if cs.State > CellStateSunk {
				return nil, cerr.ErrSnapshotCorrupt(fmt.Sprintf("cell %d,%d has state %d", row, col, cs.State))
			}

			if cs.State.holdsShip() {
				if b.ship(cs.Ship) == nil {
					return nil, cerr.ErrSnapshotCorrupt(fmt.Sprintf("cell %d,%d references ship %d", row, col, cs.Ship))
				}
			} else if cs.Ship != NoShip {
				return nil, cerr.ErrSnapshotCorrupt(fmt.Sprintf("cell %d,%d is %s but references ship %d", row, col, cs.State, cs.Ship))
			}

			cell := b.cell(row, col)
			cell.State = cs.State
			cell.Ship = cs.Ship
		}
	}

	for _, sh := range b.ships {
		if err := validateShipCells(b, sh); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// validateShipCells checks that a ship's cells form one straight segment of
// its size and that their states agree with its hit counter.
func validateShipCells(b *Board, sh *Ship) error {
	cells := b.ShipCells(sh.Id)
	if len(cells) != sh.Size {
		return cerr.ErrSnapshotCorrupt(fmt.Sprintf("ship %d spans %d cells, size %d", sh.Id, len(cells), sh.Size))
	}

	// ShipCells is row-major, so a straight ship steps by one along one axis.
	horizontal := sh.Size == 1 || cells[1].Row == cells[0].Row
	for i, c := range cells {
		want := NewCoordinates(cells[0].Row+i, cells[0].Col)
		if horizontal {
			want = NewCoordinates(cells[0].Row, cells[0].Col+i)
		}
		if c != want {
			return cerr.ErrSnapshotCorrupt(fmt.Sprintf("ship %d is not a straight segment", sh.Id))
		}
	}

	damaged := 0
	for _, c := range cells {
		state := b.cell(c.Row, c.Col).State
		if state == CellStateHit || state == CellStateSunk {
			damaged++
		}
		if sh.IsSunk() != (state == CellStateSunk) {
			return cerr.ErrSnapshotCorrupt(fmt.Sprintf("ship %d cell %d,%d is %s", sh.Id, c.Row, c.Col, state))
		}
	}
	if damaged != sh.hits {
		return cerr.ErrSnapshotCorrupt(fmt.Sprintf("ship %d has %d hits but %d damaged cells", sh.Id, sh.hits, damaged))
	}
	return nil
}

func hasFiredCells(b *Board) bool {
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if b.cells[row][col].State.IsFired() {
				return true
			}
		}
	}
	return false
}
