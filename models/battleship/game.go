package battleship

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	cerr "github.com/saeidalz13/naval-battle/internal/error"
)

const (
	// A no-touching layout can dead-end; the whole board is then redrawn.
	maxFleetLayouts = 20

	persistTimeout = time.Second * 5
)

type GameState uint8

const (
	GameStateSetup GameState = iota
	GameStateActive
	GameStateVictory
	GameStateDefeat
)

func (s GameState) String() string {
	switch s {
	case GameStateSetup:
		return "setup"
	case GameStateActive:
		return "active"
	case GameStateVictory:
		return "victory"
	case GameStateDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

func (s GameState) IsTerminal() bool {
	return s == GameStateVictory || s == GameStateDefeat
}

// SnapshotStore keeps the single resumable game.
type SnapshotStore interface {
	Save(ctx context.Context, snapshot GameSnapshot) error
	// Load returns false when there is nothing saved.
	Load(ctx context.Context) (GameSnapshot, bool, error)
	Delete(ctx context.Context) error
}

type ShotReport struct {
	Coordinates
	Outcome ShotOutcome
	// Set when the shot sank a ship.
	SunkShipCoords []Coordinates
}

type TurnReport struct {
	Player       *ShotReport
	Machine      []ShotReport
	State        GameState
	IsPlayerTurn bool
	HumanSunk    int
	MachineSunk  int
}

// Game is the turn controller of one human vs machine match. It is not safe
// for concurrent use.
type Game struct {
	uuid         string
	playerName   string
	human        *Board
	machine      *Board
	state        GameState
	isPlayerTurn bool
	shots        int

	rules    PlacementRules
	rng      *rand.Rand
	strategy Strategy
	store    SnapshotStore
	notifier ResultNotifier
}

type Option func(*Game)

func WithRand(rng *rand.Rand) Option {
	return func(g *Game) {
		g.rng = rng
	}
}

func WithStrategy(strategy Strategy) Option {
	return func(g *Game) {
		g.strategy = strategy
	}
}

func WithSnapshotStore(store SnapshotStore) Option {
	return func(g *Game) {
		g.store = store
	}
}

func WithResultNotifier(notifier ResultNotifier) Option {
	return func(g *Game) {
		g.notifier = notifier
	}
}

func WithPlacementRules(rules PlacementRules) Option {
	return func(g *Game) {
		g.rules = rules
	}
}

func newGame(gameUuid, playerName string, opts ...Option) *Game {
	g := &Game{
		uuid:         gameUuid,
		playerName:   playerName,
		human:        NewBoard(),
		machine:      NewBoard(),
		state:        GameStateSetup,
		isPlayerTurn: true,
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if g.strategy == nil {
		g.strategy = NewRandomStrategy(g.rng)
	}
	return g
}

// NewGame starts a match in setup. The machine fleet is placed right away;
// the human fleet is placed through PlaceShip or PlaceFleetRandomly.
func NewGame(playerName string, opts ...Option) (*Game, error) {
	g := newGame(uuid.NewString()[:6], playerName, opts...)

	machine, err := g.randomFleetBoard()
	if err != nil {
		return nil, err
	}
	g.machine = machine

	g.persist()
	return g, nil
}

func (g *Game) Uuid() string {
	return g.uuid
}

func (g *Game) PlayerName() string {
	return g.playerName
}

func (g *Game) State() GameState {
	return g.state
}

func (g *Game) IsPlayerTurn() bool {
	return g.isPlayerTurn
}

// Shots is the number of shots the human has fired.
func (g *Game) Shots() int {
	return g.shots
}

// ShipCells returns the cells of one of the human's ships. The boards
// themselves never leave the game.
func (g *Game) ShipCells(id ShipID) []Coordinates {
	return g.human.ShipCells(id)
}

// SunkCounts returns how many ships of each fleet are sunk, counted on the
// boards themselves.
func (g *Game) SunkCounts() (human, machine int) {
	return SunkShips(g.human), SunkShips(g.machine)
}

func (g *Game) HumanView() Grid {
	return g.human.Grid()
}

// EnemyView is the machine board as the human may see it: ships that were
// not hit look like water.
func (g *Game) EnemyView() Grid {
	grid := g.machine.Grid()
	for row := range grid {
		for col := range grid[row] {
			if grid[row][col] == CellStateShip {
				grid[row][col] = CellStateWater
			}
		}
	}
	return grid
}

// RemainingShips lists the catalog entries the human still has to place.
func (g *Game) RemainingShips() []FleetEntry {
	placed := g.human.sizeCounts()
	remaining := make([]FleetEntry, 0, FleetSize)
	for _, entry := range fleetCatalog {
		if placed[entry.Size] > 0 {
			placed[entry.Size]--
			continue
		}
		remaining = append(remaining, entry)
	}
	return remaining
}

func (g *Game) IsValidPlacement(origin Coordinates, size int, horizontal bool) bool {
	if g.state != GameStateSetup {
		return false
	}
	return g.rules.IsValidPlacement(g.human, origin, size, horizontal)
}

// PlaceShip places one human ship. The game becomes active once the whole
// catalog is on the board.
func (g *Game) PlaceShip(origin Coordinates, size int, horizontal bool) (ShipID, error) {
	if err := g.requireState(GameStateSetup); err != nil {
		return NoShip, err
	}
	if size < MinShipSize || size > MaxShipSize {
		return NoShip, cerr.ErrInvalidShipSize(size)
	}
	if g.human.sizeCounts()[size] >= FleetQuota()[size] {
		return NoShip, cerr.ErrNoShipOfSizeLeft(size)
	}

	id, err := g.rules.PlaceShip(g.human, origin, size, ShipName(size), horizontal)
	if err != nil {
		return NoShip, err
	}

	if g.human.IsFleetComplete() {
		g.state = GameStateActive
	}
	g.persist()
	return id, nil
}

// PlaceFleetRandomly replaces whatever the human placed so far with a random
// full fleet and starts the match.
func (g *Game) PlaceFleetRandomly() error {
	if err := g.requireState(GameStateSetup); err != nil {
		return err
	}

	human, err := g.randomFleetBoard()
	if err != nil {
		return err
	}
	g.human = human
	g.state = GameStateActive

	g.persist()
	return nil
}

// Fire resolves a human shot at the machine board. A miss hands the turn to
// the machine, whose whole turn is played before Fire returns.
func (g *Game) Fire(row, col int) (TurnReport, error) {
	if err := g.requireState(GameStateActive); err != nil {
		return TurnReport{}, err
	}
	if !g.isPlayerTurn {
		return TurnReport{}, cerr.ErrNotPlayerTurn
	}

	outcome, err := ReceiveShot(g.machine, row, col)
	if err != nil {
		return TurnReport{}, err
	}
	g.shots++

	playerShot := newShotReport(g.machine, NewCoordinates(row, col), outcome)
	report := TurnReport{Player: &playerShot}

	g.checkOutcome()
	if g.state == GameStateActive && outcome.Result == ShotMiss {
		g.isPlayerTurn = false
		report.Machine = g.playMachineTurn()
	}

	g.afterTurn()
	g.fillReport(&report)
	return report, nil
}

// AdvanceMachineTurn plays the machine's turn when it is the side to move,
// which only happens for a game restored mid-turn.
func (g *Game) AdvanceMachineTurn() (TurnReport, error) {
	if err := g.requireState(GameStateActive); err != nil {
		return TurnReport{}, err
	}
	if g.isPlayerTurn {
		return TurnReport{}, cerr.ErrGameNotInState("player to move")
	}

	report := TurnReport{Machine: g.playMachineTurn()}

	g.afterTurn()
	g.fillReport(&report)
	return report, nil
}

// playMachineTurn keeps firing while the machine hits. Every iteration
// spends one unfired cell, so the loop is bounded by the grid.
func (g *Game) playMachineTurn() []ShotReport {
	reports := make([]ShotReport, 0, 1)

	for g.state == GameStateActive && !g.isPlayerTurn {
		target, err := g.strategy.ChooseTarget(g.human)
		if err != nil {
			log.Println("machine could not choose a target:", err)
			g.isPlayerTurn = true
			break
		}

		outcome, err := ReceiveShot(g.human, target.Row, target.Col)
		if err != nil {
			log.Printf("machine target rejected (%v); scanning for an unfired cell\n", err)
			fallback, found := firstUnfired(g.human)
			if !found {
				g.isPlayerTurn = true
				break
			}
			target = fallback
			if outcome, err = ReceiveShot(g.human, target.Row, target.Col); err != nil {
				g.isPlayerTurn = true
				break
			}
		}

		reports = append(reports, newShotReport(g.human, target, outcome))
		g.checkOutcome()

		if outcome.Result == ShotMiss {
			g.isPlayerTurn = true
		}
	}
	return reports
}

// checkOutcome derives the terminal state from the boards. Only the side
// that just fired can have finished the other fleet, so at most one case
// applies.
func (g *Game) checkOutcome() {
	switch {
	case AllSunk(g.machine):
		g.state = GameStateVictory
	case AllSunk(g.human):
		g.state = GameStateDefeat
	}
}

func (g *Game) afterTurn() {
	if g.state.IsTerminal() {
		g.conclude()
		return
	}
	g.persist()
}

// conclude drops the saved snapshot and reports the result. Neither failure
// affects the game.
func (g *Game) conclude() {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if g.store != nil {
		if err := g.store.Delete(ctx); err != nil {
			log.Println("failed to delete snapshot:", err)
		}
	}

	if g.notifier != nil {
		if err := g.notifier.RecordResult(ctx, g.Result()); err != nil {
			log.Println("failed to record game result:", err)
		}
	}
}

func (g *Game) persist() {
	if g.store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := g.store.Save(ctx, g.Snapshot()); err != nil {
		log.Println("failed to save snapshot:", err)
	}
}

func (g *Game) requireState(state GameState) error {
	if g.state.IsTerminal() {
		return cerr.ErrGameFinished(g.uuid)
	}
	if g.state != state {
		return cerr.ErrGameNotInState(g.state.String())
	}
	return nil
}

func (g *Game) fillReport(report *TurnReport) {
	report.State = g.state
	report.IsPlayerTurn = g.isPlayerTurn
	report.HumanSunk, report.MachineSunk = g.SunkCounts()
}

func (g *Game) randomFleetBoard() (*Board, error) {
	var err error
	for layout := 0; layout < maxFleetLayouts; layout++ {
		b := NewBoard()
		if err = g.rules.PlaceFleetRandomly(b, g.rng); err == nil {
			return b, nil
		}
	}
	return nil, err
}

func newShotReport(b *Board, target Coordinates, outcome ShotOutcome) ShotReport {
	report := ShotReport{Coordinates: target, Outcome: outcome}
	if outcome.Result == ShotSunk {
		report.SunkShipCoords = b.ShipCells(outcome.Ship)
	}
	return report
}
