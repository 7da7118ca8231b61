package battleship

import (
	"context"
	"math/rand"
	"testing"
)

type testPlacement struct {
	origin     Coordinates
	size       int
	horizontal bool
}

// A fixed legal layout of the whole catalog.
var testLayout = []testPlacement{
	{origin: NewCoordinates(0, 0), size: 4, horizontal: true},
	{origin: NewCoordinates(2, 0), size: 3, horizontal: true},
	{origin: NewCoordinates(2, 5), size: 3, horizontal: true},
	{origin: NewCoordinates(4, 0), size: 2, horizontal: true},
	{origin: NewCoordinates(4, 3), size: 2, horizontal: true},
	{origin: NewCoordinates(6, 9), size: 2, horizontal: false},
	{origin: NewCoordinates(8, 0), size: 1, horizontal: true},
	{origin: NewCoordinates(8, 2), size: 1, horizontal: true},
	{origin: NewCoordinates(8, 4), size: 1, horizontal: true},
	{origin: NewCoordinates(8, 6), size: 1, horizontal: true},
}

func newTestRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func placeTestLayout(t *testing.T, b *Board) {
	t.Helper()
	for _, p := range testLayout {
		if _, err := PlaceShip(b, p.origin, p.size, ShipName(p.size), p.horizontal); err != nil {
			t.Fatalf("failed to place %+v: %v", p, err)
		}
	}
}

func placeTestLayoutInGame(t *testing.T, g *Game) {
	t.Helper()
	for _, p := range testLayout {
		if _, err := g.PlaceShip(p.origin, p.size, p.horizontal); err != nil {
			t.Fatalf("failed to place %+v: %v", p, err)
		}
	}
}

func cellsWhere(b *Board, match func(Cell) bool) []Coordinates {
	coords := make([]Coordinates, 0, GridSize*GridSize)
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			cell, _ := b.CellAt(row, col)
			if match(cell) {
				coords = append(coords, cell.Coordinates)
			}
		}
	}
	return coords
}

func shipCellsOf(b *Board) []Coordinates {
	return cellsWhere(b, func(c Cell) bool { return c.Ship != NoShip })
}

func waterCellsOf(b *Board) []Coordinates {
	return cellsWhere(b, func(c Cell) bool { return c.State == CellStateWater })
}

// scriptedStrategy fires at targets in order.
type scriptedStrategy struct {
	targets []Coordinates
	next    int
}

func (s *scriptedStrategy) ChooseTarget(b *Board) (Coordinates, error) {
	target := s.targets[s.next%len(s.targets)]
	s.next++
	return target, nil
}

type memoryStore struct {
	snapshot *GameSnapshot
	saves    int
	deletes  int
	loadErr  error
}

func (m *memoryStore) Save(ctx context.Context, snapshot GameSnapshot) error {
	m.snapshot = &snapshot
	m.saves++
	return nil
}

func (m *memoryStore) Load(ctx context.Context) (GameSnapshot, bool, error) {
	if m.loadErr != nil {
		return GameSnapshot{}, false, m.loadErr
	}
	if m.snapshot == nil {
		return GameSnapshot{}, false, nil
	}
	return *m.snapshot, true, nil
}

func (m *memoryStore) Delete(ctx context.Context) error {
	m.snapshot = nil
	m.deletes++
	return nil
}

type recordingNotifier struct {
	results []GameResult
}

func (n *recordingNotifier) RecordResult(ctx context.Context, result GameResult) error {
	n.results = append(n.results, result)
	return nil
}
