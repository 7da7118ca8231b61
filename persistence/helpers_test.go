package persistence

import (
	"math/rand"
	"testing"

	mb "github.com/saeidalz13/naval-battle/models/battleship"
)

// newTestSnapshot plays a few shots of a seeded game so the snapshot has
// fired cells on both boards.
func newTestSnapshot(t *testing.T) mb.GameSnapshot {
	t.Helper()

	g, err := mb.NewGame("tester", mb.WithRand(rand.New(rand.NewSource(7))))
	if err != nil {
		t.Fatal(err)
	}
	if err := g.PlaceFleetRandomly(); err != nil {
		t.Fatal(err)
	}

	for col := 0; col < 3; col++ {
		if _, err := g.Fire(9, col); err != nil {
			t.Fatalf("fire at 9,%d: %v", col, err)
		}
	}
	return g.Snapshot()
}
