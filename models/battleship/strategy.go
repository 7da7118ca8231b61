package battleship

import (
	"math/rand"

	cerr "github.com/saeidalz13/naval-battle/internal/error"
)

const maxTargetAttempts = 100

// Strategy picks the next cell the machine fires at. It must only return
// cells that were not fired at yet.
type Strategy interface {
	ChooseTarget(b *Board) (Coordinates, error)
}

// RandomStrategy samples uniformly and falls back to a row-major scan once
// the bounded sampling runs out.
type RandomStrategy struct {
	rng *rand.Rand
}

var _ Strategy = (*RandomStrategy)(nil)

func NewRandomStrategy(rng *rand.Rand) *RandomStrategy {
	return &RandomStrategy{rng: rng}
}

func (s *RandomStrategy) ChooseTarget(b *Board) (Coordinates, error) {
	for attempt := 0; attempt < maxTargetAttempts; attempt++ {
		row, col := s.rng.Intn(GridSize), s.rng.Intn(GridSize)
		if !b.cell(row, col).State.IsFired() {
			return NewCoordinates(row, col), nil
		}
	}

	if c, found := firstUnfired(b); found {
		return c, nil
	}
	return Coordinates{}, cerr.ErrNoTargetsLeft
}

func firstUnfired(b *Board) (Coordinates, bool) {
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if !b.cell(row, col).State.IsFired() {
				return NewCoordinates(row, col), true
			}
		}
	}
	return Coordinates{}, false
}
