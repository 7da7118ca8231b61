package battleship

import (
	"errors"
	"testing"

	cerr "github.com/saeidalz13/naval-battle/internal/error"
)

func TestRandomStrategyPicksUnfiredCells(t *testing.T) {
	b := NewBoard()
	placeTestLayout(t, b)
	strategy := NewRandomStrategy(newTestRand())

	for shot := 0; shot < GridSize*GridSize; shot++ {
		target, err := strategy.ChooseTarget(b)
		if err != nil {
			t.Fatalf("shot %d: %v", shot, err)
		}
		if _, err := ReceiveShot(b, target.Row, target.Col); err != nil {
			t.Fatalf("shot %d picked a used cell %+v: %v", shot, target, err)
		}
	}

	if _, err := strategy.ChooseTarget(b); !errors.Is(err, cerr.ErrNoTargetsLeft) {
		t.Fatalf("expected no targets left, got %v", err)
	}
}

func TestRandomStrategyFallsBackToScan(t *testing.T) {
	b := NewBoard()
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if row == 9 && col == 9 {
				continue
			}
			if _, err := ReceiveShot(b, row, col); err != nil {
				t.Fatal(err)
			}
		}
	}

	target, err := NewRandomStrategy(newTestRand()).ChooseTarget(b)
	if err != nil {
		t.Fatal(err)
	}
	if target != NewCoordinates(9, 9) {
		t.Fatalf("expected the last unfired cell, got %+v", target)
	}
}
