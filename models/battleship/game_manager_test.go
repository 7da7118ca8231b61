package battleship

import (
	"errors"
	"testing"

	cerr "github.com/saeidalz13/naval-battle/internal/error"
)

func TestGameManagerCreateAndGet(t *testing.T) {
	bgm := NewBattleshipGameManager(&memoryStore{}, WithRand(newTestRand()))

	if _, err := bgm.GetGame(); !errors.Is(err, cerr.ErrNoActiveGame) {
		t.Fatalf("expected no active game, got %v", err)
	}

	game, err := bgm.CreateGame("captain")
	if err != nil {
		t.Fatal(err)
	}

	got, err := bgm.GetGame()
	if err != nil {
		t.Fatal(err)
	}
	if got != game {
		t.Fatal("manager returned a different game")
	}

	bgm.TerminateGame()
	if _, err := bgm.GetGame(); !errors.Is(err, cerr.ErrNoActiveGame) {
		t.Fatalf("expected no active game after terminate, got %v", err)
	}
}

func TestGameManagerResume(t *testing.T) {
	tests := []struct {
		name          string
		prepare       func(t *testing.T, store *memoryStore)
		expectedFound bool
		expectDeleted bool
	}{
		{
			name:          "nothing saved",
			prepare:       func(t *testing.T, store *memoryStore) {},
			expectedFound: false,
		},
		{
			name: "saved game",
			prepare: func(t *testing.T, store *memoryStore) {
				snapshot := midGame(t).Snapshot()
				store.snapshot = &snapshot
			},
			expectedFound: true,
		},
		{
			name: "corrupt snapshot",
			prepare: func(t *testing.T, store *memoryStore) {
				snapshot := midGame(t).Snapshot()
				snapshot.Human.Ships[0].Hits = 3
				store.snapshot = &snapshot
			},
			expectedFound: false,
			expectDeleted: true,
		},
		{
			name: "undecodable snapshot",
			prepare: func(t *testing.T, store *memoryStore) {
				store.loadErr = cerr.ErrSnapshotCorrupt("bad bytes")
			},
			expectedFound: false,
			expectDeleted: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			store := &memoryStore{}
			test.prepare(t, store)
			bgm := NewBattleshipGameManager(store, WithRand(newTestRand()))

			game, found, err := bgm.ResumeGame()
			if err != nil {
				t.Fatal(err)
			}
			if found != test.expectedFound {
				t.Fatalf("expected found %t, got %t", test.expectedFound, found)
			}
			if found && game.State() != GameStateActive {
				t.Fatalf("expected active game, got %s", game.State())
			}
			if test.expectDeleted && store.deletes != 1 {
				t.Fatalf("expected the snapshot to be deleted, got %d deletes", store.deletes)
			}
		})
	}
}

func TestGameManagerResumeReturnsLiveGame(t *testing.T) {
	store := &memoryStore{}
	bgm := NewBattleshipGameManager(store, WithRand(newTestRand()))

	game, err := bgm.CreateGame("captain")
	if err != nil {
		t.Fatal(err)
	}
	resumed, found, err := bgm.ResumeGame()
	if err != nil {
		t.Fatal(err)
	}
	if !found || resumed != game {
		t.Fatal("expected the live game back")
	}
	if store.snapshot == nil || store.snapshot.GameUuid != game.Uuid() {
		t.Fatal("the created game must be saved through the manager's store")
	}
}
