package battleship

import (
	"context"
	"errors"
	"log"
	"sync"

	cerr "github.com/saeidalz13/naval-battle/internal/error"
)

type GameManager interface {
	CreateGame(playerName string) (*Game, error)
	ResumeGame() (*Game, bool, error)
	GetGame() (*Game, error)
	TerminateGame()
}

// BattleshipGameManager holds the one live game and its snapshot store.
type BattleshipGameManager struct {
	store SnapshotStore
	opts  []Option
	game  *Game
	mu    sync.RWMutex
}

var _ GameManager = (*BattleshipGameManager)(nil)

// NewBattleshipGameManager wires store into every game it creates or
// restores. store may be nil, in which case games are not persisted.
func NewBattleshipGameManager(store SnapshotStore, opts ...Option) *BattleshipGameManager {
	gameOpts := make([]Option, 0, len(opts)+1)
	gameOpts = append(gameOpts, opts...)
	if store != nil {
		gameOpts = append(gameOpts, WithSnapshotStore(store))
	}

	return &BattleshipGameManager{
		store: store,
		opts:  gameOpts,
	}
}

// CreateGame replaces the live game, concluded or not, with a new one.
func (bgm *BattleshipGameManager) CreateGame(playerName string) (*Game, error) {
	game, err := NewGame(playerName, bgm.opts...)
	if err != nil {
		return nil, err
	}

	bgm.mu.Lock()
	bgm.game = game
	bgm.mu.Unlock()

	return game, nil
}

// ResumeGame returns the live game if it is still running, otherwise the game
// saved in the store. A corrupt snapshot is deleted and treated as absent.
func (bgm *BattleshipGameManager) ResumeGame() (*Game, bool, error) {
	bgm.mu.Lock()
	defer bgm.mu.Unlock()

	if bgm.game != nil && !bgm.game.State().IsTerminal() {
		return bgm.game, true, nil
	}
	if bgm.store == nil {
		return nil, false, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	snapshot, found, err := bgm.store.Load(ctx)
	if err != nil && !errors.Is(err, cerr.ErrCorruptData) {
		return nil, false, err
	}

	var game *Game
	if err == nil && found {
		game, err = RestoreGame(snapshot, bgm.opts...)
	}
	if err != nil {
		log.Println("discarding saved game:", err)
		if err := bgm.store.Delete(ctx); err != nil {
			log.Println("failed to delete snapshot:", err)
		}
		return nil, false, nil
	}
	if game == nil {
		return nil, false, nil
	}

	if game.State() == GameStateActive && !game.IsPlayerTurn() {
		if _, err := game.AdvanceMachineTurn(); err != nil {
			return nil, false, err
		}
	}

	bgm.game = game
	return game, true, nil
}

func (bgm *BattleshipGameManager) GetGame() (*Game, error) {
	bgm.mu.RLock()
	defer bgm.mu.RUnlock()

	if bgm.game == nil {
		return nil, cerr.ErrNoActiveGame
	}
	return bgm.game, nil
}

func (bgm *BattleshipGameManager) TerminateGame() {
	bgm.mu.Lock()
	bgm.game = nil
	bgm.mu.Unlock()
}
