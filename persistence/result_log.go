package persistence

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net"
	"os"
	"path/filepath"
	"sync"

	"github.com/saeidalz13/naval-battle/db/sqlc"
	mb "github.com/saeidalz13/naval-battle/models/battleship"
	"github.com/sqlc-dev/pqtype"
)

const DefaultResultsPath = "data/results.log"

func FormatResultLine(result mb.GameResult) string {
	return fmt.Sprintf("player: %s | sunk: %d | result: %s", result.PlayerName, result.ShipsSunk, result.Result)
}

// FileResultLog appends one line per concluded game.
type FileResultLog struct {
	path string
	mu   sync.Mutex
}

var _ mb.ResultNotifier = (*FileResultLog)(nil)

func NewFileResultLog(path string) *FileResultLog {
	if path == "" {
		path = DefaultResultsPath
	}
	return &FileResultLog{path: path}
}

func (frl *FileResultLog) RecordResult(ctx context.Context, result mb.GameResult) error {
	frl.mu.Lock()
	defer frl.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(frl.path), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(frl.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(f, FormatResultLine(result)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadAll returns the logged lines, oldest first. A missing log is empty.
func (frl *FileResultLog) ReadAll() ([]string, error) {
	frl.mu.Lock()
	defer frl.mu.Unlock()

	f, err := os.Open(frl.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lines := make([]string, 0, 8)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

// PgResultLog inserts a game_results row tagged with the server address.
type PgResultLog struct {
	q        sqlc.Querier
	serverIp pqtype.Inet
}

var _ mb.ResultNotifier = (*PgResultLog)(nil)

func NewPgResultLog(q sqlc.Querier, serverIpNet net.IPNet) *PgResultLog {
	return &PgResultLog{
		q:        q,
		serverIp: pqtype.Inet{IPNet: serverIpNet, Valid: serverIpNet.IP != nil},
	}
}

func (prl *PgResultLog) RecordResult(ctx context.Context, result mb.GameResult) error {
	ctx, cancel := context.WithTimeout(ctx, sqlc.QuerierCtxTimeout)
	defer cancel()

	id, err := prl.q.InsertGameResult(ctx, sqlc.InsertGameResultParams{
		GameUuid:   result.GameUuid,
		PlayerName: result.PlayerName,
		ShipsSunk:  int32(result.ShipsSunk),
		Result:     result.Result,
		Shots:      int32(result.Shots),
		ServerIp:   prl.serverIp,
	})
	if err != nil {
		return err
	}

	log.Printf("game result stored\tid: %d\t%s\n", id, FormatResultLine(result))
	return nil
}

// Recent returns up to limit results, newest first.
func (prl *PgResultLog) Recent(ctx context.Context, limit int32) ([]sqlc.GameResult, error) {
	ctx, cancel := context.WithTimeout(ctx, sqlc.QuerierCtxTimeout)
	defer cancel()

	return prl.q.ListGameResults(ctx, limit)
}
