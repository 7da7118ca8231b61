package persistence

import (
	"context"
	"net"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	mb "github.com/saeidalz13/naval-battle/models/battleship"
)

func TestFormatResultLine(t *testing.T) {
	line := FormatResultLine(mb.GameResult{PlayerName: "ada", ShipsSunk: 10, Result: mb.GameResultVictory, Shots: 44})
	if want := "player: ada | sunk: 10 | result: Victory"; line != want {
		t.Fatalf("expected %q, got %q", want, line)
	}
}

func TestFileResultLogAppends(t *testing.T) {
	ctx := context.Background()
	resultLog := NewFileResultLog(filepath.Join(t.TempDir(), "logs", "results.log"))

	lines, err := resultLog.ReadAll()
	if err != nil || len(lines) != 0 {
		t.Fatalf("expected empty log, got %v err: %v", lines, err)
	}

	results := []mb.GameResult{
		{PlayerName: "ada", ShipsSunk: 10, Result: mb.GameResultVictory},
		{PlayerName: "bob", ShipsSunk: 3, Result: mb.GameResultDefeat},
	}
	for _, r := range results {
		if err := resultLog.RecordResult(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	lines, err = resultLog.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != len(results) {
		t.Fatalf("expected %d lines, got %d", len(results), len(lines))
	}
	for i, r := range results {
		if lines[i] != FormatResultLine(r) {
			t.Fatalf("line %d: expected %q, got %q", i, FormatResultLine(r), lines[i])
		}
	}
}

func TestPgResultLog(t *testing.T) {
	q, mock := newMockQuerier(t)
	ipNet := net.IPNet{IP: net.IPv4(10, 0, 0, 7), Mask: net.CIDRMask(32, 32)}
	resultLog := NewPgResultLog(q, ipNet)

	result := mb.GameResult{GameUuid: "abc123", PlayerName: "ada", ShipsSunk: 7, Result: mb.GameResultDefeat, Shots: 61}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO game_results")).
		WithArgs("abc123", "ada", int32(7), mb.GameResultDefeat, int32(61), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	if err := resultLog.RecordResult(context.Background(), result); err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestPgResultLogRecent(t *testing.T) {
	q, mock := newMockQuerier(t)
	resultLog := NewPgResultLog(q, net.IPNet{IP: net.IPv4(10, 0, 0, 7), Mask: net.CIDRMask(32, 32)})

	columns := []string{"id", "game_uuid", "player_name", "ships_sunk", "result", "shots", "server_ip", "created_at"}
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM game_results ORDER BY id DESC LIMIT $1")).
		WithArgs(int32(2)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(9), "def456", "bob", int32(10), mb.GameResultVictory, int32(40), []byte("10.0.0.7/32"), now).
			AddRow(int64(8), "abc123", "ada", int32(7), mb.GameResultDefeat, int32(61), []byte("10.0.0.7/32"), now))

	results, err := resultLog.Recent(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 || results[0].ID != 9 || results[1].PlayerName != "ada" {
		t.Fatalf("unexpected results %+v", results)
	}
	if results[0].Result != mb.GameResultVictory || results[0].ShipsSunk != 10 {
		t.Fatalf("unexpected newest result %+v", results[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
