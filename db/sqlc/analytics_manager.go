package sqlc

import (
	"context"
	"fmt"

	"github.com/sqlc-dev/pqtype"
)

// Counter names one per-server column of game_server_analytics.
type Counter uint8

const (
	CounterGamesCreated Counter = iota
	CounterGamesResumed
)

func (c Counter) String() string {
	switch c {
	case CounterGamesCreated:
		return "games_created"
	case CounterGamesResumed:
		return "games_resumed"
	default:
		return "unknown"
	}
}

type ServerCounts struct {
	GamesCreated int64
	GamesResumed int64
}

type AnalyticsManager struct {
	queries Querier
}

func NewAnalyticsManager(queries Querier) *AnalyticsManager {
	return &AnalyticsManager{queries: queries}
}

func (a *AnalyticsManager) Increment(ctx context.Context, counter Counter, serverIpNet pqtype.Inet) error {
	var err error
	switch counter {
	case CounterGamesCreated:
		err = a.queries.IncrementGamesCreatedCount(ctx, serverIpNet)
	case CounterGamesResumed:
		err = a.queries.IncrementGamesResumedCount(ctx, serverIpNet)
	default:
		return fmt.Errorf("unknown analytics counter %d", counter)
	}
	if err != nil {
		return fmt.Errorf("increment %s: %w", counter, err)
	}
	return nil
}

func (a *AnalyticsManager) Count(ctx context.Context, counter Counter, serverIpNet pqtype.Inet) (int64, error) {
	var (
		n   int64
		err error
	)
	switch counter {
	case CounterGamesCreated:
		n, err = a.queries.GetGamesCreatedCount(ctx, serverIpNet)
	case CounterGamesResumed:
		n, err = a.queries.GetGamesResumedCount(ctx, serverIpNet)
	default:
		return 0, fmt.Errorf("unknown analytics counter %d", counter)
	}
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", counter, err)
	}
	return n, nil
}

// Counts reads every counter of one server.
func (a *AnalyticsManager) Counts(ctx context.Context, serverIpNet pqtype.Inet) (ServerCounts, error) {
	created, err := a.Count(ctx, CounterGamesCreated, serverIpNet)
	if err != nil {
		return ServerCounts{}, err
	}
	resumed, err := a.Count(ctx, CounterGamesResumed, serverIpNet)
	if err != nil {
		return ServerCounts{}, err
	}
	return ServerCounts{GamesCreated: created, GamesResumed: resumed}, nil
}
