package sqlc

import "time"

const (
	QuerierCtxTimeout = time.Second * 10
)

// DbManager groups the query helpers the server uses. Snapshots and results
// go through Querier directly from the persistence package.
type DbManager struct {
	Queries   Querier
	Analytics *AnalyticsManager
}

func NewDbManager(queries Querier) *DbManager {
	return &DbManager{
		Queries:   queries,
		Analytics: NewAnalyticsManager(queries),
	}
}
