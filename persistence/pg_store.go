package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/saeidalz13/naval-battle/db/sqlc"
	cerr "github.com/saeidalz13/naval-battle/internal/error"
	mb "github.com/saeidalz13/naval-battle/models/battleship"
)

const DefaultSnapshotSlot = "default"

// PgSnapshotStore keeps the snapshot in one game_snapshots row.
type PgSnapshotStore struct {
	q    sqlc.Querier
	slot string
}

var _ mb.SnapshotStore = (*PgSnapshotStore)(nil)

func NewPgSnapshotStore(q sqlc.Querier, slot string) *PgSnapshotStore {
	if slot == "" {
		slot = DefaultSnapshotSlot
	}
	return &PgSnapshotStore{q: q, slot: slot}
}

func (pss *PgSnapshotStore) Save(ctx context.Context, snapshot mb.GameSnapshot) error {
	data, err := EncodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, sqlc.QuerierCtxTimeout)
	defer cancel()

	err = pss.q.UpsertSnapshot(ctx, sqlc.UpsertSnapshotParams{
		Slot:     pss.slot,
		GameUuid: snapshot.GameUuid,
		Payload:  data,
	})
	if err != nil {
		return pgErr("save", err)
	}
	return nil
}

func (pss *PgSnapshotStore) Load(ctx context.Context) (mb.GameSnapshot, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, sqlc.QuerierCtxTimeout)
	defer cancel()

	row, err := pss.q.GetSnapshot(ctx, pss.slot)
	if errors.Is(err, sql.ErrNoRows) {
		return mb.GameSnapshot{}, false, nil
	}
	if err != nil {
		return mb.GameSnapshot{}, false, pgErr("load", err)
	}

	snapshot, err := DecodeSnapshot(row.Payload)
	if err != nil {
		return mb.GameSnapshot{}, false, err
	}
	return snapshot, true, nil
}

func (pss *PgSnapshotStore) Delete(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, sqlc.QuerierCtxTimeout)
	defer cancel()

	if err := pss.q.DeleteSnapshot(ctx, pss.slot); err != nil {
		return pgErr("delete", err)
	}
	return nil
}

func pgErr(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return cerr.ErrSnapshotIo(op, fmt.Errorf("%s (%s): %s", pqErr.Code.Name(), pqErr.Code, pqErr.Message))
	}
	return cerr.ErrSnapshotIo(op, err)
}
