package persistence

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	cerr "github.com/saeidalz13/naval-battle/internal/error"
	mb "github.com/saeidalz13/naval-battle/models/battleship"
)

var (
	encMode = mustEncMode()
	decMode = mustDecMode()
)

// Deterministic encoding, so equal snapshots always produce equal bytes.
func mustEncMode() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}

func mustDecMode() cbor.DecMode {
	dm, err := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		panic(err)
	}
	return dm
}

func EncodeSnapshot(snapshot mb.GameSnapshot) ([]byte, error) {
	data, err := encMode.Marshal(snapshot)
	if err != nil {
		return nil, cerr.ErrSnapshotIo("encode", err)
	}
	return data, nil
}

// DecodeSnapshot only checks the format. Board invariants are checked when
// the snapshot is restored into a game.
func DecodeSnapshot(data []byte) (mb.GameSnapshot, error) {
	var snapshot mb.GameSnapshot
	if len(data) == 0 {
		return snapshot, cerr.ErrSnapshotCorrupt("empty payload")
	}
	if err := decMode.Unmarshal(data, &snapshot); err != nil {
		return mb.GameSnapshot{}, cerr.ErrSnapshotCorrupt(err.Error())
	}
	if snapshot.Version != mb.SnapshotVersion {
		return mb.GameSnapshot{}, cerr.ErrSnapshotCorrupt(fmt.Sprintf("unsupported version %d", snapshot.Version))
	}
	return snapshot, nil
}
