package utils

import (
	"encoding/hex"
	"strings"

	"github.com/realchain/ledger"
	"github.com/realchain/ledger/store"
	"github.com/tendermint/tendermint/libs/common"
)

// KeyTagger is a decorator that records all Set/Delete operations performed
// by its children and adds all those keys as DeliverTx tags. Keys are hex
// encoded. The value is "s" for a write and "d" for a delete.
type KeyTagger struct{}

var _ ledger.Decorator = KeyTagger{}

// NewKeyTagger creates a KeyTagger decorator.
func NewKeyTagger() KeyTagger {
	return KeyTagger{}
}

// Check does nothing.
func (KeyTagger) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Checker) (ledger.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver passes in a recording KVStore into the child and uses that to
// calculate tags to add to DeliverResult.
func (KeyTagger) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (ledger.DeliverResult, error) {
	cdb, ok := db.(ledger.CacheableKVStore)
	if !ok {
		return next.Deliver(ctx, db, tx)
	}
	record := store.NewRecordingStore(cdb)
	res, err := next.Deliver(ctx, record, tx)
	if err != nil {
		return res, err
	}
	res.Tags = append(res.Tags, opsToTags(record.Ops())...)
	return res, nil
}

var (
	recordSet    = []byte("s")
	recordDelete = []byte("d")
)

// opsToTags returns one tag per modified key. The last operation on a key
// wins.
func opsToTags(ops []store.Op) common.KVPairs {
	if len(ops) == 0 {
		return nil
	}
	last := make(map[string][]byte, len(ops))
	for _, op := range ops {
		tag := recordSet
		if op.IsDelete() {
			tag = recordDelete
		}
		last[strings.ToUpper(hex.EncodeToString(op.Key()))] = tag
	}
	res := make(common.KVPairs, 0, len(last))
	for k, v := range last {
		res = append(res, common.KVPair{Key: []byte(k), Value: v})
	}
	res.Sort()
	return res
}
