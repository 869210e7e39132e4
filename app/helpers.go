package app

import (
	"github.com/realchain/ledger"
	"github.com/realchain/ledger/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// RegisterQuery registers the raw key lookup under "/".
func RegisterQuery(qr ledger.QueryRouter) {
	qr.Register("/", rawQuery{})
}

// rawQuery returns the value stored under the exact key given as the query
// data.
type rawQuery struct{}

func (rawQuery) Query(db ledger.ReadOnlyKVStore, mod string, data []byte) ([]ledger.Model, error) {
	if mod != ledger.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mode %q", mod)
	}
	if len(data) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "key")
	}
	value := db.Get(data)
	if value == nil {
		return nil, nil
	}
	return []ledger.Model{ledger.Pair(data, value)}, nil
}

// ABCIStore exposes the abci.Query interface as a ReadOnlyKVStore.
type ABCIStore struct {
	app abci.Application
}

var _ ledger.ReadOnlyKVStore = (*ABCIStore)(nil)

// NewABCIStore returns a store reading the committed state of given
// application. The application must serve raw key queries under "/".
func NewABCIStore(app abci.Application) *ABCIStore {
	return &ABCIStore{app: app}
}

// Get will query for exactly one value over the abci store.
// This can be wrapped with a bucket to reuse key/index/parse logic
func (a *ABCIStore) Get(key []byte) []byte {
	query := a.app.Query(abci.RequestQuery{
		Path: "/",
		Data: key,
	})
	// if only the interface supported returning errors....
	if query.Code != 0 {
		panic(query.Log)
	}
	var value ResultSet
	if err := value.Unmarshal(query.Value); err != nil {
		panic(errors.Wrap(err, "unmarshal result set"))
	}
	if len(value.Results) == 0 {
		return nil
	}
	return value.Results[0]
}

// Has returns true if the given key in in the abci app store
func (a *ABCIStore) Has(key []byte) bool {
	return len(a.Get(key)) > 0
}
