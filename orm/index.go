package orm

import (
	"github.com/realchain/ledger"
	"github.com/realchain/ledger/errors"
)

const indexPrefix = "_i."

// Indexer calculates the secondary index key for a given object. A nil key
// means the object is not indexed.
type Indexer func(Object) ([]byte, error)

// Index is a secondary index of a bucket. All references indexed under the
// same value are stored together under a single key.
type Index struct {
	name   string
	id     []byte
	unique bool
	index  Indexer
	refKey func([]byte) []byte
}

var _ ledger.QueryHandler = Index{}

// NewIndex constructs an index.
// Indexer calculates the index for an object,
// unique enforces a unique constraint on the index,
// refKey calculates the absolute dbkey for a ref.
func NewIndex(name string, indexer Indexer, unique bool, refKey func([]byte) []byte) Index {
	return Index{
		name:   name,
		id:     []byte(indexPrefix + name + ":"),
		index:  indexer,
		unique: unique,
		refKey: refKey,
	}
}

// Name returns the name of this index.
func (i Index) Name() string {
	return i.name
}

// indexKey is the full key we store in the db, including prefix.
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (i Index) indexKey(key []byte) []byte {
	l := len(i.id)
	out := make([]byte, l+len(key))
	copy(out, i.id)
	copy(out[l:], key)
	return out
}

// Update handles updating the reference to the object in
// the secondary index.
//
// prev == nil means insert
// save == nil means delete
// both == nil is error
// if both != nil and prev.Key() != save.Key() this is an error
func (i Index) Update(db ledger.KVStore, prev Object, save Object) error {
	switch {
	case prev == nil && save == nil:
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil object")
	case prev == nil:
		return i.insert(db, save)
	case save == nil:
		return i.remove(db, prev)
	}

	if string(prev.Key()) != string(save.Key()) {
		return errors.Wrap(errors.ErrImmutable, "cannot modify the primary key of an object")
	}
	oldKey, err := i.index(prev)
	if err != nil {
		return err
	}
	newKey, err := i.index(save)
	if err != nil {
		return err
	}
	if string(oldKey) == string(newKey) {
		return nil
	}
	if err := i.remove(db, prev); err != nil {
		return err
	}
	return i.insert(db, save)
}

func (i Index) insert(db ledger.KVStore, obj Object) error {
	key, err := i.index(obj)
	if err != nil || key == nil {
		return err
	}
	refs, err := i.refs(db, key)
	if err != nil {
		return err
	}
	if i.unique && len(refs.Refs) > 0 {
		return errors.Wrapf(ErrUniqueConstraint, "index %s", i.name)
	}
	if err := refs.Add(obj.Key()); err != nil {
		return err
	}
	return i.store(db, key, refs)
}

func (i Index) remove(db ledger.KVStore, obj Object) error {
	key, err := i.index(obj)
	if err != nil || key == nil {
		return err
	}
	refs, err := i.refs(db, key)
	if err != nil {
		return err
	}
	if err := refs.Remove(obj.Key()); err != nil {
		return errors.Wrapf(err, "index %s", i.name)
	}
	return i.store(db, key, refs)
}

func (i Index) store(db ledger.KVStore, key []byte, refs *MultiRef) error {
	if len(refs.Refs) == 0 {
		db.Delete(i.indexKey(key))
		return nil
	}
	raw, err := refs.Marshal()
	if err != nil {
		return err
	}
	db.Set(i.indexKey(key), raw)
	return nil
}

func (i Index) refs(db ledger.ReadOnlyKVStore, key []byte) (*MultiRef, error) {
	refs := new(MultiRef)
	raw := db.Get(i.indexKey(key))
	if raw == nil {
		return refs, nil
	}
	if err := refs.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(err, "index %s", i.name)
	}
	return refs, nil
}

// Keys returns all primary keys indexed under given value.
func (i Index) Keys(db ledger.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	refs, err := i.refs(db, value)
	if err != nil {
		return nil, err
	}
	return refs.Refs, nil
}

// Query handles queries from the QueryRouter. It returns all objects indexed
// under the value given as data.
func (i Index) Query(db ledger.ReadOnlyKVStore, mod string, data []byte) ([]ledger.Model, error) {
	if mod != ledger.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unsupported query mode %q", mod)
	}
	keys, err := i.Keys(db, data)
	if err != nil {
		return nil, err
	}
	res := make([]ledger.Model, 0, len(keys))
	for _, k := range keys {
		dbkey := i.refKey(k)
		res = append(res, ledger.Pair(dbkey, db.Get(dbkey)))
	}
	return res, nil
}
