package store

// RecordingStore wraps a store and records every write made through it.
// It is used to assert that read only operations leave the state untouched.
type RecordingStore struct {
	CacheableKVStore
	ops []Op
}

var _ CacheableKVStore = (*RecordingStore)(nil)

// NewRecordingStore returns a store that records all writes before passing
// them to db.
func NewRecordingStore(db CacheableKVStore) *RecordingStore {
	return &RecordingStore{CacheableKVStore: db}
}

// Set records the change while performing it.
func (r *RecordingStore) Set(key, value []byte) {
	r.ops = append(r.ops, SetOp(key, value))
	r.CacheableKVStore.Set(key, value)
}

// Delete records the change while performing it.
func (r *RecordingStore) Delete(key []byte) {
	r.ops = append(r.ops, DelOp(key))
	r.CacheableKVStore.Delete(key)
}

// NewBatch returns a batch whose writes are recorded when flushed.
func (r *RecordingStore) NewBatch() Batch {
	return NewNonAtomicBatch(r)
}

// CacheWrap returns a cache wrap whose writes are recorded when flushed.
func (r *RecordingStore) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(r, r.NewBatch(), nil)
}

// Ops returns all recorded writes in order.
func (r *RecordingStore) Ops() []Op {
	return r.ops
}
