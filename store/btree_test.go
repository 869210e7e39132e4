package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStoreGetSetDelete(t *testing.T) {
	db := MemStore()

	assert.Nil(t, db.Get([]byte("missing")))
	assert.False(t, db.Has([]byte("missing")))

	db.Set([]byte("foo"), []byte("bar"))
	assert.Equal(t, []byte("bar"), db.Get([]byte("foo")))
	assert.True(t, db.Has([]byte("foo")))

	db.Set([]byte("foo"), []byte("baz"))
	assert.Equal(t, []byte("baz"), db.Get([]byte("foo")))

	db.Delete([]byte("foo"))
	assert.Nil(t, db.Get([]byte("foo")))
	assert.False(t, db.Has([]byte("foo")))
}

func TestCacheWrapWriteAndDiscard(t *testing.T) {
	base := MemStore()
	base.Set([]byte("a"), []byte("1"))
	base.Set([]byte("b"), []byte("2"))

	cases := map[string]struct {
		write   bool
		wantA   []byte
		wantB   []byte
		wantNew []byte
	}{
		"discarded changes are not visible": {
			write:   false,
			wantA:   []byte("1"),
			wantB:   []byte("2"),
			wantNew: nil,
		},
		"written changes are visible": {
			write:   true,
			wantA:   []byte("changed"),
			wantB:   nil,
			wantNew: []byte("new"),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent := base.CacheWrap()
			cache := parent.CacheWrap()

			cache.Set([]byte("a"), []byte("changed"))
			cache.Delete([]byte("b"))
			cache.Set([]byte("new"), []byte("new"))

			// the cache sees its own writes
			assert.Equal(t, []byte("changed"), cache.Get([]byte("a")))
			assert.False(t, cache.Has([]byte("b")))
			// the parent does not until written
			assert.Equal(t, []byte("1"), parent.Get([]byte("a")))

			if tc.write {
				cache.Write()
			} else {
				cache.Discard()
			}

			assert.Equal(t, tc.wantA, parent.Get([]byte("a")))
			assert.Equal(t, tc.wantB, parent.Get([]byte("b")))
			assert.Equal(t, tc.wantNew, parent.Get([]byte("new")))

			// base is untouched until the parent is written
			assert.Equal(t, []byte("1"), base.Get([]byte("a")))
			parent.Discard()
		})
	}
}

func TestNonAtomicBatch(t *testing.T) {
	db := MemStore()
	db.Set([]byte("gone"), []byte("x"))

	b := db.NewBatch()
	b.Set([]byte("one"), []byte("1"))
	b.Delete([]byte("gone"))

	nb, ok := b.(*NonAtomicBatch)
	require.True(t, ok)
	require.Len(t, nb.Ops(), 2)
	assert.False(t, nb.Ops()[0].IsDelete())
	assert.True(t, nb.Ops()[1].IsDelete())

	// nothing is applied before write
	assert.Nil(t, db.Get([]byte("one")))
	assert.True(t, db.Has([]byte("gone")))

	b.Write()
	assert.Equal(t, []byte("1"), db.Get([]byte("one")))
	assert.False(t, db.Has([]byte("gone")))
	assert.Empty(t, nb.Ops())
}

func TestRecordingStore(t *testing.T) {
	rec := NewRecordingStore(MemStore())
	rec.Set([]byte("k"), []byte("v"))
	assert.Equal(t, []byte("v"), rec.Get([]byte("k")))

	cache := rec.CacheWrap()
	cache.Delete([]byte("k"))
	assert.Len(t, rec.Ops(), 1)
	cache.Write()

	ops := rec.Ops()
	require.Len(t, ops, 2)
	assert.Equal(t, []byte("k"), ops[1].Key())
	assert.True(t, ops[1].IsDelete())
	assert.False(t, rec.Has([]byte("k")))
}
