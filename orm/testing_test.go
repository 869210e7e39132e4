package orm

import (
	"github.com/realchain/ledger/codec"
	"github.com/realchain/ledger/errors"
)

// owned is a simple model used by the tests of this package.
type owned struct {
	Owner []byte
	Count int64
}

var _ CloneableData = (*owned)(nil)

func (o *owned) Validate() error {
	if len(o.Owner) == 0 {
		return errors.Wrap(errors.ErrEmpty, "owner")
	}
	if o.Count < 0 {
		return errors.Wrap(errors.ErrAmount, "negative count")
	}
	return nil
}

func (o *owned) Copy() CloneableData {
	cpy := *o
	cpy.Owner = append([]byte(nil), o.Owner...)
	return &cpy
}

func (o *owned) Marshal() ([]byte, error) {
	return codec.Marshal(o)
}

func (o *owned) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, o)
}

func ownerIndexer(obj Object) ([]byte, error) {
	o, ok := obj.Value().(*owned)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj.Value())
	}
	return o.Owner, nil
}

func newOwnedBucket(unique bool) Bucket {
	return NewBucket("owned", NewSimpleObj(nil, new(owned))).
		WithIndex("owner", ownerIndexer, unique)
}
