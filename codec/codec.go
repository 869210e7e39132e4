/*
Package codec provides the binary encoding used by every persisted model and
every message of the ledger.

Values are encoded with amino. Plain structures can be encoded with the
package level Marshal and Unmarshal functions. Structures holding interface
values (transactions carrying a message) must use a codec with all concrete
implementations registered, see New.
*/
package codec

import (
	"github.com/realchain/ledger/errors"
	amino "github.com/tendermint/go-amino"
)

// Codec is the amino codec type.
type Codec = amino.Codec

var plain = amino.NewCodec()

// New returns an empty codec. Register interfaces and their concrete
// implementations before using it to encode interface values.
func New() *Codec {
	return amino.NewCodec()
}

// Marshal encodes given value.
func Marshal(o interface{}) ([]byte, error) {
	return MarshalWith(plain, o)
}

// Unmarshal decodes raw into ptr, that must be a pointer.
func Unmarshal(raw []byte, ptr interface{}) error {
	return UnmarshalWith(plain, raw, ptr)
}

// MarshalWith encodes given value using given codec.
func MarshalWith(cdc *Codec, o interface{}) ([]byte, error) {
	bz, err := cdc.MarshalBinaryBare(o)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrType, "marshal %T: %s", o, err)
	}
	return bz, nil
}

// UnmarshalWith decodes raw into ptr using given codec.
func UnmarshalWith(cdc *Codec, raw []byte, ptr interface{}) error {
	if err := cdc.UnmarshalBinaryBare(raw, ptr); err != nil {
		return errors.Wrapf(errors.ErrType, "unmarshal %T: %s", ptr, err)
	}
	return nil
}

// MustMarshal is like Marshal but panics on failure. Use only with values
// that are known to be encodable.
func MustMarshal(o interface{}) []byte {
	bz, err := Marshal(o)
	if err != nil {
		panic(err)
	}
	return bz
}
