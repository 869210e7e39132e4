package cash

import (
	"github.com/realchain/ledger"
	"github.com/realchain/ledger/codec"
	"github.com/realchain/ledger/coin"
	"github.com/realchain/ledger/errors"
	"github.com/realchain/ledger/orm"
)

// BucketName is where we store the balances.
const BucketName = "cash"

// Set is the persisted content of a wallet.
type Set struct {
	Coins coin.Coins `json:"coins"`
}

var _ orm.CloneableData = (*Set)(nil)

// Validate requires that all coins are in alphabetical order.
func (s *Set) Validate() error {
	return s.Coins.Validate()
}

// Copy makes a new set with the same coins.
func (s *Set) Copy() orm.CloneableData {
	return &Set{
		Coins: s.Coins.Clone(),
	}
}

func (s *Set) Marshal() ([]byte, error) {
	return codec.Marshal(s)
}

func (s *Set) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, s)
}

// Wallet is the object that we pass around in our code. It contains a set
// of coins, as well as the address.
//
// Wallet is a type-safe wrapper around orm.SimpleObj.
type Wallet struct {
	key   []byte
	value *Set
}

var _ orm.Object = (*Wallet)(nil)

// NewWallet creates an empty wallet with this address.
func NewWallet(key ledger.Address) *Wallet {
	return &Wallet{key: key, value: new(Set)}
}

// WalletWith creates a wallet holding given coins.
func WalletWith(key ledger.Address, coins ...coin.Coin) (*Wallet, error) {
	cs, err := coin.CombineCoins(coins...)
	if err != nil {
		return nil, err
	}
	return &Wallet{key: key, value: &Set{Coins: cs}}, nil
}

// Value gets the value stored in the object.
func (w Wallet) Value() orm.CloneableData {
	return w.value
}

// Key returns the key to store the object under.
func (w Wallet) Key() []byte {
	return w.key
}

// Validate makes sure the fields aren't empty.
func (w Wallet) Validate() error {
	if err := ledger.Address(w.key).Validate(); err != nil {
		return errors.Wrap(err, "wallet address")
	}
	return w.value.Validate()
}

// SetKey may be used to update a simple obj key.
func (w *Wallet) SetKey(key []byte) {
	w.key = key
}

// Clone will make a copy of this object.
func (w *Wallet) Clone() orm.Object {
	res := &Wallet{
		value: w.value.Copy().(*Set),
	}
	// only copy key if non-nil
	if len(w.key) > 0 {
		res.key = append([]byte(nil), w.key...)
	}
	return res
}

// Coins returns the coins stored in the wallet.
func (w Wallet) Coins() coin.Coins {
	return w.value.Coins
}

// Add modifies the wallet to add Coin c.
func (w *Wallet) Add(c coin.Coin) error {
	cs, err := w.value.Coins.Add(c)
	if err != nil {
		return err
	}
	w.value.Coins = cs
	return nil
}

// Subtract modifies the wallet to remove Coin c.
func (w *Wallet) Subtract(c coin.Coin) error {
	return w.Add(c.Negative())
}

// Bucket is a type-safe wrapper around orm.Bucket.
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a cash.Bucket with default name.
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, NewWallet(nil)),
	}
}

// Get returns the wallet stored under given address or nil.
func (b Bucket) Get(db ledger.ReadOnlyKVStore, key ledger.Address) (*Wallet, error) {
	obj, err := b.Bucket.Get(db, key)
	if err != nil || obj == nil {
		return nil, err
	}
	w, ok := obj.(*Wallet)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj)
	}
	return w, nil
}

// Save persists given wallet. A wallet without coins encodes to no bytes,
// so it is removed instead.
func (b Bucket) Save(db ledger.KVStore, w *Wallet) error {
	if w.Coins().IsEmpty() {
		if err := ledger.Address(w.Key()).Validate(); err != nil {
			return errors.Wrap(err, "wallet address")
		}
		return b.Bucket.Delete(db, w.Key())
	}
	return b.Bucket.Save(db, w)
}

// GetOrCreate returns the wallet stored under given address or a new empty
// one, that is not saved.
func (b Bucket) GetOrCreate(db ledger.ReadOnlyKVStore, key ledger.Address) (*Wallet, error) {
	w, err := b.Get(db, key)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = NewWallet(key)
	}
	return w, nil
}
