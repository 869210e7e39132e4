package escrow

import (
	"github.com/realchain/ledger"
	"github.com/realchain/ledger/codec"
	"github.com/realchain/ledger/coin"
	"github.com/realchain/ledger/errors"
	"github.com/realchain/ledger/orm"
	"github.com/realchain/ledger/x/cash"
)

const (
	// BucketName is where we store the escrows.
	BucketName = "escrow"

	// PropertyHashLength is the size of the property documents digest.
	PropertyHashLength = 32

	// accountPrefix marks the custodial accounts ever assigned to an
	// escrow. The marker outlives the escrow.
	accountPrefix = "_escrowacct:"
)

// Escrow is the state of a single deal between a seller and a buyer.
type Escrow struct {
	Seller        ledger.Address  `json:"seller"`
	Buyer         ledger.Address  `json:"buyer,omitempty"`
	PropertyHash  []byte          `json:"property_hash"`
	DepositAmount coin.Coin       `json:"deposit_amount"`
	Deadline      ledger.UnixTime `json:"deadline"`
	Status        Status          `json:"status"`
	// Address is the custodial account holding the deposit.
	Address ledger.Address `json:"address"`
}

var (
	_ orm.CloneableData     = (*Escrow)(nil)
	_ cash.ReservedAccounts = Bucket{}
)

// HasDeposit returns true if a deposit was recorded.
func (e *Escrow) HasDeposit() bool {
	return e.DepositAmount.IsPositive()
}

// Validate ensures the escrow is valid.
func (e *Escrow) Validate() error {
	if err := e.Seller.Validate(); err != nil {
		return errors.Wrap(err, "seller")
	}
	if len(e.PropertyHash) != PropertyHashLength {
		return errors.Wrapf(errors.ErrInput, "property hash must be %d bytes", PropertyHashLength)
	}
	if err := e.Deadline.Validate(); err != nil {
		return errors.Wrap(err, "deadline")
	}
	if err := e.Status.Validate(); err != nil {
		return errors.Wrap(err, "status")
	}
	if err := e.Address.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}

	if len(e.Buyer) == 0 {
		if !e.DepositAmount.IsZero() {
			return errors.Wrap(errors.ErrState, "deposit without a buyer")
		}
		if e.Status.IsTerminal() {
			return errors.Wrap(errors.ErrState, "resolved without a deposit")
		}
		return nil
	}
	if err := e.Buyer.Validate(); err != nil {
		return errors.Wrap(err, "buyer")
	}
	if !e.DepositAmount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "buyer without a deposit")
	}
	if err := e.DepositAmount.Validate(); err != nil {
		return errors.Wrap(err, "deposit amount")
	}
	return nil
}

// Copy makes a deep copy of the escrow.
func (e *Escrow) Copy() orm.CloneableData {
	return &Escrow{
		Seller:        cloneBytes(e.Seller),
		Buyer:         cloneBytes(e.Buyer),
		PropertyHash:  cloneBytes(e.PropertyHash),
		DepositAmount: e.DepositAmount,
		Deadline:      e.Deadline,
		Status:        e.Status,
		Address:       cloneBytes(e.Address),
	}
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}

func (e *Escrow) Marshal() ([]byte, error) {
	return codec.Marshal(e)
}

func (e *Escrow) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, e)
}

// Condition calculates the condition owning the custodial account of an
// escrow given its key.
func Condition(key []byte) ledger.Condition {
	return ledger.NewCondition("escrow", "seq", key)
}

// Bucket is a type-safe wrapper around orm.Bucket.
type Bucket struct {
	orm.Bucket
	seq orm.Sequence
}

// NewBucket initializes an escrow Bucket, indexed by seller and buyer.
func NewBucket() Bucket {
	b := orm.NewBucket(BucketName, orm.NewSimpleObj(nil, new(Escrow))).
		WithIndex("seller", idxSeller, false).
		WithIndex("buyer", idxBuyer, false)
	return Bucket{
		Bucket: b,
		seq:    b.Sequence(orm.SeqID),
	}
}

// Create assigns a new id to given escrow and saves it.
func (b Bucket) Create(db ledger.KVStore, e *Escrow) (orm.Object, error) {
	key := b.seq.NextVal(db)
	e.Address = Condition(key).Address()
	obj := orm.NewSimpleObj(key, e)
	if err := b.Bucket.Save(db, obj); err != nil {
		return nil, err
	}
	db.Set(accountKey(e.Address), key)
	return obj, nil
}

// IsReserved returns true if given address is the custodial account of an
// escrow, including one that was deleted since.
func (b Bucket) IsReserved(db ledger.ReadOnlyKVStore, addr ledger.Address) bool {
	if len(addr) == 0 {
		return false
	}
	return db.Has(accountKey(addr))
}

func accountKey(addr ledger.Address) []byte {
	return append([]byte(accountPrefix), addr...)
}

// GetEscrow loads the escrow stored under given id. ErrNotFound is returned
// if it does not exist.
func (b Bucket) GetEscrow(db ledger.ReadOnlyKVStore, id []byte) (*Escrow, error) {
	obj, err := b.Get(db, id)
	if err != nil {
		return nil, errors.Wrap(err, "cannot load escrow from the store")
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "escrow %X", id)
	}
	return AsEscrow(obj), nil
}

// SaveEscrow stores given escrow under its id.
func (b Bucket) SaveEscrow(db ledger.KVStore, id []byte, e *Escrow) error {
	return b.Bucket.Save(db, orm.NewSimpleObj(id, e))
}

// BySeller returns all escrows opened by given seller.
func (b Bucket) BySeller(db ledger.ReadOnlyKVStore, seller ledger.Address) ([]orm.Object, error) {
	return b.GetIndexed(db, "seller", seller)
}

// ByBuyer returns all escrows funded by given buyer.
func (b Bucket) ByBuyer(db ledger.ReadOnlyKVStore, buyer ledger.Address) ([]orm.Object, error) {
	return b.GetIndexed(db, "buyer", buyer)
}

// AsEscrow extracts an *Escrow value or nil from the object.
// Must be called on a Bucket result that is an *Escrow,
// will panic on bad type.
func AsEscrow(obj orm.Object) *Escrow {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Escrow)
}

func toEscrow(obj orm.Object) (*Escrow, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	esc, ok := obj.Value().(*Escrow)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "can only take index of Escrow")
	}
	return esc, nil
}

func idxSeller(obj orm.Object) ([]byte, error) {
	esc, err := toEscrow(obj)
	if err != nil {
		return nil, err
	}
	return esc.Seller, nil
}

// idxBuyer does not index escrows without a deposit.
func idxBuyer(obj orm.Object) ([]byte, error) {
	esc, err := toEscrow(obj)
	if err != nil {
		return nil, err
	}
	if len(esc.Buyer) == 0 {
		return nil, nil
	}
	return esc.Buyer, nil
}
