package escrow

import (
	"encoding/json"
	"testing"

	"github.com/realchain/ledger/coin"
	"github.com/realchain/ledger/errors"
	"github.com/realchain/ledger/ledgertest"
	"github.com/realchain/ledger/orm"
	"github.com/realchain/ledger/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscrowValidate(t *testing.T) {
	seller := ledgertest.NewCondition().Address()
	buyer := ledgertest.NewCondition().Address()
	account := Condition(orm.EncodeSequence(1)).Address()

	cases := map[string]struct {
		escrow  Escrow
		wantErr *errors.Error
	}{
		"waiting for a deposit": {
			escrow: Escrow{Seller: seller, PropertyHash: propertyHash[:], Deadline: 1000, Address: account},
		},
		"funded": {
			escrow: Escrow{
				Seller: seller, Buyer: buyer, PropertyHash: propertyHash[:], Deadline: 1000,
				DepositAmount: coin.NewCoin(10, "RLT"), Address: account,
			},
		},
		"completed": {
			escrow: Escrow{
				Seller: seller, Buyer: buyer, PropertyHash: propertyHash[:], Deadline: 1000,
				DepositAmount: coin.NewCoin(10, "RLT"), Status: Completed, Address: account,
			},
		},
		"completed without a deposit": {
			escrow:  Escrow{Seller: seller, PropertyHash: propertyHash[:], Deadline: 1000, Status: Completed, Address: account},
			wantErr: errors.ErrState,
		},
		"deposit without a buyer": {
			escrow: Escrow{
				Seller: seller, PropertyHash: propertyHash[:], Deadline: 1000,
				DepositAmount: coin.NewCoin(10, "RLT"), Address: account,
			},
			wantErr: errors.ErrState,
		},
		"buyer without a deposit": {
			escrow:  Escrow{Seller: seller, Buyer: buyer, PropertyHash: propertyHash[:], Deadline: 1000, Address: account},
			wantErr: errors.ErrAmount,
		},
		"invalid deposit currency": {
			escrow: Escrow{
				Seller: seller, Buyer: buyer, PropertyHash: propertyHash[:], Deadline: 1000,
				DepositAmount: coin.NewCoin(10, "x"), Address: account,
			},
			wantErr: errors.ErrCurrency,
		},
		"unknown status": {
			escrow:  Escrow{Seller: seller, PropertyHash: propertyHash[:], Deadline: 1000, Status: 7, Address: account},
			wantErr: errors.ErrInput,
		},
		"missing property hash": {
			escrow:  Escrow{Seller: seller, Deadline: 1000, Address: account},
			wantErr: errors.ErrInput,
		},
		"negative deadline": {
			escrow:  Escrow{Seller: seller, PropertyHash: propertyHash[:], Deadline: -1, Address: account},
			wantErr: errors.ErrState,
		},
		"missing custodial account": {
			escrow:  Escrow{Seller: seller, PropertyHash: propertyHash[:], Deadline: 1000},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.escrow.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, tc.wantErr.Is(err), "got %v", err)
			}
		})
	}
}

func TestEscrowCopy(t *testing.T) {
	orig := &Escrow{
		Seller:        ledgertest.NewCondition().Address(),
		Buyer:         ledgertest.NewCondition().Address(),
		PropertyHash:  propertyHash[:],
		DepositAmount: coin.NewCoin(10, "RLT"),
		Deadline:      1000,
		Address:       Condition(orm.EncodeSequence(1)).Address(),
	}
	cpy := orig.Copy().(*Escrow)
	assert.Equal(t, orig, cpy)

	cpy.Seller[0]++
	cpy.PropertyHash[0]++
	assert.NotEqual(t, orig.Seller, cpy.Seller)
	assert.NotEqual(t, orig.PropertyHash, cpy.PropertyHash)
}

func TestBucketIndexes(t *testing.T) {
	db := store.MemStore()
	b := NewBucket()

	seller := ledgertest.NewCondition().Address()
	buyer := ledgertest.NewCondition().Address()

	open, err := b.Create(db, &Escrow{Seller: seller, PropertyHash: propertyHash[:], Deadline: 1000})
	require.NoError(t, err)
	funded, err := b.Create(db, &Escrow{
		Seller: seller, Buyer: buyer, PropertyHash: otherHash[:], Deadline: 1000,
		DepositAmount: coin.NewCoin(5, "RLT"),
	})
	require.NoError(t, err)
	assert.Equal(t, orm.EncodeSequence(1), open.Key())
	assert.Equal(t, orm.EncodeSequence(2), funded.Key())

	sold, err := b.BySeller(db, seller)
	require.NoError(t, err)
	assert.Len(t, sold, 2)

	bought, err := b.ByBuyer(db, buyer)
	require.NoError(t, err)
	require.Len(t, bought, 1)
	assert.Equal(t, funded.Key(), bought[0].Key())

	_, err = b.GetEscrow(db, orm.EncodeSequence(3))
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestStatus(t *testing.T) {
	assert.False(t, Active.IsTerminal())
	assert.True(t, Completed.IsTerminal())
	assert.True(t, Refunded.IsTerminal())
	assert.Equal(t, "Status(9)", Status(9).String())

	raw, err := json.Marshal(Refunded)
	require.NoError(t, err)
	assert.Equal(t, `"refunded"`, string(raw))

	var s Status
	require.NoError(t, json.Unmarshal([]byte(`"completed"`), &s))
	assert.Equal(t, Completed, s)
	err = json.Unmarshal([]byte(`"lost"`), &s)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestOperation(t *testing.T) {
	cases := map[Operation]string{
		OpDeposit:         "escrow/deposit",
		OpConfirmTransfer: "escrow/confirm_transfer",
		OpRefund:          "escrow/refund",
		OpGetInfo:         "escrow/get_info",
	}
	assert.Len(t, Operations(), len(cases))
	for _, op := range Operations() {
		assert.Equal(t, cases[op], op.Path())
	}
	assert.Equal(t, "unknown", Operation(99).String())
}

func TestReservedAccounts(t *testing.T) {
	db := store.MemStore()
	b := NewBucket()
	seller := ledgertest.NewCondition().Address()

	var propertyHash [PropertyHashLength]byte
	obj, err := b.Create(db, &Escrow{Seller: seller, PropertyHash: propertyHash[:], Deadline: 1000})
	require.NoError(t, err)
	account := AsEscrow(obj).Address

	assert.True(t, b.IsReserved(db, account))
	assert.False(t, b.IsReserved(db, seller))
	assert.False(t, b.IsReserved(db, Condition(orm.EncodeSequence(2)).Address()))
	assert.False(t, b.IsReserved(db, nil))

	require.NoError(t, b.Delete(db, obj.Key()))
	assert.True(t, b.IsReserved(db, account))
}

func TestCondition(t *testing.T) {
	a := Condition(orm.EncodeSequence(1))
	b := Condition(orm.EncodeSequence(2))
	assert.False(t, a.Address().Equals(b.Address()))
	assert.NoError(t, a.Address().Validate())
}
