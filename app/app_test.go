package app

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/realchain/ledger"
	"github.com/realchain/ledger/coin"
	"github.com/realchain/ledger/errors"
	"github.com/realchain/ledger/ledgertest"
	"github.com/realchain/ledger/store/iavl"
	"github.com/realchain/ledger/x/cash"
	"github.com/realchain/ledger/x/escrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

const chainID = "test-chain-1"

// testChain drives the application the way tendermint does.
type testChain struct {
	t      *testing.T
	app    BaseApp
	height int64
	start  time.Time
}

func newTestChain(t *testing.T, genesis interface{}) *testChain {
	t.Helper()
	app, err := New(iavl.NewMemCommitStore(), Options{})
	require.NoError(t, err)

	state, err := json.Marshal(genesis)
	require.NoError(t, err)
	app.InitChain(abci.RequestInitChain{ChainId: chainID, AppStateBytes: state})

	return &testChain{
		t:     t,
		app:   app,
		start: time.Date(2021, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

// block delivers given transactions in a new block created elapsed seconds
// after the start of the chain. Delivery results are returned in order.
func (c *testChain) block(elapsed int64, txs ...*Tx) []abci.ResponseDeliverTx {
	c.t.Helper()
	c.height++
	c.app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{
		ChainID: chainID,
		Height:  c.height,
		Time:    c.start.Add(time.Duration(elapsed) * time.Second),
	}})
	var res []abci.ResponseDeliverTx
	for _, tx := range txs {
		raw, err := tx.Marshal()
		require.NoError(c.t, err)
		res = append(res, c.app.DeliverTx(raw))
	}
	c.app.EndBlock(abci.RequestEndBlock{Height: c.height})
	commit := c.app.Commit()
	assert.NotEmpty(c.t, commit.Data)
	return res
}

func (c *testChain) balance(addr ledger.Address) coin.Coin {
	c.t.Helper()
	qres := c.app.Query(abci.RequestQuery{Path: "/wallets", Data: addr})
	require.Equal(c.t, uint32(0), qres.Code, qres.Log)
	var set cash.Set
	require.NoError(c.t, UnmarshalOneResult(qres.Value, &set))
	return set.Coins.Balance("RLT")
}

func (c *testChain) escrow(id []byte) *escrow.Escrow {
	c.t.Helper()
	qres := c.app.Query(abci.RequestQuery{Path: "/escrows", Data: id})
	require.Equal(c.t, uint32(0), qres.Code, qres.Log)
	var e escrow.Escrow
	require.NoError(c.t, UnmarshalOneResult(qres.Value, &e))
	return &e
}

func TestEscrowSettlement(t *testing.T) {
	seller := ledgertest.NewCondition()
	buyer := ledgertest.NewCondition()
	collector := ledgertest.NewCondition().Address()

	c := newTestChain(t, map[string]interface{}{
		"conf": map[string]interface{}{
			"cash": cash.Configuration{
				CollectorAddress: collector,
				MinimalFee:       coin.NewCoin(1000, "RLT"),
			},
		},
		"cash": []cash.GenesisAccount{
			{Address: buyer.Address(), Coins: []coin.Coin{coin.NewCoin(5000000, "RLT")}},
		},
	})
	assert.Equal(t, chainID, c.app.GetChainID())

	var propertyHash [escrow.PropertyHashLength]byte
	copy(propertyHash[:], "title deed of 12 Acacia Avenue")

	res := c.block(0, &Tx{
		Signer: seller,
		Msg:    &escrow.CreateMsg{Seller: seller.Address(), PropertyHash: propertyHash[:], Timeout: 3600},
	})
	require.Equal(t, uint32(0), res[0].Code, res[0].Log)
	id := res[0].Data
	account := escrow.Condition(id).Address()

	deposit := &Tx{
		Signer:  buyer,
		Payment: &cash.Payment{Src: buyer.Address(), Dest: account, Amount: coin.NewCoin(1000000, "RLT")},
		Msg:     &escrow.DepositMsg{EscrowID: id},
	}
	raw, err := deposit.Marshal()
	require.NoError(t, err)
	cres := c.app.CheckTx(raw)
	require.Equal(t, uint32(0), cres.Code, cres.Log)

	res = c.block(0, deposit)
	require.Equal(t, uint32(0), res[0].Code, res[0].Log)
	assert.Equal(t, coin.NewCoin(1000000, "RLT"), c.balance(account))
	assert.Equal(t, coin.NewCoin(4000000, "RLT"), c.balance(buyer.Address()))

	res = c.block(10,
		&Tx{Signer: buyer, Msg: &escrow.RefundMsg{EscrowID: id}},
		&Tx{Signer: seller, Msg: &escrow.ConfirmTransferMsg{EscrowID: id, PropertyHash: propertyHash[:]}},
		&Tx{Signer: buyer, Msg: &escrow.RefundMsg{EscrowID: id}},
		&Tx{Signer: buyer, Msg: &escrow.GetInfoMsg{EscrowID: id}},
	)
	assert.Equal(t, escrow.ErrDeadlineNotReached.ABCICode(), res[0].Code, res[0].Log)
	assert.Equal(t, uint32(0), res[1].Code, res[1].Log)
	assert.Equal(t, errors.ErrState.ABCICode(), res[2].Code, res[2].Log)
	require.Equal(t, uint32(0), res[3].Code, res[3].Log)

	var info escrow.Escrow
	require.NoError(t, info.Unmarshal(res[3].Data))
	assert.Equal(t, escrow.Completed, info.Status)
	assert.Equal(t, coin.NewCoin(1000000, "RLT"), info.DepositAmount)

	assert.Equal(t, coin.NewCoin(999000, "RLT"), c.balance(seller.Address()))
	assert.Equal(t, coin.NewCoin(1000, "RLT"), c.balance(collector))
	assert.True(t, c.balance(account).IsZero())
	assert.Equal(t, escrow.Completed, c.escrow(id).Status)

	res = c.block(20, &Tx{Signer: seller, Msg: &escrow.DeleteMsg{EscrowID: id}})
	require.Equal(t, uint32(0), res[0].Code, res[0].Log)

	qres := c.app.Query(abci.RequestQuery{Path: "/escrows", Data: id})
	require.Equal(t, uint32(0), qres.Code, qres.Log)
	var rs ResultSet
	require.NoError(t, rs.Unmarshal(qres.Value))
	assert.Empty(t, rs.Results)

	// the custodial account stays reserved once its escrow is gone
	res = c.block(30, &Tx{
		Signer: seller,
		Msg:    &cash.SendMsg{Src: seller.Address(), Dest: account, Amount: coin.NewCoin(100, "RLT")},
	})
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), res[0].Code, res[0].Log)
	assert.Equal(t, coin.NewCoin(999000, "RLT"), c.balance(seller.Address()))
}

func TestEscrowRefundAfterDeadline(t *testing.T) {
	seller := ledgertest.NewCondition()
	buyer := ledgertest.NewCondition()
	collector := ledgertest.NewCondition().Address()

	c := newTestChain(t, map[string]interface{}{
		"conf": map[string]interface{}{
			"cash": cash.Configuration{CollectorAddress: collector},
		},
		"cash": []cash.GenesisAccount{
			{Address: buyer.Address(), Coins: []coin.Coin{coin.NewCoin(1000001, "RLT")}},
		},
	})

	var propertyHash [escrow.PropertyHashLength]byte
	res := c.block(0, &Tx{
		Signer: seller,
		Msg:    &escrow.CreateMsg{Seller: seller.Address(), PropertyHash: propertyHash[:], Timeout: 3600},
	})
	require.Equal(t, uint32(0), res[0].Code, res[0].Log)
	id := res[0].Data
	account := escrow.Condition(id).Address()

	res = c.block(0,
		&Tx{
			Signer:  buyer,
			Payment: &cash.Payment{Src: buyer.Address(), Dest: account, Amount: coin.NewCoin(1000000, "RLT")},
			Msg:     &escrow.DepositMsg{EscrowID: id},
		},
		// the second deposit is rejected and its payment reverted
		&Tx{
			Signer:  buyer,
			Payment: &cash.Payment{Src: buyer.Address(), Dest: account, Amount: coin.NewCoin(1, "RLT")},
			Msg:     &escrow.DepositMsg{EscrowID: id},
		},
	)
	require.Equal(t, uint32(0), res[0].Code, res[0].Log)
	assert.Equal(t, escrow.ErrAlreadyResolved.ABCICode(), res[1].Code, res[1].Log)
	assert.Equal(t, coin.NewCoin(1000000, "RLT"), c.balance(account))
	assert.Equal(t, coin.NewCoin(1, "RLT"), c.balance(buyer.Address()))

	res = c.block(3700, &Tx{Signer: buyer, Msg: &escrow.RefundMsg{EscrowID: id}})
	require.Equal(t, uint32(0), res[0].Code, res[0].Log)
	assert.Equal(t, coin.NewCoin(1000001, "RLT"), c.balance(buyer.Address()))
	assert.Equal(t, escrow.Refunded, c.escrow(id).Status)
}

func TestCustodialAccountCannotSign(t *testing.T) {
	seller := ledgertest.NewCondition()
	buyer := ledgertest.NewCondition()
	thief := ledgertest.NewCondition()

	c := newTestChain(t, map[string]interface{}{
		"conf": map[string]interface{}{
			"cash": cash.Configuration{CollectorAddress: ledgertest.NewCondition().Address()},
		},
		"cash": []cash.GenesisAccount{
			{Address: buyer.Address(), Coins: []coin.Coin{coin.NewCoin(1000000, "RLT")}},
		},
	})

	var propertyHash [escrow.PropertyHashLength]byte
	res := c.block(0, &Tx{
		Signer: seller,
		Msg:    &escrow.CreateMsg{Seller: seller.Address(), PropertyHash: propertyHash[:], Timeout: 3600},
	})
	require.Equal(t, uint32(0), res[0].Code, res[0].Log)
	id := res[0].Data
	account := escrow.Condition(id)

	res = c.block(0, &Tx{
		Signer:  buyer,
		Payment: &cash.Payment{Src: buyer.Address(), Dest: account.Address(), Amount: coin.NewCoin(1000000, "RLT")},
		Msg:     &escrow.DepositMsg{EscrowID: id},
	})
	require.Equal(t, uint32(0), res[0].Code, res[0].Log)

	drain := &Tx{
		Signer: account,
		Msg:    &cash.SendMsg{Src: account.Address(), Dest: thief.Address(), Amount: coin.NewCoin(999999, "RLT")},
	}
	raw, err := drain.Marshal()
	require.NoError(t, err)
	cres := c.app.CheckTx(raw)
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), cres.Code, cres.Log)

	res = c.block(1, drain)
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), res[0].Code, res[0].Log)
	assert.True(t, c.balance(thief.Address()).IsZero())
	assert.Equal(t, coin.NewCoin(1000000, "RLT"), c.balance(account.Address()))
}

func TestPaymentOnlyWithDeposit(t *testing.T) {
	seller := ledgertest.NewCondition()
	buyer := ledgertest.NewCondition()

	c := newTestChain(t, map[string]interface{}{
		"conf": map[string]interface{}{
			"cash": cash.Configuration{CollectorAddress: ledgertest.NewCondition().Address()},
		},
		"cash": []cash.GenesisAccount{
			{Address: buyer.Address(), Coins: []coin.Coin{coin.NewCoin(1000, "RLT")}},
		},
	})

	var propertyHash [escrow.PropertyHashLength]byte
	res := c.block(0, &Tx{
		Signer: seller,
		Msg:    &escrow.CreateMsg{Seller: seller.Address(), PropertyHash: propertyHash[:], Timeout: 3600},
	})
	require.Equal(t, uint32(0), res[0].Code, res[0].Log)
	id := res[0].Data
	account := escrow.Condition(id).Address()

	res = c.block(1,
		&Tx{
			Signer:  buyer,
			Payment: &cash.Payment{Src: buyer.Address(), Dest: seller.Address(), Amount: coin.NewCoin(100, "RLT")},
			Msg:     &escrow.GetInfoMsg{EscrowID: id},
		},
		&Tx{
			Signer:  buyer,
			Payment: &cash.Payment{Src: buyer.Address(), Dest: account, Amount: coin.NewCoin(100, "RLT")},
			Msg:     &escrow.RefundMsg{EscrowID: id},
		},
		&Tx{
			Signer: buyer,
			Msg:    &cash.SendMsg{Src: buyer.Address(), Dest: account, Amount: coin.NewCoin(100, "RLT")},
		},
	)
	assert.Equal(t, errors.ErrMsg.ABCICode(), res[0].Code, res[0].Log)
	assert.Equal(t, errors.ErrMsg.ABCICode(), res[1].Code, res[1].Log)
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), res[2].Code, res[2].Log)
	assert.Equal(t, coin.NewCoin(1000, "RLT"), c.balance(buyer.Address()))
	assert.True(t, c.balance(seller.Address()).IsZero())
	assert.True(t, c.balance(account).IsZero())
	assert.Equal(t, escrow.Active, c.escrow(id).Status)
	assert.False(t, c.escrow(id).HasDeposit())
}

func TestUnknownMessage(t *testing.T) {
	c := newTestChain(t, map[string]interface{}{
		"conf": map[string]interface{}{
			"cash": cash.Configuration{CollectorAddress: ledgertest.NewCondition().Address()},
		},
	})

	res := c.block(0, &Tx{Signer: ledgertest.NewCondition()})
	assert.Equal(t, errors.ErrMsg.ABCICode(), res[0].Code, res[0].Log)

	dres := c.app.DeliverTx([]byte("garbage"))
	assert.NotEqual(t, uint32(0), dres.Code)
}

func TestQueryErrors(t *testing.T) {
	c := newTestChain(t, map[string]interface{}{
		"conf": map[string]interface{}{
			"cash": cash.Configuration{CollectorAddress: ledgertest.NewCondition().Address()},
		},
	})

	qres := c.app.Query(abci.RequestQuery{Path: "/nothing"})
	assert.Equal(t, errors.ErrNotFound.ABCICode(), qres.Code)

	qres = c.app.Query(abci.RequestQuery{Path: "/escrows?prefix", Data: []byte{0}})
	assert.Equal(t, errors.ErrInput.ABCICode(), qres.Code)
}
