package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/realchain/ledger"
	"github.com/realchain/ledger/errors"
	"github.com/realchain/ledger/ledgertest"
	"github.com/realchain/ledger/store"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	ctx := ledger.WithLogger(context.Background(), log.NewTMLogger(&buf))
	tx := &ledgertest.Tx{Msg: &ledgertest.Msg{RoutePath: "escrow/deposit"}}

	h := ledgertest.Decorate(&ledgertest.Handler{
		DeliverResult: ledger.DeliverResult{Log: "deposited"},
	}, NewLogging())
	_, err := h.Deliver(ctx, store.MemStore(), tx)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "deposited")
	assert.Contains(t, buf.String(), "path=escrow/deposit")
	assert.Contains(t, buf.String(), "call=deliver")

	buf.Reset()
	h = ledgertest.Decorate(&ledgertest.Handler{CheckErr: errors.ErrState}, NewLogging())
	_, err = h.Check(ctx, store.MemStore(), tx)
	assert.True(t, errors.ErrState.Is(err))
	assert.Contains(t, buf.String(), "invalid state")
	assert.Contains(t, buf.String(), "call=check")
}
