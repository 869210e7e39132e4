package ledger

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContext(t *testing.T) {
	bg := context.Background()

	newLogger := log.NewTMLogger(os.Stdout)
	ctx := WithLogger(bg, newLogger)
	assert.Equal(t, DefaultLogger, GetLogger(bg))
	assert.Equal(t, newLogger, GetLogger(ctx))

	val, ok := GetHeight(ctx)
	assert.Equal(t, int64(0), val)
	assert.False(t, ok)

	ctx = WithHeight(ctx, 7)
	val, ok = GetHeight(ctx)
	assert.Equal(t, int64(7), val)
	assert.True(t, ok)
	assert.Panics(t, func() { WithHeight(ctx, 9) })

	// changing the info modifies the logger, but not the height
	ctx2 := WithLogInfo(ctx, "foo", "bar")
	assert.NotEqual(t, GetLogger(ctx), GetLogger(ctx2))
	val, _ = GetHeight(ctx2)
	assert.Equal(t, int64(7), val)

	assert.Panics(t, func() { GetChainID(ctx) })
	ctx2 = WithChainID(ctx, "escrow-chain")
	assert.Equal(t, "escrow-chain", GetChainID(ctx2))
	assert.Panics(t, func() { WithChainID(ctx2, "escrow-chain") })
	assert.Panics(t, func() { WithChainID(ctx, "bad") })
}

func TestContextHeader(t *testing.T) {
	now := time.Date(2019, 4, 1, 10, 0, 0, 0, time.UTC)
	header := abci.Header{Height: 12, Time: now, ChainID: "escrow-chain"}

	ctx := WithHeader(context.Background(), header)

	got, ok := GetHeader(ctx)
	assert.True(t, ok)
	assert.Equal(t, header, got)

	h, ok := GetHeight(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(12), h)

	bt, ok := BlockTime(ctx)
	assert.True(t, ok)
	assert.Equal(t, now, bt)

	assert.Panics(t, func() { WithHeader(ctx, header) })
	assert.Panics(t, func() { WithBlockTime(ctx, now) })
}

func TestContextHeaderWithoutTime(t *testing.T) {
	ctx := WithHeader(context.Background(), abci.Header{Height: 3})
	_, ok := BlockTime(ctx)
	assert.False(t, ok)
	assert.Panics(t, func() { MustBlockTime(ctx) })
}

func TestIsExpired(t *testing.T) {
	now := time.Unix(1000, 0)
	ctx := WithBlockTime(context.Background(), now)

	assert.True(t, IsExpired(ctx, 999))
	assert.True(t, IsExpired(ctx, 1000), "expiration is inclusive")
	assert.False(t, IsExpired(ctx, 1001))

	assert.True(t, InThePast(ctx, now.Add(-time.Second)))
	assert.False(t, InThePast(ctx, now))
	assert.False(t, InThePast(ctx, now.Add(time.Second)))

	assert.Panics(t, func() { IsExpired(context.Background(), 1) })
}

func TestChainID(t *testing.T) {
	cases := []struct {
		chainID string
		valid   bool
	}{
		{"", false},
		{"foo", false},
		{"special", true},
		{"wish-YOU-88", true},
		{"invalid;;chars", false},
		{"this-chain-id-is-way-too-long", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.valid, IsValidChainID(tc.chainID), tc.chainID)
	}
}
