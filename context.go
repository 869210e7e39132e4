package ledger

import (
	"context"
	"fmt"
	"regexp"
	"time"

	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

type contextKey int

const (
	contextKeyHeader contextKey = iota
	contextKeyHeight
	contextKeyChainID
	contextKeyLogger
	contextKeyBlockTime
)

var (
	// DefaultLogger is used for all context that have not
	// set anything themselves.
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID is the RegExp to ensure valid chain IDs.
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// Context is the request scope passed between the application, decorators
// and handlers. Block information is attached with the With* helpers and
// read back with their getter counterparts.
//
// Block level values (header, height, chain id, time) can be set only once.
// Setting them again panics, so that no lower level code can overwrite what
// the application declared for the block.
type Context = context.Context

// WithHeader sets the block header for the Context. It also sets the
// height and the block time, unless they are already present.
// panics if header already set
func WithHeader(ctx Context, header abci.Header) Context {
	if _, ok := GetHeader(ctx); ok {
		panic("Header already set")
	}
	ctx = context.WithValue(ctx, contextKeyHeader, header)
	if _, ok := GetHeight(ctx); !ok {
		ctx = WithHeight(ctx, header.Height)
	}
	if _, ok := BlockTime(ctx); !ok && !header.Time.IsZero() {
		ctx = WithBlockTime(ctx, header.Time)
	}
	return ctx
}

// GetHeader returns the current block header.
// ok is false if no header set in this Context.
func GetHeader(ctx Context) (abci.Header, bool) {
	val, ok := ctx.Value(contextKeyHeader).(abci.Header)
	return val, ok
}

// WithHeight sets the block height for the Context.
// panics if called with height already set
func WithHeight(ctx Context, height int64) Context {
	if _, ok := GetHeight(ctx); ok {
		panic("Height already set")
	}
	return context.WithValue(ctx, contextKeyHeight, height)
}

// GetHeight returns the current block height.
// ok is false if no height set in this Context.
func GetHeight(ctx Context) (int64, bool) {
	val, ok := ctx.Value(contextKeyHeight).(int64)
	return val, ok
}

// WithBlockTime sets the block time for the Context. Block time is the
// only notion of "now" available to handlers.
// panics if called with block time already set
func WithBlockTime(ctx Context, t time.Time) Context {
	if _, ok := BlockTime(ctx); ok {
		panic("Block time already set")
	}
	return context.WithValue(ctx, contextKeyBlockTime, t)
}

// BlockTime returns the current block time.
// ok is false if no block time set in this Context.
func BlockTime(ctx Context) (time.Time, bool) {
	val, ok := ctx.Value(contextKeyBlockTime).(time.Time)
	return val, ok
}

// MustBlockTime returns the current block time or panics if it was not set.
func MustBlockTime(ctx Context) time.Time {
	t, ok := BlockTime(ctx)
	if !ok {
		panic("block time not present in the context")
	}
	return t
}

// WithChainID sets the chain id for the Context.
// panics if called with chain id already set, or an invalid chain id
func WithChainID(ctx Context, chainID string) Context {
	if ctx.Value(contextKeyChainID) != nil {
		panic("Chain ID already set")
	}
	if !IsValidChainID(chainID) {
		panic(fmt.Sprintf("Invalid chain ID: %s", chainID))
	}
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID returns the current chain id.
// panics if chain id not already set (should never happen)
func GetChainID(ctx Context) string {
	if x := ctx.Value(contextKeyChainID); x == nil {
		panic("Chain ID not present in the context")
	}
	return ctx.Value(contextKeyChainID).(string)
}

// WithLogger sets the logger for this Context.
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// GetLogger returns the currently set logger, or
// DefaultLogger if none was set.
func GetLogger(ctx Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}

// WithLogInfo accepts key value pairs, and returns another
// context like this, after passing all the keyvals to the
// Logger.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// IsExpired returns true if given time is in the past as compared to the
// "now" as declared for the block. Expiration is inclusive, meaning that if
// current time is equal to the expiration time than this function returns
// true.
//
// This function panics if the block time is not provided in the context.
func IsExpired(ctx Context, t UnixTime) bool {
	return t <= AsUnixTime(MustBlockTime(ctx))
}

// InThePast returns true if given time is in the past compared to the
// current time as declared in the context. Given time equal to "now" is not
// in the past.
//
// This function panics if the block time is not provided in the context.
func InThePast(ctx Context, t time.Time) bool {
	return t.Before(MustBlockTime(ctx))
}
