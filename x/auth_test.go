package x_test

import (
	"context"
	"testing"

	"github.com/realchain/ledger"
	"github.com/realchain/ledger/ledgertest"
	"github.com/realchain/ledger/x"
	"github.com/stretchr/testify/assert"
)

func TestAuth(t *testing.T) {
	a := ledgertest.NewCondition()
	b := ledgertest.NewCondition()
	c := ledgertest.NewCondition()

	ctx1 := &ledgertest.CtxAuth{Key: "foo"}
	ctx2 := &ledgertest.CtxAuth{Key: "bar"}

	cases := map[string]struct {
		ctx          ledger.Context
		auth         x.Authenticator
		mainSigner   ledger.Condition
		wantInCtx    ledger.Condition
		wantNotInCtx ledger.Condition
		wantAll      []ledger.Condition
	}{
		"empty context": {
			ctx:          context.Background(),
			auth:         &ledgertest.Auth{},
			wantNotInCtx: b,
		},
		"signer a": {
			ctx:          context.Background(),
			auth:         &ledgertest.Auth{Signer: a},
			mainSigner:   a,
			wantInCtx:    a,
			wantNotInCtx: b,
			wantAll:      []ledger.Condition{a},
		},
		"signer b": {
			ctx: context.Background(),
			auth: x.ChainAuth(
				&ledgertest.Auth{Signer: b},
				&ledgertest.Auth{Signer: a}),
			mainSigner:   b,
			wantInCtx:    b,
			wantNotInCtx: c,
			wantAll:      []ledger.Condition{b, a},
		},
		"ctxAuth checks what is set by same key": {
			ctx:          ctx1.SetConditions(context.Background(), a, b),
			auth:         ctx1,
			mainSigner:   a,
			wantInCtx:    b,
			wantNotInCtx: c,
			wantAll:      []ledger.Condition{a, b},
		},
		"ctxAuth with different key sees nothing": {
			ctx:          ctx1.SetConditions(context.Background(), a, b),
			auth:         ctx2,
			wantNotInCtx: a,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.mainSigner, x.MainSigner(tc.ctx, tc.auth))
			if tc.wantInCtx != nil && !tc.auth.HasAddress(tc.ctx, tc.wantInCtx.Address()) {
				t.Fatal("condition address that was expected in context not found")
			}
			if tc.wantNotInCtx != nil && tc.auth.HasAddress(tc.ctx, tc.wantNotInCtx.Address()) {
				t.Fatal("condition address that was expected not to be in context found")
			}

			all := tc.auth.GetConditions(tc.ctx)
			assert.Equal(t, tc.wantAll, all)
			assert.True(t, x.HasAllConditions(tc.ctx, tc.auth, all))

			addrs := x.GetAddresses(tc.ctx, tc.auth)
			assert.Len(t, addrs, len(all))
			assert.True(t, x.HasAllAddresses(tc.ctx, tc.auth, addrs))

			if tc.wantNotInCtx != nil {
				assert.False(t, x.HasAllConditions(tc.ctx, tc.auth, []ledger.Condition{tc.wantNotInCtx}))
				assert.False(t, x.HasAllAddresses(tc.ctx, tc.auth, []ledger.Address{tc.wantNotInCtx.Address()}))
			}
		})
	}
}
