package app

import (
	"context"
	"testing"

	"github.com/realchain/ledger/errors"
	"github.com/realchain/ledger/ledgertest"
	"github.com/realchain/ledger/x/utils"
	"github.com/stretchr/testify/assert"
)

func TestChain(t *testing.T) {
	c1 := &ledgertest.Decorator{}
	c2 := &ledgertest.Decorator{}
	var missing *ledgertest.Decorator
	h := &ledgertest.Handler{}

	stack := ChainDecorators(
		c1,
		utils.NewLogging(),
		utils.NewRecovery(),
		missing,
		nil,
		c2,
	).WithHandler(h)

	bg := context.Background()
	_, err := stack.Check(bg, nil, nil)
	assert.NoError(t, err)
	_, err = stack.Deliver(bg, nil, nil)
	assert.NoError(t, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, h.CallCount())

	// a panic below the recovery is turned into an error
	panicking := ChainDecorators(c1, utils.NewRecovery()).
		Chain(c2).
		WithHandler(ledgertest.PanicHandler{Value: "boom"})
	_, err = panicking.Deliver(bg, nil, nil)
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Equal(t, 3, c1.CallCount())
	assert.Equal(t, 3, c2.CallCount())

	// a failing decorator stops the chain
	c2.CheckErr = errors.ErrUnauthorized
	_, err = stack.Check(bg, nil, nil)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Equal(t, 2, h.CallCount())
}
