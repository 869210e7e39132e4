package cash

import (
	"context"

	"github.com/realchain/ledger"
	"github.com/realchain/ledger/coin"
	"github.com/realchain/ledger/errors"
	"github.com/realchain/ledger/x"
)

// Payment is a transfer attached to a transaction. It is executed before
// the message of the transaction is handled, so that the handler can rely
// on the funds being already moved.
type Payment struct {
	Src    ledger.Address `json:"src"`
	Dest   ledger.Address `json:"dest"`
	Amount coin.Coin      `json:"amount"`
}

// Validate requires both addresses and a positive amount.
func (p *Payment) Validate() error {
	var err error
	err = errors.Append(err, errors.Wrap(p.Src.Validate(), "src"))
	err = errors.Append(err, errors.Wrap(p.Dest.Validate(), "dest"))
	if !p.Amount.IsPositive() {
		err = errors.Append(err, errors.Wrapf(errors.ErrAmount, "non-positive payment: %s", p.Amount))
	} else {
		err = errors.Append(err, errors.Wrap(p.Amount.Validate(), "amount"))
	}
	return err
}

// PaymentTx is a transaction that may carry a payment.
type PaymentTx interface {
	ledger.Tx
	GetPayment() *Payment
}

// PaymentMsg is a message that accepts the payment attached to its
// transaction. A payment attached to any other message is refused.
type PaymentMsg interface {
	ledger.Msg
	AcceptsPayment()
}

type contextKey int

const contextKeyPayment contextKey = iota

func withPayment(ctx ledger.Context, p Payment) ledger.Context {
	return context.WithValue(ctx, contextKeyPayment, p)
}

// AttachedPayment returns the payment executed for the current transaction.
// The second value is false if the transaction carried no payment.
func AttachedPayment(ctx ledger.Context) (Payment, bool) {
	p, ok := ctx.Value(contextKeyPayment).(Payment)
	return p, ok
}

// PaymentDecorator executes the payment attached to a transaction before
// calling down the stack. The payment source must be authenticated.
type PaymentDecorator struct {
	auth  x.Authenticator
	mover CoinMover
}

var _ ledger.Decorator = PaymentDecorator{}

// NewPaymentDecorator returns a decorator moving coins with given mover.
func NewPaymentDecorator(auth x.Authenticator, mover CoinMover) PaymentDecorator {
	return PaymentDecorator{auth: auth, mover: mover}
}

// Check executes the payment before calling down the stack.
func (d PaymentDecorator) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Checker) (ledger.CheckResult, error) {
	ctx, err := d.pay(ctx, db, tx)
	if err != nil {
		return ledger.CheckResult{}, err
	}
	return next.Check(ctx, db, tx)
}

// Deliver executes the payment before calling down the stack.
func (d PaymentDecorator) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (ledger.DeliverResult, error) {
	ctx, err := d.pay(ctx, db, tx)
	if err != nil {
		return ledger.DeliverResult{}, err
	}
	return next.Deliver(ctx, db, tx)
}

func (d PaymentDecorator) pay(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (ledger.Context, error) {
	ptx, ok := tx.(PaymentTx)
	if !ok {
		return ctx, nil
	}
	p := ptx.GetPayment()
	if p == nil {
		return ctx, nil
	}
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot get message")
	}
	if _, ok := msg.(PaymentMsg); !ok {
		return nil, errors.Wrapf(errors.ErrMsg, "%T does not accept a payment", msg)
	}
	if err := p.Validate(); err != nil {
		return nil, errors.Wrap(err, "payment")
	}
	if !d.auth.HasAddress(ctx, p.Src) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "payment source signature missing")
	}
	if err := d.mover.MoveCoins(db, p.Src, p.Dest, p.Amount); err != nil {
		return nil, errors.Wrap(err, "payment")
	}
	return withPayment(ctx, *p), nil
}
