/*
Package signer lifts the signer of a transaction into the context.

Signatures are verified by the consensus layer before a transaction reaches
the application. This package only trusts the condition declared by the
transaction and exposes it to handlers through the Authenticate
implementation of x.Authenticator.

Only key conditions can sign. Conditions owned by extensions, like the
custodial account of an escrow, have no key and are always rejected.
*/
package signer

import (
	"github.com/realchain/ledger"
	"github.com/realchain/ledger/errors"
	"golang.org/x/crypto/ed25519"
)

const (
	// KeyExtension and KeyType describe the condition of an ed25519
	// public key.
	KeyExtension = "sigs"
	KeyType      = "ed25519"
)

// KeyCondition returns the condition of given public key.
func KeyCondition(pub ed25519.PublicKey) ledger.Condition {
	return ledger.NewCondition(KeyExtension, KeyType, pub)
}

// ValidateKeyCondition returns an error unless the condition belongs to an
// ed25519 public key.
func ValidateKeyCondition(c ledger.Condition) error {
	ext, typ, data, err := c.Parse()
	if err != nil {
		return err
	}
	if ext != KeyExtension || typ != KeyType {
		return errors.Wrapf(errors.ErrUnauthorized, "%s/%s cannot sign", ext, typ)
	}
	if len(data) != ed25519.PublicKeySize {
		return errors.Wrapf(errors.ErrUnauthorized, "public key must be %d bytes", ed25519.PublicKeySize)
	}
	return nil
}

// SignedTx is a transaction that declares the condition of its signer.
type SignedTx interface {
	ledger.Tx
	GetSigner() ledger.Condition
}

// Decorator adds the transaction signer to the context.
type Decorator struct {
	allowMissing bool
}

var _ ledger.Decorator = Decorator{}

// NewDecorator returns a decorator that requires every transaction to be
// signed.
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigner allows us to pass along transactions with no signer.
func (d Decorator) AllowMissingSigner() Decorator {
	d.allowMissing = true
	return d
}

// Check adds the signer to the context before calling down the stack.
func (d Decorator) Check(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Checker) (ledger.CheckResult, error) {
	ctx, err := d.withSigner(ctx, tx)
	if err != nil {
		return ledger.CheckResult{}, err
	}
	return next.Check(ctx, store, tx)
}

// Deliver adds the signer to the context before calling down the stack.
func (d Decorator) Deliver(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (ledger.DeliverResult, error) {
	ctx, err := d.withSigner(ctx, tx)
	if err != nil {
		return ledger.DeliverResult{}, err
	}
	return next.Deliver(ctx, store, tx)
}

func (d Decorator) withSigner(ctx ledger.Context, tx ledger.Tx) (ledger.Context, error) {
	var signer ledger.Condition
	if stx, ok := tx.(SignedTx); ok {
		signer = stx.GetSigner()
	}
	if len(signer) == 0 {
		if d.allowMissing {
			return ctx, nil
		}
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signer")
	}
	if err := ValidateKeyCondition(signer); err != nil {
		return nil, errors.Wrap(err, "signer")
	}
	return withSigners(ctx, []ledger.Condition{signer}), nil
}
