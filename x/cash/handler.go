package cash

import (
	"github.com/realchain/ledger"
	"github.com/realchain/ledger/errors"
	"github.com/realchain/ledger/x"
)

// ReservedAccounts tells which addresses are owned by an extension. Coins
// can only reach such an address through that extension.
type ReservedAccounts interface {
	IsReserved(db ledger.ReadOnlyKVStore, addr ledger.Address) bool
}

// RegisterRoutes will instantiate and register all handlers in this
// package. Sending to any of the reserved accounts is refused.
func RegisterRoutes(r ledger.Registry, auth x.Authenticator, control Controller, reserved ...ReservedAccounts) {
	r.Handle(SendMsg{}.Path(), NewSendHandler(auth, control).WithReservedAccounts(reserved...))
}

// RegisterQuery will register this bucket as "/wallets".
func RegisterQuery(qr ledger.QueryRouter) {
	NewBucket().Register("wallets", qr)
}

// SendHandler will handle sending coins.
type SendHandler struct {
	auth     x.Authenticator
	control  Controller
	reserved []ReservedAccounts
}

var _ ledger.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg.
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// WithReservedAccounts returns a handler refusing to send coins to any
// address reserved by given accounts.
func (h SendHandler) WithReservedAccounts(reserved ...ReservedAccounts) SendHandler {
	h.reserved = append(h.reserved[:len(h.reserved):len(h.reserved)], reserved...)
	return h
}

// Check just verifies it is properly formed and returns the cost of
// executing it.
func (h SendHandler) Check(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx) (ledger.CheckResult, error) {
	if _, err := h.validate(ctx, store, tx); err != nil {
		return ledger.CheckResult{}, err
	}
	return ledger.CheckResult{GasAllocated: sendTxCost}, nil
}

// Deliver moves the tokens from source to receiver if all preconditions
// are met.
func (h SendHandler) Deliver(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx) (ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, store, tx)
	if err != nil {
		return ledger.DeliverResult{}, err
	}
	if err := h.control.MoveCoins(store, msg.Src, msg.Dest, msg.Amount); err != nil {
		return ledger.DeliverResult{}, err
	}
	return ledger.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx ledger.Context, db ledger.ReadOnlyKVStore, tx ledger.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Src) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	for _, r := range h.reserved {
		if r.IsReserved(db, msg.Dest) {
			return nil, errors.Wrapf(errors.ErrUnauthorized, "account %s is reserved", msg.Dest)
		}
	}
	return &msg, nil
}
