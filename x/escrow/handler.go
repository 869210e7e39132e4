package escrow

import (
	"bytes"
	"fmt"
	"time"

	"github.com/realchain/ledger"
	"github.com/realchain/ledger/coin"
	"github.com/realchain/ledger/errors"
	"github.com/realchain/ledger/x"
	"github.com/realchain/ledger/x/cash"
)

const (
	createEscrowCost  int64 = 300
	depositEscrowCost int64 = 100
	resolveEscrowCost int64 = 100
	infoEscrowCost    int64 = 0
	deleteEscrowCost  int64 = 0

	// tagEscrow is the DeliverTx tag holding the hex encoded escrow id.
	tagEscrow = "escrow"
)

// Settlement pays out funds held in the custodial account of an escrow.
type Settlement interface {
	// SettlementFee returns the fee charged on every payout.
	SettlementFee(ledger.ReadOnlyKVStore) (coin.Coin, error)
	// Pay moves amount from src to dest, charging the settlement fee to
	// src. It fails without side effects or the whole transaction must be
	// aborted.
	Pay(db ledger.KVStore, src, dest ledger.Address, amount coin.Coin) error
}

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r ledger.Registry, auth x.Authenticator, settle Settlement) {
	bucket := NewBucket()
	r.Handle(pathCreateMsg, CreateHandler{auth: auth, bucket: bucket})
	for _, op := range Operations() {
		r.Handle(op.Path(), NewOperationHandler(op, auth, bucket, settle))
	}
	r.Handle(pathDeleteMsg, DeleteHandler{auth: auth, bucket: bucket})
}

// RegisterQuery will register this bucket as "/escrows".
func RegisterQuery(qr ledger.QueryRouter) {
	NewBucket().Register("escrows", qr)
}

// NewOperationHandler returns the handler performing given operation.
func NewOperationHandler(op Operation, auth x.Authenticator, bucket Bucket, settle Settlement) ledger.Handler {
	switch op {
	case OpDeposit:
		return DepositHandler{auth: auth, bucket: bucket, settle: settle}
	case OpConfirmTransfer:
		return ConfirmTransferHandler{auth: auth, bucket: bucket, settle: settle}
	case OpRefund:
		return RefundHandler{auth: auth, bucket: bucket, settle: settle}
	case OpGetInfo:
		return GetInfoHandler{bucket: bucket}
	default:
		panic(fmt.Sprintf("unknown operation %d", op))
	}
}

// CreateHandler opens new escrows.
type CreateHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

var _ ledger.Handler = CreateHandler{}

// Check just verifies it is properly formed and returns the cost of
// executing it.
func (h CreateHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (ledger.CheckResult, error) {
	var msg CreateMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return ledger.CheckResult{}, errors.Wrap(err, "load msg")
	}
	return ledger.CheckResult{GasAllocated: createEscrowCost}, nil
}

// Deliver stores a new active escrow without any deposit.
func (h CreateHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (ledger.DeliverResult, error) {
	var msg CreateMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return ledger.DeliverResult{}, errors.Wrap(err, "load msg")
	}

	now := ledger.AsUnixTime(ledger.MustBlockTime(ctx))
	escrow := &Escrow{
		Seller:       msg.Seller,
		PropertyHash: msg.PropertyHash,
		Deadline:     now.Add(time.Duration(msg.Timeout) * time.Second),
		Status:       Active,
	}
	obj, err := h.bucket.Create(db, escrow)
	if err != nil {
		return ledger.DeliverResult{}, errors.Wrap(err, "cannot store escrow")
	}

	ledger.GetLogger(ctx).Info("escrow created",
		"escrow", fmt.Sprintf("%X", obj.Key()),
		"seller", escrow.Seller,
		"deadline", escrow.Deadline)
	res := ledger.DeliverResult{Data: obj.Key()}
	tagEscrowID(&res, obj.Key())
	return res, nil
}

// DepositHandler records the deposit of a buyer. The funds are moved to the
// custodial account by the payment attached to the same transaction.
type DepositHandler struct {
	auth   x.Authenticator
	bucket Bucket
	settle Settlement
}

var _ ledger.Handler = DepositHandler{}

// Check verifies all preconditions of a deposit.
func (h DepositHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (ledger.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return ledger.CheckResult{}, err
	}
	return ledger.CheckResult{GasAllocated: depositEscrowCost}, nil
}

// Deliver sets the buyer and the deposit amount.
func (h DepositHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (ledger.DeliverResult, error) {
	msg, escrow, payment, err := h.validate(ctx, db, tx)
	if err != nil {
		return ledger.DeliverResult{}, err
	}

	escrow.Buyer = payment.Src
	escrow.DepositAmount = payment.Amount
	if err := h.bucket.SaveEscrow(db, msg.EscrowID, escrow); err != nil {
		return ledger.DeliverResult{}, errors.Wrap(err, "cannot save escrow")
	}

	ledger.GetLogger(ctx).Info("escrow deposit",
		"escrow", fmt.Sprintf("%X", msg.EscrowID),
		"buyer", escrow.Buyer,
		"amount", escrow.DepositAmount.String())
	var res ledger.DeliverResult
	tagEscrowID(&res, msg.EscrowID)
	return res, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h DepositHandler) validate(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*DepositMsg, *Escrow, *cash.Payment, error) {
	var msg DepositMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	escrow, err := h.bucket.GetEscrow(db, msg.EscrowID)
	if err != nil {
		return nil, nil, nil, err
	}
	if escrow.Status != Active {
		return nil, nil, nil, errors.Wrapf(errors.ErrState, "escrow is %s", escrow.Status)
	}
	if escrow.HasDeposit() {
		return nil, nil, nil, errors.Wrapf(ErrAlreadyResolved, "deposit of %s already recorded", escrow.DepositAmount)
	}
	if ledger.IsExpired(ctx, escrow.Deadline) {
		return nil, nil, nil, errors.Wrapf(ErrDeadlineExceeded, "deadline %s", escrow.Deadline)
	}

	caller := x.MainSigner(ctx, h.auth)
	if caller == nil {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "deposit must be signed")
	}
	payment, ok := cash.AttachedPayment(ctx)
	if !ok {
		return nil, nil, nil, errors.Wrap(ErrMalformedPayment, "no payment attached")
	}
	if !payment.Dest.Equals(escrow.Address) {
		return nil, nil, nil, errors.Wrap(ErrMalformedPayment, "payment is not addressed to the escrow")
	}
	if !payment.Src.Equals(caller.Address()) {
		return nil, nil, nil, errors.Wrap(ErrMalformedPayment, "payment is not made by the depositor")
	}
	if !payment.Amount.IsPositive() {
		return nil, nil, nil, errors.Wrap(ErrMalformedPayment, "non-positive payment")
	}
	fee, err := h.settle.SettlementFee(db)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "settlement fee")
	}
	if !fee.IsZero() && !fee.SameType(payment.Amount) {
		return nil, nil, nil, errors.Wrapf(ErrMalformedPayment, "payment must be made in %s", fee.Ticker)
	}
	return &msg, escrow, &payment, nil
}

// ConfirmTransferHandler releases the deposit to the seller.
type ConfirmTransferHandler struct {
	auth   x.Authenticator
	bucket Bucket
	settle Settlement
}

var _ ledger.Handler = ConfirmTransferHandler{}

// Check verifies all preconditions of a confirmation.
func (h ConfirmTransferHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (ledger.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return ledger.CheckResult{}, err
	}
	return ledger.CheckResult{GasAllocated: resolveEscrowCost}, nil
}

// Deliver pays the deposit reduced by the settlement fee to the seller and
// completes the escrow.
func (h ConfirmTransferHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (ledger.DeliverResult, error) {
	msg, escrow, payout, err := h.validate(ctx, db, tx)
	if err != nil {
		return ledger.DeliverResult{}, err
	}
	return resolve(ctx, db, h.bucket, h.settle, msg.EscrowID, escrow, escrow.Seller, payout, Completed)
}

// validate does all common pre-processing between Check and Deliver.
func (h ConfirmTransferHandler) validate(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ConfirmTransferMsg, *Escrow, coin.Coin, error) {
	var msg ConfirmTransferMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, nil, coin.Coin{}, errors.Wrap(err, "load msg")
	}
	escrow, err := h.bucket.GetEscrow(db, msg.EscrowID)
	if err != nil {
		return nil, nil, coin.Coin{}, err
	}
	if escrow.Status != Active {
		return nil, nil, coin.Coin{}, errors.Wrapf(errors.ErrState, "escrow is %s", escrow.Status)
	}
	if !h.auth.HasAddress(ctx, escrow.Seller) {
		return nil, nil, coin.Coin{}, errors.Wrap(errors.ErrUnauthorized, "only the seller can confirm the transfer")
	}
	if !escrow.HasDeposit() {
		return nil, nil, coin.Coin{}, errors.Wrap(errors.ErrState, "no deposit")
	}
	if len(msg.PropertyHash) != 0 && !bytes.Equal(msg.PropertyHash, escrow.PropertyHash) {
		return nil, nil, coin.Coin{}, errors.Wrapf(ErrHashMismatch, "%X", msg.PropertyHash)
	}
	payout, err := payoutAmount(db, h.settle, escrow.DepositAmount)
	if err != nil {
		return nil, nil, coin.Coin{}, err
	}
	return &msg, escrow, payout, nil
}

// RefundHandler returns the deposit to the buyer.
type RefundHandler struct {
	auth   x.Authenticator
	bucket Bucket
	settle Settlement
}

var _ ledger.Handler = RefundHandler{}

// Check verifies all preconditions of a refund.
func (h RefundHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (ledger.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return ledger.CheckResult{}, err
	}
	return ledger.CheckResult{GasAllocated: resolveEscrowCost}, nil
}

// Deliver pays the deposit reduced by the settlement fee back to the buyer
// and marks the escrow refunded.
func (h RefundHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (ledger.DeliverResult, error) {
	msg, escrow, payout, err := h.validate(ctx, db, tx)
	if err != nil {
		return ledger.DeliverResult{}, err
	}
	return resolve(ctx, db, h.bucket, h.settle, msg.EscrowID, escrow, escrow.Buyer, payout, Refunded)
}

// validate does all common pre-processing between Check and Deliver.
func (h RefundHandler) validate(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*RefundMsg, *Escrow, coin.Coin, error) {
	var msg RefundMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, nil, coin.Coin{}, errors.Wrap(err, "load msg")
	}
	escrow, err := h.bucket.GetEscrow(db, msg.EscrowID)
	if err != nil {
		return nil, nil, coin.Coin{}, err
	}
	if escrow.Status != Active {
		return nil, nil, coin.Coin{}, errors.Wrapf(errors.ErrState, "escrow is %s", escrow.Status)
	}
	if !escrow.HasDeposit() {
		return nil, nil, coin.Coin{}, errors.Wrap(errors.ErrState, "no deposit")
	}
	// The seller can cancel at any time, anyone else must wait for the
	// deadline.
	if !ledger.IsExpired(ctx, escrow.Deadline) && !h.auth.HasAddress(ctx, escrow.Seller) {
		return nil, nil, coin.Coin{}, errors.Wrapf(ErrDeadlineNotReached, "deadline %s", escrow.Deadline)
	}
	payout, err := payoutAmount(db, h.settle, escrow.DepositAmount)
	if err != nil {
		return nil, nil, coin.Coin{}, err
	}
	return &msg, escrow, payout, nil
}

// payoutAmount returns the deposit reduced by the settlement fee.
// ErrInsufficientForFee is returned if nothing would be paid out.
func payoutAmount(db ledger.ReadOnlyKVStore, settle Settlement, deposit coin.Coin) (coin.Coin, error) {
	fee, err := settle.SettlementFee(db)
	if err != nil {
		return coin.Coin{}, errors.Wrap(err, "settlement fee")
	}
	payout, err := deposit.Subtract(fee)
	if err != nil {
		return coin.Coin{}, errors.Wrap(err, "payout")
	}
	if !payout.IsPositive() {
		return coin.Coin{}, errors.Wrapf(ErrInsufficientForFee, "deposit %s, fee %s", deposit, fee)
	}
	return payout, nil
}

// resolve pays out the escrow and moves it to a terminal status.
func resolve(
	ctx ledger.Context,
	db ledger.KVStore,
	bucket Bucket,
	settle Settlement,
	id []byte,
	escrow *Escrow,
	recipient ledger.Address,
	payout coin.Coin,
	status Status,
) (ledger.DeliverResult, error) {
	if err := settle.Pay(db, escrow.Address, recipient, payout); err != nil {
		return ledger.DeliverResult{}, errors.Wrap(err, "cannot pay out")
	}
	escrow.Status = status
	if err := bucket.SaveEscrow(db, id, escrow); err != nil {
		return ledger.DeliverResult{}, errors.Wrap(err, "cannot save escrow")
	}

	ledger.GetLogger(ctx).Info("escrow resolved",
		"escrow", fmt.Sprintf("%X", id),
		"status", status.String(),
		"recipient", recipient,
		"payout", payout.String())
	var res ledger.DeliverResult
	tagEscrowID(&res, id)
	return res, nil
}

// GetInfoHandler returns the serialized escrow. It never writes to the
// store.
type GetInfoHandler struct {
	bucket Bucket
}

var _ ledger.Handler = GetInfoHandler{}

// Check returns the serialized escrow.
func (h GetInfoHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (ledger.CheckResult, error) {
	raw, err := h.info(db, tx)
	if err != nil {
		return ledger.CheckResult{}, err
	}
	return ledger.CheckResult{Data: raw, GasAllocated: infoEscrowCost}, nil
}

// Deliver returns the serialized escrow.
func (h GetInfoHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (ledger.DeliverResult, error) {
	raw, err := h.info(db, tx)
	if err != nil {
		return ledger.DeliverResult{}, err
	}
	return ledger.DeliverResult{Data: raw}, nil
}

func (h GetInfoHandler) info(db ledger.ReadOnlyKVStore, tx ledger.Tx) ([]byte, error) {
	var msg GetInfoMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	escrow, err := h.bucket.GetEscrow(db, msg.EscrowID)
	if err != nil {
		return nil, err
	}
	return escrow.Marshal()
}

// DeleteHandler removes resolved escrows.
type DeleteHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

var _ ledger.Handler = DeleteHandler{}

// Check verifies all preconditions of a deletion.
func (h DeleteHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (ledger.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return ledger.CheckResult{}, err
	}
	return ledger.CheckResult{GasAllocated: deleteEscrowCost}, nil
}

// Deliver deletes the escrow. No funds are moved.
func (h DeleteHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return ledger.DeliverResult{}, err
	}
	if err := h.bucket.Delete(db, msg.EscrowID); err != nil {
		return ledger.DeliverResult{}, errors.Wrap(err, "cannot delete escrow")
	}

	ledger.GetLogger(ctx).Info("escrow deleted", "escrow", fmt.Sprintf("%X", msg.EscrowID))
	var res ledger.DeliverResult
	tagEscrowID(&res, msg.EscrowID)
	return res, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h DeleteHandler) validate(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*DeleteMsg, error) {
	var msg DeleteMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	escrow, err := h.bucket.GetEscrow(db, msg.EscrowID)
	if err != nil {
		return nil, err
	}
	if !escrow.Status.IsTerminal() {
		return nil, errors.Wrapf(errors.ErrState, "escrow is %s", escrow.Status)
	}
	if !h.auth.HasAddress(ctx, escrow.Seller) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "only the seller can delete the escrow")
	}
	return &msg, nil
}

func tagEscrowID(res *ledger.DeliverResult, id []byte) {
	res.Tag([]byte(tagEscrow), []byte(fmt.Sprintf("%X", id)))
}
