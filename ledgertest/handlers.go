package ledgertest

import "github.com/realchain/ledger"

// Handler is a mock implementation of the ledger.Handler interface.
//
// Results and errors returned are configured with the exported attributes.
// Each method call is counted.
type Handler struct {
	checkCall   int
	CheckResult ledger.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult ledger.DeliverResult
	DeliverErr    error
}

var _ ledger.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (ledger.CheckResult, error) {
	h.checkCall++
	return h.CheckResult, h.CheckErr
}

func (h *Handler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (ledger.DeliverResult, error) {
	h.deliverCall++
	return h.DeliverResult, h.DeliverErr
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// WriteHandler writes the given key/value pair to the store and returns
// the configured error.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ ledger.Handler = WriteHandler{}

func (h WriteHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (ledger.CheckResult, error) {
	db.Set(h.Key, h.Value)
	return ledger.CheckResult{}, h.Err
}

func (h WriteHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (ledger.DeliverResult, error) {
	db.Set(h.Key, h.Value)
	return ledger.DeliverResult{}, h.Err
}

// PanicHandler always panics with the given value.
type PanicHandler struct {
	Value interface{}
}

var _ ledger.Handler = PanicHandler{}

func (h PanicHandler) Check(ledger.Context, ledger.KVStore, ledger.Tx) (ledger.CheckResult, error) {
	panic(h.Value)
}

func (h PanicHandler) Deliver(ledger.Context, ledger.KVStore, ledger.Tx) (ledger.DeliverResult, error) {
	panic(h.Value)
}
