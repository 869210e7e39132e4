package utils

import (
	"github.com/realchain/ledger"
)

// ActionTagger will inspect the message being executed and add a tag
// `action = msg.Path()`, so clients have a standard way to search for
// transactions of a given kind, for example every escrow refund.
type ActionTagger struct{}

var _ ledger.Decorator = ActionTagger{}

// ActionKey is used by ActionTagger as the Key in the Tag it appends.
const ActionKey = "action"

// NewActionTagger creates a ActionTagger decorator.
func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

// Check just passes the request along.
func (ActionTagger) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Checker) (ledger.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver appends a tag on the result if there is a success.
func (ActionTagger) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (ledger.DeliverResult, error) {
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return res, err
	}
	res.Tag([]byte(ActionKey), []byte(ledger.GetPath(tx)))
	return res, nil
}
