package cash

import (
	"github.com/realchain/ledger"
	"github.com/realchain/ledger/coin"
	"github.com/realchain/ledger/errors"
)

// Settlement pays out funds held by an account on behalf of an extension.
// Every payout is charged the configured minimal fee, which is sent to the
// collector address from the same source account.
type Settlement struct {
	mover CoinMover
}

// NewSettlement returns a settlement moving coins with given mover.
func NewSettlement(mover CoinMover) Settlement {
	return Settlement{mover: mover}
}

// SettlementFee returns the fee charged on every payout. A zero coin is
// returned when no fee is configured.
func (s Settlement) SettlementFee(db ledger.ReadOnlyKVStore) (coin.Coin, error) {
	conf, err := LoadConfiguration(db)
	if err != nil {
		return coin.Coin{}, err
	}
	return conf.MinimalFee, nil
}

// Pay moves amount from src to dest and charges the settlement fee to src.
// Both transfers succeed or the returned error must abort the transaction.
func (s Settlement) Pay(db ledger.KVStore, src, dest ledger.Address, amount coin.Coin) error {
	conf, err := LoadConfiguration(db)
	if err != nil {
		return err
	}
	if err := s.mover.MoveCoins(db, src, dest, amount); err != nil {
		return errors.Wrap(err, "payout")
	}
	if !conf.MinimalFee.IsZero() {
		if err := s.mover.MoveCoins(db, src, conf.CollectorAddress, conf.MinimalFee); err != nil {
			return errors.Wrap(err, "settlement fee")
		}
	}
	return nil
}
