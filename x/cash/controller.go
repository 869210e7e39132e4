package cash

import (
	"github.com/realchain/ledger"
	"github.com/realchain/ledger/coin"
	"github.com/realchain/ledger/errors"
)

// Controller is the functionality needed by cash.Handler and other
// extensions to read and modify balances.
type Controller interface {
	CoinMover
	Balance(ledger.ReadOnlyKVStore, ledger.Address) (coin.Coins, error)
	CoinMint(ledger.KVStore, ledger.Address, coin.Coin) error
}

// CoinMover is an interface for moving coins between accounts.
type CoinMover interface {
	// MoveCoins removes funds from the source account and adds them to
	// the destination account. This operation is atomic.
	MoveCoins(ledger.KVStore, ledger.Address, ledger.Address, coin.Coin) error
}

// BaseController is a simple implementation of Controller over a wallet
// Bucket.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller using given bucket.
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the amount of funds stored under given account address.
// An account without a wallet holds no coins.
func (c BaseController) Balance(db ledger.ReadOnlyKVStore, addr ledger.Address) (coin.Coins, error) {
	w, err := c.bucket.Get(db, addr)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get wallet")
	}
	if w == nil {
		return coin.Coins{}, nil
	}
	return w.Coins(), nil
}

// MoveCoins moves the given amount from src to dest. If src doesn't have
// sufficient coins, it fails.
func (c BaseController) MoveCoins(db ledger.KVStore, src, dest ledger.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount: %s", amount)
	}
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}

	sender, err := c.bucket.GetOrCreate(db, src)
	if err != nil {
		return errors.Wrap(err, "cannot get sender wallet")
	}
	if !sender.Coins().Contains(amount) {
		return errors.Wrapf(errors.ErrInsufficientAmount, "funds of %s", src)
	}
	if err := sender.Subtract(amount); err != nil {
		return errors.Wrap(err, "cannot withdraw funds")
	}
	if err := c.bucket.Save(db, sender); err != nil {
		return errors.Wrap(err, "cannot save sender wallet")
	}

	// The recipient is read after the sender is saved, so that moving coins
	// to the same account leaves the balance unchanged.
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return errors.Wrap(err, "cannot load recipient wallet")
	}
	if err := recipient.Add(amount); err != nil {
		return errors.Wrap(err, "cannot deposit funds")
	}
	if err := c.bucket.Save(db, recipient); err != nil {
		return errors.Wrap(err, "cannot save recipient wallet")
	}
	return nil
}

// CoinMint attempts to add the given amount of coins to the destination
// address. Fails if it overflows the wallet.
func (c BaseController) CoinMint(db ledger.KVStore, dest ledger.Address, amount coin.Coin) error {
	w, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return errors.Wrap(err, "cannot load wallet")
	}
	if err := w.Add(amount); err != nil {
		return errors.Wrap(err, "cannot add coins")
	}
	if err := c.bucket.Save(db, w); err != nil {
		return errors.Wrap(err, "cannot save wallet")
	}
	return nil
}
