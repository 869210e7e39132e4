package ledgertest

import (
	"github.com/realchain/ledger"
	"github.com/realchain/ledger/coin"
)

// Payment is a single transfer executed by the Settlement mock.
type Payment struct {
	Src    ledger.Address
	Dest   ledger.Address
	Amount coin.Coin
}

// Settlement is a mock of the settlement port used to pay out escrowed
// funds. Every payment is recorded and no store is modified.
type Settlement struct {
	// Fee is returned as the settlement fee.
	Fee coin.Coin
	// FeeErr if set is returned when the fee is requested.
	FeeErr error
	// PayErr if set is returned by every payment.
	PayErr error

	payments []Payment
}

func (s *Settlement) SettlementFee(ledger.ReadOnlyKVStore) (coin.Coin, error) {
	return s.Fee, s.FeeErr
}

func (s *Settlement) Pay(db ledger.KVStore, src, dest ledger.Address, amount coin.Coin) error {
	if s.PayErr != nil {
		return s.PayErr
	}
	s.payments = append(s.payments, Payment{Src: src, Dest: dest, Amount: amount})
	return nil
}

// Payments returns all payments in the order they were made.
func (s *Settlement) Payments() []Payment {
	return s.payments
}
