package cash

import (
	"github.com/realchain/ledger"
	"github.com/realchain/ledger/codec"
	"github.com/realchain/ledger/coin"
	"github.com/realchain/ledger/errors"
)

const (
	sendTxCost int64 = 100

	maxMemoSize int = 128
)

// SendMsg moves coins between two wallets.
type SendMsg struct {
	Src    ledger.Address `json:"src"`
	Dest   ledger.Address `json:"dest"`
	Amount coin.Coin      `json:"amount"`
	Memo   string         `json:"memo,omitempty"`
}

var _ ledger.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message.
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible.
func (m *SendMsg) Validate() error {
	var err error
	if !m.Amount.IsPositive() {
		err = errors.Wrapf(errors.ErrAmount, "non-positive SendMsg: %s", m.Amount)
	} else {
		err = errors.Append(err, errors.Wrap(m.Amount.Validate(), "amount"))
	}
	err = errors.Append(err, errors.Wrap(m.Src.Validate(), "src"))
	err = errors.Append(err, errors.Wrap(m.Dest.Validate(), "dest"))
	if len(m.Memo) > maxMemoSize {
		err = errors.Append(err, errors.Wrap(errors.ErrInput, "memo too long"))
	}
	return err
}

func (m *SendMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *SendMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, m)
}
