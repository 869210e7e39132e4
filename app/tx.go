package app

import (
	"github.com/realchain/ledger"
	"github.com/realchain/ledger/codec"
	"github.com/realchain/ledger/x/cash"
	"github.com/realchain/ledger/x/escrow"
	"github.com/realchain/ledger/x/signer"
)

// Tx is the transaction format of the escrow ledger. The signer is
// asserted by the consensus layer. The optional payment is executed before
// the message is handled.
type Tx struct {
	Signer  ledger.Condition `json:"signer"`
	Payment *cash.Payment    `json:"payment,omitempty"`
	Msg     ledger.Msg       `json:"msg"`
}

var (
	_ ledger.Tx       = (*Tx)(nil)
	_ signer.SignedTx = (*Tx)(nil)
	_ cash.PaymentTx  = (*Tx)(nil)
)

// txCodec knows every message that can be carried by a Tx.
var txCodec = MakeCodec()

// MakeCodec returns a codec with all messages of the ledger registered.
func MakeCodec() *codec.Codec {
	cdc := codec.New()
	cdc.RegisterInterface((*ledger.Msg)(nil), nil)
	cdc.RegisterConcrete(&cash.SendMsg{}, "cash/send", nil)
	cdc.RegisterConcrete(&escrow.CreateMsg{}, "escrow/create", nil)
	cdc.RegisterConcrete(&escrow.DepositMsg{}, "escrow/deposit", nil)
	cdc.RegisterConcrete(&escrow.ConfirmTransferMsg{}, "escrow/confirm_transfer", nil)
	cdc.RegisterConcrete(&escrow.RefundMsg{}, "escrow/refund", nil)
	cdc.RegisterConcrete(&escrow.GetInfoMsg{}, "escrow/get_info", nil)
	cdc.RegisterConcrete(&escrow.DeleteMsg{}, "escrow/delete", nil)
	return cdc
}

// GetMsg returns the message carried by the transaction.
func (tx *Tx) GetMsg() (ledger.Msg, error) {
	return tx.Msg, nil
}

// GetSigner returns the condition of the transaction signer.
func (tx *Tx) GetSigner() ledger.Condition {
	return tx.Signer
}

// GetPayment returns the payment attached to the transaction, if any.
func (tx *Tx) GetPayment() *cash.Payment {
	return tx.Payment
}

func (tx *Tx) Marshal() ([]byte, error) {
	return codec.MarshalWith(txCodec, tx)
}

func (tx *Tx) Unmarshal(raw []byte) error {
	return codec.UnmarshalWith(txCodec, raw, tx)
}

// DecodeTx is the ledger.TxDecoder of the escrow ledger.
func DecodeTx(raw []byte) (ledger.Tx, error) {
	var tx Tx
	if err := tx.Unmarshal(raw); err != nil {
		return nil, err
	}
	return &tx, nil
}
