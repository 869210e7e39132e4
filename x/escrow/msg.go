package escrow

import (
	"github.com/realchain/ledger"
	"github.com/realchain/ledger/codec"
	"github.com/realchain/ledger/errors"
	"github.com/realchain/ledger/x/cash"
)

const (
	pathCreateMsg = "escrow/create"
	pathDeleteMsg = "escrow/delete"

	// MaxTimeout is the longest timeout an escrow can be created with, in
	// seconds. It is 100 years.
	MaxTimeout int64 = 100 * 365 * 24 * 60 * 60
)

var (
	_ ledger.Msg = (*CreateMsg)(nil)
	_ ledger.Msg = (*DepositMsg)(nil)
	_ ledger.Msg = (*ConfirmTransferMsg)(nil)
	_ ledger.Msg = (*RefundMsg)(nil)
	_ ledger.Msg = (*GetInfoMsg)(nil)
	_ ledger.Msg = (*DeleteMsg)(nil)

	_ cash.PaymentMsg = (*DepositMsg)(nil)
)

// CreateMsg opens a new escrow.
type CreateMsg struct {
	Seller       ledger.Address `json:"seller"`
	PropertyHash []byte         `json:"property_hash"`
	// Timeout is the number of seconds, counted from the creation block
	// time, after which the deposit can be refunded by anyone.
	Timeout int64 `json:"timeout"`
}

// Path returns the routing path for this message.
func (CreateMsg) Path() string {
	return pathCreateMsg
}

// Validate makes sure that this is sensible.
func (m *CreateMsg) Validate() error {
	if err := m.Seller.Validate(); err != nil {
		return errors.Wrap(err, "seller")
	}
	if len(m.PropertyHash) != PropertyHashLength {
		return errors.Wrapf(errors.ErrInput, "property hash must be %d bytes", PropertyHashLength)
	}
	if m.Timeout < 0 || m.Timeout > MaxTimeout {
		return errors.Wrapf(errors.ErrInput, "timeout must be between 0 and %d seconds", MaxTimeout)
	}
	return nil
}

func (m *CreateMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *CreateMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, m)
}

// DepositMsg records the payment attached to the same transaction as the
// deposit of the signer.
type DepositMsg struct {
	EscrowID []byte `json:"escrow_id"`
}

// Path returns the routing path for this message.
func (DepositMsg) Path() string {
	return OpDeposit.Path()
}

// Operation returns the operation performed by this message.
func (DepositMsg) Operation() Operation {
	return OpDeposit
}

// AcceptsPayment marks the deposit as the only escrow message carrying a
// payment.
func (DepositMsg) AcceptsPayment() {}

// Validate makes sure that this is sensible.
func (m *DepositMsg) Validate() error {
	return validateEscrowID(m.EscrowID)
}

func (m *DepositMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *DepositMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, m)
}

// ConfirmTransferMsg releases the deposit to the seller.
type ConfirmTransferMsg struct {
	EscrowID []byte `json:"escrow_id"`
	// PropertyHash is optional. If provided, it must match the hash the
	// escrow was created with.
	PropertyHash []byte `json:"property_hash,omitempty"`
}

// Path returns the routing path for this message.
func (ConfirmTransferMsg) Path() string {
	return OpConfirmTransfer.Path()
}

// Operation returns the operation performed by this message.
func (ConfirmTransferMsg) Operation() Operation {
	return OpConfirmTransfer
}

// Validate makes sure that this is sensible.
func (m *ConfirmTransferMsg) Validate() error {
	if err := validateEscrowID(m.EscrowID); err != nil {
		return err
	}
	if len(m.PropertyHash) != 0 && len(m.PropertyHash) != PropertyHashLength {
		return errors.Wrapf(errors.ErrInput, "property hash must be %d bytes", PropertyHashLength)
	}
	return nil
}

func (m *ConfirmTransferMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *ConfirmTransferMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, m)
}

// RefundMsg returns the deposit to the buyer.
type RefundMsg struct {
	EscrowID []byte `json:"escrow_id"`
}

// Path returns the routing path for this message.
func (RefundMsg) Path() string {
	return OpRefund.Path()
}

// Operation returns the operation performed by this message.
func (RefundMsg) Operation() Operation {
	return OpRefund
}

// Validate makes sure that this is sensible.
func (m *RefundMsg) Validate() error {
	return validateEscrowID(m.EscrowID)
}

func (m *RefundMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *RefundMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, m)
}

// GetInfoMsg reports the state of an escrow without modifying it.
type GetInfoMsg struct {
	EscrowID []byte `json:"escrow_id"`
}

// Path returns the routing path for this message.
func (GetInfoMsg) Path() string {
	return OpGetInfo.Path()
}

// Operation returns the operation performed by this message.
func (GetInfoMsg) Operation() Operation {
	return OpGetInfo
}

// Validate makes sure that this is sensible.
func (m *GetInfoMsg) Validate() error {
	return validateEscrowID(m.EscrowID)
}

func (m *GetInfoMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *GetInfoMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, m)
}

// DeleteMsg removes a resolved escrow.
type DeleteMsg struct {
	EscrowID []byte `json:"escrow_id"`
}

// Path returns the routing path for this message.
func (DeleteMsg) Path() string {
	return pathDeleteMsg
}

// Validate makes sure that this is sensible.
func (m *DeleteMsg) Validate() error {
	return validateEscrowID(m.EscrowID)
}

func (m *DeleteMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *DeleteMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, m)
}

// validateEscrowID requires an 8 byte sequence id.
func validateEscrowID(id []byte) error {
	if len(id) != 8 {
		return errors.Wrapf(errors.ErrInput, "escrow id must be 8 bytes, got %X", id)
	}
	return nil
}
