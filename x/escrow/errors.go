package escrow

import (
	"github.com/realchain/ledger/errors"
)

// escrow takes 1010-1020
var (
	// ErrDeadlineNotReached is returned when an operation requires the
	// deadline to have passed.
	ErrDeadlineNotReached = errors.Register(1010, "deadline not reached")

	// ErrDeadlineExceeded is returned when an operation is no longer
	// allowed because the deadline has passed.
	ErrDeadlineExceeded = errors.Register(1011, "deadline exceeded")

	// ErrMalformedPayment is returned when the payment attached to a
	// deposit is missing, zero or misdirected.
	ErrMalformedPayment = errors.Register(1012, "malformed payment")

	// ErrHashMismatch is returned when the property hash provided with a
	// confirmation does not match the stored one.
	ErrHashMismatch = errors.Register(1013, "property hash mismatch")

	// ErrAlreadyResolved is returned when an escrow already holds a
	// deposit.
	ErrAlreadyResolved = errors.Register(1014, "already resolved")

	// ErrInsufficientForFee is returned when a deposit does not cover the
	// settlement fee.
	ErrInsufficientForFee = errors.Register(1015, "insufficient for fee")
)
