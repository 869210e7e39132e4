package orm

import (
	"github.com/realchain/ledger/errors"
)

// ErrInvalidIndex is returned when an index specified is invalid.
var ErrInvalidIndex = errors.Register(100, "invalid index")

// ErrUniqueConstraint is returned when a unique index receives a second
// reference for the same value.
var ErrUniqueConstraint = errors.Register(101, "unique constraint violation")
