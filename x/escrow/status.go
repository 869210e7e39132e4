package escrow

import (
	"encoding/json"
	"fmt"

	"github.com/realchain/ledger/errors"
)

// Status of an escrow. The numeric values are part of the persisted format.
type Status int32

const (
	// Active escrows accept a deposit and can be resolved.
	Active Status = 0
	// Completed escrows were released to the seller.
	Completed Status = 1
	// Refunded escrows were paid back to the buyer.
	Refunded Status = 2
)

var statusNames = map[Status]string{
	Active:    "active",
	Completed: "completed",
	Refunded:  "refunded",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int32(s))
}

// IsTerminal returns true if no transition is allowed from this status.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Refunded
}

// Validate returns an error if this is not a known status.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errors.Wrapf(errors.ErrInput, "unknown status %d", int32(s))
	}
	return nil
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(raw []byte) error {
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return errors.Wrapf(errors.ErrInput, "status: %s", err)
	}
	for st, n := range statusNames {
		if n == name {
			*s = st
			return nil
		}
	}
	return errors.Wrapf(errors.ErrInput, "unknown status %q", name)
}
