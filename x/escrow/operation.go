package escrow

// Operation is a call that can be made on an existing escrow. Creation and
// deletion are not operations: creation has no escrow yet and deletion is
// requested separately.
type Operation int

const (
	OpDeposit Operation = iota + 1
	OpConfirmTransfer
	OpRefund
	OpGetInfo
)

// Operations returns all known operations.
func Operations() []Operation {
	return []Operation{OpDeposit, OpConfirmTransfer, OpRefund, OpGetInfo}
}

var operationNames = map[Operation]string{
	OpDeposit:         "deposit",
	OpConfirmTransfer: "confirm_transfer",
	OpRefund:          "refund",
	OpGetInfo:         "get_info",
}

// String returns the discriminator of the operation.
func (o Operation) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return "unknown"
}

// Path returns the routing path of the message performing this operation.
func (o Operation) Path() string {
	return "escrow/" + o.String()
}
