/*
Package errors implements the error kinds used across the ledger.

Reuse the root errors declared in this package whenever possible and
register a custom error only when an extension needs a distinct code.
x/escrow is a good example of an extension declaring its own codes.

To register a custom error use Register(code, description). To produce an
error instance use ErrXyz.New, ErrXyz.Newf or Wrap. The code is returned as
the ABCI result code and allows clients to tell error kinds apart.

A stack trace is attached at the first wrap. Do not create instances as
package level variables (`var ErrFoo = errors.ErrState.New("foo")`) or the
recorded stack will be useless.

Formatting an error with
	%s or %v prints the message chain
	%+v prints the message chain followed by the stack trace
*/
package errors
