/*
Package x contains the interfaces shared by the ledger extensions.

Extensions implement common functionality (Handler, Decorator, Initializer)
and are combined together to construct the application. Each sub-package is
one extension: signer lifts the transaction signer into the context, cash
keeps wallet balances and executes payments, escrow runs the property escrow
deals and utils holds the generic decorators.
*/
package x
