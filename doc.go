/*
Package ledger defines the interfaces shared by all parts of the escrow
ledger: storage, transactions, messages, handlers, decorators and queries.
It also provides the helpers to carry block information (height, time,
chain id, logger) through the request Context.

Extensions live under x/ and plug into the application through handlers
registered on a router, decorators wrapping that router and initializers
reading the genesis file.
*/
package ledger
