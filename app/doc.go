/*
Package app glues the ledger together into an ABCI application.

StoreApp maintains the committed state and answers queries, BaseApp adds
transaction processing on top of it. Transactions are decoded with the
codec built by MakeCodec and pass through the decorator stack returned by
Chain before reaching the Router that dispatches every message by its path.
*/
package app
