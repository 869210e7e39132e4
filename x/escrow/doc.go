/*
Package escrow implements a two party property escrow.

A seller opens an escrow for a property, identified by the digest of its
document set, with a timeout. A buyer deposits funds into the custodial
account of the escrow by attaching a payment to the deposit transaction. The
seller then either confirms the transfer of the property, releasing the
deposit to themselves, or the deposit is refunded to the buyer. A refund is
allowed to anyone once the deadline has passed and to the seller at any
time. Each payout is reduced by the settlement fee of the ledger.

Once resolved, an escrow can be deleted by its seller.
*/
package escrow
