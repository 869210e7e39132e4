/*
Package cash implements wallets holding balances of the ledger currency.

Besides moving coins between wallets on request (SendMsg), the package
provides the settlement used by other extensions to pay out funds they hold
in custody, and the PaymentDecorator that executes a transfer attached to a
transaction before the message is handled.

Fees are configured with gconf under the "cash" package name. The minimal fee
is charged on every settlement and sent to the collector address.
*/
package cash
