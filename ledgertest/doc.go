// Package ledgertest provides mocks and helpers shared by the tests of the
// ledger packages.
package ledgertest
