/*
Package utils contains decorators shared by every extension of the ledger:
transaction savepoints, panic recovery, logging, tagging and metrics.
*/
package utils
