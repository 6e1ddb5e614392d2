/*
Package cash holds the value of a custody pool.

There is no logic in the value itself, except that a balance may never go
below zero or overflow. Thus, this implementation is referred to as cash.
Simple and safe.

Anyone may deposit value into the pool. Value leaves the pool only through
Vault.Transfer, which is the effect executed by the approval ledger once a
transaction collected enough confirmations. A transfer either fully succeeds
or leaves no trace in the store.
*/
package cash
