/*
Package ledger implements the approval ledger of a shared custody pool.

A fixed set of owners controls the pool. Any owner may submit a transaction
(a target address, a value and an opaque payload). Owners then confirm it
independently and may revoke their confirmation as long as the transaction is
not executed. Once the number of standing confirmations reaches the threshold,
any owner may execute the transaction exactly once. Execution hands the
transaction to an external Effect, usually the x/cash Vault, that moves the
value.

Transactions are kept in an append-only registry and are identified by their
position in it. They are never deleted.

Execution marks the transaction as executed before the Effect is invoked and
this mark is never reverted. A reentrant call made by the Effect cannot
execute the same transaction twice, and a transaction whose Effect failed
cannot be retried.

The RegisterRoutes function exposes the ledger as message handlers, taking the
caller identity from an x.Authenticator.
*/
package ledger
