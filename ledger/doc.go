/*
Package ledger is an in-process runtime executing programs against a set of
accounts.

Accounts are kept in a store.KVStore. Each transaction is executed inside a
cache wrap that is written only when all of its instructions succeeded, so a
failed transaction leaves no trace.

After every instruction the runtime validates what the program did:

* the sum of all balances must not change,
* only the program owning an account may debit it, change its data or
  reassign it,
* accounts not marked writable must not change at all.

Programs may call the system program through the Ledger, which implements
wager.Invoker. The callee inherits the signatures of the calling
instruction.
*/
package ledger
