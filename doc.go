/*
Package wager defines the interfaces shared between the ledger runtime and
the programs it hosts: account identities, the account view handed to a
program, instructions, cross program invocation and the rent sysvar.

Programs receive an ordered list of accounts together with the opaque
instruction data. They never talk to storage directly. The runtime loads the
accounts, hands them to the program and persists the mutated accounts only
when the whole transaction succeeded.

The logger is carried in context.Context. Use WithLogger to set it and
GetLogger to read it back.
*/
package wager
