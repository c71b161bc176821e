/*
Package escrow implements a two-party wager escrow program.

A custody account owned by this program holds the stake of two parties.
The creator deposits first and establishes the stake, the competitor
deposits on top of it. A release signed by the custody account pays the
whole custody balance to a single destination and closes the custody
account.

The custody account data holds a fixed size Record:

	offset  size  field
	0       1     initialized flag
	1       32    creator
	33      32    competitor
	65      8     amount, u64 little endian

Instruction data is 10 bytes: a tag (0 initialize, 1 withdraw), a role or
result byte and the amount as u64 little endian.
*/
package escrow
