/*
Package system implements the native program that creates accounts and
moves native currency units between them.

Every account starts owned by the system program. CreateAccount allocates
data for a new account and hands its ownership to another program. Transfer
moves units out of a system owned account that signed the transaction.
*/
package system
