/*
Package errors implements the error kinds shared by the ledger and every
program it hosts.

Each kind is a root error registered with a unique numeric code. Reuse the
root errors declared here when possible and register a package specific
kind only when nothing here describes the failure. A program reports a
failure by wrapping one of the root errors:

	return errors.Wrapf(errors.ErrInvalidAccountData, "creator %s", id)

Callers test for a kind with Is, which unwraps the error chain:

	if errors.ErrInvalidAccountData.Is(err) { ... }

A stack trace is attached at the innermost Wrap. Use fmt with %+v to print
it.
*/
package errors
