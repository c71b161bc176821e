package escrow

import (
	"github.com/iov-one/wager"
)

// Signers reports which accounts authorized the current transaction.
type Signers interface {
	IsSigner(wager.AccountID) bool
}

// SignerSet is a Signers backed by a set of identities.
type SignerSet map[wager.AccountID]struct{}

var _ Signers = SignerSet(nil)

// SignersOf collects the signers among given accounts.
func SignersOf(accounts []*wager.AccountInfo) SignerSet {
	set := make(SignerSet)
	for _, a := range accounts {
		if a.IsSigner {
			set[a.ID] = struct{}{}
		}
	}
	return set
}

// IsSigner implements Signers.
func (s SignerSet) IsSigner(id wager.AccountID) bool {
	_, ok := s[id]
	return ok
}

// AuthorizeRelease returns true if the custody account may be released.
// The custody key acts as the arbiter and must co-sign its own release.
func AuthorizeRelease(escrow wager.AccountID, signers Signers) bool {
	return signers.IsSigner(escrow)
}
