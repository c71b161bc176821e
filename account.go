package wager

import (
	"github.com/iov-one/wager/errors"
)

// AccountInfo is the view of a single account a program operates on.
//
// The runtime fills IsSigner and IsWritable. A program may change Balance and
// Data, the runtime validates all changes once the program returns.
type AccountInfo struct {
	ID         AccountID
	Owner      AccountID
	IsSigner   bool
	IsWritable bool
	Balance    uint64
	Data       []byte
}

// DataLen returns the size of the account data.
func (a *AccountInfo) DataLen() int {
	return len(a.Data)
}

// Clone returns a deep copy.
func (a *AccountInfo) Clone() *AccountInfo {
	c := *a
	if a.Data != nil {
		c.Data = make([]byte, len(a.Data))
		copy(c.Data, a.Data)
	}
	return &c
}

// AccountIter walks an ordered list of accounts, in the order an
// instruction declared them.
type AccountIter struct {
	accounts []*AccountInfo
	pos      int
}

// NewAccountIter returns an iterator over given accounts.
func NewAccountIter(accounts []*AccountInfo) *AccountIter {
	return &AccountIter{accounts: accounts}
}

// Next returns the next account or ErrNotEnoughAccountKeys when all
// accounts were consumed.
func (it *AccountIter) Next() (*AccountInfo, error) {
	if it.pos >= len(it.accounts) {
		return nil, errors.Wrapf(errors.ErrNotEnoughAccountKeys, "account %d", it.pos)
	}
	acc := it.accounts[it.pos]
	it.pos++
	return acc, nil
}
