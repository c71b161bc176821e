package escrow

import (
	"github.com/iov-one/wager/errors"
)

// escrow takes 1000-1010
var (
	ErrNotRentExempt  = errors.Register(1000, "balance below rent exempt threshold")
	ErrInvalidAmount  = errors.Register(1001, "invalid amount")
	ErrAmountOverflow = errors.Register(1002, "amount overflow")
)
