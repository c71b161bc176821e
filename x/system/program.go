package system

import (
	"context"

	"github.com/iov-one/wager"
	"github.com/iov-one/wager/errors"
)

// MaxSpace limits the data a single account can allocate.
const MaxSpace = 10 * 1024 * 1024

// Program is the system program.
type Program struct{}

var _ wager.Program = Program{}

// NewProgram returns the system program.
func NewProgram() Program {
	return Program{}
}

// Process executes a system instruction.
func (Program) Process(ctx context.Context, programID wager.AccountID, accounts []*wager.AccountInfo, data []byte) error {
	tag, err := decodeTag(data)
	if err != nil {
		return err
	}
	switch tag {
	case TagCreateAccount:
		args, err := decodeCreateAccount(data)
		if err != nil {
			return err
		}
		return createAccount(ctx, accounts, args)
	case TagTransfer:
		amount, err := decodeTransfer(data)
		if err != nil {
			return err
		}
		return transfer(ctx, accounts, amount)
	default:
		return errors.Wrapf(errors.ErrInvalidInstruction, "unknown system instruction %d", tag)
	}
}

func createAccount(ctx context.Context, accounts []*wager.AccountInfo, args CreateAccountArgs) error {
	it := wager.NewAccountIter(accounts)
	funder, err := it.Next()
	if err != nil {
		return err
	}
	acc, err := it.Next()
	if err != nil {
		return err
	}
	if !acc.IsSigner {
		return errors.Wrapf(errors.ErrMissingSignature, "new account %s", acc.ID)
	}
	if acc.Balance != 0 || acc.DataLen() != 0 || acc.Owner != wager.SystemProgramID {
		return errors.Wrapf(errors.ErrAlreadyInitialized, "account %s already in use", acc.ID)
	}
	if args.Space > MaxSpace {
		return errors.Wrapf(errors.ErrInvalidArgument, "space %d exceeds %d", args.Space, MaxSpace)
	}
	if err := debit(funder, args.Balance); err != nil {
		return err
	}
	acc.Balance = args.Balance
	acc.Data = make([]byte, args.Space)
	acc.Owner = args.Owner

	wager.GetLogger(ctx).Debug("create account",
		"account", acc.ID,
		"owner", args.Owner,
		"space", args.Space,
		"balance", args.Balance)
	return nil
}

func transfer(ctx context.Context, accounts []*wager.AccountInfo, amount uint64) error {
	it := wager.NewAccountIter(accounts)
	from, err := it.Next()
	if err != nil {
		return err
	}
	to, err := it.Next()
	if err != nil {
		return err
	}
	if to.Balance+amount < to.Balance {
		return errors.Wrapf(errors.ErrOverflow, "credit %s", to.ID)
	}
	if err := debit(from, amount); err != nil {
		return err
	}
	to.Balance += amount

	wager.GetLogger(ctx).Debug("transfer",
		"from", from.ID,
		"to", to.ID,
		"amount", amount)
	return nil
}

// debit removes amount from a system owned account that signed.
func debit(acc *wager.AccountInfo, amount uint64) error {
	if !acc.IsSigner {
		return errors.Wrapf(errors.ErrMissingSignature, "source %s", acc.ID)
	}
	if acc.Owner != wager.SystemProgramID {
		return errors.Wrapf(errors.ErrIllegalOwner, "source %s is owned by %s", acc.ID, acc.Owner)
	}
	if acc.DataLen() != 0 {
		return errors.Wrapf(errors.ErrInvalidArgument, "source %s carries data", acc.ID)
	}
	if acc.Balance < amount {
		return errors.Wrapf(errors.ErrInsufficientFunds, "%s has %d, needs %d", acc.ID, acc.Balance, amount)
	}
	acc.Balance -= amount
	return nil
}
