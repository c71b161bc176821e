package wagertest

import (
	"context"

	"github.com/iov-one/wager"
	"github.com/iov-one/wager/errors"
)

// Invoker is a wager.Invoker used to test programs without a ledger. Each
// call is recorded. When Err is set it is returned and nothing is executed,
// otherwise the instruction is executed by the program registered for its
// id. Signer and writable privileges requested by the instruction are
// checked against the passed accounts, as the ledger does.
type Invoker struct {
	Programs map[wager.AccountID]wager.Program
	Err      error

	calls []wager.Instruction
}

var _ wager.Invoker = (*Invoker)(nil)

// Invoke implements wager.Invoker.
func (i *Invoker) Invoke(ctx context.Context, ix wager.Instruction, accounts []*wager.AccountInfo) error {
	i.calls = append(i.calls, ix)
	if i.Err != nil {
		return i.Err
	}

	prog, ok := i.Programs[ix.ProgramID]
	if !ok {
		return errors.Wrapf(errors.ErrUnknownProgram, "%s", ix.ProgramID)
	}

	byID := make(map[wager.AccountID]*wager.AccountInfo, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}
	callee := make([]*wager.AccountInfo, 0, len(ix.Accounts))
	for _, meta := range ix.Accounts {
		acc, ok := byID[meta.ID]
		if !ok {
			return errors.Wrapf(errors.ErrNotEnoughAccountKeys, "%s not passed", meta.ID)
		}
		if meta.IsSigner && !acc.IsSigner {
			return errors.Wrapf(errors.ErrMissingSignature, "%s", meta.ID)
		}
		if meta.IsWritable && !acc.IsWritable {
			return errors.Wrapf(errors.ErrReadonlyAccount, "%s", meta.ID)
		}
		callee = append(callee, acc)
	}
	return prog.Process(ctx, ix.ProgramID, callee, ix.Data)
}

// Calls returns all recorded instructions.
func (i *Invoker) Calls() []wager.Instruction {
	return i.calls
}
