package wager

import (
	"context"
)

var (
	// SystemProgramID is the address of the native program that creates
	// accounts and transfers native currency units.
	SystemProgramID = AccountID{}

	// RentSysvarID is the address of the account holding the rent
	// parameters.
	RentSysvarID = MustParseAccountID("SysvarRent111111111111111111111111111111111")
)

// AccountMeta describes how an instruction uses an account.
type AccountMeta struct {
	ID         AccountID `json:"id"`
	IsSigner   bool      `json:"is_signer"`
	IsWritable bool      `json:"is_writable"`
}

// Instruction is a single call of a program.
type Instruction struct {
	ProgramID AccountID     `json:"program_id"`
	Accounts  []AccountMeta `json:"accounts"`
	Data      []byte        `json:"data"`
}

// Program is the code executed for instructions addressed to its id.
//
// Accounts are passed in the order the instruction declared them. Any
// returned error aborts the whole transaction.
type Program interface {
	Process(ctx context.Context, programID AccountID, accounts []*AccountInfo, data []byte) error
}

// ProgramFunc allows to use a function as a Program.
type ProgramFunc func(ctx context.Context, programID AccountID, accounts []*AccountInfo, data []byte) error

// Process calls the wrapped function.
func (fn ProgramFunc) Process(ctx context.Context, programID AccountID, accounts []*AccountInfo, data []byte) error {
	return fn(ctx, programID, accounts, data)
}

// Invoker allows a program to call another program. Accounts must contain
// every account the instruction references. Changes made by the callee are
// visible to the caller through the same AccountInfo values.
type Invoker interface {
	Invoke(ctx context.Context, ix Instruction, accounts []*AccountInfo) error
}
