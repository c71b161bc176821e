package system

import (
	"encoding/binary"

	"github.com/iov-one/wager"
	"github.com/iov-one/wager/errors"
)

// Instruction tags, encoded as u32 little endian.
const (
	TagCreateAccount uint32 = 0
	TagTransfer      uint32 = 2
)

const (
	createAccountLen = 4 + 8 + 8 + wager.AccountIDLength
	transferLen      = 4 + 8
)

// CreateAccountArgs are the parameters of CreateAccount.
type CreateAccountArgs struct {
	Balance uint64
	Space   uint64
	Owner   wager.AccountID
}

// CreateAccount returns an instruction funding a new account with balance
// units from funder, allocating space bytes of zeroed data and assigning it
// to owner. Both accounts must sign.
func CreateAccount(funder, account wager.AccountID, balance, space uint64, owner wager.AccountID) wager.Instruction {
	data := make([]byte, createAccountLen)
	binary.LittleEndian.PutUint32(data[0:4], TagCreateAccount)
	binary.LittleEndian.PutUint64(data[4:12], balance)
	binary.LittleEndian.PutUint64(data[12:20], space)
	copy(data[20:], owner[:])
	return wager.Instruction{
		ProgramID: wager.SystemProgramID,
		Accounts: []wager.AccountMeta{
			{ID: funder, IsSigner: true, IsWritable: true},
			{ID: account, IsSigner: true, IsWritable: true},
		},
		Data: data,
	}
}

// Transfer returns an instruction moving amount units from one account to
// another. The source must sign.
func Transfer(from, to wager.AccountID, amount uint64) wager.Instruction {
	data := make([]byte, transferLen)
	binary.LittleEndian.PutUint32(data[0:4], TagTransfer)
	binary.LittleEndian.PutUint64(data[4:12], amount)
	return wager.Instruction{
		ProgramID: wager.SystemProgramID,
		Accounts: []wager.AccountMeta{
			{ID: from, IsSigner: true, IsWritable: true},
			{ID: to, IsSigner: false, IsWritable: true},
		},
		Data: data,
	}
}

func decodeTag(data []byte) (uint32, error) {
	if len(data) < 4 {
		return 0, errors.Wrap(errors.ErrInvalidInstruction, "missing tag")
	}
	return binary.LittleEndian.Uint32(data[0:4]), nil
}

func decodeCreateAccount(data []byte) (CreateAccountArgs, error) {
	if len(data) != createAccountLen {
		return CreateAccountArgs{}, errors.Wrapf(errors.ErrInvalidInstruction, "create account: want %d bytes, got %d", createAccountLen, len(data))
	}
	args := CreateAccountArgs{
		Balance: binary.LittleEndian.Uint64(data[4:12]),
		Space:   binary.LittleEndian.Uint64(data[12:20]),
	}
	copy(args.Owner[:], data[20:])
	return args, nil
}

func decodeTransfer(data []byte) (uint64, error) {
	if len(data) != transferLen {
		return 0, errors.Wrapf(errors.ErrInvalidInstruction, "transfer: want %d bytes, got %d", transferLen, len(data))
	}
	return binary.LittleEndian.Uint64(data[4:12]), nil
}
