package escrow

import (
	"github.com/iov-one/wager"
	"github.com/iov-one/wager/x/system"
)

// NewCreateCustodyInstruction returns a system instruction allocating a
// rent exempt custody account owned by the escrow program.
func NewCreateCustodyInstruction(programID, funder, custody wager.AccountID, rent wager.Rent) wager.Instruction {
	return system.CreateAccount(funder, custody, rent.MinimumBalance(RecordLen), RecordLen, programID)
}

// NewInitEscrowInstruction returns an instruction depositing amount from
// sender into the custody account.
func NewInitEscrowInstruction(programID, sender, custody wager.AccountID, role Role, amount uint64) wager.Instruction {
	return wager.Instruction{
		ProgramID: programID,
		Accounts: []wager.AccountMeta{
			{ID: sender, IsSigner: true, IsWritable: true},
			{ID: custody, IsWritable: true},
			{ID: wager.RentSysvarID},
			{ID: wager.SystemProgramID},
		},
		Data: InitEscrowMsg{Role: role, Amount: amount}.Pack(),
	}
}

// NewWithdrawInstruction returns an instruction releasing the custody
// account into dest. When competitor is nil only the creator is presented,
// otherwise both parties are.
func NewWithdrawInstruction(programID, custody, creator wager.AccountID, competitor *wager.AccountID, dest wager.AccountID, amount uint64) wager.Instruction {
	result := ResultCreatorOnly
	accounts := []wager.AccountMeta{
		{ID: custody, IsSigner: true, IsWritable: true},
		{ID: creator},
	}
	if competitor != nil {
		result = ResultBothParties
		accounts = append(accounts, wager.AccountMeta{ID: *competitor})
	}
	accounts = append(accounts, wager.AccountMeta{ID: dest, IsWritable: true})

	return wager.Instruction{
		ProgramID: programID,
		Accounts:  accounts,
		Data:      WithdrawEscrowMsg{Result: result, Amount: amount}.Pack(),
	}
}
