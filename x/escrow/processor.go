package escrow

import (
	"context"

	"github.com/iov-one/wager"
	"github.com/iov-one/wager/errors"
	"github.com/iov-one/wager/x/system"
)

// Processor is the escrow program. It routes each instruction to its
// handler.
type Processor struct {
	invoker wager.Invoker
}

var _ wager.Program = Processor{}

// NewProcessor returns the escrow program. Deposits are moved by calling
// the system program through invoker.
func NewProcessor(invoker wager.Invoker) Processor {
	return Processor{invoker: invoker}
}

// Process decodes the instruction data and runs the matching handler.
func (p Processor) Process(ctx context.Context, programID wager.AccountID, accounts []*wager.AccountInfo, data []byte) error {
	msg, err := UnpackInstruction(data)
	if err != nil {
		return err
	}

	switch msg := msg.(type) {
	case InitEscrowMsg:
		ctx = wager.WithLogInfo(ctx, "instruction", "init_escrow")
		wager.GetLogger(ctx).Debug("process", "role", msg.Role, "amount", msg.Amount)
		return p.processInit(ctx, programID, accounts, msg)
	case WithdrawEscrowMsg:
		ctx = wager.WithLogInfo(ctx, "instruction", "withdraw_escrow")
		wager.GetLogger(ctx).Debug("process", "result", msg.Result, "amount", msg.Amount)
		return p.processWithdraw(ctx, programID, accounts, msg)
	default:
		return errors.Wrapf(errors.ErrInvalidInstruction, "%T", msg)
	}
}

// processInit expects accounts [sender, escrow, rent sysvar, system program].
func (p Processor) processInit(ctx context.Context, programID wager.AccountID, accounts []*wager.AccountInfo, msg InitEscrowMsg) error {
	it := wager.NewAccountIter(accounts)

	sender, err := it.Next()
	if err != nil {
		return err
	}
	if !sender.IsSigner {
		return errors.Wrapf(errors.ErrMissingSignature, "sender %s", sender.ID)
	}

	custody, err := it.Next()
	if err != nil {
		return err
	}

	rentAcc, err := it.Next()
	if err != nil {
		return err
	}
	rent, err := wager.RentFromAccount(rentAcc)
	if err != nil {
		return err
	}
	if !rent.IsExempt(custody.Balance, custody.DataLen()) {
		return errors.Wrapf(ErrNotRentExempt, "%s holds %d, needs %d",
			custody.ID, custody.Balance, rent.MinimumBalance(custody.DataLen()))
	}

	systemAcc, err := it.Next()
	if err != nil {
		return err
	}
	if systemAcc.ID != wager.SystemProgramID {
		return errors.Wrapf(errors.ErrInvalidArgument, "%s is not the system program", systemAcc.ID)
	}

	if custody.Owner != programID {
		return errors.Wrapf(errors.ErrIllegalOwner, "escrow %s is owned by %s", custody.ID, custody.Owner)
	}
	record, err := UnpackRecordUnchecked(custody.Data)
	if err != nil {
		return errors.Wrap(err, "escrow")
	}
	next, err := record.Deposit(msg.Role, sender.ID, msg.Amount)
	if err != nil {
		return err
	}

	if err := transfer(ctx, p.invoker, sender, custody, systemAcc, msg.Amount); err != nil {
		return err
	}
	custody.Data = next.Pack()

	wager.GetLogger(ctx).Info("deposit",
		"escrow", custody.ID,
		"role", msg.Role,
		"sender", sender.ID,
		"stake", next.Amount)
	return nil
}

// processWithdraw expects accounts [escrow, creator, competitor, destination]
// where competitor is present only for ResultBothParties.
func (p Processor) processWithdraw(ctx context.Context, programID wager.AccountID, accounts []*wager.AccountInfo, msg WithdrawEscrowMsg) error {
	it := wager.NewAccountIter(accounts)

	custody, err := it.Next()
	if err != nil {
		return err
	}
	if !AuthorizeRelease(custody.ID, SignersOf(accounts)) {
		return errors.Wrapf(errors.ErrMissingSignature, "escrow %s", custody.ID)
	}

	record, err := UnpackRecord(custody.Data)
	if err != nil {
		return err
	}
	if custody.Owner != programID {
		return errors.Wrapf(errors.ErrIllegalOwner, "escrow %s is owned by %s", custody.ID, custody.Owner)
	}

	creator, err := it.Next()
	if err != nil {
		return err
	}
	if creator.ID != record.Creator {
		return errors.Wrapf(errors.ErrInvalidAccountData, "creator %s", creator.ID)
	}

	if msg.Result == ResultBothParties {
		competitor, err := it.Next()
		if err != nil {
			return err
		}
		if record.Competitor.IsZero() {
			return errors.Wrap(errors.ErrInvalidAccountData, "escrow has no competitor")
		}
		if competitor.ID != record.Competitor {
			return errors.Wrapf(errors.ErrInvalidAccountData, "competitor %s", competitor.ID)
		}
	}

	dest, err := it.Next()
	if err != nil {
		return err
	}

	if msg.Amount != record.Amount {
		return errors.Wrapf(ErrInvalidAmount, "want %d, got %d", record.Amount, msg.Amount)
	}
	if custody.Balance < record.Amount {
		return errors.Wrapf(ErrInvalidAmount, "escrow holds %d, stake is %d", custody.Balance, record.Amount)
	}
	if dest.ID == custody.ID {
		return errors.Wrap(errors.ErrInvalidAccountData, "cannot withdraw into the escrow")
	}

	payout := dest.Balance + custody.Balance
	if payout < dest.Balance {
		return errors.Wrapf(ErrAmountOverflow, "%d + %d", dest.Balance, custody.Balance)
	}

	released := custody.Balance
	dest.Balance = payout
	custody.Balance = 0
	custody.Data = nil

	wager.GetLogger(ctx).Info("release",
		"escrow", custody.ID,
		"result", msg.Result,
		"destination", dest.ID,
		"released", released)
	return nil
}

// transfer moves amount from source to destination with the system program.
// Any failure is returned as is and aborts the instruction.
func transfer(ctx context.Context, invoker wager.Invoker, source, destination, systemProgram *wager.AccountInfo, amount uint64) error {
	ix := system.Transfer(source.ID, destination.ID, amount)
	accounts := []*wager.AccountInfo{source, destination, systemProgram}
	if err := invoker.Invoke(ctx, ix, accounts); err != nil {
		return errors.Wrap(err, "transfer to escrow")
	}
	return nil
}
