package ledger

import (
	"bytes"
	"context"
	"fmt"
	"math/bits"
	"sync"
	"time"

	"github.com/iov-one/wager"
	"github.com/iov-one/wager/errors"
	"github.com/iov-one/wager/store"
	"github.com/iov-one/wager/x/system"
	"github.com/tendermint/tendermint/libs/log"
)

// Ledger holds the accounts and the programs that may change them. It is
// safe for concurrent use. Transactions are executed one at a time.
type Ledger struct {
	mu       sync.RWMutex
	logger   log.Logger
	db       store.CacheableKVStore
	accounts AccountBucket
	executed executedBucket
	programs map[wager.AccountID]wager.Program
}

var _ wager.Invoker = (*Ledger)(nil)

// New returns a ledger initialized with the genesis state, backed by an in
// memory store. The system program is always registered.
func New(gen Genesis, logger log.Logger) (*Ledger, error) {
	return NewWithStore(store.MemStore(), gen, logger)
}

// NewWithStore returns a ledger writing the genesis state into db.
func NewWithStore(db store.CacheableKVStore, gen Genesis, logger log.Logger) (*Ledger, error) {
	if err := gen.Validate(); err != nil {
		return nil, errors.Wrap(err, "genesis")
	}
	if logger == nil {
		logger = wager.DefaultLogger
	}
	l := &Ledger{
		logger:   logger.With("module", "ledger"),
		db:       db,
		accounts: NewAccountBucket(),
		executed: newExecutedBucket(),
		programs: make(map[wager.AccountID]wager.Program),
	}
	l.Register(wager.SystemProgramID, system.NewProgram())

	cache := db.CacheWrap()
	defer cache.Discard()

	sysvar := &wager.AccountInfo{
		ID:    wager.RentSysvarID,
		Owner: wager.RentSysvarID,
		Data:  gen.Rent.Pack(),
	}
	if err := l.accounts.Save(cache, sysvar); err != nil {
		return nil, err
	}
	for _, a := range gen.Accounts {
		acc := &wager.AccountInfo{ID: a.ID, Owner: a.Owner, Balance: a.Balance, Data: a.Data}
		if err := l.accounts.Save(cache, acc); err != nil {
			return nil, err
		}
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	l.logger.Info("genesis", "accounts", len(gen.Accounts))
	return l, nil
}

// Register makes a program executable under given id. Registering the same
// id twice panics.
func (l *Ledger) Register(id wager.AccountID, p wager.Program) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.programs[id]; ok {
		panic(fmt.Sprintf("program %s already registered", id))
	}
	l.programs[id] = p
}

// Account returns the committed state of an account.
func (l *Ledger) Account(id wager.AccountID) (*wager.AccountInfo, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.accounts.Get(l.db, id)
}

// Balance returns the committed balance of an account.
func (l *Ledger) Balance(id wager.AccountID) (uint64, error) {
	acc, err := l.Account(id)
	if err != nil {
		return 0, err
	}
	return acc.Balance, nil
}

// Accounts returns all committed accounts.
func (l *Ledger) Accounts() ([]*wager.AccountInfo, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.accounts.All(l.db)
}

// Execute runs all instructions of the transaction. Either every
// instruction succeeds and all changes are committed, or nothing is.
func (l *Ledger) Execute(ctx context.Context, tx *Transaction) (err error) {
	start := time.Now()
	ctx = wager.WithLogger(ctx, l.logger)
	defer func() { logDuration(ctx, start, len(tx.Instructions), err) }()
	defer errors.Recover(&err)

	l.mu.Lock()
	defer l.mu.Unlock()

	signers, err := tx.Signers()
	if err != nil {
		return err
	}

	txID := tx.ID()
	done, err := l.executed.Has(l.db, txID)
	if err != nil {
		return err
	}
	if done {
		return errors.Wrapf(errors.ErrDuplicate, "%X", txID)
	}

	cache := l.db.CacheWrap()
	for i, ix := range tx.Instructions {
		ictx := wager.WithLogInfo(ctx, "instruction", i, "program", ix.ProgramID)
		if err := l.execute(ictx, cache, ix, signers); err != nil {
			cache.Discard()
			return errors.Wrapf(err, "instruction %d", i)
		}
	}
	if err := l.executed.Mark(cache, txID); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// logDuration writes information about the time and result to the logger.
func logDuration(ctx context.Context, start time.Time, instructions int, err error) {
	delta := time.Now().Sub(start)
	logger := wager.GetLogger(ctx).With("duration", delta/time.Microsecond, "instructions", instructions)
	if err != nil {
		logger.Error("transaction", "err", err)
	} else {
		logger.Info("transaction")
	}
}

// execute runs a single top level instruction against db.
func (l *Ledger) execute(ctx context.Context, db store.KVStore, ix wager.Instruction, signers map[wager.AccountID]struct{}) error {
	prog, ok := l.programs[ix.ProgramID]
	if !ok {
		return errors.Wrapf(errors.ErrUnknownProgram, "%s", ix.ProgramID)
	}

	loaded := make(map[wager.AccountID]*wager.AccountInfo, len(ix.Accounts))
	privs := make(map[wager.AccountID]privileges, len(ix.Accounts))
	accounts := make([]*wager.AccountInfo, 0, len(ix.Accounts))
	for _, meta := range ix.Accounts {
		if meta.IsSigner {
			if _, ok := signers[meta.ID]; !ok {
				return errors.Wrapf(errors.ErrMissingSignature, "%s", meta.ID)
			}
		}
		acc, ok := loaded[meta.ID]
		if !ok {
			var err error
			acc, err = l.accounts.Get(db, meta.ID)
			if err != nil {
				return err
			}
			loaded[meta.ID] = acc
		}
		// An account listed more than once is shared and gets the union
		// of its privileges.
		privs[meta.ID] = privs[meta.ID].union(meta)
		accounts = append(accounts, acc)
	}
	grant(loaded, privs)

	f := &frame{programID: ix.ProgramID, accounts: loaded, privileges: privs, pre: snapshot(loaded)}
	if err := prog.Process(withFrame(ctx, f), ix.ProgramID, accounts, ix.Data); err != nil {
		return err
	}
	if err := verify(ix.ProgramID, f.pre, loaded, privs); err != nil {
		return err
	}

	for id, acc := range loaded {
		if privs[id].writable {
			if err := l.accounts.Save(db, acc); err != nil {
				return err
			}
		}
	}
	return nil
}

// Invoke implements wager.Invoker. It can be called only by a program
// executed by this ledger and only the system program can be invoked.
// Accounts must be the ones the calling program received. The callee is
// granted only the privileges the caller was granted by its instruction,
// whatever flags the caller set on the accounts.
func (l *Ledger) Invoke(ctx context.Context, ix wager.Instruction, accounts []*wager.AccountInfo) error {
	caller, ok := currentFrame(ctx)
	if !ok {
		return errors.Wrap(errors.ErrInvalidArgument, "invoke outside of an instruction")
	}
	if ix.ProgramID != wager.SystemProgramID {
		return errors.Wrapf(errors.ErrUnknownProgram, "%s cannot be invoked", ix.ProgramID)
	}
	prog := l.programs[ix.ProgramID]

	for _, acc := range accounts {
		if caller.accounts[acc.ID] != acc {
			return errors.Wrapf(errors.ErrInvalidArgument, "%s was not passed to the caller", acc.ID)
		}
	}

	// Changes the caller made so far are validated before they become the
	// starting state of the callee.
	if err := verify(caller.programID, caller.pre, caller.accounts, caller.privileges); err != nil {
		return err
	}

	byID := make(map[wager.AccountID]*wager.AccountInfo, len(accounts))
	for _, acc := range accounts {
		byID[acc.ID] = acc
	}
	callee := make([]*wager.AccountInfo, 0, len(ix.Accounts))
	used := make(map[wager.AccountID]*wager.AccountInfo, len(ix.Accounts))
	privs := make(map[wager.AccountID]privileges, len(ix.Accounts))
	for _, meta := range ix.Accounts {
		acc, ok := byID[meta.ID]
		if !ok {
			return errors.Wrapf(errors.ErrNotEnoughAccountKeys, "%s not passed", meta.ID)
		}
		granted := caller.privileges[meta.ID]
		if meta.IsSigner && !granted.signer {
			return errors.Wrapf(errors.ErrMissingSignature, "%s", meta.ID)
		}
		if meta.IsWritable && !granted.writable {
			return errors.Wrapf(errors.ErrReadonlyAccount, "%s", meta.ID)
		}
		callee = append(callee, acc)
		used[acc.ID] = acc
		privs[acc.ID] = privs[acc.ID].union(meta)
	}

	grant(used, privs)
	defer grant(caller.accounts, caller.privileges)

	pre := snapshot(used)
	f := &frame{programID: ix.ProgramID, accounts: used, privileges: privs, pre: pre}
	if err := prog.Process(withFrame(ctx, f), ix.ProgramID, callee, ix.Data); err != nil {
		return err
	}
	if err := verify(ix.ProgramID, pre, used, privs); err != nil {
		return err
	}

	caller.pre = snapshot(caller.accounts)
	return nil
}

// privileges an instruction grants on an account. They are decided by the
// runtime and never read back from the account flags a program can change.
type privileges struct {
	signer   bool
	writable bool
}

func (p privileges) union(meta wager.AccountMeta) privileges {
	return privileges{
		signer:   p.signer || meta.IsSigner,
		writable: p.writable || meta.IsWritable,
	}
}

// grant sets the account flags to the granted privileges.
func grant(accounts map[wager.AccountID]*wager.AccountInfo, privs map[wager.AccountID]privileges) {
	for id, acc := range accounts {
		p := privs[id]
		acc.IsSigner = p.signer
		acc.IsWritable = p.writable
	}
}

// frame is the state of a running instruction.
type frame struct {
	programID  wager.AccountID
	accounts   map[wager.AccountID]*wager.AccountInfo
	privileges map[wager.AccountID]privileges
	// pre is the state the program changes are validated against.
	pre map[wager.AccountID]*wager.AccountInfo
}

type contextKey int

const contextKeyFrame contextKey = iota

func withFrame(ctx context.Context, f *frame) context.Context {
	return context.WithValue(ctx, contextKeyFrame, f)
}

func currentFrame(ctx context.Context) (*frame, bool) {
	f, ok := ctx.Value(contextKeyFrame).(*frame)
	return f, ok
}

func snapshot(accounts map[wager.AccountID]*wager.AccountInfo) map[wager.AccountID]*wager.AccountInfo {
	pre := make(map[wager.AccountID]*wager.AccountInfo, len(accounts))
	for id, acc := range accounts {
		pre[id] = acc.Clone()
	}
	return pre
}

// verify checks the changes programID made to the accounts.
func verify(programID wager.AccountID, pre, post map[wager.AccountID]*wager.AccountInfo, privs map[wager.AccountID]privileges) error {
	var before, after uint128
	for id, acc := range post {
		old := pre[id]
		before = before.add(old.Balance)
		after = after.add(acc.Balance)

		if acc.ID != old.ID {
			return errors.Wrapf(errors.ErrInvalidArgument, "account %s identity changed", id)
		}
		changed := acc.Balance != old.Balance ||
			acc.Owner != old.Owner ||
			!bytes.Equal(acc.Data, old.Data)
		if !changed {
			continue
		}
		if !privs[id].writable {
			return errors.Wrapf(errors.ErrReadonlyAccount, "%s", id)
		}
		if old.Owner == programID {
			continue
		}
		// Anyone may credit an account. Everything else is reserved to
		// its owner.
		if acc.Balance < old.Balance {
			return errors.Wrapf(errors.ErrIllegalOwner, "%s debited by %s", id, programID)
		}
		if acc.Owner != old.Owner {
			return errors.Wrapf(errors.ErrIllegalOwner, "%s reassigned by %s", id, programID)
		}
		if !bytes.Equal(acc.Data, old.Data) {
			return errors.Wrapf(errors.ErrIllegalOwner, "%s data changed by %s", id, programID)
		}
	}
	if before != after {
		return errors.Wrapf(errors.ErrUnbalancedTransaction, "%s before, %s after", before, after)
	}
	return nil
}

// uint128 is used to sum balances without overflow.
type uint128 struct {
	hi, lo uint64
}

func (u uint128) add(n uint64) uint128 {
	lo, carry := bits.Add64(u.lo, n, 0)
	return uint128{hi: u.hi + carry, lo: lo}
}

func (u uint128) String() string {
	if u.hi == 0 {
		return fmt.Sprint(u.lo)
	}
	return fmt.Sprintf("%d*2^64+%d", u.hi, u.lo)
}
