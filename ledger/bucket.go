package ledger

import (
	"encoding/binary"

	"github.com/iov-one/wager"
	"github.com/iov-one/wager/errors"
	"github.com/iov-one/wager/store"
)

// accountHeaderLen is the size of the owner and balance that prefix the
// account data in the store.
const accountHeaderLen = wager.AccountIDLength + 8

// AccountBucket is a prefixed subspace of the store holding accounts.
type AccountBucket struct {
	prefix []byte
}

// NewAccountBucket returns a bucket storing accounts under the "acct:"
// prefix.
func NewAccountBucket() AccountBucket {
	return AccountBucket{prefix: []byte("acct:")}
}

// DBKey is the full key an account is stored under.
func (b AccountBucket) DBKey(id wager.AccountID) []byte {
	// Copy so consecutive calls never share the prefix backing array.
	out := make([]byte, len(b.prefix)+len(id))
	copy(out, b.prefix)
	copy(out[len(b.prefix):], id[:])
	return out
}

// Get loads an account. An account that was never stored is returned as an
// empty, system owned account.
func (b AccountBucket) Get(db store.ReadOnlyKVStore, id wager.AccountID) (*wager.AccountInfo, error) {
	raw, err := db.Get(b.DBKey(id))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if raw == nil {
		return &wager.AccountInfo{ID: id, Owner: wager.SystemProgramID}, nil
	}
	acc, err := unpackAccount(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "account %s", id)
	}
	acc.ID = id
	return acc, nil
}

// Save stores an account. Accounts without balance and data are removed
// from the store.
func (b AccountBucket) Save(db store.KVStore, acc *wager.AccountInfo) error {
	key := b.DBKey(acc.ID)
	var err error
	if acc.Balance == 0 && acc.DataLen() == 0 {
		err = db.Delete(key)
	} else {
		err = db.Set(key, packAccount(acc))
	}
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// All returns every stored account in key order.
func (b AccountBucket) All(db store.ReadOnlyKVStore) ([]*wager.AccountInfo, error) {
	end := make([]byte, len(b.prefix))
	copy(end, b.prefix)
	end[len(end)-1]++

	it, err := db.Iterator(b.prefix, end)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	defer it.Close()

	var res []*wager.AccountInfo
	for ; it.Valid(); it.Next() {
		id, err := wager.NewAccountID(it.Key()[len(b.prefix):])
		if err != nil {
			return nil, errors.Wrap(err, "account key")
		}
		acc, err := unpackAccount(it.Value())
		if err != nil {
			return nil, errors.Wrapf(err, "account %s", id)
		}
		acc.ID = id
		res = append(res, acc)
	}
	return res, nil
}

func packAccount(acc *wager.AccountInfo) []byte {
	raw := make([]byte, accountHeaderLen+acc.DataLen())
	copy(raw, acc.Owner[:])
	binary.LittleEndian.PutUint64(raw[wager.AccountIDLength:], acc.Balance)
	copy(raw[accountHeaderLen:], acc.Data)
	return raw
}

func unpackAccount(raw []byte) (*wager.AccountInfo, error) {
	if len(raw) < accountHeaderLen {
		return nil, errors.Wrapf(errors.ErrDatabase, "stored account too short: %d bytes", len(raw))
	}
	var acc wager.AccountInfo
	copy(acc.Owner[:], raw[:wager.AccountIDLength])
	acc.Balance = binary.LittleEndian.Uint64(raw[wager.AccountIDLength:accountHeaderLen])
	if len(raw) > accountHeaderLen {
		acc.Data = make([]byte, len(raw)-accountHeaderLen)
		copy(acc.Data, raw[accountHeaderLen:])
	}
	return &acc, nil
}

// executedBucket remembers the ids of all committed transactions.
type executedBucket struct {
	prefix []byte
}

func newExecutedBucket() executedBucket {
	return executedBucket{prefix: []byte("txid:")}
}

func (b executedBucket) dbKey(txID []byte) []byte {
	out := make([]byte, len(b.prefix)+len(txID))
	copy(out, b.prefix)
	copy(out[len(b.prefix):], txID)
	return out
}

// Has returns true if a transaction with given id was committed.
func (b executedBucket) Has(db store.ReadOnlyKVStore, txID []byte) (bool, error) {
	ok, err := db.Has(b.dbKey(txID))
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return ok, nil
}

// Mark records a transaction id as committed.
func (b executedBucket) Mark(db store.KVStore, txID []byte) error {
	if err := db.Set(b.dbKey(txID), []byte{1}); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
