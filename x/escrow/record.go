package escrow

import (
	"encoding/binary"

	"github.com/iov-one/wager"
	"github.com/iov-one/wager/errors"
)

// RecordLen is the size of the custody account data.
const RecordLen = 1 + wager.AccountIDLength + wager.AccountIDLength + 8

// Record is the state of an escrow, stored in the custody account.
type Record struct {
	IsInitialized bool
	Creator       wager.AccountID
	Competitor    wager.AccountID
	Amount        uint64
}

// Pack serializes the record into its fixed layout.
func (r Record) Pack() []byte {
	b := make([]byte, RecordLen)
	if r.IsInitialized {
		b[0] = 1
	}
	copy(b[1:33], r.Creator[:])
	copy(b[33:65], r.Competitor[:])
	binary.LittleEndian.PutUint64(b[65:], r.Amount)
	return b
}

// UnpackRecordUnchecked decodes a record without requiring it to be
// initialized. Freshly allocated, zeroed data decodes to the zero Record.
func UnpackRecordUnchecked(data []byte) (Record, error) {
	if len(data) != RecordLen {
		return Record{}, errors.Wrapf(errors.ErrInvalidAccountData, "record must be %d bytes, got %d", RecordLen, len(data))
	}
	var r Record
	switch data[0] {
	case 0:
	case 1:
		r.IsInitialized = true
	default:
		return Record{}, errors.Wrapf(errors.ErrInvalidAccountData, "invalid initialized flag %d", data[0])
	}
	copy(r.Creator[:], data[1:33])
	copy(r.Competitor[:], data[33:65])
	r.Amount = binary.LittleEndian.Uint64(data[65:])
	return r, nil
}

// UnpackRecord decodes a record that must be initialized. Empty data, as
// left behind by a release, is reported as uninitialized.
func UnpackRecord(data []byte) (Record, error) {
	if len(data) == 0 {
		return Record{}, errors.Wrap(errors.ErrUninitializedAccount, "no escrow data")
	}
	r, err := UnpackRecordUnchecked(data)
	if err != nil {
		return Record{}, err
	}
	if !r.IsInitialized {
		return Record{}, errors.Wrap(errors.ErrUninitializedAccount, "escrow")
	}
	return r, nil
}

// Deposit returns the record resulting from a deposit of amount by who,
// acting as role. The receiver is not modified.
//
// The creator deposits first, into an uninitialized record, and sets the
// stake. The competitor deposits once, after the creator, and adds to the
// stake. A competitor cannot be the creator.
func (r Record) Deposit(role Role, who wager.AccountID, amount uint64) (Record, error) {
	if amount == 0 {
		return r, errors.Wrap(ErrInvalidAmount, "deposit must not be zero")
	}

	next := r
	next.IsInitialized = true
	switch role {
	case RoleCreator:
		if r.IsInitialized {
			return r, errors.Wrapf(errors.ErrAlreadyInitialized, "creator already set to %s", r.Creator)
		}
		next.Creator = who
		next.Amount = amount
	case RoleCompetitor:
		if !r.IsInitialized {
			return r, errors.Wrap(errors.ErrUninitializedAccount, "creator must deposit first")
		}
		if !r.Competitor.IsZero() {
			return r, errors.Wrapf(errors.ErrAlreadyInitialized, "competitor already set to %s", r.Competitor)
		}
		if who == r.Creator {
			return r, errors.Wrap(errors.ErrInvalidAccountData, "creator cannot compete against itself")
		}
		sum := r.Amount + amount
		if sum < r.Amount {
			return r, errors.Wrapf(ErrAmountOverflow, "%d + %d", r.Amount, amount)
		}
		next.Competitor = who
		next.Amount = sum
	default:
		return r, role.Validate()
	}
	return next, nil
}
