package wager

import (
	"encoding/binary"
	"math"

	"github.com/iov-one/wager/errors"
)

const (
	// AccountStorageOverhead is the number of bytes an account costs on
	// top of its data.
	AccountStorageOverhead = 128

	// RentLen is the size of the packed Rent.
	RentLen = 17

	DefaultLamportsPerByteYear = 3480
	DefaultExemptionThreshold  = 2.0
	DefaultBurnPercent         = 50
)

// Rent holds the parameters deciding how much an account must hold to be
// kept by the ledger forever.
type Rent struct {
	LamportsPerByteYear uint64  `json:"lamports_per_byte_year"`
	ExemptionThreshold  float64 `json:"exemption_threshold"`
	BurnPercent         uint8   `json:"burn_percent"`
}

// DefaultRent returns the rent used when the genesis does not declare one.
func DefaultRent() Rent {
	return Rent{
		LamportsPerByteYear: DefaultLamportsPerByteYear,
		ExemptionThreshold:  DefaultExemptionThreshold,
		BurnPercent:         DefaultBurnPercent,
	}
}

// Validate returns an error if the parameters cannot be used.
func (r Rent) Validate() error {
	if math.IsNaN(r.ExemptionThreshold) || math.IsInf(r.ExemptionThreshold, 0) || r.ExemptionThreshold < 0 {
		return errors.Wrapf(errors.ErrInvalidArgument, "exemption threshold %v", r.ExemptionThreshold)
	}
	if r.BurnPercent > 100 {
		return errors.Wrapf(errors.ErrInvalidArgument, "burn percent %d", r.BurnPercent)
	}
	return nil
}

// MinimumBalance returns the balance an account of given data size must
// hold to be rent exempt.
func (r Rent) MinimumBalance(dataLen int) uint64 {
	bytes := uint64(AccountStorageOverhead + dataLen)
	return uint64(float64(bytes*r.LamportsPerByteYear) * r.ExemptionThreshold)
}

// IsExempt returns true if an account with given balance and data size is
// never charged rent.
func (r Rent) IsExempt(balance uint64, dataLen int) bool {
	return balance >= r.MinimumBalance(dataLen)
}

// Pack serializes the rent into the sysvar account layout.
func (r Rent) Pack() []byte {
	b := make([]byte, RentLen)
	binary.LittleEndian.PutUint64(b[0:8], r.LamportsPerByteYear)
	binary.LittleEndian.PutUint64(b[8:16], math.Float64bits(r.ExemptionThreshold))
	b[16] = r.BurnPercent
	return b
}

// UnpackRent deserializes the sysvar account layout.
func UnpackRent(b []byte) (Rent, error) {
	if len(b) != RentLen {
		return Rent{}, errors.Wrapf(errors.ErrInvalidAccountData, "rent sysvar must be %d bytes, got %d", RentLen, len(b))
	}
	r := Rent{
		LamportsPerByteYear: binary.LittleEndian.Uint64(b[0:8]),
		ExemptionThreshold:  math.Float64frombits(binary.LittleEndian.Uint64(b[8:16])),
		BurnPercent:         b[16],
	}
	if err := r.Validate(); err != nil {
		return Rent{}, errors.Wrap(err, "rent sysvar")
	}
	return r, nil
}

// RentFromAccount reads the rent from the sysvar account. The account must
// be the rent sysvar.
func RentFromAccount(acc *AccountInfo) (Rent, error) {
	if acc.ID != RentSysvarID {
		return Rent{}, errors.Wrapf(errors.ErrInvalidArgument, "%s is not the rent sysvar", acc.ID)
	}
	return UnpackRent(acc.Data)
}
