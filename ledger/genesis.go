package ledger

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/wager"
	"github.com/iov-one/wager/errors"
)

// Genesis is the initial state of a ledger.
type Genesis struct {
	Rent     wager.Rent       `json:"rent"`
	Accounts []GenesisAccount `json:"accounts"`
}

// GenesisAccount is an account created at genesis. Owner defaults to the
// system program.
type GenesisAccount struct {
	ID      wager.AccountID `json:"id"`
	Owner   wager.AccountID `json:"owner"`
	Balance uint64          `json:"balance"`
	Data    []byte          `json:"data,omitempty"`
}

// DefaultGenesis returns a genesis with the default rent and no accounts.
func DefaultGenesis() Genesis {
	return Genesis{Rent: wager.DefaultRent()}
}

// LoadGenesis reads a JSON encoded genesis file.
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis

	bytes, err := ioutil.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrap(errors.ErrInvalidArgument, err.Error())
	}
	if err := json.Unmarshal(bytes, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInvalidArgument, "unmarshaling genesis file: %s", err)
	}
	return gen, nil
}

// Validate returns an error if the genesis cannot be used to create a
// ledger.
func (g Genesis) Validate() error {
	if err := g.Rent.Validate(); err != nil {
		return errors.Wrap(err, "rent")
	}
	seen := make(map[wager.AccountID]struct{}, len(g.Accounts))
	for i, a := range g.Accounts {
		switch a.ID {
		case wager.SystemProgramID, wager.RentSysvarID:
			return errors.Wrapf(errors.ErrInvalidArgument, "account %d: %s is reserved", i, a.ID)
		}
		if _, ok := seen[a.ID]; ok {
			return errors.Wrapf(errors.ErrInvalidArgument, "account %d: duplicated %s", i, a.ID)
		}
		seen[a.ID] = struct{}{}
		if a.Balance == 0 && len(a.Data) == 0 {
			return errors.Wrapf(errors.ErrInvalidArgument, "account %d: %s is empty", i, a.ID)
		}
	}
	return nil
}
