package ledger

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/wager"
	"github.com/iov-one/wager/errors"
	"github.com/iov-one/wager/wagertest"
	"github.com/iov-one/wager/wagertest/assert"
)

func TestGenesisValidate(t *testing.T) {
	alice := wagertest.NewAccountID()

	cases := map[string]struct {
		gen     Genesis
		wantErr *errors.Error
	}{
		"default": {
			gen: DefaultGenesis(),
		},
		"funded accounts": {
			gen: Genesis{
				Rent: wager.DefaultRent(),
				Accounts: []GenesisAccount{
					{ID: alice, Balance: 10},
					{ID: wagertest.NewAccountID(), Data: []byte{1}},
				},
			},
		},
		"invalid rent": {
			gen:     Genesis{Rent: wager.Rent{BurnPercent: 101}},
			wantErr: errors.ErrInvalidArgument,
		},
		"duplicated account": {
			gen: Genesis{
				Rent:     wager.DefaultRent(),
				Accounts: []GenesisAccount{{ID: alice, Balance: 1}, {ID: alice, Balance: 2}},
			},
			wantErr: errors.ErrInvalidArgument,
		},
		"system program account": {
			gen: Genesis{
				Rent:     wager.DefaultRent(),
				Accounts: []GenesisAccount{{ID: wager.SystemProgramID, Balance: 1}},
			},
			wantErr: errors.ErrInvalidArgument,
		},
		"rent sysvar account": {
			gen: Genesis{
				Rent:     wager.DefaultRent(),
				Accounts: []GenesisAccount{{ID: wager.RentSysvarID, Balance: 1}},
			},
			wantErr: errors.ErrInvalidArgument,
		},
		"empty account": {
			gen: Genesis{
				Rent:     wager.DefaultRent(),
				Accounts: []GenesisAccount{{ID: alice}},
			},
			wantErr: errors.ErrInvalidArgument,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.gen.Validate()
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestLoadGenesis(t *testing.T) {
	dir, err := ioutil.TempDir("", "genesis")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	alice := wagertest.AccountIDOf(wagertest.KeyFromSeed("alice"))
	content := `{
		"rent": {"lamports_per_byte_year": 10, "exemption_threshold": 1.5, "burn_percent": 20},
		"accounts": [{"id": "` + alice.String() + `", "balance": 500}]
	}`
	path := filepath.Join(dir, "genesis.json")
	assert.Nil(t, ioutil.WriteFile(path, []byte(content), 0600))

	gen, err := LoadGenesis(path)
	assert.Nil(t, err)
	assert.Equal(t, wager.Rent{LamportsPerByteYear: 10, ExemptionThreshold: 1.5, BurnPercent: 20}, gen.Rent)
	assert.Equal(t, []GenesisAccount{{ID: alice, Balance: 500}}, gen.Accounts)

	_, err = LoadGenesis(filepath.Join(dir, "missing.json"))
	assert.IsErr(t, errors.ErrInvalidArgument, err)
}
