package escrow

import (
	"testing"

	"github.com/iov-one/wager"
	"github.com/iov-one/wager/wagertest"
	"github.com/iov-one/wager/wagertest/assert"
)

func TestAuthorizeRelease(t *testing.T) {
	custody := wagertest.NewAccountID()
	creator := wagertest.NewAccountID()

	cases := map[string]struct {
		signers Signers
		want    bool
	}{
		"custody signed": {
			signers: SignerSet{custody: {}},
			want:    true,
		},
		"custody and creator signed": {
			signers: SignerSet{custody: {}, creator: {}},
			want:    true,
		},
		"only creator signed": {
			signers: SignerSet{creator: {}},
			want:    false,
		},
		"nobody signed": {
			signers: SignerSet{},
			want:    false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, AuthorizeRelease(custody, tc.signers))
		})
	}
}

func TestSignersOf(t *testing.T) {
	a := &wager.AccountInfo{ID: wagertest.NewAccountID(), IsSigner: true}
	b := &wager.AccountInfo{ID: wagertest.NewAccountID()}

	set := SignersOf([]*wager.AccountInfo{a, b})
	assert.Equal(t, true, set.IsSigner(a.ID))
	assert.Equal(t, false, set.IsSigner(b.ID))
}
