package escrow

import (
	"testing"

	"github.com/iov-one/wager/errors"
	"github.com/iov-one/wager/wagertest/assert"
)

func TestUnpackInstruction(t *testing.T) {
	cases := map[string]struct {
		data    []byte
		want    Msg
		wantErr *errors.Error
	}{
		"creator deposit": {
			data: []byte{0, 1, 100, 0, 0, 0, 0, 0, 0, 0},
			want: InitEscrowMsg{Role: RoleCreator, Amount: 100},
		},
		"competitor deposit": {
			data: []byte{0, 0, 0x00, 0x2d, 0x31, 0x01, 0, 0, 0, 0},
			want: InitEscrowMsg{Role: RoleCompetitor, Amount: 20000000},
		},
		"withdraw with both parties": {
			data: []byte{1, 1, 0x80, 0xc3, 0xc9, 0x01, 0, 0, 0, 0},
			want: WithdrawEscrowMsg{Result: ResultBothParties, Amount: 30000000},
		},
		"withdraw with creator only": {
			data: []byte{1, 0, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
			want: WithdrawEscrowMsg{Result: ResultCreatorOnly, Amount: ^uint64(0)},
		},
		"unknown tag": {
			data:    []byte{2, 0, 1, 0, 0, 0, 0, 0, 0, 0},
			wantErr: errors.ErrInvalidInstruction,
		},
		"unknown role": {
			data:    []byte{0, 2, 1, 0, 0, 0, 0, 0, 0, 0},
			wantErr: errors.ErrInvalidInstruction,
		},
		"unknown result": {
			data:    []byte{1, 7, 1, 0, 0, 0, 0, 0, 0, 0},
			wantErr: errors.ErrInvalidInstruction,
		},
		"truncated amount": {
			data:    []byte{0, 1, 100, 0, 0},
			wantErr: errors.ErrInvalidInstruction,
		},
		"trailing bytes": {
			data:    []byte{0, 1, 100, 0, 0, 0, 0, 0, 0, 0, 0},
			wantErr: errors.ErrInvalidInstruction,
		},
		"empty": {
			data:    nil,
			wantErr: errors.ErrInvalidInstruction,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := UnpackInstruction(tc.data)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.data, got.Pack())
		})
	}
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "creator", RoleCreator.String())
	assert.Equal(t, "competitor", RoleCompetitor.String())
	assert.Equal(t, "Role(9)", Role(9).String())
	assert.Equal(t, "both_parties", ResultBothParties.String())
	assert.Equal(t, "creator_only", ResultCreatorOnly.String())
	assert.Equal(t, "Result(3)", Result(3).String())
}
