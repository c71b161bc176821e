package wager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/wager/errors"
)

func TestAccountIter(t *testing.T) {
	a := &AccountInfo{ID: AccountID{1}}
	b := &AccountInfo{ID: AccountID{2}}
	it := NewAccountIter([]*AccountInfo{a, b})

	got, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, a, got)
	got, err = it.Next()
	require.NoError(t, err)
	assert.Equal(t, b, got)

	_, err = it.Next()
	assert.True(t, errors.ErrNotEnoughAccountKeys.Is(err))
}

func TestAccountClone(t *testing.T) {
	orig := &AccountInfo{ID: AccountID{1}, Balance: 7, Data: []byte{1, 2, 3}}
	c := orig.Clone()
	c.Data[0] = 9
	c.Balance = 8
	assert.Equal(t, byte(1), orig.Data[0])
	assert.Equal(t, uint64(7), orig.Balance)
	assert.Equal(t, 3, c.DataLen())
}
