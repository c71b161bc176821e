package wager_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iov-one/wager"
)

func TestVersion(t *testing.T) {
	wager.GitCommit = ""
	assert.Equal(t, "v0.1.0-dev", wager.Version())

	wager.GitCommit = "12345678"
	assert.Equal(t, "v0.1.0-dev 12345678", wager.Version())
	wager.GitCommit = ""
}
