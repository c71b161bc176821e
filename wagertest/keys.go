package wagertest

import (
	"crypto/sha256"

	"github.com/iov-one/wager"
	"golang.org/x/crypto/ed25519"
)

// NewKey returns a random private key.
func NewKey() ed25519.PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return priv
}

// KeyFromSeed returns a private key deterministically derived from a human
// readable seed, ie. "alice".
func KeyFromSeed(seed string) ed25519.PrivateKey {
	h := sha256.Sum256([]byte(seed))
	return ed25519.NewKeyFromSeed(h[:])
}

// AccountIDOf returns the account identity controlled by given key.
func AccountIDOf(priv ed25519.PrivateKey) wager.AccountID {
	pub := priv.Public().(ed25519.PublicKey)
	var id wager.AccountID
	copy(id[:], pub)
	return id
}

// NewAccountID returns a random account identity.
func NewAccountID() wager.AccountID {
	return AccountIDOf(NewKey())
}
