package main

import (
	"crypto/sha256"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/wager"
	"golang.org/x/crypto/ed25519"
)

func cmdKeygen(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the account id of a key derived from a seed.

Seed derived keys are deterministic and must be used for testing only.
Scenario files refer to accounts by their seed.
`)
		fl.PrintDefaults()
	}
	var (
		seedFl = fl.String("seed", "", "Text the private key is derived from.")
	)
	fl.Parse(args)

	if *seedFl == "" {
		flagDie("seed is required")
	}
	fmt.Fprintln(output, accountOf(keyFromSeed(*seedFl)))
	return nil
}

// keyFromSeed returns a private key deterministically derived from a human
// readable seed.
func keyFromSeed(seed string) ed25519.PrivateKey {
	h := sha256.Sum256([]byte(seed))
	return ed25519.NewKeyFromSeed(h[:])
}

func accountOf(priv ed25519.PrivateKey) wager.AccountID {
	var id wager.AccountID
	copy(id[:], priv.Public().(ed25519.PublicKey))
	return id
}
