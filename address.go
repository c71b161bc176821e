package wager

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/btcsuite/btcutil/base58"
	"github.com/iov-one/wager/errors"
)

// AccountIDLength is the size of an account identity, equal to the size of
// an ed25519 public key.
const AccountIDLength = 32

// AccountID is the identity of a ledger account. Most of the time it is the
// public key controlling the account.
type AccountID [AccountIDLength]byte

// NewAccountID returns the identity represented by given bytes. An error is
// returned if the length does not match.
func NewAccountID(raw []byte) (AccountID, error) {
	var id AccountID
	if len(raw) != AccountIDLength {
		return id, errors.Wrapf(errors.ErrInvalidArgument, "account id must be %d bytes, got %d", AccountIDLength, len(raw))
	}
	copy(id[:], raw)
	return id, nil
}

// ParseAccountID decodes a textual account identity. Base58 is the default
// encoding, hex is accepted when prefixed with "hex:".
func ParseAccountID(s string) (AccountID, error) {
	chunks := strings.SplitN(s, ":", 2)
	if len(chunks) == 1 {
		raw := base58.Decode(s)
		if len(raw) == 0 {
			return AccountID{}, errors.Wrapf(errors.ErrInvalidArgument, "invalid base58 account id %q", s)
		}
		return NewAccountID(raw)
	}

	switch chunks[0] {
	case "hex":
		raw, err := hex.DecodeString(chunks[1])
		if err != nil {
			return AccountID{}, errors.Wrap(errors.ErrInvalidArgument, err.Error())
		}
		return NewAccountID(raw)
	default:
		return AccountID{}, errors.Wrapf(errors.ErrInvalidArgument, "unknown format %q", chunks[0])
	}
}

// MustParseAccountID works like ParseAccountID but panics on error. Use it
// for constants and in tests.
func MustParseAccountID(s string) AccountID {
	id, err := ParseAccountID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the base58 representation.
func (id AccountID) String() string {
	return base58.Encode(id[:])
}

// IsZero returns true if no identity was set.
func (id AccountID) IsZero() bool {
	return id == AccountID{}
}

// MarshalJSON provides a base58 representation for JSON.
func (id AccountID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

func (id *AccountID) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}
	parsed, err := ParseAccountID(enc)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// MarshalYAML provides a base58 representation for YAML.
func (id AccountID) MarshalYAML() (interface{}, error) {
	return id.String(), nil
}

func (id *AccountID) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var enc string
	if err := unmarshal(&enc); err != nil {
		return err
	}
	parsed, err := ParseAccountID(enc)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
