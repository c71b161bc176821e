package ledger

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"

	"github.com/iov-one/wager"
	"github.com/iov-one/wager/errors"
	"golang.org/x/crypto/ed25519"
)

// Transaction is a list of instructions executed atomically, together with
// the signatures authorizing them.
//
// A ledger executes a transaction at most once. Nonce allows to submit the
// same instructions again as a new transaction.
type Transaction struct {
	Nonce        uint64              `json:"nonce"`
	Instructions []wager.Instruction `json:"instructions"`
	Signatures   []Signature         `json:"signatures"`
}

// Signature is an ed25519 signature of the transaction sign bytes, made by
// the key the Signer account id is derived from.
type Signature struct {
	Signer wager.AccountID `json:"signer"`
	Sig    []byte          `json:"sig"`
}

// NewTransaction returns an unsigned transaction.
func NewTransaction(ixs ...wager.Instruction) *Transaction {
	return &Transaction{Instructions: ixs}
}

// SignBytes returns the canonical encoding of all instructions that each
// signature covers.
func (tx *Transaction) SignBytes() []byte {
	var buf bytes.Buffer
	var nonce [8]byte
	binary.LittleEndian.PutUint64(nonce[:], tx.Nonce)
	buf.Write(nonce[:])
	writeUint32(&buf, uint32(len(tx.Instructions)))
	for _, ix := range tx.Instructions {
		buf.Write(ix.ProgramID[:])
		writeUint32(&buf, uint32(len(ix.Accounts)))
		for _, m := range ix.Accounts {
			buf.Write(m.ID[:])
			var flags byte
			if m.IsSigner {
				flags |= 1
			}
			if m.IsWritable {
				flags |= 2
			}
			buf.WriteByte(flags)
		}
		writeUint32(&buf, uint32(len(ix.Data)))
		buf.Write(ix.Data)
	}
	return buf.Bytes()
}

// ID returns the hash of the sign bytes, identifying the transaction
// regardless of its signatures.
func (tx *Transaction) ID() []byte {
	h := sha256.Sum256(tx.SignBytes())
	return h[:]
}

func writeUint32(buf *bytes.Buffer, n uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], n)
	buf.Write(b[:])
}

// Sign appends a signature made with given key. Instructions must not be
// changed afterwards.
func (tx *Transaction) Sign(priv ed25519.PrivateKey) {
	pub := priv.Public().(ed25519.PublicKey)
	var signer wager.AccountID
	copy(signer[:], pub)
	tx.Signatures = append(tx.Signatures, Signature{
		Signer: signer,
		Sig:    ed25519.Sign(priv, tx.SignBytes()),
	})
}

// Signers verifies all signatures and returns the set of accounts that
// signed the transaction.
func (tx *Transaction) Signers() (map[wager.AccountID]struct{}, error) {
	msg := tx.SignBytes()
	signers := make(map[wager.AccountID]struct{}, len(tx.Signatures))
	for i, s := range tx.Signatures {
		if !ed25519.Verify(ed25519.PublicKey(s.Signer[:]), msg, s.Sig) {
			return nil, errors.Wrapf(errors.ErrInvalidSignature, "signature %d by %s", i, s.Signer)
		}
		signers[s.Signer] = struct{}{}
	}
	return signers, nil
}
