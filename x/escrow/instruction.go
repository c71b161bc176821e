package escrow

import (
	"encoding/binary"
	"fmt"

	"github.com/iov-one/wager/errors"
)

// Instruction tags.
const (
	TagInitEscrow     byte = 0
	TagWithdrawEscrow byte = 1
)

// InstructionLen is the size of every encoded instruction.
const InstructionLen = 1 + 1 + 8

// Role tells which side of the wager a deposit is made for.
type Role byte

const (
	RoleCompetitor Role = 0
	RoleCreator    Role = 1
)

func (r Role) String() string {
	switch r {
	case RoleCompetitor:
		return "competitor"
	case RoleCreator:
		return "creator"
	default:
		return fmt.Sprintf("Role(%d)", byte(r))
	}
}

// Validate returns an error if the role is not known.
func (r Role) Validate() error {
	if r != RoleCompetitor && r != RoleCreator {
		return errors.Wrapf(errors.ErrInvalidInstruction, "unknown role %d", byte(r))
	}
	return nil
}

// Result tells which parties must be presented to release the escrow.
type Result byte

const (
	// ResultCreatorOnly requires the creator account only.
	ResultCreatorOnly Result = 0
	// ResultBothParties requires the creator and the competitor accounts.
	ResultBothParties Result = 1
)

func (r Result) String() string {
	switch r {
	case ResultCreatorOnly:
		return "creator_only"
	case ResultBothParties:
		return "both_parties"
	default:
		return fmt.Sprintf("Result(%d)", byte(r))
	}
}

// Validate returns an error if the result is not known.
func (r Result) Validate() error {
	if r != ResultCreatorOnly && r != ResultBothParties {
		return errors.Wrapf(errors.ErrInvalidInstruction, "unknown result %d", byte(r))
	}
	return nil
}

// Msg is a decoded escrow instruction.
type Msg interface {
	// Pack returns the instruction data.
	Pack() []byte
	// Validate returns an error if the message cannot be processed.
	Validate() error
}

// InitEscrowMsg deposits Amount into the custody account on behalf of the
// sender, for the given Role.
type InitEscrowMsg struct {
	Role   Role
	Amount uint64
}

var _ Msg = InitEscrowMsg{}

func (m InitEscrowMsg) Pack() []byte {
	return pack(TagInitEscrow, byte(m.Role), m.Amount)
}

func (m InitEscrowMsg) Validate() error {
	return m.Role.Validate()
}

// WithdrawEscrowMsg releases the custody account. Amount must repeat the
// stake recorded in the escrow.
type WithdrawEscrowMsg struct {
	Result Result
	Amount uint64
}

var _ Msg = WithdrawEscrowMsg{}

func (m WithdrawEscrowMsg) Pack() []byte {
	return pack(TagWithdrawEscrow, byte(m.Result), m.Amount)
}

func (m WithdrawEscrowMsg) Validate() error {
	return m.Result.Validate()
}

func pack(tag, flag byte, amount uint64) []byte {
	b := make([]byte, InstructionLen)
	b[0] = tag
	b[1] = flag
	binary.LittleEndian.PutUint64(b[2:], amount)
	return b
}

// UnpackInstruction decodes instruction data. Unknown tags, unknown role or
// result values and data of the wrong size are rejected.
func UnpackInstruction(data []byte) (Msg, error) {
	if len(data) != InstructionLen {
		return nil, errors.Wrapf(errors.ErrInvalidInstruction, "want %d bytes, got %d", InstructionLen, len(data))
	}
	amount := binary.LittleEndian.Uint64(data[2:])

	var msg Msg
	switch data[0] {
	case TagInitEscrow:
		msg = InitEscrowMsg{Role: Role(data[1]), Amount: amount}
	case TagWithdrawEscrow:
		msg = WithdrawEscrowMsg{Result: Result(data[1]), Amount: amount}
	default:
		return nil, errors.Wrapf(errors.ErrInvalidInstruction, "unknown tag %d", data[0])
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return msg, nil
}
