package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidArgument is returned when an argument passed to a program
	// or the runtime is not acceptable, ie. a wrong well known account.
	ErrInvalidArgument = Register(2, "invalid argument")

	// ErrInvalidInstruction is returned when the instruction data cannot
	// be decoded into any known instruction.
	ErrInvalidInstruction = Register(3, "invalid instruction data")

	// ErrInvalidAccountData is returned when the data or the identity of a
	// supplied account does not match what the program expects.
	ErrInvalidAccountData = Register(4, "invalid account data")

	// ErrNotEnoughAccountKeys is returned when an instruction did not
	// supply all the accounts a program requires.
	ErrNotEnoughAccountKeys = Register(5, "not enough account keys")

	// ErrMissingSignature is returned when an account that must authorize
	// the instruction did not sign the transaction.
	ErrMissingSignature = Register(6, "missing required signature")

	// ErrAlreadyInitialized is returned when a one-time initialization is
	// attempted on state that was already initialized.
	ErrAlreadyInitialized = Register(7, "account already initialized")

	// ErrUninitializedAccount is returned when a strict load finds state
	// that was never initialized.
	ErrUninitializedAccount = Register(8, "uninitialized account")

	// ErrInsufficientFunds is returned when an account balance cannot
	// cover a debit.
	ErrInsufficientFunds = Register(9, "insufficient funds")

	// ErrIllegalOwner is returned when a program modifies an account it
	// does not own.
	ErrIllegalOwner = Register(10, "illegal owner")

	// ErrUnbalancedTransaction is returned when an instruction created or
	// destroyed native currency units.
	ErrUnbalancedTransaction = Register(11, "sum of account balances changed")

	// ErrUnknownProgram is returned when an instruction is addressed to a
	// program that is not registered.
	ErrUnknownProgram = Register(12, "unknown program")

	// ErrInvalidSignature is returned when a transaction signature does
	// not verify.
	ErrInvalidSignature = Register(13, "invalid signature")

	// ErrNotFound is returned when requested data does not exist.
	ErrNotFound = Register(14, "not found")

	// ErrDatabase is returned when the underlying store fails.
	ErrDatabase = Register(15, "database")

	// ErrOverflow is returned when a computation cannot be completed
	// because the result value exceeds the type.
	ErrOverflow = Register(16, "an operation cannot be completed due to value overflow")

	// ErrReadonlyAccount is returned when a program changed an account the
	// instruction did not mark as writable.
	ErrReadonlyAccount = Register(17, "readonly account modified")

	// ErrDuplicate is returned when a transaction was already executed.
	ErrDuplicate = Register(18, "duplicate transaction")

	// ErrPanic is only set when we recover from a panic, so we know to
	// redact potentially sensitive system info.
	ErrPanic = Register(111222, "panic")
)

// Register returns an error instance that should be used as the base for
// creating error instances during runtime.
//
// Popular root errors are declared in this package, but programs may want to
// declare custom codes. This function ensures that no error code is used
// twice. Attempt to reuse an error code results in panic.
//
// Use this function only during a program startup phase.
func Register(code uint32, description string) *Error {
	if e, ok := usedCodes[code]; ok {
		panic(fmt.Sprintf("error with code %d is already registered: %q", code, e.desc))
	}
	err := &Error{
		code: code,
		desc: description,
	}
	usedCodes[err.code] = err
	return err
}

// usedCodes is keeping track of used codes to ensure their uniqueness.
var usedCodes = map[uint32]*Error{
	// Code 1 is reserved for errors that are not registered.
	1: nil,
}

// Error represents a root error.
//
// Each instance created during the runtime should wrap one of the declared
// root errors. This allows error tests and reporting all errors to the caller
// in a safe manner.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

// Code returns the numeric code this error was registered with.
func (e Error) Code() uint32 {
	return e.code
}

// New returns a new error. Returned instance is having the root cause set to
// this error. Below two lines are equal
//   e.New("my description")
//   Wrap(e, "my description")
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is basically New with formatting capabilities.
func (e *Error) Newf(description string, args ...interface{}) error {
	return e.New(fmt.Sprintf(description, args...))
}

// Is check if given error instance is of a given kind. This involves
// unwrapping given error using the Cause method if available.
func (kind *Error) Is(err error) bool {
	// Reflect usage is necessary to correctly compare with
	// a nil implementation of an error.
	if kind == nil {
		if err == nil {
			return true
		}
		return reflect.ValueOf(err).IsNil()
	}

	for {
		if err == kind {
			return true
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return false
		}
	}
}

// Wrap extends given error with an additional information.
//
// If err is nil, this returns nil, avoiding the need for an if statement when
// wrapping a error returned at the end of a function.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}

	// Attach a stacktrace only once, at the most inner wrap.
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}

	return &wrappedError{
		parent: err,
		msg:    description,
	}
}

// Wrapf extends given error with an additional information.
//
// This function works like Wrap function with additional funtionality of
// formatting the input as specified.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	// This error layer description.
	msg string
	// The underlying error that triggered this one.
	parent error
}

func (e *wrappedError) Error() string {
	return fmt.Sprintf("%s: %s", e.msg, e.parent.Error())
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Unwrap allows the standard library errors package to see through the
// wrapping.
func (e *wrappedError) Unwrap() error {
	return e.parent
}

// Format prints the full stack trace with %+v and only the message
// otherwise.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s", e.Error())
		if st := stackTrace(e); st != nil {
			fmt.Fprintf(s, "%+v", st)
		}
		return
	}
	fmt.Fprint(s, e.Error())
}

// Recover captures a panic and stop its propagation. If panic happens it is
// transformed into a ErrPanic instance and assigned to given error. Call this
// function using defer in order to work as expected.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// causer is an interface implemented by an error that supports wrapping. Use
// it to test if an error wraps another error instance.
type causer interface {
	Cause() error
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the first stack trace found in the error chain.
func stackTrace(err error) errors.StackTrace {
	for {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			return nil
		}
		err = c.Cause()
	}
}
