package errors

import (
	"reflect"
)

const (
	// SuccessCode is reported for a nil error.
	SuccessCode uint32 = 0

	// All errors that do not wrap a registered root error are clubbed
	// under an internal error code.
	internalCode uint32 = 1
	internalLog         = "internal error"
)

// Code returns the code of the root error wrapped by err. Errors that do
// not wrap a registered root error are reported as internal, with code 1.
func Code(err error) uint32 {
	if errIsNil(err) {
		return SuccessCode
	}

	for {
		if c, ok := err.(coder); ok {
			return c.Code()
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return internalCode
		}
	}
}

// Info returns the code and a message safe to expose to a transaction
// submitter. Messages of internal errors are hidden unless debug is set.
func Info(err error, debug bool) (uint32, string) {
	code := Code(err)
	switch {
	case code == SuccessCode:
		return code, ""
	case debug:
		return code, err.Error()
	case code == internalCode || ErrPanic.Is(err):
		return code, internalLog
	default:
		return code, err.Error()
	}
}

type coder interface {
	Code() uint32
}

// errIsNil returns true if value represented by the given error is nil.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	if val := reflect.ValueOf(err); val.Kind() == reflect.Ptr {
		return val.IsNil()
	}
	return false
}
