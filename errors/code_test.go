package errors

import (
	"fmt"
	"testing"
)

func TestCode(t *testing.T) {
	cases := map[string]struct {
		err      error
		wantCode uint32
	}{
		"nil error": {
			err:      nil,
			wantCode: SuccessCode,
		},
		"root error": {
			err:      ErrUninitializedAccount,
			wantCode: 8,
		},
		"wrapped error": {
			err:      Wrap(Wrap(ErrInsufficientFunds, "transfer"), "deposit"),
			wantCode: 9,
		},
		"stdlib error": {
			err:      fmt.Errorf("stdlib"),
			wantCode: internalCode,
		},
		"wrapped stdlib error": {
			err:      Wrap(fmt.Errorf("stdlib"), "wrapped"),
			wantCode: internalCode,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := Code(tc.err); got != tc.wantCode {
				t.Fatalf("want %d, got %d", tc.wantCode, got)
			}
		})
	}
}

func TestInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"nil": {
			err:      nil,
			wantCode: SuccessCode,
			wantLog:  "",
		},
		"registered error is exposed": {
			err:      Wrap(ErrNotEnoughAccountKeys, "withdraw"),
			wantCode: 5,
			wantLog:  "withdraw: not enough account keys",
		},
		"internal error is redacted": {
			err:      fmt.Errorf("disk full"),
			wantCode: internalCode,
			wantLog:  internalLog,
		},
		"panic is redacted": {
			err:      Wrap(ErrPanic, "index out of range"),
			wantCode: ErrPanic.Code(),
			wantLog:  internalLog,
		},
		"debug exposes internal error": {
			err:      fmt.Errorf("disk full"),
			debug:    true,
			wantCode: internalCode,
			wantLog:  "disk full",
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := Info(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want code %d, got %d", tc.wantCode, code)
			}
			if log != tc.wantLog {
				t.Errorf("want log %q, got %q", tc.wantLog, log)
			}
		})
	}
}
