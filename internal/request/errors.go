package request

import (
	"errors"
	"fmt"
)

// Kind identifies why a conversion request was rejected.
type Kind int

// Request error kinds. Each maps to a fixed process exit code.
const (
	KindExtraNumber Kind = iota + 1
	KindUnknownOption
	KindDuplicateInputBase
	KindDuplicateOutputBase
	KindDuplicateAlphabet
	KindInvalidInputBase
	KindInvalidOutputBase
	KindInvalidDigits
	KindInsufficientAlphabet
	KindNonPositiveBase
	KindIllegalAlphabet
	KindMultipleSeparators
	KindConfig
	KindZeroDenominator
	KindMissingNumber
	KindSubunitBase
)

var kindInfo = map[Kind]struct {
	name string
	code int
}{
	KindExtraNumber:          {"extra number", 1},
	KindUnknownOption:        {"unknown option", 2},
	KindDuplicateInputBase:   {"duplicate input base", 3},
	KindDuplicateOutputBase:  {"duplicate output base", 4},
	KindDuplicateAlphabet:    {"duplicate alphabet", 5},
	KindInvalidInputBase:     {"invalid input base", 6},
	KindInvalidOutputBase:    {"invalid output base", 7},
	KindInvalidDigits:        {"invalid digits", 8},
	KindInsufficientAlphabet: {"insufficient alphabet", 9},
	KindNonPositiveBase:      {"non-positive base", 10},
	KindIllegalAlphabet:      {"illegal alphabet", 11},
	KindMultipleSeparators:   {"multiple separators", 12},
	KindConfig:               {"configuration", 13},
	KindZeroDenominator:      {"zero denominator", 14},
	KindMissingNumber:        {"missing number", 99},
	KindSubunitBase:          {"sub-unit base", 255},
}

func (k Kind) String() string {
	if info, ok := kindInfo[k]; ok {
		return info.name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ExitCode returns the process exit code for k, 1 for unknown kinds.
func (k Kind) ExitCode() int {
	if info, ok := kindInfo[k]; ok {
		return info.code
	}
	return 1
}

// Error is a rejected request.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

// Errorf returns an *Error of the given kind with a formatted message.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// ExitCode maps err to a process exit code: 0 for nil, the kind's code for
// a request *Error anywhere in the chain and 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind.ExitCode()
	}
	return 1
}
