package numeral

import (
	"errors"
	"fmt"
)

// Kind classifies conversion errors.
type Kind int

// Error kinds.
const (
	KindInvalidDigit Kind = iota + 1
	KindDivisionByZero
	KindMalformedRational
	KindMalformedNumeral
	KindInvalidBase
	KindDuplicateDigit
)

func (k Kind) String() string {
	switch k {
	case KindInvalidDigit:
		return "invalid digit"
	case KindDivisionByZero:
		return "division by zero"
	case KindMalformedRational:
		return "malformed rational"
	case KindMalformedNumeral:
		return "malformed numeral"
	case KindInvalidBase:
		return "invalid base"
	case KindDuplicateDigit:
		return "duplicate digit"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is returned by every fallible operation in this package.
// Pos is the rune offset of the offending character, or -1.
type Error struct {
	Kind  Kind
	Input string
	Char  rune
	Pos   int
	Msg   string
	Err   error
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrInvalidDigit      = &Error{Kind: KindInvalidDigit, Pos: -1}
	ErrDivisionByZero    = &Error{Kind: KindDivisionByZero, Pos: -1}
	ErrMalformedRational = &Error{Kind: KindMalformedRational, Pos: -1}
	ErrMalformedNumeral  = &Error{Kind: KindMalformedNumeral, Pos: -1}
	ErrInvalidBase       = &Error{Kind: KindInvalidBase, Pos: -1}
	ErrDuplicateDigit    = &Error{Kind: KindDuplicateDigit, Pos: -1}
	ErrNegativeValue     = errors.New("cannot encode a negative value")
	errAlphabetTooShort  = errors.New("alphabet has no character for every digit")
	errNoUnitNit         = errors.New("alphabet needs at least two characters")
)

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	switch {
	case e.Pos >= 0:
		msg = fmt.Sprintf("%s: %q at position %d in %q", msg, e.Char, e.Pos, e.Input)
	case e.Input != "":
		msg = fmt.Sprintf("%s: %q", msg, e.Input)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func digitError(input string, pos int, c rune, msg string) *Error {
	return &Error{Kind: KindInvalidDigit, Input: input, Char: c, Pos: pos, Msg: msg}
}
