package rational

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrMalformed is wrapped by every SyntaxError.
var ErrMalformed = errors.New("malformed rational")

// SyntaxError reports a string that is not an integer or an integer/integer pair.
type SyntaxError struct {
	Input string
	Msg   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid rational number %q: %s", e.Input, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return ErrMalformed }

// ParseFraction parses "a" or "a/b" in decimal and returns the two integers
// exactly as written. The denominator defaults to 1. No reduction or sign
// normalization is applied, and a zero denominator is not rejected here.
func ParseFraction(s string) (num, den *big.Int, err error) {
	parts := strings.Split(s, "/")
	if len(parts) > 2 {
		return nil, nil, &SyntaxError{Input: s, Msg: "more than one fraction bar"}
	}
	if len(parts) == 1 {
		parts = append(parts, "1")
	}
	num, ok := parseInt(parts[0])
	if !ok {
		return nil, nil, &SyntaxError{Input: s, Msg: fmt.Sprintf("%q is not an integer", parts[0])}
	}
	den, ok = parseInt(parts[1])
	if !ok {
		return nil, nil, &SyntaxError{Input: s, Msg: fmt.Sprintf("%q is not an integer", parts[1])}
	}
	return num, den, nil
}

// Parse parses "a" or "a/b" and returns the reduced value.
func Parse(s string) (Rational, error) {
	num, den, err := ParseFraction(s)
	if err != nil {
		return Rational{}, err
	}
	r, err := New(num, den)
	if err != nil {
		return Rational{}, fmt.Errorf("%s: %w", s, err)
	}
	return r, nil
}

func parseInt(s string) (*big.Int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	return new(big.Int).SetString(s, 10)
}
