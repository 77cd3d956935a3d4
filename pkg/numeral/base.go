package numeral

import (
	"errors"
	"math/big"

	"github.com/leapstack-labs/ratbase/pkg/rational"
)

// Base is a rational numeral base num/den with num >= den > 0.
//
// The pair is kept exactly as given. 4/2 is not reduced to 2, so it allows
// the digits 0..3 and encodes differently from base 2, and only a pair
// with num == den is unary (2/2 is unary, 4/2 is not).
type Base struct {
	num *big.Int
	den *big.Int
}

// NewBase validates num/den and returns the base.
func NewBase(num, den *big.Int) (Base, error) {
	if num.Sign() <= 0 || den.Sign() <= 0 {
		return Base{}, &Error{Kind: KindInvalidBase, Input: num.String() + "/" + den.String(), Pos: -1, Msg: "numerator and denominator must be positive"}
	}
	if num.Cmp(den) < 0 {
		return Base{}, &Error{Kind: KindInvalidBase, Input: num.String() + "/" + den.String(), Pos: -1, Msg: "bases below 1 are not supported"}
	}
	return Base{num: new(big.Int).Set(num), den: new(big.Int).Set(den)}, nil
}

// MustBase is like NewBase for int64 literals and panics on error.
func MustBase(num, den int64) Base {
	b, err := NewBase(big.NewInt(num), big.NewInt(den))
	if err != nil {
		panic(err)
	}
	return b
}

// ParseBase parses "a" or "a/b". Zero and negative bases are rejected and
// the signs of a valid pair are dropped, so "-3/-2" is the base 3/2.
func ParseBase(s string) (Base, error) {
	num, den, err := rational.ParseFraction(s)
	if err != nil {
		return Base{}, &Error{Kind: KindMalformedRational, Input: s, Pos: -1, Err: err}
	}
	if num.Sign() == 0 || den.Sign() == 0 {
		return Base{}, &Error{Kind: KindInvalidBase, Input: s, Pos: -1, Msg: "base cannot be zero"}
	}
	if num.Sign() != den.Sign() {
		return Base{}, &Error{Kind: KindInvalidBase, Input: s, Pos: -1, Msg: "base cannot be negative"}
	}
	b, err := NewBase(num.Abs(num), den.Abs(den))
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			e.Input = s
		}
		return Base{}, err
	}
	return b, nil
}

// Num returns a copy of the numerator. Digits of the base range over [0, Num).
func (b Base) Num() *big.Int { return new(big.Int).Set(b.num) }

// Den returns a copy of the denominator.
func (b Base) Den() *big.Int { return new(big.Int).Set(b.den) }

// IsUnary reports whether the pair as written has num == den.
func (b Base) IsUnary() bool { return b.num.Cmp(b.den) == 0 }

// Rat returns the value of the base as a reduced Rational.
func (b Base) Rat() rational.Rational {
	r, _ := rational.New(b.num, b.den)
	return r
}

// String returns the base as written, "n" when den is 1.
func (b Base) String() string {
	if b.num == nil {
		return "<nil>"
	}
	if b.den.Cmp(big.NewInt(1)) == 0 {
		return b.num.String()
	}
	return b.num.String() + "/" + b.den.String()
}

// digits returns how many alphabet characters the base needs.
func (b Base) digits() int {
	if b.IsUnary() {
		return 2
	}
	if !b.num.IsInt64() {
		return int(^uint(0) >> 1)
	}
	return int(b.num.Int64())
}
