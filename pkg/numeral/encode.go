package numeral

import (
	"math/big"
	"strings"
)

// EncodeStep describes one digit extraction of Part: Value was split into
// the nit Nit (digit Digit) and the Remaining value still to be encoded.
type EncodeStep struct {
	Part      string
	Value     *big.Int
	Digit     int
	Nit       rune
	Remaining *big.Int
}

// EncodeOption configures an Encoder.
type EncodeOption func(*Encoder)

// WithEncodeTrace calls fn after every nit produced.
func WithEncodeTrace(fn func(EncodeStep)) EncodeOption {
	return func(e *Encoder) { e.trace = fn }
}

// Encoder writes non-negative integers as nit strings in a base.
type Encoder struct {
	base  Base
	alpha Alphabet
	trace func(EncodeStep)
}

// NewEncoder returns an encoder for base b over alphabet a.
func NewEncoder(b Base, a Alphabet, opts ...EncodeOption) *Encoder {
	e := &Encoder{base: b, alpha: a}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode returns the nits of v. Zero is the empty string.
//
// For a base n/d the low nit is v mod n and the rest of the number is
// (v div n)*d. With n > d the remainder strictly decreases, so the loop
// ends after about log(v)/log(n/d) steps. When n and d share a factor the
// representation is not unique; this one has the most low-order nits.
func (e *Encoder) Encode(v *big.Int) (string, error) {
	return e.encode(v, "")
}

func (e *Encoder) encode(v *big.Int, part string) (string, error) {
	if v.Sign() < 0 {
		return "", ErrNegativeValue
	}
	if e.base.IsUnary() {
		return e.encodeUnary(v, part)
	}

	var (
		nits  []rune
		value = new(big.Int).Set(v)
		digit = new(big.Int)
	)
	for value.Sign() > 0 {
		step := EncodeStep{Part: part, Value: new(big.Int).Set(value)}
		value.QuoRem(value, e.base.num, digit)
		value.Mul(value, e.base.den)

		c, ok := e.alpha.CharOf(int(digit.Int64()))
		if !ok {
			return "", &Error{Kind: KindInvalidBase, Input: e.base.String(), Pos: -1, Err: errAlphabetTooShort}
		}
		nits = append(nits, c)
		if e.trace != nil {
			step.Digit = int(digit.Int64())
			step.Nit = c
			step.Remaining = new(big.Int).Set(value)
			e.trace(step)
		}
	}

	for i, j := 0, len(nits)-1; i < j; i, j = i+1, j-1 {
		nits[i], nits[j] = nits[j], nits[i]
	}
	return string(nits), nil
}

func (e *Encoder) encodeUnary(v *big.Int, part string) (string, error) {
	if e.alpha.Len() < 2 {
		return "", &Error{Kind: KindInvalidBase, Input: e.base.String(), Pos: -1, Err: errNoUnitNit}
	}
	if !v.IsInt64() {
		return "", &Error{Kind: KindInvalidBase, Input: e.base.String(), Pos: -1, Msg: "value too large for a unary numeral: " + v.String()}
	}
	unit := string(e.alpha.Unit())
	if e.trace != nil && v.Sign() > 0 {
		e.trace(EncodeStep{Part: part, Value: new(big.Int).Set(v), Digit: 1, Nit: e.alpha.Unit(), Remaining: new(big.Int)})
	}
	return strings.Repeat(unit, int(v.Int64())), nil
}
