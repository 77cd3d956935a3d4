package numeral

import (
	"fmt"
	"math/big"

	"github.com/leapstack-labs/ratbase/pkg/rational"
)

// Part names reported in trace steps.
const (
	PartNumerator   = "numerator"
	PartDenominator = "denominator"
)

// DecodeStep describes one Horner step: after reading Nit (value Value) at
// rune offset Pos of Part, the running total is Acc. Part is empty for
// direct Decode calls.
type DecodeStep struct {
	Part  string
	Pos   int
	Nit   rune
	Value int
	Acc   rational.Rational
}

// DecodeOption configures a Decoder.
type DecodeOption func(*Decoder)

// WithDecodeTrace calls fn after every nit read.
func WithDecodeTrace(fn func(DecodeStep)) DecodeOption {
	return func(d *Decoder) { d.trace = fn }
}

// Decoder turns nit strings written in a base into exact values.
type Decoder struct {
	base  Base
	rat   rational.Rational
	alpha Alphabet
	trace func(DecodeStep)
}

// NewDecoder returns a decoder for base b over alphabet a.
func NewDecoder(b Base, a Alphabet, opts ...DecodeOption) *Decoder {
	d := &Decoder{base: b, rat: b.Rat(), alpha: a}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode evaluates digits most significant first. The empty string is 0.
//
// In a unary base only the unit nit is accepted and the value is the
// number of nits. Otherwise acc = acc*base + nit for each nit, with the
// accumulator kept as an exact fraction since the base need not be integral.
func (d *Decoder) Decode(digits string) (rational.Rational, error) {
	return d.decode(digits, "")
}

func (d *Decoder) decode(digits, part string) (rational.Rational, error) {
	if d.base.IsUnary() {
		return d.decodeUnary(digits, part)
	}

	var acc rational.Rational
	pos := 0
	for _, c := range digits {
		v, ok := d.alpha.ValueOf(c)
		if !ok {
			return rational.Rational{}, digitError(digits, pos, c, "not in alphabet")
		}
		if big.NewInt(int64(v)).Cmp(d.base.num) >= 0 {
			return rational.Rational{}, digitError(digits, pos, c, fmt.Sprintf("digit %d is out of range for base %s", v, d.base))
		}
		acc = acc.Mul(d.rat).Add(rational.FromInt64(int64(v)))
		if d.trace != nil {
			d.trace(DecodeStep{Part: part, Pos: pos, Nit: c, Value: v, Acc: acc})
		}
		pos++
	}
	return acc, nil
}

func (d *Decoder) decodeUnary(digits, part string) (rational.Rational, error) {
	if d.alpha.Len() < 2 {
		return rational.Rational{}, &Error{Kind: KindInvalidBase, Input: d.base.String(), Pos: -1, Err: errNoUnitNit}
	}
	unit := d.alpha.Unit()
	var k int64
	for _, c := range digits {
		if c != unit {
			return rational.Rational{}, digitError(digits, int(k), c, fmt.Sprintf("unary numerals may only contain %q", unit))
		}
		k++
		if d.trace != nil {
			d.trace(DecodeStep{Part: part, Pos: int(k) - 1, Nit: c, Value: 1, Acc: rational.FromInt64(k)})
		}
	}
	return rational.FromInt64(k), nil
}

// DecodeParts returns the value of p.Num divided by the value of p.Den.
// A divisor worth zero yields KindDivisionByZero.
func (d *Decoder) DecodeParts(p Parts) (rational.Rational, error) {
	num, err := d.decode(p.Num, PartNumerator)
	if err != nil {
		return rational.Rational{}, err
	}
	den, err := d.decode(p.Den, PartDenominator)
	if err != nil {
		return rational.Rational{}, err
	}
	if den.Sign() == 0 {
		return rational.Rational{}, &Error{Kind: KindDivisionByZero, Input: p.String(), Pos: -1, Msg: "denominator is zero"}
	}
	inv, err := den.Inv()
	if err != nil {
		return rational.Rational{}, &Error{Kind: KindDivisionByZero, Input: p.String(), Pos: -1, Err: err}
	}
	return num.Mul(inv), nil
}
