// Package numeral converts numerals between rational bases.
//
// A numeral is decoded into an exact rational.Rational under the input
// base and each component of the reduced value is then encoded under the
// output base. Nothing in this package performs I/O or logging.
package numeral

import "github.com/leapstack-labs/ratbase/pkg/rational"

// Result is a converted numeral.
type Result struct {
	Value       rational.Rational
	Numerator   string
	Denominator string // empty when Integral
	Integral    bool
}

// String returns the numeral: the numerator, followed by "/" and the
// denominator when the value is not an integer.
func (r Result) String() string {
	if r.Integral {
		return r.Numerator
	}
	return r.Numerator + string(FractionBar) + r.Denominator
}

type options struct {
	decode []DecodeOption
	encode []EncodeOption
}

// Option configures Convert.
type Option func(*options)

// TraceDecoding reports every Horner step of both parts to fn.
func TraceDecoding(fn func(DecodeStep)) Option {
	return func(o *options) { o.decode = append(o.decode, WithDecodeTrace(fn)) }
}

// TraceEncoding reports every digit extraction of both components to fn.
func TraceEncoding(fn func(EncodeStep)) Option {
	return func(o *options) { o.encode = append(o.encode, WithEncodeTrace(fn)) }
}

// Convert rewrites the numeral p from base in to base out.
//
// The value is decoded and reduced, then the numerator and, unless the
// value is an integer, the denominator are encoded separately.
func Convert(p Parts, in, out Base, a Alphabet, opts ...Option) (Result, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	for _, b := range []Base{in, out} {
		if !a.Covers(b) {
			return Result{}, &Error{Kind: KindInvalidBase, Input: b.String(), Pos: -1, Err: errAlphabetTooShort}
		}
	}

	value, err := NewDecoder(in, a, o.decode...).DecodeParts(p)
	if err != nil {
		return Result{}, err
	}
	return encodeValue(value, out, a, o)
}

// EncodeValue writes the non-negative value v in base out.
func EncodeValue(v rational.Rational, out Base, a Alphabet, opts ...Option) (Result, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if !a.Covers(out) {
		return Result{}, &Error{Kind: KindInvalidBase, Input: out.String(), Pos: -1, Err: errAlphabetTooShort}
	}
	return encodeValue(v, out, a, o)
}

func encodeValue(v rational.Rational, out Base, a Alphabet, o options) (Result, error) {
	if v.Sign() < 0 {
		return Result{}, ErrNegativeValue
	}
	res := Result{Value: v, Integral: v.IsInt()}
	enc := NewEncoder(out, a, o.encode...)
	var err error
	if res.Numerator, err = enc.encode(v.Num(), PartNumerator); err != nil {
		return Result{}, err
	}
	if !res.Integral {
		if res.Denominator, err = enc.encode(v.Den(), PartDenominator); err != nil {
			return Result{}, err
		}
	}
	return res, nil
}
