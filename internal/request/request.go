// Package request validates raw command-line arguments into an immutable
// conversion request.
//
// Validation happens once, in a fixed order, so that the first problem
// found decides the exit code. A Request that was built successfully can
// only fail to convert when its number has a zero denominator.
package request

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/leapstack-labs/ratbase/pkg/numeral"
	"github.com/leapstack-labs/ratbase/pkg/rational"
	"golang.org/x/text/unicode/norm"
)

// DefaultBase is the input and output base used when none is given.
const DefaultBase = "10"

// Args holds the raw, unvalidated arguments of a conversion.
type Args struct {
	Number     string
	InputBase  string
	OutputBase string
	Alphabet   string
}

// Request is a validated conversion. It is passed by value and never
// modified after Build returns it.
type Request struct {
	Number   string
	Parts    numeral.Parts
	In       numeral.Base
	Out      numeral.Base
	Alphabet numeral.Alphabet
}

// Build validates args and returns the request.
func Build(args Args) (Request, error) {
	number := norm.NFC.String(args.Number)
	alphabet := norm.NFC.String(args.Alphabet)

	inN, inD, err := rational.ParseFraction(args.InputBase)
	if err != nil {
		return Request{}, &Error{Kind: KindInvalidInputBase, Msg: "invalid rational number " + args.InputBase, Err: err}
	}
	outN, outD, err := rational.ParseFraction(args.OutputBase)
	if err != nil {
		return Request{}, &Error{Kind: KindInvalidOutputBase, Msg: "invalid rational number " + args.OutputBase, Err: err}
	}

	switch {
	case inD.Sign() == 0 || outD.Sign() == 0:
		return Request{}, Errorf(KindNonPositiveBase, "bases have division by zero")
	case inN.Sign() == 0 || outN.Sign() == 0:
		return Request{}, Errorf(KindNonPositiveBase, "bases cannot be zero")
	case inN.Sign() != inD.Sign() || outN.Sign() != outD.Sign():
		return Request{}, Errorf(KindNonPositiveBase, "bases cannot be negative")
	}
	inN, inD = inN.Abs(inN), inD.Abs(inD)
	outN, outD = outN.Abs(outN), outD.Abs(outD)

	if inN.Cmp(inD) < 0 || outN.Cmp(outD) < 0 {
		return Request{}, Errorf(KindSubunitBase, "bases less than 1 are not supported")
	}
	in, err := numeral.NewBase(inN, inD)
	if err != nil {
		return Request{}, &Error{Kind: KindSubunitBase, Err: err}
	}
	out, err := numeral.NewBase(outN, outD)
	if err != nil {
		return Request{}, &Error{Kind: KindSubunitBase, Err: err}
	}

	a, err := checkAlphabet(alphabet, in, out)
	if err != nil {
		return Request{}, err
	}
	if err := checkNumber(number, in, a); err != nil {
		return Request{}, err
	}

	parts, err := numeral.Split(number, a)
	if err != nil {
		if errors.Is(err, numeral.ErrMalformedNumeral) {
			return Request{}, &Error{Kind: KindMultipleSeparators, Msg: "number can only have one radix point or one fraction bar", Err: err}
		}
		return Request{}, err
	}

	return Request{
		Number:   number,
		Parts:    parts,
		In:       in,
		Out:      out,
		Alphabet: a,
	}, nil
}

func checkAlphabet(s string, in, out numeral.Base) (numeral.Alphabet, error) {
	if strings.ContainsRune(s, numeral.RadixPoint) {
		return numeral.Alphabet{}, Errorf(KindIllegalAlphabet, "cannot include '.' (radix point) character in alphabet")
	}
	if strings.ContainsRune(s, numeral.FractionBar) {
		return numeral.Alphabet{}, Errorf(KindIllegalAlphabet, "cannot include '/' (fraction bar) character in alphabet")
	}
	a, err := numeral.NewAlphabet(s)
	if err != nil {
		return numeral.Alphabet{}, &Error{Kind: KindIllegalAlphabet, Msg: "alphabet characters must be distinct", Err: err}
	}

	need := in.Num()
	if out.Num().Cmp(need) > 0 {
		need = out.Num()
	}
	if need.Cmp(big.NewInt(int64(a.Len()))) > 0 {
		return numeral.Alphabet{}, Errorf(KindInsufficientAlphabet, "insufficient alphabet for base numerator %s (alphabet %q)", need, s)
	}
	if (in.IsUnary() || out.IsUnary()) && a.Len() < 2 {
		return numeral.Alphabet{}, Errorf(KindInsufficientAlphabet, "insufficient alphabet for unary base")
	}
	return a, nil
}

func checkNumber(number string, in numeral.Base, a numeral.Alphabet) error {
	if in.IsUnary() {
		unit := a.Unit()
		for _, c := range number {
			if c != unit && c != numeral.FractionBar {
				return Errorf(KindInvalidDigits, "input base is unary but number contains %q; only %q and '/' are allowed", c, unit)
			}
		}
		return nil
	}

	allowed := a.Prefix(in)
	for _, c := range number {
		if c == numeral.RadixPoint || c == numeral.FractionBar {
			continue
		}
		if !strings.ContainsRune(allowed, c) {
			return Errorf(KindInvalidDigits, "number contains %q which is not a digit of base %s (digits %q)", c, in, allowed)
		}
	}
	return nil
}

// Convert runs the conversion. A number whose denominator part is worth
// zero is reported as KindZeroDenominator.
func (r Request) Convert(opts ...numeral.Option) (numeral.Result, error) {
	res, err := numeral.Convert(r.Parts, r.In, r.Out, r.Alphabet, opts...)
	if err != nil {
		if errors.Is(err, numeral.ErrDivisionByZero) {
			return numeral.Result{}, &Error{Kind: KindZeroDenominator, Msg: "number has a denominator of 0", Err: err}
		}
		return numeral.Result{}, fmt.Errorf("convert %q: %w", r.Number, err)
	}
	return res, nil
}
