package numeral

import "strings"

// Separators recognised inside a numeral.
const (
	RadixPoint  = '.'
	FractionBar = '/'
)

// Parts is a numeral split into the nits of its dividend and divisor, both
// written in the input base.
type Parts struct {
	Num string
	Den string
}

// Split decomposes a numeral written with a radix point ("AB.CD"), a
// fraction bar ("AB/CD") or neither ("AB").
//
// An integer gets the unit nit as divisor. A radix point is removed and
// the divisor becomes the unit nit followed by one zero nit per fractional
// nit, so decoding the divisor yields base^k.
func Split(numeral string, a Alphabet) (Parts, error) {
	if n := strings.Count(numeral, string(RadixPoint)) + strings.Count(numeral, string(FractionBar)); n > 1 {
		return Parts{}, &Error{
			Kind:  KindMalformedNumeral,
			Input: numeral,
			Pos:   -1,
			Msg:   "only one radix point or one fraction bar is allowed",
		}
	}
	if a.Len() < 2 {
		return Parts{}, &Error{Kind: KindInvalidBase, Input: a.String(), Pos: -1, Err: errNoUnitNit}
	}

	if i := strings.IndexRune(numeral, RadixPoint); i >= 0 {
		places := len([]rune(numeral[i+1:]))
		return Parts{
			Num: numeral[:i] + numeral[i+1:],
			Den: string(a.Unit()) + strings.Repeat(string(a.Zero()), places),
		}, nil
	}
	if i := strings.IndexRune(numeral, FractionBar); i >= 0 {
		return Parts{Num: numeral[:i], Den: numeral[i+1:]}, nil
	}
	return Parts{Num: numeral, Den: string(a.Unit())}, nil
}

// String joins the parts with a fraction bar.
func (p Parts) String() string {
	return p.Num + string(FractionBar) + p.Den
}
