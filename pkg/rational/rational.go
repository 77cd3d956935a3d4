// Package rational provides an exact, immutable fraction type over math/big.
//
// Every Rational is kept in canonical form: the denominator is strictly
// positive and shares no factor with the numerator. Zero is always 0/1.
// Operations never modify their receivers or arguments.
package rational

import (
	"errors"
	"math/big"
)

var (
	// ErrZeroDenominator is returned when a fraction is built with a zero denominator.
	ErrZeroDenominator = errors.New("zero denominator")

	// ErrDivisionByZero is returned when inverting or dividing by zero.
	ErrDivisionByZero = errors.New("division by zero")
)

// Rational is an exact fraction num/den in lowest terms.
// The zero value is 0/1 and is ready to use.
type Rational struct {
	num *big.Int // nil means 0
	den *big.Int // nil means 1
}

var bigOne = big.NewInt(1)

// New returns num/den reduced to canonical form.
func New(num, den *big.Int) (Rational, error) {
	if den.Sign() == 0 {
		return Rational{}, ErrZeroDenominator
	}
	return reduce(new(big.Int).Set(num), new(big.Int).Set(den)), nil
}

// FromInt returns the integer n as n/1.
func FromInt(n *big.Int) Rational {
	if n.Sign() == 0 {
		return Rational{}
	}
	return Rational{num: new(big.Int).Set(n), den: bigOne}
}

// FromInt64 returns the integer n as n/1.
func FromInt64(n int64) Rational {
	if n == 0 {
		return Rational{}
	}
	return Rational{num: big.NewInt(n), den: bigOne}
}

// reduce takes ownership of n and d. The sign is moved onto the numerator
// before dividing by the gcd so the exact quotient never depends on the
// rounding direction of integer division.
func reduce(n, d *big.Int) Rational {
	if n.Sign() == 0 {
		return Rational{}
	}
	if d.Sign() < 0 {
		n.Neg(n)
		d.Neg(d)
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(n), d)
	if g.Cmp(bigOne) != 0 {
		n.Quo(n, g)
		d.Quo(d, g)
	}
	return Rational{num: n, den: d}
}

func (x Rational) n() *big.Int {
	if x.num == nil {
		return new(big.Int)
	}
	return x.num
}

func (x Rational) d() *big.Int {
	if x.den == nil {
		return bigOne
	}
	return x.den
}

// Num returns a copy of the numerator.
func (x Rational) Num() *big.Int { return new(big.Int).Set(x.n()) }

// Den returns a copy of the denominator. It is always positive.
func (x Rational) Den() *big.Int { return new(big.Int).Set(x.d()) }

// Sign returns -1, 0 or +1 depending on the sign of x.
func (x Rational) Sign() int { return x.n().Sign() }

// IsInt reports whether the denominator is 1.
func (x Rational) IsInt() bool { return x.d().Cmp(bigOne) == 0 }

// Add returns x + y.
func (x Rational) Add(y Rational) Rational {
	n := new(big.Int).Mul(x.n(), y.d())
	n.Add(n, new(big.Int).Mul(y.n(), x.d()))
	return reduce(n, new(big.Int).Mul(x.d(), y.d()))
}

// Neg returns -x.
func (x Rational) Neg() Rational {
	if x.Sign() == 0 {
		return Rational{}
	}
	return Rational{num: new(big.Int).Neg(x.n()), den: x.d()}
}

// Mul returns x * y.
func (x Rational) Mul(y Rational) Rational {
	return reduce(new(big.Int).Mul(x.n(), y.n()), new(big.Int).Mul(x.d(), y.d()))
}

// Inv returns 1/x. Inverting zero returns ErrDivisionByZero.
func (x Rational) Inv() (Rational, error) {
	if x.Sign() == 0 {
		return Rational{}, ErrDivisionByZero
	}
	return reduce(new(big.Int).Set(x.d()), new(big.Int).Set(x.n())), nil
}

// Quo returns x / y. Dividing by zero returns ErrDivisionByZero.
func (x Rational) Quo(y Rational) (Rational, error) {
	inv, err := y.Inv()
	if err != nil {
		return Rational{}, err
	}
	return x.Mul(inv), nil
}

// Cmp compares x and y and returns -1, 0 or +1.
func (x Rational) Cmp(y Rational) int {
	l := new(big.Int).Mul(x.n(), y.d())
	r := new(big.Int).Mul(y.n(), x.d())
	return l.Cmp(r)
}

// Equal reports whether x and y have the same value.
func (x Rational) Equal(y Rational) bool {
	return x.n().Cmp(y.n()) == 0 && x.d().Cmp(y.d()) == 0
}

// String returns "n" for integers and "n/d" otherwise.
func (x Rational) String() string {
	if x.IsInt() {
		return x.n().String()
	}
	return x.n().String() + "/" + x.d().String()
}
