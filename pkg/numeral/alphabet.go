package numeral

import "fmt"

// DefaultAlphabet is used when no alphabet is supplied.
const DefaultAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Alphabet maps nits (digit characters) to digit values and back.
// The character at index 0 is the zero nit, the one at index 1 the unit nit.
type Alphabet struct {
	chars  []rune
	values map[rune]int
}

// NewAlphabet builds an alphabet from the characters of s. Every character
// must occur once.
func NewAlphabet(s string) (Alphabet, error) {
	chars := []rune(s)
	values := make(map[rune]int, len(chars))
	for i, c := range chars {
		if j, dup := values[c]; dup {
			return Alphabet{}, &Error{
				Kind:  KindDuplicateDigit,
				Input: s,
				Char:  c,
				Pos:   i,
				Msg:   fmt.Sprintf("already used for digit %d", j),
			}
		}
		values[c] = i
	}
	return Alphabet{chars: chars, values: values}, nil
}

// MustAlphabet is like NewAlphabet but panics on error.
func MustAlphabet(s string) Alphabet {
	a, err := NewAlphabet(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Len returns the number of characters.
func (a Alphabet) Len() int { return len(a.chars) }

// ValueOf returns the digit value of c.
func (a Alphabet) ValueOf(c rune) (int, bool) {
	v, ok := a.values[c]
	return v, ok
}

// CharOf returns the character for digit value v.
func (a Alphabet) CharOf(v int) (rune, bool) {
	if v < 0 || v >= len(a.chars) {
		return 0, false
	}
	return a.chars[v], true
}

// Zero returns the nit with value 0.
func (a Alphabet) Zero() rune { return a.chars[0] }

// Unit returns the nit with value 1, the repeated character of unary numerals.
func (a Alphabet) Unit() rune { return a.chars[1] }

// Prefix returns the characters usable as digits of b.
func (a Alphabet) Prefix(b Base) string {
	if b.IsUnary() {
		if len(a.chars) < 2 {
			return ""
		}
		return string(a.chars[1])
	}
	n := b.digits()
	if n > len(a.chars) {
		n = len(a.chars)
	}
	return string(a.chars[:n])
}

// Covers reports whether a has a character for every digit of b.
func (a Alphabet) Covers(b Base) bool {
	return len(a.chars) >= b.digits()
}

func (a Alphabet) String() string { return string(a.chars) }
