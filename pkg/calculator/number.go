package calculator

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// Number is the value produced by an evaluation. It is either an Integer or a
// Rational; both have unbounded precision.
type Number interface {
	String() string
	MarshalJSON() ([]byte, error)

	// Sign returns -1, 0 or +1.
	Sign() int

	// Rat returns a copy of the value as a rational.
	Rat() *big.Rat

	rat() *big.Rat
}

// Integer is an arbitrary precision integer.
type Integer struct {
	v *big.Int
}

// NewInteger returns an Integer holding a copy of v.
func NewInteger(v *big.Int) Integer {
	return Integer{v: new(big.Int).Set(v)}
}

// Int returns a copy of the underlying value.
func (i Integer) Int() *big.Int {
	return new(big.Int).Set(i.big())
}

func (i Integer) Sign() int {
	return i.big().Sign()
}

func (i Integer) Rat() *big.Rat {
	return new(big.Rat).SetInt(i.big())
}

func (i Integer) rat() *big.Rat {
	return i.Rat()
}

func (i Integer) String() string {
	return i.big().String()
}

func (i Integer) MarshalJSON() ([]byte, error) {
	return []byte(i.big().String()), nil
}

func (i Integer) big() *big.Int {
	if i.v == nil {
		return new(big.Int)
	}
	return i.v
}

// Rational is an arbitrary precision fraction.
type Rational struct {
	v *big.Rat
}

// NewRational returns a Rational holding a copy of v.
func NewRational(v *big.Rat) Rational {
	return Rational{v: new(big.Rat).Set(v)}
}

func (r Rational) Sign() int {
	return r.rat().Sign()
}

func (r Rational) Rat() *big.Rat {
	return new(big.Rat).Set(r.rat())
}

func (r Rational) rat() *big.Rat {
	if r.v == nil {
		return new(big.Rat)
	}
	return r.v
}

func (r Rational) String() string {
	return r.rat().String()
}

// MarshalJSON encodes the fraction as the closest float64 decimal so that JSON
// consumers receive a plain number.
func (r Rational) MarshalJSON() ([]byte, error) {
	f := new(big.Float).SetPrec(53).SetRat(r.rat())
	return []byte(f.Text('g', -1)), nil
}

// Normalize collapses a Rational without fractional remainder into an Integer.
// Any other value is returned unchanged.
func Normalize(n Number) Number {
	r, ok := n.(Rational)
	if !ok || !r.rat().IsInt() {
		return n
	}
	return Integer{v: new(big.Int).Set(r.rat().Num())}
}

// ParseNumber parses the String form of a Number: a decimal integer or a
// fraction "a/b". The result is normalized.
func ParseNumber(s string) (Number, error) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "/") {
		v, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, errors.Errorf("invalid number %q", s)
		}
		return Integer{v: v}, nil
	}

	v, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, errors.Errorf("invalid number %q", s)
	}
	return Normalize(Rational{v: v}), nil
}

var bigTen = big.NewInt(10)

func integers(x, y Number) (*big.Int, *big.Int, bool) {
	a, ok := x.(Integer)
	if !ok {
		return nil, nil, false
	}
	b, ok := y.(Integer)
	if !ok {
		return nil, nil, false
	}
	return a.big(), b.big(), true
}

// foldDigitAt returns n + d*weight. It is used when digits are read from the
// least significant end.
func foldDigitAt(n Number, d int64, weight *big.Int) Number {
	w := new(big.Int).Mul(big.NewInt(d), weight)
	if i, ok := n.(Integer); ok {
		return Integer{v: w.Add(w, i.big())}
	}
	return Rational{v: new(big.Rat).Add(n.rat(), new(big.Rat).SetInt(w))}
}

// appendDigit returns n*10 + d. It is used when digits are read from the most
// significant end.
func appendDigit(n Number, d int64) Number {
	if i, ok := n.(Integer); ok {
		v := new(big.Int).Mul(i.big(), bigTen)
		return Integer{v: v.Add(v, big.NewInt(d))}
	}
	v := new(big.Rat).Mul(n.rat(), new(big.Rat).SetInt(bigTen))
	return Rational{v: v.Add(v, new(big.Rat).SetInt64(d))}
}
