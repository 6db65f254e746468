package calculator

import "math/big"

// arithmetic applies a binary operator to two values in the order they were
// popped from a value stack.
type arithmetic func(first, second Number) (Number, error)

// prefixOperators apply first OP second. Prefix expressions are scanned from
// the right, so the left operand is the most recently pushed value.
var prefixOperators = map[rune]arithmetic{
	'+': add,
	'-': sub,
	'*': mul,
	'/': quo,
}

// infixOperators apply second OP first. Infix expressions are scanned from
// the left, so the right operand is the most recently pushed value.
var infixOperators = swapOperands(prefixOperators)

func swapOperands(table map[rune]arithmetic) map[rune]arithmetic {
	swapped := make(map[rune]arithmetic, len(table))
	for sym, fn := range table {
		fn := fn
		swapped[sym] = func(first, second Number) (Number, error) {
			return fn(second, first)
		}
	}
	return swapped
}

func add(x, y Number) (Number, error) {
	if a, b, ok := integers(x, y); ok {
		return Integer{v: new(big.Int).Add(a, b)}, nil
	}
	return Rational{v: new(big.Rat).Add(x.rat(), y.rat())}, nil
}

func sub(x, y Number) (Number, error) {
	if a, b, ok := integers(x, y); ok {
		return Integer{v: new(big.Int).Sub(a, b)}, nil
	}
	return Rational{v: new(big.Rat).Sub(x.rat(), y.rat())}, nil
}

func mul(x, y Number) (Number, error) {
	if a, b, ok := integers(x, y); ok {
		return Integer{v: new(big.Int).Mul(a, b)}, nil
	}
	return Rational{v: new(big.Rat).Mul(x.rat(), y.rat())}, nil
}

func quo(x, y Number) (Number, error) {
	if y.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	return Rational{v: new(big.Rat).Quo(x.rat(), y.rat())}, nil
}
