package calculator

import "math/big"

// EvaluatePrefix evaluates a space delimited expression in prefix notation,
// such as "+ 1 * 2 3".
//
// The expression is scanned once from right to left. Digits are folded into
// the pending value at an increasing place weight, every space pushes the
// pending value onto the stack and every operator replaces the pending value
// with the result of applying it to the top two stack values. The last pending
// value is never pushed because no space precedes it, so a well formed
// expression leaves the stack empty.
func EvaluatePrefix(expression string) (Number, error) {
	if len(expression) == 0 {
		return nil, malformed(Prefix, reasonNoCharacters)
	}

	var (
		stack   valueStack
		pending Number = Integer{}
		weight         = big.NewInt(1)
	)

	chars := []rune(expression)
	for i := len(chars) - 1; i >= 0; i-- {
		c := chars[i]

		if op, ok := prefixOperators[c]; ok {
			if stack.len() < 2 {
				return nil, malformed(Prefix, reasonPrefixNotEnoughValues, c)
			}

			result, err := stack.apply(op)
			if err != nil {
				return nil, err
			}
			pending = result
			continue
		}

		switch {
		case isDigit(c):
			pending = foldDigitAt(pending, int64(c-'0'), weight)
			weight.Mul(weight, bigTen)
		case c == ' ':
			stack.push(pending)
			pending = Integer{}
			weight.SetInt64(1)
		default:
			return nil, &InvalidCharacterError{Char: c}
		}
	}

	if stack.len() > 0 {
		return nil, malformed(Prefix, reasonPrefixTooManyValues)
	}

	return Normalize(pending), nil
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}
