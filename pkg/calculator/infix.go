package calculator

import "github.com/pkg/errors"

// EvaluateInfix evaluates a fully parenthesized, space delimited expression in
// infix notation, such as "( 1 + ( 2 * 3 ) )".
//
// The expression is scanned once from left to right. Opening parentheses and
// operators go on one stack and values on another. A closing parenthesis must
// find an operator on top of its opening parenthesis; the operator is applied
// to the top two values and the result is held until the next space pushes it,
// exactly like an operand that has just been read.
func EvaluateInfix(expression string) (Number, error) {
	if len(expression) == 0 {
		return nil, malformed(Infix, reasonNoCharacters)
	}

	if expression[0] != '(' || expression[len(expression)-1] != ')' {
		return nil, &InvalidParenthesesError{}
	}

	var (
		operators  []rune
		stack      valueStack
		pending    Number = Integer{}
		hasPending bool
	)

	for _, c := range expression {
		if _, ok := infixOperators[c]; ok || c == '(' {
			operators = append(operators, c)
			continue
		}

		switch {
		case c == ')':
			if len(operators) < 2 {
				return nil, malformed(Infix, reasonInfixNotEnoughOperators)
			}

			sym, open := operators[len(operators)-1], operators[len(operators)-2]
			operators = operators[:len(operators)-2]

			op, ok := infixOperators[sym]
			if !ok || open != '(' {
				return nil, malformed(Infix, reasonInfixUnexpectedOperator)
			}

			if stack.len() < 2 {
				return nil, malformed(Infix, reasonInfixNotEnoughValues, sym)
			}

			result, err := stack.apply(op)
			if err != nil {
				return nil, err
			}
			pending, hasPending = result, true
		case c == ' ':
			if hasPending {
				stack.push(pending)
				pending, hasPending = Integer{}, false
			}
		case isDigit(c):
			pending, hasPending = appendDigit(pending, int64(c-'0')), true
		default:
			return nil, &InvalidCharacterError{Char: c}
		}
	}

	if len(operators) > 0 || stack.len() > 0 {
		return nil, malformed(Infix, reasonInfixTooManyValues)
	}

	return Normalize(pending), nil
}

// Evaluate evaluates expression written in the given notation.
func Evaluate(n Notation, expression string) (Number, error) {
	switch n {
	case Prefix:
		return EvaluatePrefix(expression)
	case Infix:
		return EvaluateInfix(expression)
	default:
		return nil, errors.Errorf("unsupported notation: %s", n)
	}
}
