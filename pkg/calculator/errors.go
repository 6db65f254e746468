package calculator

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Notation identifies the way an expression is written.
type Notation int

const (
	Prefix Notation = iota + 1
	Infix
)

func (n Notation) String() string {
	switch n {
	case Prefix:
		return "prefix"
	case Infix:
		return "infix"
	default:
		return fmt.Sprintf("Notation(%d)", int(n))
	}
}

// ParseNotation parses "prefix" or "infix", ignoring case.
func ParseNotation(s string) (Notation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prefix":
		return Prefix, nil
	case "infix":
		return Infix, nil
	default:
		return 0, errors.Errorf("unknown notation %q", s)
	}
}

const (
	reasonNoCharacters = "The provided expression does not contain any characters."

	reasonPrefixNotEnoughValues = "There are not enough values to apply the operand '%c' on."
	reasonPrefixTooManyValues   = "There were too many values and not enough operators."

	reasonInfixNotEnoughOperators = "Not enough operators/parentheses to perform the operation."
	reasonInfixUnexpectedOperator = "Expected operator or parenthesis not found."
	reasonInfixNotEnoughValues    = "Not enough values to apply the operand '%c' on."
	reasonInfixTooManyValues      = "There were too many values / operators / parentheses."
)

var (
	// ErrDivisionByZero is returned when a division is applied to a divisor
	// that evaluates to zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrExpressionTooLong is returned by Service when an expression exceeds
	// the configured length limit.
	ErrExpressionTooLong = errors.New("expression exceeds the maximum length")
)

// InvalidCharacterError reports the first character, in scan order, that
// cannot appear in an expression.
type InvalidCharacterError struct {
	Char rune
}

func (err *InvalidCharacterError) Error() string {
	return fmt.Sprintf("Invalid character found in expression: '%c'.", err.Char)
}

// InvalidParenthesesError reports an infix expression that is not wrapped in
// an outer pair of parentheses.
type InvalidParenthesesError struct{}

func (err *InvalidParenthesesError) Error() string {
	return "Invalid parentheses configuration in input string."
}

// MalformedError reports an expression whose structure does not match its
// notation: missing input, operators without enough operands, unbalanced
// parentheses or leftover values.
type MalformedError struct {
	Notation Notation
	Reason   string
}

func (err *MalformedError) Error() string {
	return err.Reason
}

func malformed(n Notation, reason string, args ...interface{}) error {
	if len(args) > 0 {
		reason = fmt.Sprintf(reason, args...)
	}
	return &MalformedError{Notation: n, Reason: reason}
}

// IsInputError reports whether err was caused by the content of the
// expression rather than by its evaluation.
func IsInputError(err error) bool {
	switch errors.Cause(err).(type) {
	case *InvalidCharacterError, *InvalidParenthesesError, *MalformedError:
		return true
	default:
		return false
	}
}

// UserMessage renders err the way it is reported to API callers.
func UserMessage(n Notation, err error) string {
	switch cause := errors.Cause(err); {
	case cause == ErrDivisionByZero:
		return "Zero division not supported."
	case IsInputError(cause):
		return fmt.Sprintf("Please check the provided expression is in the %s notation: %s", n, cause)
	default:
		return err.Error()
	}
}
