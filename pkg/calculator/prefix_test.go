package calculator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluatePrefix(t *testing.T) {
	testCases := []struct {
		name       string
		expression string
		wantResult Number
	}{
		{name: "singleOperand", expression: "3", wantResult: integer(3)},
		{name: "add", expression: "+ 1 2", wantResult: integer(3)},
		{name: "nestedRight", expression: "+ 1 * 2 3", wantResult: integer(7)},
		{name: "nestedLeft", expression: "+ * 1 2 3", wantResult: integer(5)},
		{name: "divisionToInteger", expression: "- / 10 + 1 1 * 1 2", wantResult: integer(3)},
		{name: "negativeResult", expression: "- 0 3", wantResult: integer(-3)},
		{name: "fraction", expression: "/ 3 2", wantResult: rational(3, 2)},
		{name: "nonCommutativeChain", expression: "* / + - 12 987 323 111 1023", wantResult: rational(-222332, 37)},
		{name: "twoSubtrees", expression: "+ + 1 2 - 4 3", wantResult: integer(4)},
		{name: "trailingZeroes", expression: "+ 5000 / 1000000 + 1000 0", wantResult: integer(6000)},
		{name: "trailingZeroesNested", expression: "+ / + 5000 1000000 1000 0", wantResult: integer(1005)},
		{name: "zeroes", expression: "+ 0 - 0 + 0 + 0 / 1 1", wantResult: integer(-1)},
		{name: "multiplyByZero", expression: "+ 0 - 0 * 0 + 0 / 1 1", wantResult: integer(0)},
		{name: "longOperands", expression: "+ " + pow2(987) + " " + pow2(525), wantResult: Integer{v: powerSum(987, 525)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			haveResult, err := EvaluatePrefix(tc.expression)
			require.NoError(t, err)
			requireNumber(t, tc.wantResult, haveResult)
		})
	}
}

func TestEvaluatePrefixErrors(t *testing.T) {
	testCases := []errorCase{
		{
			name:       "decimalPoint",
			expression: "* / + - 12 98.7 323 111 1023",
			wantErr:    &InvalidCharacterError{},
			wantMsg:    "Invalid character found in expression: '.'.",
		},
		{
			// scanning starts from the end of the expression
			name:       "lastInvalidCharacterFirst",
			expression: "* / + - 12 98.7 323 111 10,23",
			wantErr:    &InvalidCharacterError{},
			wantMsg:    "Invalid character found in expression: ','.",
		},
		{
			name:       "letters",
			expression: "* a b",
			wantErr:    &InvalidCharacterError{},
			wantMsg:    "Invalid character found in expression: 'b'.",
		},
		{
			name:       "unsupportedOperator",
			expression: "% 1 2",
			wantErr:    &InvalidCharacterError{},
			wantMsg:    "Invalid character found in expression: '%'.",
		},
		{
			name:       "empty",
			expression: "",
			wantErr:    &MalformedError{},
			wantMsg:    "The provided expression does not contain any characters.",
		},
		{
			name:       "notEnoughValues",
			expression: "+ 1",
			wantErr:    &MalformedError{},
			wantMsg:    "There are not enough values to apply the operand '+' on.",
		},
		{
			name:       "endsWithOperator",
			expression: "+ 3 1 2 *",
			wantErr:    &MalformedError{},
			wantMsg:    "There are not enough values to apply the operand '*' on.",
		},
		{
			name:       "tooManyValues",
			expression: "+ 1 2 3",
			wantErr:    &MalformedError{},
			wantMsg:    "There were too many values and not enough operators.",
		},
		{
			name:       "tooManyValuesNested",
			expression: "+ * 1 2 - 3 4 5",
			wantErr:    &MalformedError{},
			wantMsg:    "There were too many values and not enough operators.",
		},
		{
			name:       "leadingOperand",
			expression: "5 + + 1 2 - 4 3",
			wantErr:    &MalformedError{},
			wantMsg:    "There were too many values and not enough operators.",
		},
		{
			name:       "noOperators",
			expression: "5 10",
			wantErr:    &MalformedError{},
			wantMsg:    "There were too many values and not enough operators.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := EvaluatePrefix(tc.expression)
			requireEvalError(t, tc, err)
			if merr, ok := err.(*MalformedError); ok {
				require.Equal(t, Prefix, merr.Notation)
			}
		})
	}
}

func TestEvaluatePrefixDivisionByZero(t *testing.T) {
	for _, expression := range []string{"/ 5 0", "/ 2 0", "/ 1 - 2 2", "+ 1 / 7 * 0 3"} {
		t.Run(expression, func(t *testing.T) {
			_, err := EvaluatePrefix(expression)
			require.Equal(t, ErrDivisionByZero, err)
			require.False(t, IsInputError(err))
		})
	}
}

func TestEvaluatePrefixLiteral(t *testing.T) {
	for _, literal := range []string{"0", "7", "10", "1000000", "007", pow2(300)} {
		t.Run(literal, func(t *testing.T) {
			want, err := ParseNumber(literal)
			require.NoError(t, err)

			have, err := EvaluatePrefix(literal)
			require.NoError(t, err)
			requireNumber(t, want, have)
		})
	}
}
