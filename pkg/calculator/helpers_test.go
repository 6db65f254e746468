package calculator

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func integer(v int64) Number {
	return Integer{v: big.NewInt(v)}
}

func rational(num, denom int64) Number {
	return Rational{v: big.NewRat(num, denom)}
}

// powerSum returns 2^a + 2^b.
func powerSum(a, b uint) *big.Int {
	x := new(big.Int).Lsh(big.NewInt(1), a)
	y := new(big.Int).Lsh(big.NewInt(1), b)
	return x.Add(x, y)
}

func pow2(n uint) string {
	return new(big.Int).Lsh(big.NewInt(1), n).String()
}

func requireNumber(t *testing.T, want, have Number) {
	t.Helper()
	require.IsType(t, want, have)
	require.Equal(t, want.String(), have.String())
}

type errorCase struct {
	name       string
	expression string
	wantErr    interface{}
	wantMsg    string
}

func requireEvalError(t *testing.T, tc errorCase, err error) {
	t.Helper()
	require.Error(t, err)
	require.IsType(t, tc.wantErr, err)
	require.EqualError(t, err, tc.wantMsg)
}
