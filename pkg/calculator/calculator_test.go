package calculator

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/charithe/notation/pkg/v1pb"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

func TestCalculator(t *testing.T) {
	svc := NewService(WithMaxExpressionLen(4096))
	addr, destroyFunc := startServer(t, svc)
	defer destroyFunc()

	client := createClient(t, addr)
	defer client.Close()

	testCases := []struct {
		name       string
		notation   Notation
		expression string
		wantResult Number
		wantCode   codes.Code
		wantMsg    string
	}{
		{
			name:       "prefix",
			notation:   Prefix,
			expression: "+ 1 2",
			wantResult: integer(3),
		},
		{
			name:       "prefixFraction",
			notation:   Prefix,
			expression: "* / + - 12 987 323 111 1023",
			wantResult: rational(-222332, 37),
		},
		{
			name:       "prefixLongOperands",
			notation:   Prefix,
			expression: "+ " + pow2(987) + " " + pow2(525),
			wantResult: Integer{v: powerSum(987, 525)},
		},
		{
			name:       "prefixInvalidCharacter",
			notation:   Prefix,
			expression: "* a b",
			wantCode:   codes.InvalidArgument,
			wantMsg:    "Please check the provided expression is in the prefix notation: Invalid character found in expression: 'b'.",
		},
		{
			name:       "prefixEmpty",
			notation:   Prefix,
			expression: "",
			wantCode:   codes.InvalidArgument,
			wantMsg:    "Please check the provided expression is in the prefix notation: The provided expression does not contain any characters.",
		},
		{
			name:       "prefixDivisionByZero",
			notation:   Prefix,
			expression: "/ 2 0",
			wantCode:   codes.Internal,
			wantMsg:    "Zero division not supported.",
		},
		{
			name:       "infix",
			notation:   Infix,
			expression: "( 4 * ( ( ( 6 + 1 ) - 2 ) + 6 ) )",
			wantResult: integer(44),
		},
		{
			name:       "infixZeroes",
			notation:   Infix,
			expression: "( ( 0 + 0 ) - ( ( 0 + 0 ) + ( 1 / 1 ) ) )",
			wantResult: integer(-1),
		},
		{
			name:       "infixInvalidParentheses",
			notation:   Infix,
			expression: "6 + 5",
			wantCode:   codes.InvalidArgument,
			wantMsg:    "Please check the provided expression is in the infix notation: Invalid parentheses configuration in input string.",
		},
		{
			name:       "infixDivisionByZero",
			notation:   Infix,
			expression: "( 5 / 0 )",
			wantCode:   codes.Internal,
			wantMsg:    "Zero division not supported.",
		},
		{
			name:       "tooLong",
			notation:   Prefix,
			expression: "+ 1 " + strings.Repeat("9", 4096),
			wantCode:   codes.ResourceExhausted,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			haveResult, err := client.Evaluate(context.Background(), tc.notation, tc.expression)
			if tc.wantCode != codes.OK {
				require.Error(t, err)
				s, ok := status.FromError(err)
				require.True(t, ok)
				require.Equal(t, tc.wantCode, s.Code())
				if tc.wantMsg != "" {
					require.Equal(t, tc.wantMsg, s.Message())
				}
				return
			}

			require.NoError(t, err)
			requireNumber(t, tc.wantResult, haveResult)
		})
	}

	t.Run("notationHelpers", func(t *testing.T) {
		haveResult, err := client.EvaluatePrefix(context.Background(), "- 0 3")
		require.NoError(t, err)
		requireNumber(t, integer(-3), haveResult)

		haveResult, err = client.EvaluateInfix(context.Background(), "( ( ( 1 + 1 ) / 10 ) - ( 1 * 2 ) )")
		require.NoError(t, err)
		requireNumber(t, rational(-9, 5), haveResult)
	})
}

func TestDial(t *testing.T) {
	t.Run("unreachable", func(t *testing.T) {
		// reserve a port and release it so nothing is listening there
		lis, err := net.Listen("tcp", "localhost:0")
		require.NoError(t, err)
		addr := lis.Addr().String()
		require.NoError(t, lis.Close())

		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()

		_, err = Dial(ctx, addr, grpc.WithInsecure())
		require.Error(t, err)
		require.Equal(t, context.DeadlineExceeded, errors.Cause(err))
		require.True(t, time.Since(start) >= 200*time.Millisecond, "dial should wait for the deadline")
	})

	t.Run("reachable", func(t *testing.T) {
		addr, destroyFunc := startServer(t, NewService())
		defer destroyFunc()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		client, err := Dial(ctx, addr, grpc.WithInsecure())
		require.NoError(t, err)
		defer client.Close()

		haveResult, err := client.EvaluatePrefix(context.Background(), "+ 1 2")
		require.NoError(t, err)
		requireNumber(t, integer(3), haveResult)
	})
}

func TestServiceEvaluate(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	require.NoError(t, err)

	svc := NewService(WithMetrics(metrics), WithMaxExpressionLen(16))

	haveResult, err := svc.Evaluate(context.Background(), Prefix, "+ 1 2")
	require.NoError(t, err)
	requireNumber(t, integer(3), haveResult)

	_, err = svc.Evaluate(context.Background(), Prefix, "+ 1")
	require.True(t, IsInputError(err))

	_, err = svc.Evaluate(context.Background(), Infix, "( 5 / 0 )")
	require.Equal(t, ErrDivisionByZero, err)

	_, err = svc.Evaluate(context.Background(), Infix, "( 1 + ( 2 + ( 3 + 4 ) ) )")
	require.Error(t, err)
	require.Contains(t, err.Error(), ErrExpressionTooLong.Error())
	require.Equal(t, codes.ResourceExhausted, statusCode(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.Evaluate(ctx, Prefix, "+ 1 2")
	require.Equal(t, context.Canceled, err)
	require.Equal(t, codes.Canceled, statusCode(err))

	require.Equal(t, float64(1), testutil.ToFloat64(metrics.evaluations.WithLabelValues("prefix", outcomeOK)))
	require.Equal(t, float64(1), testutil.ToFloat64(metrics.evaluations.WithLabelValues("prefix", outcomeInvalidInput)))
	require.Equal(t, float64(1), testutil.ToFloat64(metrics.evaluations.WithLabelValues("infix", outcomeDivisionByZero)))
	require.Equal(t, float64(1), testutil.ToFloat64(metrics.evaluations.WithLabelValues("infix", outcomeTooLong)))

	_, err = NewMetrics(reg)
	require.Error(t, err, "registering twice should fail")
}

func TestServiceHealth(t *testing.T) {
	svc := NewService()

	resp, err := svc.Check(context.Background(), &healthpb.HealthCheckRequest{Service: v1pb.ServiceName})
	require.NoError(t, err)
	require.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)

	svc.Shutdown()

	resp, err = svc.Check(context.Background(), &healthpb.HealthCheckRequest{Service: v1pb.ServiceName})
	require.NoError(t, err)
	require.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.Status)
}

func startServer(t *testing.T, service *Service) (string, func()) {
	t.Helper()

	lis, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		t.Fatal(err)
	}

	addr := lis.Addr().String()
	srv := grpc.NewServer()
	v1pb.RegisterCalculatorServer(srv, service)
	healthpb.RegisterHealthServer(srv, service)

	go func() {
		if err := srv.Serve(lis); err != nil {
			panic(err)
		}
	}()

	destroyFunc := func() {
		srv.GracefulStop()
		lis.Close()
	}

	return addr, destroyFunc
}

func createClient(t *testing.T, addr string) *Client {
	t.Helper()

	conn, err := grpc.Dial(addr, grpc.WithInsecure())
	if err != nil {
		t.Fatal(err)
	}

	return NewClient(conn)
}
