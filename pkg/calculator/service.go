package calculator

import (
	"context"
	"time"

	"github.com/charithe/notation/pkg/v1pb"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// Service implements the RPC interface of the calculator
type Service struct {
	*health.Server
	metrics *Metrics
	maxLen  int
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithMetrics records every evaluation in m.
func WithMetrics(m *Metrics) ServiceOption {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithMaxExpressionLen rejects expressions longer than n bytes. Zero disables
// the limit.
func WithMaxExpressionLen(n int) ServiceOption {
	return func(s *Service) {
		s.maxLen = n
	}
}

func NewService(opts ...ServiceOption) *Service {
	s := &Service{
		Server: health.NewServer(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.SetServingStatus(v1pb.ServiceName, healthpb.HealthCheckResponse_SERVING)
	return s
}

// Shutdown marks the service as not serving.
func (s *Service) Shutdown() {
	s.SetServingStatus(v1pb.ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
}

// Evaluate evaluates the expression written in the given notation. It is the
// single entry point used by every transport.
func (s *Service) Evaluate(ctx context.Context, n Notation, expression string) (Number, error) {
	// if the context has already expired, we can avoid unnecessary work
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.maxLen > 0 && len(expression) > s.maxLen {
		err := errors.Wrapf(ErrExpressionTooLong, "expression has %d bytes, limit is %d", len(expression), s.maxLen)
		s.metrics.observe(n, err, 0)
		zap.S().Debugw("Rejected expression", "notation", n, "error", err)
		return nil, err
	}

	start := time.Now()
	result, err := Evaluate(n, expression)
	s.metrics.observe(n, err, time.Since(start))

	if err != nil {
		if errors.Cause(err) == ErrDivisionByZero {
			zap.S().Warnw("Division by zero", "notation", n, "expression", expression)
		} else {
			zap.S().Debugw("Failed to evaluate expression", "notation", n, "error", err)
		}
		return nil, err
	}

	return result, nil
}

func (s *Service) EvaluatePrefix(ctx context.Context, req *v1pb.EvaluateRequest) (*v1pb.EvaluateResponse, error) {
	return s.evaluateRPC(ctx, Prefix, req)
}

func (s *Service) EvaluateInfix(ctx context.Context, req *v1pb.EvaluateRequest) (*v1pb.EvaluateResponse, error) {
	return s.evaluateRPC(ctx, Infix, req)
}

func (s *Service) evaluateRPC(ctx context.Context, n Notation, req *v1pb.EvaluateRequest) (*v1pb.EvaluateResponse, error) {
	result, err := s.Evaluate(ctx, n, req.GetExpression())
	if err != nil {
		return nil, status.Error(statusCode(err), UserMessage(n, err))
	}

	return &v1pb.EvaluateResponse{Result: result.String()}, nil
}

func statusCode(err error) codes.Code {
	cause := errors.Cause(err)
	switch {
	case IsInputError(cause):
		return codes.InvalidArgument
	case cause == ErrExpressionTooLong:
		return codes.ResourceExhausted
	case cause == context.Canceled:
		return codes.Canceled
	case cause == context.DeadlineExceeded:
		return codes.DeadlineExceeded
	default:
		return codes.Internal
	}
}
