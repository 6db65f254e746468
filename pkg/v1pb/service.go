package v1pb

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "calculator.v1.Calculator"

const (
	evaluatePrefixMethod = "/" + ServiceName + "/EvaluatePrefix"
	evaluateInfixMethod  = "/" + ServiceName + "/EvaluateInfix"
)

// CalculatorServer is the server API for the Calculator service.
type CalculatorServer interface {
	EvaluatePrefix(context.Context, *EvaluateRequest) (*EvaluateResponse, error)
	EvaluateInfix(context.Context, *EvaluateRequest) (*EvaluateResponse, error)
}

// CalculatorClient is the client API for the Calculator service.
type CalculatorClient interface {
	EvaluatePrefix(ctx context.Context, in *EvaluateRequest, opts ...grpc.CallOption) (*EvaluateResponse, error)
	EvaluateInfix(ctx context.Context, in *EvaluateRequest, opts ...grpc.CallOption) (*EvaluateResponse, error)
}

type calculatorClient struct {
	cc *grpc.ClientConn
}

func NewCalculatorClient(cc *grpc.ClientConn) CalculatorClient {
	return &calculatorClient{cc}
}

func (c *calculatorClient) EvaluatePrefix(ctx context.Context, in *EvaluateRequest, opts ...grpc.CallOption) (*EvaluateResponse, error) {
	out := new(EvaluateResponse)
	if err := c.cc.Invoke(ctx, evaluatePrefixMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *calculatorClient) EvaluateInfix(ctx context.Context, in *EvaluateRequest, opts ...grpc.CallOption) (*EvaluateResponse, error) {
	out := new(EvaluateResponse)
	if err := c.cc.Invoke(ctx, evaluateInfixMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterCalculatorServer(s *grpc.Server, srv CalculatorServer) {
	s.RegisterService(&calculatorServiceDesc, srv)
}

type unaryMethod func(CalculatorServer, context.Context, *EvaluateRequest) (*EvaluateResponse, error)

// unaryHandler adapts a CalculatorServer method to the handler signature
// expected by grpc.MethodDesc.
func unaryHandler(fullMethod string, call unaryMethod) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(EvaluateRequest)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CalculatorServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(CalculatorServer), ctx, req.(*EvaluateRequest))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var calculatorServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CalculatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "EvaluatePrefix",
			Handler:    unaryHandler(evaluatePrefixMethod, CalculatorServer.EvaluatePrefix),
		},
		{
			MethodName: "EvaluateInfix",
			Handler:    unaryHandler(evaluateInfixMethod, CalculatorServer.EvaluateInfix),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "calculator/v1/calculator.proto",
}
