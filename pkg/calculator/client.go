package calculator

import (
	"context"

	"github.com/charithe/notation/pkg/v1pb"
	"github.com/pkg/errors"
	"google.golang.org/grpc"
)

// Client implements the RPC client for the Calculator service
type Client struct {
	conn   *grpc.ClientConn
	client v1pb.CalculatorClient
}

// Dial connects to addr and returns a Client. It blocks until the connection
// is up or ctx is done.
func Dial(ctx context.Context, addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append(opts, grpc.WithBlock())
	conn, err := grpc.DialContext(ctx, addr, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to %s", addr)
	}

	return NewClient(conn), nil
}

func NewClient(conn *grpc.ClientConn) *Client {
	return &Client{
		conn:   conn,
		client: v1pb.NewCalculatorClient(conn),
	}
}

func (c *Client) EvaluatePrefix(ctx context.Context, expression string) (Number, error) {
	return c.Evaluate(ctx, Prefix, expression)
}

func (c *Client) EvaluateInfix(ctx context.Context, expression string) (Number, error) {
	return c.Evaluate(ctx, Infix, expression)
}

// Evaluate sends the expression to the method matching the notation and
// parses the result.
func (c *Client) Evaluate(ctx context.Context, n Notation, expression string) (Number, error) {
	req := &v1pb.EvaluateRequest{Expression: expression}

	var resp *v1pb.EvaluateResponse
	var err error
	switch n {
	case Prefix:
		resp, err = c.client.EvaluatePrefix(ctx, req)
	case Infix:
		resp, err = c.client.EvaluateInfix(ctx, req)
	default:
		return nil, errors.Errorf("unsupported notation: %s", n)
	}

	if err != nil {
		return nil, err
	}

	result, err := ParseNumber(resp.GetResult())
	if err != nil {
		return nil, errors.Wrap(err, "malformed response")
	}

	return result, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}
