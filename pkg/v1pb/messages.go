// Package v1pb declares the wire types and gRPC service descriptor of the
// calculator.v1.Calculator service.
package v1pb

import (
	proto "github.com/gogo/protobuf/proto"
)

// EvaluateRequest carries an expression in the notation implied by the
// method it is sent to.
type EvaluateRequest struct {
	Expression string `protobuf:"bytes,1,opt,name=expression,proto3" json:"expression,omitempty"`
}

func (m *EvaluateRequest) Reset()         { *m = EvaluateRequest{} }
func (m *EvaluateRequest) String() string { return proto.CompactTextString(m) }
func (*EvaluateRequest) ProtoMessage()    {}

func (m *EvaluateRequest) GetExpression() string {
	if m != nil {
		return m.Expression
	}
	return ""
}

// EvaluateResponse carries the result of an evaluation. Integers are encoded
// as decimal digits and fractions as "numerator/denominator".
type EvaluateResponse struct {
	Result string `protobuf:"bytes,1,opt,name=result,proto3" json:"result,omitempty"`
}

func (m *EvaluateResponse) Reset()         { *m = EvaluateResponse{} }
func (m *EvaluateResponse) String() string { return proto.CompactTextString(m) }
func (*EvaluateResponse) ProtoMessage()    {}

func (m *EvaluateResponse) GetResult() string {
	if m != nil {
		return m.Result
	}
	return ""
}
