package v1pb

import (
	proto "github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
	"google.golang.org/grpc/encoding"
)

func init() {
	encoding.RegisterCodec(codec{})
}

// codec replaces the default gRPC "proto" codec with gogo/protobuf so that
// the messages in this package, which carry no generated descriptors, are
// marshalled from their struct tags.
type codec struct{}

func (codec) Marshal(v interface{}) ([]byte, error) {
	msg, ok := v.(proto.Message)
	if !ok {
		return nil, errors.Errorf("failed to marshal: %T is not a proto.Message", v)
	}
	return proto.Marshal(msg)
}

func (codec) Unmarshal(data []byte, v interface{}) error {
	msg, ok := v.(proto.Message)
	if !ok {
		return errors.Errorf("failed to unmarshal: %T is not a proto.Message", v)
	}
	return proto.Unmarshal(data, msg)
}

func (codec) Name() string {
	return "proto"
}
