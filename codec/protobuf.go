package codec

import (
	"errors"

	"google.golang.org/protobuf/proto"
)

// Protobuf stores proto messages. new must return a fresh, empty message,
// e.g. func() *pb.Report { return &pb.Report{} }.
type Protobuf[T proto.Message] struct {
	new func() T
}

func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

// Deterministic marshaling keeps map field order stable across writes.
var protoMarshal = proto.MarshalOptions{Deterministic: true}

func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	return protoMarshal.Marshal(v)
}

func (c Protobuf[T]) Decode(b []byte) (T, error) {
	if c.new == nil {
		var zero T
		return zero, errors.New("protobuf codec: nil constructor")
	}
	m := c.new()
	err := proto.Unmarshal(b, m)
	return m, err
}
