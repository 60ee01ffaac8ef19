package codec

import "fmt"

// LimitCodec wraps another codec to enforce a maximum payload size at Decode
// time, protecting readers from oversized entries in a shared store. Encode is
// forwarded to Inner unchanged. MaxDecode <= 0 disables the limit.
//
// An oversized entry fails Decode and is therefore treated as a miss.
type LimitCodec[V any] struct {
	Inner     Codec[V]
	MaxDecode int // bytes
}

var _ Codec[string] = LimitCodec[string]{}

func (c LimitCodec[V]) Encode(v V) ([]byte, error) { return c.Inner.Encode(v) }
func (c LimitCodec[V]) Decode(b []byte) (V, error) {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		var zero V
		return zero, fmt.Errorf("payload too large: %d > %d", len(b), c.MaxDecode)
	}
	return c.Inner.Decode(b)
}
