// Package codec translates loader values to the bytes a provider stores.
package codec

// Codec encodes/decodes values V to []byte for storage.
// Decode must accept anything Encode produced, including for the zero V.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
