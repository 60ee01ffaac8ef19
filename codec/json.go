package codec

import (
	"encoding/json"

	jsoniter "github.com/json-iterator/go"
)

var (
	_ Codec[struct{}] = JSON[struct{}]{}
	_ Codec[struct{}] = JSONIter[struct{}]{}
)

// JSON uses encoding/json. The zero value is ready to use.
type JSON[V any] struct{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }
func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}

var jsonStd = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONIter produces the same bytes as JSON using json-iterator, which is
// faster on large payloads. Entries written by one decode with the other.
type JSONIter[V any] struct{}

func (JSONIter[V]) Encode(v V) ([]byte, error) { return jsonStd.Marshal(v) }
func (JSONIter[V]) Decode(b []byte) (V, error) {
	var v V
	err := jsonStd.Unmarshal(b, &v)
	return v, err
}
