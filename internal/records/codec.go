package records

import (
	"encoding/json"
	"errors"
	"strings"
)

// Codec converts a record value to and from its on-disk bytes.
type Codec[T any] interface {
	Encode(v T) ([]byte, error)
	Decode(b []byte) (T, error)
}

type jsonCodec[T any] struct{}

// JSON stores values as indented JSON.
func JSON[T any]() Codec[T] {
	return jsonCodec[T]{}
}

func (jsonCodec[T]) Encode(v T) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func (jsonCodec[T]) Decode(b []byte) (T, error) {
	var v T
	err := json.Unmarshal(b, &v)
	return v, err
}

var errEmptyText = errors.New("empty text record")

type textCodec struct{}

// Text stores a single trimmed line of plain text. An empty value cannot be
// stored or loaded.
func Text() Codec[string] {
	return textCodec{}
}

func (textCodec) Encode(v string) ([]byte, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, errEmptyText
	}
	return []byte(v), nil
}

func (textCodec) Decode(b []byte) (string, error) {
	v := strings.TrimSpace(string(b))
	if v == "" {
		return "", errEmptyText
	}
	return v, nil
}
