// Package optional holds a JSON field wrapper that remembers whether the key
// was present in the payload, and whether it was an explicit null.
package optional

import (
	"bytes"
	"encoding/json"
)

// Value is absent until it is set, either by Of or by decoding a JSON key.
type Value[T any] struct {
	v    T
	set  bool
	null bool
}

func Of[T any](v T) Value[T] {
	return Value[T]{v: v, set: true}
}

// Null returns a present value carrying an explicit null.
func Null[T any]() Value[T] {
	return Value[T]{set: true, null: true}
}

func (o *Value[T]) UnmarshalJSON(b []byte) error {
	o.set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		var zero T
		o.v = zero
		o.null = true
		return nil
	}
	o.null = false
	return json.Unmarshal(b, &o.v)
}

func (o Value[T]) IsSet() bool { return o.set }

func (o Value[T]) IsNull() bool { return o.set && o.null }

func (o Value[T]) Get() (T, bool) {
	return o.v, o.set
}

// ApplyTo overwrites *dst when the value is present.
func (o Value[T]) ApplyTo(dst *T) {
	if o.set {
		*dst = o.v
	}
}
