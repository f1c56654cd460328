package entity

import (
	"bytes"
	"encoding/json"
)

// Patch carries one field of a partial update. The zero value is unset,
// Null marks an explicit null, and Set carries a value.
type Patch[T any] struct {
	value T
	set   bool
	null  bool
}

// Set returns a patch holding v.
func Set[T any](v T) Patch[T] {
	return Patch[T]{value: v, set: true}
}

// Null returns a patch that explicitly clears the field.
func Null[T any]() Patch[T] {
	return Patch[T]{set: true, null: true}
}

// IsSet reports whether the field was supplied, as a value or as null.
func (p Patch[T]) IsSet() bool {
	return p.set
}

// IsNull reports whether the field was supplied as an explicit null.
func (p Patch[T]) IsNull() bool {
	return p.set && p.null
}

// Get returns the value and whether one is present.
func (p Patch[T]) Get() (T, bool) {
	return p.value, p.set && !p.null
}

// Ptr returns nil for unset or null, otherwise a pointer to a copy of the value.
func (p Patch[T]) Ptr() *T {
	if v, ok := p.Get(); ok {
		return &v
	}

	return nil
}

// UnmarshalJSON is only invoked for keys present in the payload, so an absent
// key stays unset.
func (p *Patch[T]) UnmarshalJSON(data []byte) error {
	p.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		p.null = true

		var zero T
		p.value = zero

		return nil
	}

	p.null = false

	return json.Unmarshal(data, &p.value)
}
