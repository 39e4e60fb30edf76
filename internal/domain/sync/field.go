package sync

import "encoding/json"

// Field is the explicit three-state representation of an inbound payload
// field: not present, present but null, or present with a value. Update
// mappers preserve the existing entity value when the field is absent and
// only overwrite when a value was sent.
type Field[T any] struct {
	set  bool
	null bool
	val  T
}

// NewField returns a field that is present with the given value.
func NewField[T any](v T) Field[T] {
	return Field[T]{set: true, val: v}
}

// NullField returns a field that is present but null.
func NullField[T any]() Field[T] {
	return Field[T]{set: true, null: true}
}

// UnmarshalJSON implements json.Unmarshaler. The decoder only calls it when
// the key is present, so a zero Field means "absent".
func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.set = true
	if string(b) == "null" {
		f.null = true
		return nil
	}
	return json.Unmarshal(b, &f.val)
}

// MarshalJSON implements json.Marshaler.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.set || f.null {
		return []byte("null"), nil
	}
	return json.Marshal(f.val)
}

// Present reports whether the key appeared in the payload at all.
func (f Field[T]) Present() bool { return f.set }

// Null reports whether the key was sent with an explicit null.
func (f Field[T]) Null() bool { return f.set && f.null }

// Value returns the decoded value and whether one was actually sent.
func (f Field[T]) Value() (T, bool) {
	if !f.set || f.null {
		var zero T
		return zero, false
	}
	return f.val, true
}

// Or returns the decoded value when one was sent, else the fallback.
// This is the partial-update-by-presence primitive used by every mapper.
func (f Field[T]) Or(fallback T) T {
	if v, ok := f.Value(); ok {
		return v
	}
	return fallback
}
