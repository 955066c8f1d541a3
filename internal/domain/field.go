package domain

// Field is one member of a partial update. Set reports whether the caller
// supplied the field at all; an unset field leaves the stored column alone.
type Field[T any] struct {
	Set   bool
	Value T
}

// Set returns a Field carrying v.
func Set[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// Or returns the field value when set, otherwise fallback.
func (f Field[T]) Or(fallback T) T {
	if f.Set {
		return f.Value
	}
	return fallback
}
