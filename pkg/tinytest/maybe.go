package tinytest

// Maybe is an optional value. The zero value is absent.
type Maybe[T any] struct {
	value   T
	present bool
}

// Some returns a present Maybe holding v.
func Some[T any](v T) Maybe[T] {
	return Maybe[T]{value: v, present: true}
}

// None returns an absent Maybe.
func None[T any]() Maybe[T] {
	return Maybe[T]{}
}

// IsPresent reports whether a value is held.
func (m Maybe[T]) IsPresent() bool {
	return m.present
}

// Get returns the held value and whether it is present.
func (m Maybe[T]) Get() (T, bool) {
	return m.value, m.present
}

// OrElse returns the held value, or fallback when absent.
func (m Maybe[T]) OrElse(fallback T) T {
	if m.present {
		return m.value
	}
	return fallback
}
