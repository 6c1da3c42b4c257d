package tinytest

// NoArgs is the input of a function that takes no arguments.
type NoArgs struct{}

// Items implements format.Sequence.
func (NoArgs) Items() []any { return nil }

// Args2 holds two arguments.
type Args2[A, B any] struct {
	First  A
	Second B
}

// A2 builds an Args2.
func A2[A, B any](a A, b B) Args2[A, B] {
	return Args2[A, B]{First: a, Second: b}
}

// Items implements format.Sequence.
func (a Args2[A, B]) Items() []any { return []any{a.First, a.Second} }

// Args3 holds three arguments.
type Args3[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// A3 builds an Args3.
func A3[A, B, C any](a A, b B, c C) Args3[A, B, C] {
	return Args3[A, B, C]{First: a, Second: b, Third: c}
}

// Items implements format.Sequence.
func (a Args3[A, B, C]) Items() []any { return []any{a.First, a.Second, a.Third} }

// Func0 adapts a function without arguments.
func Func0[R any](fn func() R) func(NoArgs) R {
	return func(NoArgs) R { return fn() }
}

// Func1 returns fn unchanged. It exists so suites read uniformly.
func Func1[R, A any](fn func(A) R) func(A) R {
	return fn
}

// Func2 adapts a two-argument function.
func Func2[R, A, B any](fn func(A, B) R) func(Args2[A, B]) R {
	return func(in Args2[A, B]) R { return fn(in.First, in.Second) }
}

// Func3 adapts a three-argument function.
func Func3[R, A, B, C any](fn func(A, B, C) R) func(Args3[A, B, C]) R {
	return func(in Args3[A, B, C]) R { return fn(in.First, in.Second, in.Third) }
}
