package tinytest

// Hook is a setup or teardown function.
type Hook func()

// MaybeHook is an optional Hook. Absent is distinct from a no-op hook.
type MaybeHook = Maybe[Hook]

// NoHook returns an absent hook.
func NoHook() MaybeHook {
	return None[Hook]()
}

// HookOf wraps fn as a present hook. A nil fn yields an absent hook.
func HookOf(fn func()) MaybeHook {
	if fn == nil {
		return NoHook()
	}
	return Some(Hook(fn))
}

// runHook invokes h if present. Panics from the hook propagate.
func runHook(h MaybeHook) {
	if fn, ok := h.Get(); ok {
		fn()
	}
}

// Coalesce combines two optional hooks into one.
//
// When both are absent the result is absent. When exactly one is present it
// is returned unchanged. When both are present the result calls first and then
// second; a panic in first prevents second from running.
func Coalesce(first, second MaybeHook) MaybeHook {
	f, hasFirst := first.Get()
	s, hasSecond := second.Get()
	switch {
	case hasFirst && hasSecond:
		return Some(Hook(func() {
			f()
			s()
		}))
	case hasFirst:
		return first
	default:
		return second
	}
}
