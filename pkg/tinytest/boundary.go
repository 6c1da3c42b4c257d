package tinytest

import "fmt"

// Category classifies a failure raised by the function under test.
type Category int

const (
	// StructuredFailure is a panic carrying an error.
	StructuredFailure Category = iota + 1
	// TextFailure is a panic carrying a string.
	TextFailure
	// LiteralTextFailure is a panic carrying raw text ([]byte or []rune).
	LiteralTextFailure
	// Unclassified is a panic carrying anything else.
	Unclassified
)

func (c Category) String() string {
	switch c {
	case StructuredFailure:
		return "structured"
	case TextFailure:
		return "text"
	case LiteralTextFailure:
		return "literal-text"
	case Unclassified:
		return "unclassified"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Failure describes a caught failure.
type Failure struct {
	Category    Category
	Description string
}

func (f *Failure) Error() string {
	return f.Description
}

// Outcome is the result of one guarded call: a value or a failure.
type Outcome[R any] struct {
	Value   R
	Failure *Failure
}

// Failed reports whether the call raised a failure.
func (o Outcome[R]) Failed() bool {
	return o.Failure != nil
}

// Classify maps a recovered panic payload to a Failure.
func Classify(payload any) *Failure {
	switch v := payload.(type) {
	case error:
		return &Failure{
			Category:    StructuredFailure,
			Description: `Caught exception "` + v.Error() + `".`,
		}
	case string:
		return &Failure{
			Category:    TextFailure,
			Description: `Caught string "` + v + `".`,
		}
	case []byte:
		return &Failure{
			Category:    LiteralTextFailure,
			Description: `Caught c-string "` + string(v) + `".`,
		}
	case []rune:
		return &Failure{
			Category:    LiteralTextFailure,
			Description: `Caught c-string "` + string(v) + `".`,
		}
	default:
		return &Failure{
			Category:    Unclassified,
			Description: "Caught something that is neither an error nor a string.",
		}
	}
}

// Invoke calls fn(input), converting a panic into a Failure. On failure the
// Value is the zero value of R.
func Invoke[R, I any](fn func(I) R, input I) (outcome Outcome[R]) {
	defer func() {
		if payload := recover(); payload != nil {
			outcome = Outcome[R]{Failure: Classify(payload)}
		}
	}()
	return Outcome[R]{Value: fn(input)}
}

// Fallible adapts a function that reports failure through an error. A non-nil
// error is raised so the suite records it as a caught exception.
func Fallible[R, I any](fn func(I) (R, error)) func(I) R {
	return func(in I) R {
		v, err := fn(in)
		if err != nil {
			panic(err)
		}
		return v
	}
}
