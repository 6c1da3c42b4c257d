// Package format renders arbitrary values for test progress and failure messages.
//
// Two renderings exist. Format is the pretty form: strings are quoted and
// escaped, sequences are bracketed. Plain is the stream form used inside
// failure messages: identical to Format except that a top-level string is
// written as-is.
package format

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Sequence is implemented by product types (argument tuples) that should be
// rendered as a bracketed list of their items.
type Sequence interface {
	Items() []any
}

// Escape replaces the ESC control character with its printable octal form so
// terminal escape sequences embedded in values do not reach the console.
func Escape(text string) string {
	return strings.ReplaceAll(text, "\033", `\033`)
}

// Format returns the pretty rendering of v.
func Format(v any) string {
	var b strings.Builder
	write(&b, v, true)
	return b.String()
}

// Plain returns the stream rendering of v.
func Plain(v any) string {
	var b strings.Builder
	write(&b, v, false)
	return b.String()
}

// List renders items as "[ a, b, c ]", or "[]" when empty.
func List(items []any) string {
	var b strings.Builder
	writeList(&b, items)
	return b.String()
}

func write(b *strings.Builder, v any, quote bool) {
	switch x := v.(type) {
	case nil:
		b.WriteString("nil")
		return
	case string:
		if quote {
			b.WriteString(`"` + Escape(x) + `"`)
		} else {
			b.WriteString(x)
		}
		return
	case bool:
		// Booleans use their numeric stream form.
		if x {
			b.WriteString("1")
		} else {
			b.WriteString("0")
		}
		return
	case Sequence:
		writeList(b, x.Items())
		return
	case error:
		b.WriteString(x.Error())
		return
	case fmt.Stringer:
		b.WriteString(x.String())
		return
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			b.WriteString("[]")
			return
		}
		fallthrough
	case reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		writeList(b, items)
	case reflect.Map:
		writeMap(b, rv)
	default:
		fmt.Fprintf(b, "%v", v)
	}
}

func writeList(b *strings.Builder, items []any) {
	if len(items) == 0 {
		b.WriteString("[]")
		return
	}
	b.WriteString("[ ")
	for i, item := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		write(b, item, true)
	}
	b.WriteString(" ]")
}

func writeMap(b *strings.Builder, rv reflect.Value) {
	if rv.Len() == 0 {
		b.WriteString("{}")
		return
	}

	type entry struct{ key, value string }
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		entries = append(entries, entry{
			key:   Format(iter.Key().Interface()),
			value: Format(iter.Value().Interface()),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].key < entries[j].key
	})

	b.WriteString("{ ")
	for i, e := range entries {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.key + ": " + e.value)
	}
	b.WriteString(" }")
}
