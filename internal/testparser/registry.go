package testparser

import (
	"fmt"
	"sort"
	"strings"
)

// Registry maps format names to parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates a registry with the built-in parsers: "json" for
// `go test -json` and "text" for `go test -v`.
func NewRegistry() *Registry {
	r := &Registry{parsers: make(map[string]Parser)}
	jsonParser := &JSONParser{}
	textParser := &TextParser{}

	r.parsers["json"] = jsonParser
	r.parsers["go-json"] = jsonParser
	r.parsers["text"] = textParser
	r.parsers["go"] = textParser
	return r
}

// Get returns the parser for format, or an error naming the known formats.
func (r *Registry) Get(format string) (Parser, error) {
	if p, ok := r.parsers[strings.ToLower(format)]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("unknown test output format %q (known: %s)", format, strings.Join(r.Formats(), ", "))
}

// Register adds or replaces the parser for format.
func (r *Registry) Register(format string, parser Parser) {
	r.parsers[strings.ToLower(format)] = parser
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
