// Package casefile loads tinytest cases from data files.
//
// A suite is a directory; every .json, .yaml or .yml file in it is one case:
//
//	{
//	    "input": {"a": 1, "b": 2},
//	    "output": 3,
//	    "description": "adds small numbers",
//	    "skip": false
//	}
//
// Any object of the form {"$file": "name"} inside input or output is replaced
// by the contents of that file, resolved relative to the case file. Referenced
// JSON or YAML files are decoded; anything else becomes a string.
//
// Example usage:
//
//	suite, err := casefile.MakeSuite("testdata", "addition", add, testhelper.DefaultOptions())
//	if err != nil {
//	    t.Fatal(err)
//	}
//	results := tinytest.ExecuteTestSuite(suite)
package casefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/tinytest/pkg/testhelper"
	"github.com/AndreyAkinshin/tinytest/pkg/tinytest"
)

// ErrSuiteNotFound is returned when a suite directory does not exist.
var ErrSuiteNotFound = errors.New("suite not found")

// Case is one test case loaded from a file.
type Case struct {
	// Name is the file name without its extension.
	Name string
	// Suite is the name of the directory holding the file.
	Suite string
	// Path is the file the case was loaded from.
	Path        string
	Input       map[string]any
	Output      any
	Description string
	Skip        bool
	Tags        []string
}

// String returns "suite/name", or just the name when the suite is unknown.
func (c Case) String() string {
	if c.Suite == "" {
		return c.Name
	}
	return c.Suite + "/" + c.Name
}

// rawCase is the on-disk shape shared by JSON and YAML.
type rawCase struct {
	Input       any      `json:"input" yaml:"input"`
	Output      any      `json:"output" yaml:"output"`
	Description string   `json:"description" yaml:"description"`
	Skip        bool     `json:"skip" yaml:"skip"`
	Tags        []string `json:"tags" yaml:"tags"`
}

var extensions = []string{".json", ".yaml", ".yml"}

func isCaseFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// LoadCase loads a single case file.
func LoadCase(path string) (*Case, error) {
	if !isCaseFile(path) {
		return nil, fmt.Errorf("%s: unsupported case file extension", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	present, raw, err := decodeCase(path, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if !present["input"] {
		return nil, fmt.Errorf("%s: missing required field \"input\"", path)
	}
	if !present["output"] {
		return nil, fmt.Errorf("%s: missing required field \"output\"", path)
	}

	baseDir := filepath.Dir(path)
	input, err := resolveFileRefs(raw.Input, baseDir)
	if err != nil {
		return nil, fmt.Errorf("%s: input: %w", path, err)
	}
	output, err := resolveFileRefs(raw.Output, baseDir)
	if err != nil {
		return nil, fmt.Errorf("%s: output: %w", path, err)
	}

	inputMap, ok := input.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: \"input\" must be an object", path)
	}

	return &Case{
		Name:        strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Path:        path,
		Input:       inputMap,
		Output:      output,
		Description: raw.Description,
		Skip:        raw.Skip,
		Tags:        raw.Tags,
	}, nil
}

// decodeCase decodes data and reports which top-level keys were present.
// YAML is converted to JSON first so both formats yield the same value types.
func decodeCase(path string, data []byte) (map[string]bool, rawCase, error) {
	var keys map[string]any
	var raw rawCase
	if !isJSON(path) {
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, raw, fmt.Errorf("invalid YAML: %w", err)
		}
		data = converted
	}
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, raw, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, raw, fmt.Errorf("invalid JSON: %w", err)
	}

	present := make(map[string]bool, len(keys))
	for k, v := range keys {
		present[k] = v != nil
	}
	return present, raw, nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// LoadSuite loads every case of dir/suite, sorted by name.
func LoadSuite(dir, suite string) ([]Case, error) {
	if err := validateSuiteName(suite); err != nil {
		return nil, err
	}
	suiteDir := filepath.Join(dir, suite)
	entries, err := os.ReadDir(suiteDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSuiteNotFound, suite)
		}
		return nil, err
	}

	var cases []Case
	for _, entry := range entries {
		if entry.IsDir() || !isCaseFile(entry.Name()) {
			continue
		}
		c, err := LoadCase(filepath.Join(suiteDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("suite %q: %w", suite, err)
		}
		c.Suite = suite
		cases = append(cases, *c)
	}

	sort.Slice(cases, func(i, j int) bool {
		return cases[i].Name < cases[j].Name
	})
	return cases, nil
}

// ListSuites returns the sorted names of the suite directories in dir. A
// missing dir has no suites.
func ListSuites(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var suites []string
	for _, entry := range entries {
		if entry.IsDir() {
			suites = append(suites, entry.Name())
		}
	}
	sort.Strings(suites)
	return suites, nil
}

func validateSuiteName(suite string) error {
	if suite == "" {
		return errors.New("suite name must not be empty")
	}
	if strings.ContainsAny(suite, `/\`) || suite == "." || suite == ".." {
		return fmt.Errorf("invalid suite name %q", suite)
	}
	return nil
}

// Cases loads dir/suite as tinytest cases. A case with skip set is disabled.
func Cases(dir, suite string) ([]tinytest.TestCase[any, map[string]any], error) {
	loaded, err := LoadSuite(dir, suite)
	if err != nil {
		return nil, err
	}
	cases := make([]tinytest.TestCase[any, map[string]any], 0, len(loaded))
	for _, c := range loaded {
		tc := tinytest.MakeTest[any](c.Name, c.Output, c.Input)
		if c.Skip {
			tc = tc.Disabled()
		}
		cases = append(cases, tc)
	}
	return cases, nil
}

// MakeSuite loads dir/suite and pairs it with fn. Outputs are compared with
// testhelper.Comparator so numbers decoded from files match Go numbers of any
// width.
func MakeSuite(dir, suite string, fn func(map[string]any) any, opts testhelper.CompareOptions) (tinytest.TestSuite[any, map[string]any], error) {
	if err := testhelper.ValidateOptions(opts); err != nil {
		return tinytest.TestSuite[any, map[string]any]{}, err
	}
	cases, err := Cases(dir, suite)
	if err != nil {
		return tinytest.TestSuite[any, map[string]any]{}, err
	}
	return tinytest.MakeTestSuite(suite, fn, cases...).
		WithCompare(testhelper.Comparator[any](opts)), nil
}

// resolveFileRefs replaces {"$file": ref} objects anywhere in value.
func resolveFileRefs(value any, baseDir string) (any, error) {
	switch v := value.(type) {
	case map[string]any:
		if ref, ok := v["$file"].(string); ok && len(v) == 1 {
			return loadFileRef(ref, baseDir)
		}
		result := make(map[string]any, len(v))
		for key, val := range v {
			resolved, err := resolveFileRefs(val, baseDir)
			if err != nil {
				return nil, err
			}
			result[key] = resolved
		}
		return result, nil
	case []any:
		result := make([]any, len(v))
		for i, val := range v {
			resolved, err := resolveFileRefs(val, baseDir)
			if err != nil {
				return nil, err
			}
			result[i] = resolved
		}
		return result, nil
	default:
		return value, nil
	}
}

func loadFileRef(ref, baseDir string) (any, error) {
	if filepath.IsAbs(ref) {
		return nil, fmt.Errorf("$file path must be relative: %s", ref)
	}
	rel := filepath.Clean(ref)
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("$file path escapes test directory: %s", ref)
	}

	path := filepath.Join(baseDir, rel)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("$file %q: %w", ref, err)
	}

	var decoded any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &decoded); err == nil {
			return decoded, nil
		}
	case ".yaml", ".yml":
		converted, err := yamlToJSON(data)
		if err == nil && json.Unmarshal(converted, &decoded) == nil {
			return decoded, nil
		}
	}
	return string(data), nil
}
