// Package resultsfile stores tinytest results on disk so runs from several
// processes or files can be aggregated.
//
// A Document holds the TestResults of one suite run. A Ledger is a file that
// accumulates Documents; Append adds to it under an exclusive file lock.
// Both are written as JSON or YAML depending on the file extension and are
// validated against the embedded schemas when read.
package resultsfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/tinytest/internal/filelock"
	"github.com/AndreyAkinshin/tinytest/internal/schema"
	"github.com/AndreyAkinshin/tinytest/pkg/tinytest"
)

// Version is the document format version written by this package.
const Version = 1

// Document is the stored outcome of one suite run.
type Document struct {
	Version   int                  `json:"version" yaml:"version"`
	RunID     uuid.UUID            `json:"run_id" yaml:"run_id"`
	Suite     string               `json:"suite" yaml:"suite"`
	CreatedAt time.Time            `json:"created_at" yaml:"created_at"`
	Results   tinytest.TestResults `json:"results" yaml:"results"`
}

// Ledger is an ordered collection of documents.
type Ledger struct {
	Version int        `json:"version" yaml:"version"`
	Runs    []Document `json:"runs" yaml:"runs"`
}

// NewDocument wraps results of suite in a Document with a fresh run ID.
func NewDocument(suite string, results tinytest.TestResults) Document {
	return Document{
		Version:   Version,
		RunID:     uuid.New(),
		Suite:     suite,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Results:   results,
	}
}

// Format is a file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the encoding from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%s: unsupported results file extension (want .json, .yaml or .yml)", path)
	}
}

// Encode serializes v in the given format.
func Encode(format Format, v any) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(v)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// Save writes doc to path atomically.
func Save(path string, doc Document) error {
	return write(path, doc)
}

// SaveLedger writes ledger to path atomically.
func SaveLedger(path string, ledger Ledger) error {
	if ledger.Runs == nil {
		ledger.Runs = []Document{}
	}
	return write(path, ledger)
}

func write(path string, v any) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := Encode(format, v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return filelock.AtomicWrite(path, data)
}

// Load reads and validates a single document.
func Load(path string) (Document, error) {
	var doc Document
	err := read(path, "results", &doc)
	return doc, err
}

// LoadLedger reads and validates a ledger.
func LoadLedger(path string) (Ledger, error) {
	var ledger Ledger
	err := read(path, "ledger", &ledger)
	return ledger, err
}

// ReadAll returns the documents stored in path, which may hold either a
// single document or a ledger.
func ReadAll(path string) ([]Document, error) {
	jsonData, err := readJSON(path)
	if err != nil {
		return nil, err
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("%s: expected an object: %w", path, err)
	}
	if _, ok := probe["runs"]; ok {
		ledger, err := LoadLedger(path)
		if err != nil {
			return nil, err
		}
		return ledger.Runs, nil
	}
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	return []Document{doc}, nil
}

func read(path, kind string, out any) error {
	jsonData, err := readJSON(path)
	if err != nil {
		return err
	}
	if err := validate(kind, jsonData); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := json.Unmarshal(jsonData, out); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func validate(kind string, data []byte) error {
	if kind == "ledger" {
		return schema.ValidateLedger(data)
	}
	return schema.ValidateResults(data)
}

// readJSON returns the content of path as JSON, converting YAML input.
func readJSON(path string) ([]byte, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if format == FormatJSON {
		return data, nil
	}

	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%s: invalid YAML: %w", path, err)
	}
	converted, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%s: convert YAML: %w", path, err)
	}
	return converted, nil
}

// Append adds docs to the ledger at path, creating it when missing. The
// read-modify-write cycle holds the ledger's lock file.
func Append(path string, docs ...Document) error {
	return filelock.WithLock(path, func() error {
		ledger, err := LoadLedger(path)
		if errors.Is(err, os.ErrNotExist) {
			ledger = Ledger{Version: Version}
		} else if err != nil {
			return err
		}
		ledger.Runs = append(ledger.Runs, docs...)
		return SaveLedger(path, ledger)
	})
}

// Merge combines the results of docs in order.
func Merge(docs ...Document) tinytest.TestResults {
	var total tinytest.TestResults
	for _, d := range docs {
		total.Add(d.Results)
	}
	return total
}

// BySuite merges documents per suite and returns the suite names in first
// appearance order.
func BySuite(docs []Document) ([]string, map[string]tinytest.TestResults) {
	var order []string
	merged := make(map[string]tinytest.TestResults)
	for _, d := range docs {
		current, seen := merged[d.Suite]
		if !seen {
			order = append(order, d.Suite)
		}
		merged[d.Suite] = current.Combine(d.Results)
	}
	return order, merged
}
