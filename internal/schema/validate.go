// Package schema provides JSON schema validation for tinytest configuration
// and results files.
package schema

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	schemafs "github.com/AndreyAkinshin/tinytest/schema"
)

const (
	configSchemaName  = "config.schema.json"
	resultsSchemaName = "results.schema.json"
	ledgerSchemaName  = "ledger.schema.json"
)

var (
	compiled    map[string]*jsonschema.Schema
	compileOnce sync.Once
	compileErr  error
)

// compileSchemas compiles all embedded schemas once. The ledger schema
// references the results schema, so every resource is added before any is
// compiled.
func compileSchemas() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		names := []string{configSchemaName, resultsSchemaName, ledgerSchemaName}

		for _, name := range names {
			data, err := schemafs.FS.ReadFile(name)
			if err != nil {
				compileErr = fmt.Errorf("read %s: %w", name, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
			if err != nil {
				compileErr = fmt.Errorf("unmarshal %s: %w", name, err)
				return
			}
			if err := compiler.AddResource(name, doc); err != nil {
				compileErr = fmt.Errorf("add %s resource: %w", name, err)
				return
			}
		}

		result := make(map[string]*jsonschema.Schema, len(names))
		for _, name := range names {
			sch, err := compiler.Compile(name)
			if err != nil {
				compileErr = fmt.Errorf("compile %s: %w", name, err)
				return
			}
			result[name] = sch
		}
		compiled = result
	})

	return compileErr
}

func validate(name, what string, data []byte) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := compiled[name].Validate(v); err != nil {
		return fmt.Errorf("%s validation failed: %w", what, err)
	}
	return nil
}

// ValidateConfig validates JSON data against the config schema.
func ValidateConfig(data []byte) error {
	return validate(configSchemaName, "config", data)
}

// ValidateResults validates JSON data against the results document schema.
func ValidateResults(data []byte) error {
	return validate(resultsSchemaName, "results", data)
}

// ValidateLedger validates JSON data against the results ledger schema.
func ValidateLedger(data []byte) error {
	return validate(ledgerSchemaName, "ledger", data)
}
