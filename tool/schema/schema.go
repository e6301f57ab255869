// Package schema compiles and validates tool parameter schemas using
// santhosh-tekuri/jsonschema, the same validator the registry service uses
// to check tool payloads before dispatch.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Compiled wraps a compiled JSON schema for repeated validation.
type Compiled struct {
	schema *jsonschema.Schema
}

// Compile parses and compiles a JSON schema document.
func Compile(schemaJSON []byte) (*Compiled, error) {
	var doc any
	if err := json.Unmarshal(schemaJSON, &doc); err != nil {
		return nil, fmt.Errorf("schema: unmarshal: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", doc); err != nil {
		return nil, fmt.Errorf("schema: add resource: %w", err)
	}
	compiled, err := c.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("schema: compile: %w", err)
	}
	return &Compiled{schema: compiled}, nil
}

// Validate checks argsJSON against the compiled schema.
func (c *Compiled) Validate(argsJSON []byte) error {
	var doc any
	if err := json.Unmarshal(argsJSON, &doc); err != nil {
		return fmt.Errorf("schema: unmarshal arguments: %w", err)
	}
	return c.schema.Validate(doc)
}
