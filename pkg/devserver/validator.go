package devserver

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/*.json
var schemaFiles embed.FS

const (
	schemaDeviceCreate = "device-create.json"
	schemaDevicePatch  = "device-patch.json"
)

// validator checks request payloads against the embedded JSON schemas
type validator struct {
	schemas map[string]*jsonschema.Schema
}

func newValidator() (*validator, error) {
	compiler := jsonschema.NewCompiler()
	v := &validator{schemas: map[string]*jsonschema.Schema{}}

	for _, name := range []string{schemaDeviceCreate, schemaDevicePatch} {
		data, err := schemaFiles.ReadFile("schema/" + name)
		if err != nil {
			return nil, fmt.Errorf("failed to read schema %s: %w", name, err)
		}
		if err := compiler.AddResource(name, strings.NewReader(string(data))); err != nil {
			return nil, fmt.Errorf("failed to add schema resource: %w", err)
		}
	}

	for _, name := range []string{schemaDeviceCreate, schemaDevicePatch} {
		schema, err := compiler.Compile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
		}
		v.schemas[name] = schema
	}

	return v, nil
}

// validate checks raw JSON against the named schema
func (v *validator) validate(name string, data []byte) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := v.schemas[name].Validate(doc); err != nil {
		return schemaError(err)
	}
	return nil
}

// schemaError flattens a validation error into one line
func schemaError(err error) error {
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}

	leaves := []string{}
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			leaves = append(leaves, fmt.Sprintf("%s: %s", loc, e.Message))
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(verr)

	return fmt.Errorf("%s", strings.Join(leaves, "; "))
}
