// Package validation checks generated OpenAPI documents against an
// embedded meta-schema.
package validation

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed openapi-3.0-schema.json
var schemaBytes []byte

var schema *jsonschema.Schema

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.DefaultDraft(jsonschema.Draft2020)

	var object any

	if err := json.Unmarshal(schemaBytes, &object); err != nil {
		panic(err)
	}

	if err := compiler.AddResource("openapi-3.0-schema.json", object); err != nil {
		panic(err)
	}

	schema = compiler.MustCompile("openapi-3.0-schema.json")
}

// Validate checks a JSON document against the OpenAPI meta-schema.
func Validate(documentBytes []byte) error {
	var document any

	if err := json.Unmarshal(documentBytes, &document); err != nil {
		return fmt.Errorf("Unable to parse document: %w", err)
	}

	return schema.Validate(document)
}

// ValidateYAML checks a YAML document by converting it to JSON first,
// so both export formats validate against the same meta-schema.
func ValidateYAML(documentBytes []byte) error {
	var document any

	if err := yaml.Unmarshal(documentBytes, &document); err != nil {
		return fmt.Errorf("Unable to parse document: %w", err)
	}

	jsonBytes, err := json.Marshal(document)

	if err != nil {
		return fmt.Errorf("Unable to convert document: %w", err)
	}

	return Validate(jsonBytes)
}
