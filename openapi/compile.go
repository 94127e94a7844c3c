package openapi

import (
	"encoding/json"

	"github.com/goccy/go-yaml"
)

// CompileToJSON builds the document and marshals it as JSON.
func (g *Generator) CompileToJSON() ([]byte, error) {
	doc, err := g.Document()

	if err != nil {
		return nil, err
	}

	bytes, err := json.MarshalIndent(doc, "", "  ")

	if err != nil {
		panic(err) // should be ok
	}

	return bytes, nil
}

// CompileToYAML builds the document and marshals it as YAML. The YAML
// is produced from the JSON rendition, so both formats always describe
// identical content regardless of struct tags on example values.
func (g *Generator) CompileToYAML() ([]byte, error) {
	jsonBytes, err := g.CompileToJSON()

	if err != nil {
		return nil, err
	}

	var tree any

	if err := json.Unmarshal(jsonBytes, &tree); err != nil {
		panic(err) // our own marshal output
	}

	bytes, err := yaml.Marshal(tree)

	if err != nil {
		panic(err)
	}

	return bytes, nil
}
