package validation_test

import (
	"testing"

	"github.com/masnyjimmy/blogapi/openapi"
	"github.com/masnyjimmy/blogapi/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generatedDocument(t *testing.T) ([]byte, []byte) {
	t.Helper()

	g := openapi.NewGenerator(openapi.Info{Title: "Test API", Version: "1.0.0"},
		openapi.WithBearerAuth("jwtAuth"))

	type Thing struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}

	g.Operation("GET", "/api/v1/things/",
		openapi.WithResponse(200, Thing{}, "Things"))
	g.Operation("POST", "/api/v1/things/",
		openapi.WithRequest(Thing{}),
		openapi.WithResponse(201, Thing{}, "Created"),
		openapi.WithSecurity("jwtAuth"))

	jsonBytes, err := g.CompileToJSON()
	require.NoError(t, err)

	yamlBytes, err := g.CompileToYAML()
	require.NoError(t, err)

	return jsonBytes, yamlBytes
}

func TestValidateGeneratedDocument(t *testing.T) {
	jsonBytes, yamlBytes := generatedDocument(t)

	assert.NoError(t, validation.Validate(jsonBytes))
	assert.NoError(t, validation.ValidateYAML(yamlBytes))
}

func TestValidateRejectsMissingInfo(t *testing.T) {
	document := []byte(`{"openapi": "3.0.3", "paths": {}}`)

	assert.Error(t, validation.Validate(document))
}

func TestValidateRejectsBadVersion(t *testing.T) {
	document := []byte(`{
		"openapi": "2.0",
		"info": {"title": "Test", "version": "1.0.0"},
		"paths": {}
	}`)

	assert.Error(t, validation.Validate(document))
}

func TestValidateRejectsOperationWithoutResponses(t *testing.T) {
	document := []byte(`{
		"openapi": "3.0.3",
		"info": {"title": "Test", "version": "1.0.0"},
		"paths": {
			"/things/": {"get": {"summary": "Broken"}}
		}
	}`)

	assert.Error(t, validation.Validate(document))
}

func TestValidateRejectsGarbage(t *testing.T) {
	assert.Error(t, validation.Validate([]byte("not json at all")))
}
