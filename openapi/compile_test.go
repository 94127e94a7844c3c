package openapi_test

import (
	"encoding/json"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/masnyjimmy/blogapi/openapi"
	"github.com/stretchr/testify/require"
)

func TestCompileFormatsAgree(t *testing.T) {
	g := newGenerator(openapi.WithBearerAuth("jwtAuth"))

	g.Operation("GET", "/api/v1/posts/",
		openapi.WithResponse(200, samplePost{}, "Posts"))
	g.Operation("POST", "/api/v1/posts/",
		openapi.WithRequest(samplePost{}),
		openapi.WithResponse(201, samplePost{}, "Created"),
		openapi.WithExample(201, "Fresh", "A fresh post", samplePost{ID: 7}),
		openapi.WithSecurity("jwtAuth"))

	jsonBytes, err := g.CompileToJSON()
	require.NoError(t, err)

	yamlBytes, err := g.CompileToYAML()
	require.NoError(t, err)

	// both renditions must describe identical logical content
	var fromYAML any
	require.NoError(t, yaml.Unmarshal(yamlBytes, &fromYAML))

	yamlAsJSON, err := json.Marshal(fromYAML)
	require.NoError(t, err)

	require.JSONEq(t, string(jsonBytes), string(yamlAsJSON))
}

func TestCompileReportsBuildErrors(t *testing.T) {
	g := newGenerator()

	g.Operation("GET", "/api/v1/things/",
		openapi.WithResponseSchema(200, openapi.RefSchema("Nowhere"), "Broken"))

	_, err := g.CompileToJSON()
	require.Error(t, err)

	_, err = g.CompileToYAML()
	require.Error(t, err)
}
