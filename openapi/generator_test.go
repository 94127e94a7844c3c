package openapi_test

import (
	"testing"
	"time"

	"github.com/masnyjimmy/blogapi/openapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleAuthor struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

type samplePost struct {
	ID        int64        `json:"id"`
	Author    sampleAuthor `json:"author"`
	Tags      []string     `json:"tags"`
	CreatedAt time.Time    `json:"created_at" doc:"Creation timestamp"`
	Draft     *bool        `json:"draft,omitempty"`
	internal  string
	Skipped   string       `json:"-"`
}

func newGenerator(opts ...openapi.GeneratorOption) *openapi.Generator {
	return openapi.NewGenerator(openapi.Info{Title: "Test API", Version: "1.0.0"}, opts...)
}

func TestSchemaForScalars(t *testing.T) {
	g := newGenerator()

	assert.Equal(t, openapi.SchemaString, g.SchemaFor("").Type)
	assert.Equal(t, openapi.SchemaInteger, g.SchemaFor(0).Type)
	assert.Equal(t, openapi.SchemaNumber, g.SchemaFor(0.0).Type)
	assert.Equal(t, openapi.SchemaBoolean, g.SchemaFor(false).Type)

	timestamp := g.SchemaFor(time.Time{})
	assert.Equal(t, openapi.SchemaString, timestamp.Type)
	assert.Equal(t, "date-time", timestamp.Format)

	binary := g.SchemaFor([]byte{})
	assert.Equal(t, openapi.SchemaString, binary.Type)
	assert.Equal(t, "binary", binary.Format)
}

func TestSchemaForStruct(t *testing.T) {
	g := newGenerator()

	ref := g.SchemaFor(samplePost{})
	require.Equal(t, "#/components/schemas/samplePost", ref.Ref)

	doc, err := g.Document()
	require.NoError(t, err)
	require.NotNil(t, doc.Components)

	post := doc.Components.Schemas["samplePost"]
	require.NotNil(t, post)
	assert.Equal(t, openapi.SchemaObject, post.Type)

	// nested struct registered and referenced
	assert.Equal(t, "#/components/schemas/sampleAuthor", post.Properties["author"].Ref)
	require.NotNil(t, doc.Components.Schemas["sampleAuthor"])

	assert.Equal(t, openapi.SchemaArray, post.Properties["tags"].Type)
	assert.Equal(t, openapi.SchemaString, post.Properties["tags"].Items.Type)

	assert.Equal(t, "date-time", post.Properties["created_at"].Format)
	assert.Equal(t, "Creation timestamp", post.Properties["created_at"].Description)

	// unexported and json:"-" fields never show up
	assert.NotContains(t, post.Properties, "internal")
	assert.NotContains(t, post.Properties, "Skipped")

	// omitempty and pointer fields are optional
	assert.ElementsMatch(t, []string{"id", "author", "tags", "created_at"}, post.Required)

	author := doc.Components.Schemas["sampleAuthor"]
	assert.ElementsMatch(t, []string{"id"}, author.Required)
}

func TestOperationDefaults(t *testing.T) {
	g := newGenerator()

	g.Operation("GET", "/api/v1/posts/{id}/")

	doc, err := g.Document()
	require.NoError(t, err)

	op := doc.Paths["/api/v1/posts/{id}/"].Get
	require.NotNil(t, op)

	assert.Equal(t, "get_api_v1_posts_by_id", op.OperationId)

	// the path parameter is declared automatically
	require.Len(t, op.Parameters, 1)
	assert.Equal(t, "id", op.Parameters[0].Name)
	assert.Equal(t, openapi.InPath, op.Parameters[0].In)
	assert.True(t, op.Parameters[0].Required)

	// a default response is always present
	require.Contains(t, op.Responses, "200")
}

func TestDuplicateOperationPanics(t *testing.T) {
	g := newGenerator()

	g.Operation("GET", "/api/v1/posts/")

	assert.Panics(t, func() {
		g.Operation("GET", "/api/v1/posts/")
	})
}

func TestOneOperationPerPathAndMethod(t *testing.T) {
	g := newGenerator()

	g.Operation("GET", "/api/v1/posts/")
	g.Operation("POST", "/api/v1/posts/")
	g.Operation("GET", "/api/v1/posts/{id}/")

	doc, err := g.Document()
	require.NoError(t, err)

	require.Len(t, doc.Paths, 2)

	item := doc.Paths["/api/v1/posts/"]
	assert.NotNil(t, item.Get)
	assert.NotNil(t, item.Post)
	assert.Nil(t, item.Put)
}

func TestPathPrefixFilter(t *testing.T) {
	g := newGenerator(openapi.WithPathPrefix("^/api/v1"))

	g.Operation("GET", "/api/v1/posts/")
	g.Operation("GET", "/api/schema/")
	g.Operation("GET", "/internal/metrics")

	doc, err := g.Document()
	require.NoError(t, err)

	assert.Contains(t, doc.Paths, "/api/v1/posts/")
	assert.NotContains(t, doc.Paths, "/api/schema/")
	assert.NotContains(t, doc.Paths, "/internal/metrics")
}

func TestExcludedOperation(t *testing.T) {
	g := newGenerator()

	g.Operation("GET", "/api/v1/health/", openapi.Excluded())
	g.Operation("GET", "/api/v1/posts/")

	doc, err := g.Document()
	require.NoError(t, err)

	// the whole path disappears when every operation is excluded
	assert.NotContains(t, doc.Paths, "/api/v1/health/")
	assert.Contains(t, doc.Paths, "/api/v1/posts/")
}

func TestUnresolvableRefFailsBuild(t *testing.T) {
	g := newGenerator()

	g.Operation("GET", "/api/v1/things/",
		openapi.WithResponseSchema(200, openapi.RefSchema("Missing"), "Broken"))

	_, err := g.Document()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unresolvable schema reference")
}

func TestSecurityAndExamples(t *testing.T) {
	g := newGenerator(openapi.WithBearerAuth("jwtAuth"))

	g.Operation("POST", "/api/v1/token/",
		openapi.WithRequest(sampleAuthor{}),
		openapi.WithResponse(200, sampleAuthor{}, "OK"),
		openapi.WithExample(200, "Sample", "A sample author", sampleAuthor{ID: 1, Name: "alice"}),
		openapi.WithSecurity("jwtAuth"),
	)

	doc, err := g.Document()
	require.NoError(t, err)

	scheme := doc.Components.SecuritySchemes["jwtAuth"]
	require.NotNil(t, scheme)
	assert.Equal(t, "http", scheme.Type)
	assert.Equal(t, "bearer", scheme.Scheme)

	op := doc.Paths["/api/v1/token/"].Post
	require.NotNil(t, op.RequestBody)
	assert.True(t, op.RequestBody.Required)

	media := op.Responses["200"].Content["application/json"]
	require.Contains(t, media.Examples, "Sample")
	assert.Equal(t, "A sample author", media.Examples["Sample"].Summary)

	require.Len(t, op.Security, 1)
	assert.Contains(t, op.Security[0], "jwtAuth")
}

func TestExampleOnUndeclaredResponsePanics(t *testing.T) {
	g := newGenerator()

	assert.Panics(t, func() {
		g.Operation("GET", "/api/v1/things/",
			openapi.WithExample(200, "Broken", "", nil))
	})
}
