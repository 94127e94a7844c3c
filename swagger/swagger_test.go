package swagger_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/masnyjimmy/blogapi/swagger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, handler http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", target, nil))
	return w
}

func TestUIHandler(t *testing.T) {
	opt := swagger.DefaultUIOptions("/api/schema/")
	opt.Title = "Blog API"

	w := get(t, swagger.UIHandler(opt), "/docs")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	page := w.Body.String()
	assert.Contains(t, page, "<title>Blog API</title>")
	assert.Contains(t, page, `"/api/schema/"`)
	assert.Contains(t, page, "deepLinking: true")
	assert.NotContains(t, page, "%TITLE%")
	assert.NotContains(t, page, "%OPENAPI_DOCUMENT_URL%")
}

func TestRedocHandler(t *testing.T) {
	w := get(t, swagger.RedocHandler("Blog API", "/api/schema/"), "/redoc")

	require.Equal(t, http.StatusOK, w.Code)

	page := w.Body.String()
	assert.Contains(t, page, "<title>Blog API</title>")
	assert.Contains(t, page, `"/api/schema/"`)
	assert.NotContains(t, page, "%TITLE%")
}

func TestDocServerRoutes(t *testing.T) {
	document := []byte(`{"openapi": "3.0.3"}`)
	server := swagger.NewDocServer("Blog API", document, "/")
	handler := server.Handler()

	w := get(t, handler, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "swagger-ui")

	w = get(t, handler, "/redoc")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "redoc")

	w = get(t, handler, "/openapi.json")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, string(document), w.Body.String())

	w = get(t, handler, "/nowhere")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDocServerSetDocument(t *testing.T) {
	server := swagger.NewDocServer("Blog API", []byte(`{"v": 1}`), "/")
	handler := server.Handler()

	server.SetDocument([]byte(`{"v": 2}`))

	w := get(t, handler, "/openapi.json")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"v": 2}`, w.Body.String())
}
