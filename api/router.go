// Package api wires the blog REST layer: every route is registered in
// the HTTP mux and in the OpenAPI generator at the same time, so the
// served document always describes exactly the routes that exist.
package api

import (
	"net/http"
	"strings"

	"github.com/masnyjimmy/blogapi/openapi"
)

type Router struct {
	mux *http.ServeMux
	gen *openapi.Generator
}

func NewRouter(gen *openapi.Generator) *Router {
	return &Router{
		mux: http.NewServeMux(),
		gen: gen,
	}
}

// Handle registers the handler for method+path and records the
// operation with its documentation metadata in the generator.
func (r *Router) Handle(method, path string, handler http.HandlerFunc, opts ...openapi.OperationOption) {
	r.mux.HandleFunc(method+" "+muxPattern(path), handler)
	r.gen.Operation(method, path, opts...)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// muxPattern pins trailing-slash paths to an exact match. Without the
// {$} anchor the mux would treat them as subtree prefixes.
func muxPattern(path string) string {
	if strings.HasSuffix(path, "/") {
		return path + "{$}"
	}
	return path
}
