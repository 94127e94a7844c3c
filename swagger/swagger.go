// Package swagger serves browser documentation for an OpenAPI
// document: an interactive Swagger UI explorer and a read-only ReDoc
// reference, both rendered client-side from the document URL.
package swagger

import (
	_ "embed"
	"net/http"
	"strconv"
	"strings"
)

//go:embed swagger.html
var swaggerUIBase string

//go:embed redoc.html
var redocBase string

// UIOptions controls how the Swagger UI page is rendered.
type UIOptions struct {
	Title       string
	DocumentUrl string

	// EventsUrl enables live reload over SSE when non-empty.
	EventsUrl string

	DeepLinking          bool
	PersistAuthorization bool
	DisplayOperationId   bool
}

func DefaultUIOptions(documentUrl string) UIOptions {
	return UIOptions{
		Title:       "API Documentation",
		DocumentUrl: documentUrl,
		DeepLinking: true,
	}
}

func buildSwaggerUI(opt UIOptions) []byte {
	replacer := strings.NewReplacer(
		"%TITLE%", opt.Title,
		"%OPENAPI_DOCUMENT_URL%", opt.DocumentUrl,
		"%EVENTS_URL%", opt.EventsUrl,
		"%DEEP_LINKING%", strconv.FormatBool(opt.DeepLinking),
		"%PERSIST_AUTHORIZATION%", strconv.FormatBool(opt.PersistAuthorization),
		"%DISPLAY_OPERATION_ID%", strconv.FormatBool(opt.DisplayOperationId),
	)

	return []byte(replacer.Replace(swaggerUIBase))
}

func buildRedoc(title, documentUrl string) []byte {
	replacer := strings.NewReplacer(
		"%TITLE%", title,
		"%OPENAPI_DOCUMENT_URL%", documentUrl,
	)

	return []byte(replacer.Replace(redocBase))
}

// UIHandler serves the interactive API explorer page.
func UIHandler(opt UIOptions) http.HandlerFunc {
	page := buildSwaggerUI(opt)

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	}
}

// RedocHandler serves the read-only API reference page.
func RedocHandler(title, documentUrl string) http.HandlerFunc {
	page := buildRedoc(title, documentUrl)

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	}
}
