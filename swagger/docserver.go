package swagger

import (
	"net/http"
	"path"
	"slices"
	"sync"
)

type urls struct {
	UI       string
	Redoc    string
	Document string
	Events   string
}

func makeUrls(base string) urls {
	return urls{
		UI:       path.Clean(base),
		Redoc:    path.Join(base, "redoc"),
		Document: path.Join(base, "openapi.json"),
		Events:   path.Join(base, "events"),
	}
}

// DocServer serves a single OpenAPI document together with both UIs and
// an SSE endpoint that tells open pages to reload when the document
// changes. It backs the standalone docs command.
type DocServer struct {
	title       string
	broadcaster *broadcaster
	urls        urls

	mu       sync.RWMutex
	document []byte
}

func NewDocServer(title string, document []byte, baseUrl string) *DocServer {
	return &DocServer{
		title:       title,
		broadcaster: newBroadcaster(),
		urls:        makeUrls(baseUrl),
		document:    document,
	}
}

func (s *DocServer) Handler() http.Handler {
	uiOptions := DefaultUIOptions(s.urls.Document)
	uiOptions.Title = s.title
	uiOptions.EventsUrl = s.urls.Events

	ui := UIHandler(uiOptions)
	redoc := RedocHandler(s.title, s.urls.Document)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case s.urls.UI:
			ui(w, r)
		case s.urls.Redoc:
			redoc(w, r)
		case s.urls.Document:
			w.Header().Set("Content-Type", "application/json")
			s.mu.RLock()
			defer s.mu.RUnlock()
			w.Write(s.document)
		case s.urls.Events:
			s.broadcaster.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// SetDocument swaps the served document and notifies connected pages.
func (s *DocServer) SetDocument(document []byte) {
	s.mu.Lock()
	s.document = slices.Clone(document)
	s.mu.Unlock()
	s.broadcaster.Broadcast("reload")
}
