package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/rs/cors"

	"github.com/masnyjimmy/blogapi/auth"
	"github.com/masnyjimmy/blogapi/blog"
	"github.com/masnyjimmy/blogapi/config"
	"github.com/masnyjimmy/blogapi/openapi"
	"github.com/masnyjimmy/blogapi/swagger"
)

const (
	SchemaPath = "/api/schema/"
	DocsPath   = "/api/docs/"
	RedocPath  = "/api/redoc/"
)

const securityScheme = "jwtAuth"

// Server is the assembled blog API: storage, token manager, route
// table and the generated OpenAPI document describing it.
type Server struct {
	settings *config.Settings
	store    *blog.Store
	tokens   *auth.Manager
	gen      *openapi.Generator
	router   *Router
	handler  http.Handler
}

func NewServer(settings *config.Settings) *Server {
	gen := openapi.NewGenerator(
		openapi.Info{
			Title:       settings.Schema.Title,
			Description: settings.Schema.Description,
			Version:     settings.Schema.Version,
		},
		openapi.WithPathPrefix(settings.Schema.PathPrefix),
		openapi.WithBearerAuth(securityScheme),
		openapi.WithTag("users", "User registration and management"),
		openapi.WithTag("posts", "Blog posts"),
		openapi.WithTag("comments", "Comments on posts"),
		openapi.WithTag("auth", "JWT token endpoints"),
	)

	s := &Server{
		settings: settings,
		store:    blog.NewStore(),
		tokens:   auth.NewManager(settings.JWT.Secret, settings.JWT.AccessTTL, settings.JWT.RefreshTTL),
		gen:      gen,
		router:   NewRouter(gen),
	}

	s.routes()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: settings.Server.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	s.handler = requestLog(corsHandler.Handler(s.tokens.Middleware(s.router)))

	return s
}

func (s *Server) Store() *blog.Store {
	return s.store
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) Run() error {
	addr := s.settings.Server.Addr
	if !strings.HasPrefix(addr, ":") && !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	log.Printf("Started server at http://localhost%v", addr)
	log.Printf("API docs at %v and %v", DocsPath, RedocPath)

	return http.ListenAndServe(addr, s.handler)
}

// SchemaJSON builds and marshals the OpenAPI document.
func (s *Server) SchemaJSON() ([]byte, error) {
	return s.gen.CompileToJSON()
}

func (s *Server) SchemaYAML() ([]byte, error) {
	return s.gen.CompileToYAML()
}

// routes declares every endpoint together with its documentation
// metadata. The generator picks all of it up, only paths matching the
// configured prefix end up in the document.
func (s *Server) routes() {
	pageParams := []openapi.OperationOption{
		openapi.WithQueryParam("page", &openapi.Schema{Type: openapi.SchemaInteger}, false,
			"A page number within the paginated result set."),
		openapi.WithQueryParam("page_size", &openapi.Schema{Type: openapi.SchemaInteger}, false,
			"Number of results to return per page."),
	}

	// ==================== auth ====================

	s.router.Handle("POST", "/api/v1/token/", s.handleTokenObtain,
		openapi.WithTags("auth"),
		openapi.WithSummary("Obtain JWT token pair"),
		openapi.WithDescription("Exchanges username and password for an access/refresh token pair."),
		openapi.WithRequest(TokenObtainIn{}),
		openapi.WithResponse(200, TokenPairOut{}, "Token pair issued"),
		openapi.WithResponse(401, ErrorDetail{}, "Unauthorized"),
		openapi.WithExample(200, "TokenPair", "A freshly issued pair",
			TokenPairOut{Access: "eyJhbGciOi...", Refresh: "eyJhbGciOi...", UserID: 1, Username: "alice"}),
		openapi.WithExample(401, "BadCredentials", "Wrong username or password",
			ErrorDetail{Detail: detailNoActiveAccount}),
	)

	s.router.Handle("POST", "/api/v1/token/refresh/", s.handleTokenRefresh,
		openapi.WithTags("auth"),
		openapi.WithSummary("Refresh access token"),
		openapi.WithRequest(TokenRefreshIn{}),
		openapi.WithResponse(200, TokenAccessOut{}, "New access token"),
		openapi.WithResponse(401, ErrorDetail{}, "Unauthorized"),
	)

	// ==================== users ====================

	s.router.Handle("GET", "/api/v1/users/", s.handleListUsers, append(pageParams,
		openapi.WithTags("users"),
		openapi.WithSummary("List users"),
		openapi.WithSecurity(securityScheme),
		openapi.WithResponse(200, PagedUsers{}, "Paginated user list"),
		openapi.WithResponse(401, ErrorDetail{}, "Unauthorized"),
	)...)

	s.router.Handle("POST", "/api/v1/users/", s.handleCreateUser,
		openapi.WithTags("users"),
		openapi.WithSummary("Register a new user"),
		openapi.WithDescription("Registration is open, no authentication required."),
		openapi.WithRequest(UserIn{}),
		openapi.WithResponse(201, UserOut{}, "User created"),
		openapi.WithResponse(400, ErrorDetail{}, "Validation error"),
	)

	s.router.Handle("GET", "/api/v1/users/{id}/", s.handleGetUser,
		openapi.WithTags("users"),
		openapi.WithSummary("Retrieve a user"),
		openapi.WithSecurity(securityScheme),
		openapi.WithResponse(200, UserOut{}, "The user"),
		openapi.WithResponse(401, ErrorDetail{}, "Unauthorized"),
		openapi.WithResponse(404, ErrorDetail{}, "Not found"),
	)

	s.router.Handle("PUT", "/api/v1/users/{id}/", s.handleUpdateUser,
		openapi.WithTags("users"),
		openapi.WithSummary("Update a user"),
		openapi.WithSecurity(securityScheme),
		openapi.WithRequest(UserIn{}),
		openapi.WithResponse(200, UserOut{}, "Updated user"),
		openapi.WithResponse(401, ErrorDetail{}, "Unauthorized"),
		openapi.WithResponse(404, ErrorDetail{}, "Not found"),
	)

	s.router.Handle("DELETE", "/api/v1/users/{id}/", s.handleDeleteUser,
		openapi.WithTags("users"),
		openapi.WithSummary("Delete a user"),
		openapi.WithSecurity(securityScheme),
		openapi.WithResponse(204, nil, "Deleted"),
		openapi.WithResponse(401, ErrorDetail{}, "Unauthorized"),
		openapi.WithResponse(404, ErrorDetail{}, "Not found"),
	)

	// ==================== posts ====================

	s.router.Handle("GET", "/api/v1/posts/", s.handleListPosts, append(pageParams,
		openapi.WithTags("posts"),
		openapi.WithSummary("List posts"),
		openapi.WithDescription("Guests only see published posts, authenticated users see everything."),
		openapi.WithResponse(200, PagedPosts{}, "Paginated post list"),
	)...)

	s.router.Handle("POST", "/api/v1/posts/", s.handleCreatePost,
		openapi.WithTags("posts"),
		openapi.WithSummary("Create a post"),
		openapi.WithDescription("The authenticated user becomes the author."),
		openapi.WithSecurity(securityScheme),
		openapi.WithRequest(PostIn{}),
		openapi.WithResponse(201, PostOut{}, "Post created"),
		openapi.WithResponse(401, ErrorDetail{}, "Unauthorized"),
	)

	s.router.Handle("GET", "/api/v1/posts/{id}/", s.handleGetPost,
		openapi.WithTags("posts"),
		openapi.WithSummary("Retrieve a post"),
		openapi.WithResponse(200, PostOut{}, "The post with its comments"),
		openapi.WithResponse(404, ErrorDetail{}, "Not found"),
	)

	s.router.Handle("PUT", "/api/v1/posts/{id}/", s.handleUpdatePost,
		openapi.WithTags("posts"),
		openapi.WithSummary("Update a post"),
		openapi.WithDescription("Only the author can edit a post."),
		openapi.WithSecurity(securityScheme),
		openapi.WithRequest(PostIn{}),
		openapi.WithResponse(200, PostOut{}, "Updated post"),
		openapi.WithResponse(401, ErrorDetail{}, "Unauthorized"),
		openapi.WithResponse(403, ErrorDetail{}, "Forbidden"),
		openapi.WithResponse(404, ErrorDetail{}, "Not found"),
	)

	s.router.Handle("DELETE", "/api/v1/posts/{id}/", s.handleDeletePost,
		openapi.WithTags("posts"),
		openapi.WithSummary("Delete a post"),
		openapi.WithDescription("Only the author can delete a post, comments go with it."),
		openapi.WithSecurity(securityScheme),
		openapi.WithResponse(204, nil, "Deleted"),
		openapi.WithResponse(401, ErrorDetail{}, "Unauthorized"),
		openapi.WithResponse(403, ErrorDetail{}, "Forbidden"),
		openapi.WithResponse(404, ErrorDetail{}, "Not found"),
	)

	s.router.Handle("GET", "/api/v1/posts/{id}/comments/", s.handleListPostComments,
		openapi.WithTags("posts"),
		openapi.WithSummary("List comments of a post"),
		openapi.WithResponseSchema(200,
			&openapi.Schema{Type: openapi.SchemaArray, Items: openapi.RefSchema("CommentOut")},
			"Comments of the post"),
		openapi.WithResponse(404, ErrorDetail{}, "Not found"),
	)

	s.router.Handle("POST", "/api/v1/posts/{id}/comments/", s.handleCreatePostComment,
		openapi.WithTags("posts"),
		openapi.WithSummary("Add a comment to a post"),
		openapi.WithSecurity(securityScheme),
		openapi.WithRequest(CommentIn{}),
		openapi.WithResponse(201, CommentOut{}, "Comment created"),
		openapi.WithResponse(401, ErrorDetail{}, "Unauthorized"),
		openapi.WithResponse(404, ErrorDetail{}, "Not found"),
	)

	// ==================== comments ====================

	s.router.Handle("GET", "/api/v1/comments/", s.handleListComments, append(pageParams,
		openapi.WithTags("comments"),
		openapi.WithSummary("List comments"),
		openapi.WithSecurity(securityScheme),
		openapi.WithResponse(200, PagedComments{}, "Paginated comment list"),
		openapi.WithResponse(401, ErrorDetail{}, "Unauthorized"),
	)...)

	s.router.Handle("POST", "/api/v1/comments/", s.handleCreateComment,
		openapi.WithTags("comments"),
		openapi.WithSummary("Create a comment"),
		openapi.WithSecurity(securityScheme),
		openapi.WithRequest(CommentIn{}),
		openapi.WithResponse(201, CommentOut{}, "Comment created"),
		openapi.WithResponse(400, ErrorDetail{}, "Validation error"),
		openapi.WithResponse(401, ErrorDetail{}, "Unauthorized"),
	)

	s.router.Handle("GET", "/api/v1/comments/{id}/", s.handleGetComment,
		openapi.WithTags("comments"),
		openapi.WithSummary("Retrieve a comment"),
		openapi.WithSecurity(securityScheme),
		openapi.WithResponse(200, CommentOut{}, "The comment"),
		openapi.WithResponse(401, ErrorDetail{}, "Unauthorized"),
		openapi.WithResponse(404, ErrorDetail{}, "Not found"),
	)

	s.router.Handle("PUT", "/api/v1/comments/{id}/", s.handleUpdateComment,
		openapi.WithTags("comments"),
		openapi.WithSummary("Update a comment"),
		openapi.WithDescription("Only the author can edit a comment."),
		openapi.WithSecurity(securityScheme),
		openapi.WithRequest(CommentIn{}),
		openapi.WithResponse(200, CommentOut{}, "Updated comment"),
		openapi.WithResponse(401, ErrorDetail{}, "Unauthorized"),
		openapi.WithResponse(403, ErrorDetail{}, "Forbidden"),
		openapi.WithResponse(404, ErrorDetail{}, "Not found"),
	)

	s.router.Handle("DELETE", "/api/v1/comments/{id}/", s.handleDeleteComment,
		openapi.WithTags("comments"),
		openapi.WithSummary("Delete a comment"),
		openapi.WithSecurity(securityScheme),
		openapi.WithResponse(204, nil, "Deleted"),
		openapi.WithResponse(401, ErrorDetail{}, "Unauthorized"),
		openapi.WithResponse(403, ErrorDetail{}, "Forbidden"),
		openapi.WithResponse(404, ErrorDetail{}, "Not found"),
	)

	// ==================== meta ====================

	// monitoring endpoint, deliberately kept out of the document
	s.router.Handle("GET", "/api/v1/health/", s.handleHealth,
		openapi.Excluded(),
	)

	s.router.Handle("GET", SchemaPath, s.handleSchema)

	uiOptions := swagger.UIOptions{
		Title:                s.settings.Schema.Title,
		DocumentUrl:          SchemaPath,
		DeepLinking:          s.settings.UI.DeepLinking,
		PersistAuthorization: s.settings.UI.PersistAuthorization,
		DisplayOperationId:   s.settings.UI.DisplayOperationId,
	}
	s.router.Handle("GET", DocsPath, swagger.UIHandler(uiOptions))
	s.router.Handle("GET", RedocPath, swagger.RedocHandler(s.settings.Schema.Title, SchemaPath))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSchema serves the generated document, JSON by default, YAML on
// request via ?format=yaml or the Accept header.
func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	wantYAML := r.URL.Query().Get("format") == "yaml" ||
		strings.Contains(r.Header.Get("Accept"), "yaml")

	if wantYAML {
		document, err := s.SchemaYAML()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(document)
		return
	}

	document, err := s.SchemaJSON()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(document)
}

func requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
		log.Printf("%v %v", r.Method, r.URL.Path)
	})
}
