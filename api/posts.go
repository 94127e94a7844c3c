package api

import (
	"net/http"

	"github.com/masnyjimmy/blogapi/auth"
	"github.com/masnyjimmy/blogapi/blog"
)

// Guests only see published posts. Creating requires authentication,
// editing and deleting are reserved for the author.

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	_, authenticated := auth.FromContext(r.Context())

	posts := s.store.Posts(!authenticated)

	out := make([]PostListItem, 0, len(posts))
	for _, post := range posts {
		out = append(out, s.postListItem(post))
	}

	count, next, previous, page, ok := paginate(r, s.settings.API.PageSize, out)
	if !ok {
		writeError(w, http.StatusNotFound, detailInvalidPage)
		return
	}

	writeJSON(w, http.StatusOK, PagedPosts{Count: count, Next: next, Previous: previous, Results: page})
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireUser(w, r)
	if !ok {
		return
	}

	var in PostIn
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, detailParseError)
		return
	}

	if in.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	post := blog.Post{
		AuthorID:    claims.UserID,
		Title:       in.Title,
		Body:        in.Body,
		IsPublished: in.IsPublished,
	}

	created, err := s.store.CreatePost(post)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, s.postOut(created))
}

// visiblePost fetches the post and applies the guest visibility rule,
// a hidden draft is indistinguishable from a missing post.
func (s *Server) visiblePost(w http.ResponseWriter, r *http.Request) (blog.Post, bool) {
	id, ok := pathID(w, r)
	if !ok {
		return blog.Post{}, false
	}

	post, err := s.store.Post(id)
	if err != nil {
		writeError(w, http.StatusNotFound, detailNotFound)
		return blog.Post{}, false
	}

	if _, authenticated := auth.FromContext(r.Context()); !authenticated && !post.IsPublished {
		writeError(w, http.StatusNotFound, detailNotFound)
		return blog.Post{}, false
	}

	return post, true
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	post, ok := s.visiblePost(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, s.postOut(post))
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireUser(w, r)
	if !ok {
		return
	}

	post, ok := s.visiblePost(w, r)
	if !ok {
		return
	}

	if post.AuthorID != claims.UserID {
		writeError(w, http.StatusForbidden, detailPermissionDenied)
		return
	}

	var in PostIn
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, detailParseError)
		return
	}

	post.Title = in.Title
	post.Body = in.Body
	post.IsPublished = in.IsPublished

	updated, err := s.store.UpdatePost(post)
	if err != nil {
		writeError(w, http.StatusNotFound, detailNotFound)
		return
	}

	writeJSON(w, http.StatusOK, s.postOut(updated))
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireUser(w, r)
	if !ok {
		return
	}

	post, ok := s.visiblePost(w, r)
	if !ok {
		return
	}

	if post.AuthorID != claims.UserID {
		writeError(w, http.StatusForbidden, detailPermissionDenied)
		return
	}

	if err := s.store.DeletePost(post.ID); err != nil {
		writeError(w, http.StatusNotFound, detailNotFound)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleListPostComments(w http.ResponseWriter, r *http.Request) {
	post, ok := s.visiblePost(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, s.commentsOut(s.store.CommentsByPost(post.ID)))
}

func (s *Server) handleCreatePostComment(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireUser(w, r)
	if !ok {
		return
	}

	post, ok := s.visiblePost(w, r)
	if !ok {
		return
	}

	var in CommentIn
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, detailParseError)
		return
	}

	if in.Body == "" {
		writeError(w, http.StatusBadRequest, "body is required")
		return
	}

	comment := blog.Comment{
		PostID:     post.ID,
		AuthorID:   claims.UserID,
		Body:       in.Body,
		IsApproved: in.IsApproved,
	}

	created, err := s.store.CreateComment(comment)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, s.commentOut(created))
}
