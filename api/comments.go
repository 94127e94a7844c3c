package api

import (
	"net/http"

	"github.com/masnyjimmy/blogapi/blog"
)

// The flat comment collection requires authentication throughout,
// editing and deleting stay author-only.

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	out := s.commentsOut(s.store.Comments())

	count, next, previous, page, ok := paginate(r, s.settings.API.PageSize, out)
	if !ok {
		writeError(w, http.StatusNotFound, detailInvalidPage)
		return
	}

	writeJSON(w, http.StatusOK, PagedComments{Count: count, Next: next, Previous: previous, Results: page})
}

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireUser(w, r)
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
		PostID:     in.Post,
		AuthorID:   claims.UserID,
		Body:       in.Body,
		IsApproved: in.IsApproved,
	}

	created, err := s.store.CreateComment(comment)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid post id.")
		return
	}

	writeJSON(w, http.StatusCreated, s.commentOut(created))
}

func (s *Server) handleGetComment(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	comment, err := s.store.Comment(id)
	if err != nil {
		writeError(w, http.StatusNotFound, detailNotFound)
		return
	}

	writeJSON(w, http.StatusOK, s.commentOut(comment))
}

// authoredComment fetches the comment and enforces the author-only
// write rule.
func (s *Server) authoredComment(w http.ResponseWriter, r *http.Request, userID int64) (blog.Comment, bool) {
	id, ok := pathID(w, r)
	if !ok {
		return blog.Comment{}, false
	}

	comment, err := s.store.Comment(id)
	if err != nil {
		writeError(w, http.StatusNotFound, detailNotFound)
		return blog.Comment{}, false
	}

	if comment.AuthorID != userID {
		writeError(w, http.StatusForbidden, detailPermissionDenied)
		return blog.Comment{}, false
	}

	return comment, true
}

func (s *Server) handleUpdateComment(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireUser(w, r)
	if !ok {
		return
	}

	comment, ok := s.authoredComment(w, r, claims.UserID)
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

	comment.Body = in.Body
	comment.IsApproved = in.IsApproved

	updated, err := s.store.UpdateComment(comment)
	if err != nil {
		writeError(w, http.StatusNotFound, detailNotFound)
		return
	}

	writeJSON(w, http.StatusOK, s.commentOut(updated))
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireUser(w, r)
	if !ok {
		return
	}

	comment, ok := s.authoredComment(w, r, claims.UserID)
	if !ok {
		return
	}

	if err := s.store.DeleteComment(comment.ID); err != nil {
		writeError(w, http.StatusNotFound, detailNotFound)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
