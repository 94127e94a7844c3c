package api

import (
	"errors"
	"net/http"

	"github.com/masnyjimmy/blogapi/blog"
)

// Registration is open to everyone, every other user operation needs
// authentication.

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	users := s.store.Users()

	out := make([]UserOut, 0, len(users))
	for _, user := range users {
		out = append(out, userOut(user))
	}

	count, next, previous, page, ok := paginate(r, s.settings.API.PageSize, out)
	if !ok {
		writeError(w, http.StatusNotFound, detailInvalidPage)
		return
	}

	writeJSON(w, http.StatusOK, PagedUsers{Count: count, Next: next, Previous: previous, Results: page})
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var in UserIn

	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, detailParseError)
		return
	}

	if in.Username == "" || in.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user := blog.User{Username: in.Username, Email: in.Email}
	if err := user.SetPassword(in.Password); err != nil {
		writeError(w, http.StatusInternalServerError, "unable to hash password")
		return
	}

	created, err := s.store.CreateUser(user)
	if err != nil {
		if errors.Is(err, blog.ErrUsernameTaken) {
			writeError(w, http.StatusBadRequest, "A user with that username already exists.")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, userOut(created))
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	user, err := s.store.User(id)
	if err != nil {
		writeError(w, http.StatusNotFound, detailNotFound)
		return
	}

	writeJSON(w, http.StatusOK, userOut(user))
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	current, err := s.store.User(id)
	if err != nil {
		writeError(w, http.StatusNotFound, detailNotFound)
		return
	}

	var in UserIn
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, detailParseError)
		return
	}

	if in.Username != "" {
		current.Username = in.Username
	}
	if in.Email != "" {
		current.Email = in.Email
	}
	if in.Password != "" {
		if err := current.SetPassword(in.Password); err != nil {
			writeError(w, http.StatusInternalServerError, "unable to hash password")
			return
		}
	}

	updated, err := s.store.UpdateUser(current)
	if err != nil {
		if errors.Is(err, blog.ErrUsernameTaken) {
			writeError(w, http.StatusBadRequest, "A user with that username already exists.")
			return
		}
		writeError(w, http.StatusNotFound, detailNotFound)
		return
	}

	writeJSON(w, http.StatusOK, userOut(updated))
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.store.DeleteUser(id); err != nil {
		writeError(w, http.StatusNotFound, detailNotFound)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
