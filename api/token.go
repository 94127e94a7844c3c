package api

import (
	"net/http"
)

const detailNoActiveAccount = "No active account found with the given credentials"

func (s *Server) handleTokenObtain(w http.ResponseWriter, r *http.Request) {
	var in TokenObtainIn

	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, detailParseError)
		return
	}

	user, err := s.store.UserByUsername(in.Username)
	if err != nil || !user.CheckPassword(in.Password) {
		writeError(w, http.StatusUnauthorized, detailNoActiveAccount)
		return
	}

	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "unable to issue tokens")
		return
	}

	writeJSON(w, http.StatusOK, TokenPairOut{
		Access:   pair.Access,
		Refresh:  pair.Refresh,
		UserID:   user.ID,
		Username: user.Username,
	})
}

func (s *Server) handleTokenRefresh(w http.ResponseWriter, r *http.Request) {
	var in TokenRefreshIn

	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, detailParseError)
		return
	}

	access, err := s.tokens.Refresh(in.Refresh)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Token is invalid or expired")
		return
	}

	writeJSON(w, http.StatusOK, TokenAccessOut{Access: access})
}
