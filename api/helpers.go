package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/masnyjimmy/blogapi/auth"
)

const (
	detailNotAuthenticated = "Authentication credentials were not provided."
	detailPermissionDenied = "You do not have permission to perform this action."
	detailNotFound         = "Not found."
	detailInvalidPage      = "Invalid page."
	detailParseError       = "JSON parse error"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic(err) // response already committed
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorDetail{Detail: detail})
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// requireUser resolves the authenticated user of the request or writes
// a 401 and reports false.
func requireUser(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := auth.FromContext(r.Context())

	if !ok {
		writeError(w, http.StatusUnauthorized, detailNotAuthenticated)
		return nil, false
	}
	return claims, true
}

// pathID parses the {id} segment. A malformed id behaves like a missing
// resource.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)

	if err != nil {
		writeError(w, http.StatusNotFound, detailNotFound)
		return 0, false
	}
	return id, true
}
