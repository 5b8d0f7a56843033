package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/codingdojo-pna-july-2019/Brett-Anam-Group-Project/auth"
)

// requireUser resolves the session. Anonymous requests get the landing
// page with a notice, matching the original app's gate on every
// logged-in route.
func requireUser(w http.ResponseWriter, r *http.Request, sessions *auth.Manager) (uint, bool) {
	userID, ok := sessions.CurrentUserID(r)
	if !ok {
		sessions.Flash(w, r, "Please Log In")
		http.Redirect(w, r, "/", http.StatusFound)
		return 0, false
	}
	return userID, true
}

// pathID parses the {id} route variable.
func pathID(r *http.Request) (uint, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
