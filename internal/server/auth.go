package server

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// requireWorkerToken guards worker endpoints with the shared bearer token.
// An unset token means no worker is authorized; the handler reports a
// server-side configuration problem rather than rejecting the credential.
func (s *Server) requireWorkerToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token == "" {
			writeError(w, http.StatusInternalServerError, "worker token is not configured")
			return
		}
		presented := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if presented == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(s.token)) != 1 {
			writeError(w, http.StatusUnauthorized, "invalid worker token")
			return
		}
		next.ServeHTTP(w, r)
	})
}
