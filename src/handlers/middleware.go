package handlers

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"

	"github.com/username/docbridge/backend/src/logger"
	"github.com/username/docbridge/backend/src/utils"
)

// BasicAuthMiddleware guards a handler with HTTP Basic credentials. Hashing
// both sides before subtle.ConstantTimeCompare keeps the comparison
// constant-time regardless of input length.
func BasicAuthMiddleware(username, password string) func(http.Handler) http.Handler {
	expectedUser := sha256.Sum256([]byte(username))
	expectedPass := sha256.Sum256([]byte(password))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if ok {
				userHash := sha256.Sum256([]byte(user))
				passHash := sha256.Sum256([]byte(pass))
				userMatch := subtle.ConstantTimeCompare(expectedUser[:], userHash[:]) == 1
				passMatch := subtle.ConstantTimeCompare(expectedPass[:], passHash[:]) == 1
				if userMatch && passMatch {
					next.ServeHTTP(w, r)
					return
				}
			}
			if logger.L != nil {
				logger.L.Warn("Rejected request with invalid basic auth credentials",
					"method", r.Method,
					"path", r.URL.Path,
					"remoteAddr", r.RemoteAddr)
			}
			w.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)
			utils.SendJSONError(w, "incorrect username or password", http.StatusUnauthorized)
		})
	}
}
